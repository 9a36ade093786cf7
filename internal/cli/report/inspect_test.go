package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seam-lang/seam/knowledge"
	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/loader"
)

const inspectFixture = `{
  "seam": "1.0",
  "example.weather": {
    "shapes": {
      "Weather": {
        "type": "service",
        "version": "2026-08-31",
        "resources": ["example.weather#City"],
        "traits": {"aws.api#service": {"arnNamespace": "weather"}}
      },
      "City": {
        "type": "resource",
        "identifiers": {"cityId": "example.weather#CityId"},
        "read": "example.weather#GetCity",
        "list": "example.weather#ListCities",
        "traits": {"aws.api#arn": {"template": "city/{cityId}"}}
      },
      "CityId": {"type": "string"},
      "GetCity": {
        "type": "operation",
        "input": "example.weather#GetCityInput",
        "traits": {"seam.api#http": {"method": "GET", "uri": "/cities/{cityId}"}}
      },
      "GetCityInput": {
        "type": "structure",
        "members": {
          "cityId": {
            "target": "example.weather#CityId",
            "traits": {"seam.api#required": null}
          }
        }
      },
      "ListCities": {
        "type": "operation",
        "input": "example.weather#ListCitiesInput",
        "output": "example.weather#ListCitiesOutput",
        "traits": {"seam.api#paginated": {"inputToken": "nextToken", "outputToken": "nextToken", "items": "items"}}
      },
      "ListCitiesInput": {
        "type": "structure",
        "members": {"nextToken": "example.weather#CityId"}
      },
      "ListCitiesOutput": {
        "type": "structure",
        "members": {
          "nextToken": "example.weather#CityId",
          "items": "example.weather#CityList"
        }
      },
      "CityList": {"type": "list", "member": "example.weather#CityId"}
    }
  }
}`

func inspectModel(t *testing.T) *model.Model {
	t.Helper()
	m, err := loader.LoadJSON([]byte(inspectFixture), "weather.json")
	require.NoError(t, err)
	return m
}

func TestInspectReport_Topology(t *testing.T) {
	r := NewInspectReport(inspectModel(t), knowledge.NewCache())

	require.Len(t, r.Services, 1)
	svc := r.Services[0]
	assert.Equal(t, "example.weather#Weather", svc.ID)
	assert.Equal(t, "2026-08-31", svc.Version)
	assert.Equal(t, "weather", svc.ArnNamespace)
	assert.Empty(t, svc.Operations)

	require.Len(t, svc.Resources, 1)
	res := svc.Resources[0]
	assert.Equal(t, "example.weather#City", res.ID)
	assert.Equal(t, []string{"cityId"}, res.Identifiers)
	assert.Equal(t, "arn:{AWS::Partition}:weather:{AWS::Region}:{AWS::AccountId}:city/{cityId}", res.Arn)
	require.Len(t, res.Operations, 2)
}

func TestInspectReport_OperationDetails(t *testing.T) {
	r := NewInspectReport(inspectModel(t), knowledge.NewCache())
	ops := map[string]OperationInfo{}
	for _, op := range r.Services[0].Resources[0].Operations {
		ops[op.ID] = op
	}

	get := ops["example.weather#GetCity"]
	assert.Equal(t, "instance", get.Binding)
	require.NotNil(t, get.Http)
	assert.Equal(t, "GET", get.Http.Method)
	assert.Equal(t, "/cities/{cityId}", get.Http.URI)
	assert.Equal(t, 200, get.Http.Code)
	assert.Nil(t, get.Pagination)
	assert.Equal(t, "city/{cityId}", get.Arn)

	list := ops["example.weather#ListCities"]
	assert.Equal(t, "collection", list.Binding)
	require.NotNil(t, list.Pagination)
	assert.Equal(t, "nextToken", list.Pagination.InputToken)
	assert.Equal(t, "nextToken", list.Pagination.OutputToken)
	assert.Equal(t, "items", list.Pagination.Items)
	assert.Empty(t, list.Pagination.PageSize)
}

func TestInspectReport_RenderText(t *testing.T) {
	r := NewInspectReport(inspectModel(t), knowledge.NewCache())

	var buf bytes.Buffer
	r.Render(&buf, false)

	out := buf.String()
	assert.Contains(t, out, "service example.weather#Weather")
	assert.Contains(t, out, "resource example.weather#City")
	assert.Contains(t, out, "operation example.weather#GetCity [instance]")
	assert.Contains(t, out, "operation example.weather#ListCities [collection]")
	assert.Contains(t, out, "paginated: nextToken/nextToken items=items")
}
