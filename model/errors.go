package model

import "fmt"

// MissingRequiredError is returned when a shape constructor is invoked
// without a mandatory field. It is raised before the malformed shape can
// enter a graph.
type MissingRequiredError struct {
	// Subject identifies what was being constructed, e.g. a shape id.
	Subject string
	// Field is the missing required field name.
	Field string
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Subject, e.Field)
}

// DuplicateShapeError is returned by the graph builder when two shapes
// share a shape id.
type DuplicateShapeError struct {
	ID ShapeId
}

func (e *DuplicateShapeError) Error() string {
	return fmt.Sprintf("duplicate shape id %s", e.ID)
}

// DuplicateTraitError is returned when the same trait id is attached to a
// shape more than once.
type DuplicateTraitError struct {
	Trait ShapeId
}

func (e *DuplicateTraitError) Error() string {
	return fmt.Sprintf("trait %s attached more than once", e.Trait)
}

func missingRequired(subject fmt.Stringer, field string) error {
	return &MissingRequiredError{Subject: subject.String(), Field: field}
}
