// Package report renders model reports for the CLI: structural diffs
// between two models and single-model topology summaries. Reports are
// plain data assembled in sorted order, so the same inputs always render
// the same bytes.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/seam-lang/seam/diff"
)

// ShapeEntry describes one added or removed shape.
type ShapeEntry struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// TraitChange describes one trait whose value changed on a shape.
type TraitChange struct {
	ID string `json:"id"`
}

// MemberChange describes one member whose target or traits changed.
type MemberChange struct {
	Name      string `json:"name"`
	OldTarget string `json:"oldTarget"`
	NewTarget string `json:"newTarget"`
}

// ShapeChange describes one shape present in both models with different
// contents.
type ShapeChange struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`

	AddedTraits   []string      `json:"addedTraits,omitempty"`
	RemovedTraits []string      `json:"removedTraits,omitempty"`
	ChangedTraits []TraitChange `json:"changedTraits,omitempty"`

	AddedMembers   []string       `json:"addedMembers,omitempty"`
	RemovedMembers []string       `json:"removedMembers,omitempty"`
	ChangedMembers []MemberChange `json:"changedMembers,omitempty"`
}

// MetadataChange describes one metadata property difference.
type MetadataChange struct {
	Key string `json:"key"`
}

// DiffReport is the full set of differences between two models, every
// section sorted for stable output.
type DiffReport struct {
	AddedShapes   []ShapeEntry  `json:"addedShapes,omitempty"`
	RemovedShapes []ShapeEntry  `json:"removedShapes,omitempty"`
	ChangedShapes []ShapeChange `json:"changedShapes,omitempty"`

	AddedMetadata   []MetadataChange `json:"addedMetadata,omitempty"`
	RemovedMetadata []MetadataChange `json:"removedMetadata,omitempty"`
	ChangedMetadata []MetadataChange `json:"changedMetadata,omitempty"`
}

// NewDiffReport assembles a sorted report from detected differences.
func NewDiffReport(d *diff.Differences) *DiffReport {
	r := &DiffReport{}

	for s := range d.AddedShapes() {
		r.AddedShapes = append(r.AddedShapes, ShapeEntry{ID: s.ID().String(), Kind: s.ShapeKind().String()})
	}
	for s := range d.RemovedShapes() {
		r.RemovedShapes = append(r.RemovedShapes, ShapeEntry{ID: s.ID().String(), Kind: s.ShapeKind().String()})
	}
	for c := range d.ChangedShapes() {
		r.ChangedShapes = append(r.ChangedShapes, newShapeChange(c))
	}
	for key := range d.AddedMetadata() {
		r.AddedMetadata = append(r.AddedMetadata, MetadataChange{Key: key})
	}
	for key := range d.RemovedMetadata() {
		r.RemovedMetadata = append(r.RemovedMetadata, MetadataChange{Key: key})
	}
	for c := range d.ChangedMetadata() {
		r.ChangedMetadata = append(r.ChangedMetadata, MetadataChange{Key: c.Key})
	}

	sortEntries(r.AddedShapes)
	sortEntries(r.RemovedShapes)
	sort.Slice(r.ChangedShapes, func(i, j int) bool { return r.ChangedShapes[i].ID < r.ChangedShapes[j].ID })
	sortMetadata(r.AddedMetadata)
	sortMetadata(r.RemovedMetadata)
	sortMetadata(r.ChangedMetadata)
	return r
}

func newShapeChange(c *diff.ChangedShape) ShapeChange {
	sc := ShapeChange{ID: c.ID().String(), Kind: c.New.ShapeKind().String()}

	for t := range c.AddedTraits() {
		sc.AddedTraits = append(sc.AddedTraits, t.ID.String())
	}
	for t := range c.RemovedTraits() {
		sc.RemovedTraits = append(sc.RemovedTraits, t.ID.String())
	}
	for t := range c.ChangedTraits() {
		sc.ChangedTraits = append(sc.ChangedTraits, TraitChange{ID: t.Trait.String()})
	}
	for m := range c.AddedMembers() {
		sc.AddedMembers = append(sc.AddedMembers, m.MemberName())
	}
	for m := range c.RemovedMembers() {
		sc.RemovedMembers = append(sc.RemovedMembers, m.MemberName())
	}
	for m := range c.ChangedMembers() {
		sc.ChangedMembers = append(sc.ChangedMembers, MemberChange{
			Name:      m.New.MemberName(),
			OldTarget: m.Old.Target().String(),
			NewTarget: m.New.Target().String(),
		})
	}

	sort.Strings(sc.AddedTraits)
	sort.Strings(sc.RemovedTraits)
	sort.Slice(sc.ChangedTraits, func(i, j int) bool { return sc.ChangedTraits[i].ID < sc.ChangedTraits[j].ID })
	sort.Strings(sc.AddedMembers)
	sort.Strings(sc.RemovedMembers)
	sort.Slice(sc.ChangedMembers, func(i, j int) bool { return sc.ChangedMembers[i].Name < sc.ChangedMembers[j].Name })
	return sc
}

func sortEntries(entries []ShapeEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
}

func sortMetadata(changes []MetadataChange) {
	sort.Slice(changes, func(i, j int) bool { return changes[i].Key < changes[j].Key })
}

// Empty reports whether the two models were identical.
func (r *DiffReport) Empty() bool {
	return len(r.AddedShapes) == 0 && len(r.RemovedShapes) == 0 && len(r.ChangedShapes) == 0 &&
		len(r.AddedMetadata) == 0 && len(r.RemovedMetadata) == 0 && len(r.ChangedMetadata) == 0
}

// RenderJSON writes the report as indented JSON.
func (r *DiffReport) RenderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Render writes the report as human-readable text. Colors follow the
// usual diff convention: green for additions, red for removals, yellow
// for changes.
func (r *DiffReport) Render(w io.Writer, colorize bool) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	changed := color.New(color.FgYellow)
	if !colorize {
		for _, c := range []*color.Color{added, removed, changed} {
			c.DisableColor()
		}
	}

	if r.Empty() {
		fmt.Fprintln(w, "No differences found.")
		return
	}

	for _, s := range r.AddedShapes {
		added.Fprintf(w, "+ shape %s (%s)\n", s.ID, s.Kind)
	}
	for _, s := range r.RemovedShapes {
		removed.Fprintf(w, "- shape %s (%s)\n", s.ID, s.Kind)
	}
	for _, c := range r.ChangedShapes {
		changed.Fprintf(w, "~ shape %s (%s)\n", c.ID, c.Kind)
		for _, t := range c.AddedTraits {
			added.Fprintf(w, "    + trait %s\n", t)
		}
		for _, t := range c.RemovedTraits {
			removed.Fprintf(w, "    - trait %s\n", t)
		}
		for _, t := range c.ChangedTraits {
			changed.Fprintf(w, "    ~ trait %s\n", t.ID)
		}
		for _, m := range c.AddedMembers {
			added.Fprintf(w, "    + member %s\n", m)
		}
		for _, m := range c.RemovedMembers {
			removed.Fprintf(w, "    - member %s\n", m)
		}
		for _, m := range c.ChangedMembers {
			changed.Fprintf(w, "    ~ member %s: %s to %s\n", m.Name, m.OldTarget, m.NewTarget)
		}
	}
	for _, m := range r.AddedMetadata {
		added.Fprintf(w, "+ metadata %s\n", m.Key)
	}
	for _, m := range r.RemovedMetadata {
		removed.Fprintf(w, "- metadata %s\n", m.Key)
	}
	for _, m := range r.ChangedMetadata {
		changed.Fprintf(w, "~ metadata %s\n", m.Key)
	}
}
