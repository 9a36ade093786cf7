package diff

import (
	"iter"

	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/node"
)

// ChangedMetadata records a metadata key present in both models with
// differing values.
type ChangedMetadata struct {
	Key string
	Old node.Node
	New node.Node
}

// Differences is the queryable result of structurally comparing two
// models. Changed shapes and changed metadata are detected once at
// construction; added and removed shapes and metadata are answered lazily
// by scanning on each query. No ordering is guaranteed across any query
// beyond stability for a given pair of models.
type Differences struct {
	oldModel *model.Model
	newModel *model.Model

	changedShapes   []*ChangedShape
	changedMetadata []ChangedMetadata
}

// Detect compares two models. It performs one pass over the old model's
// metadata and one pass over the old model's shapes; both models are held
// by reference and must not be mutated (they never are, by construction).
func Detect(oldModel, newModel *model.Model) *Differences {
	d := &Differences{oldModel: oldModel, newModel: newModel}
	d.detectMetadataChanges()
	d.detectShapeChanges()
	return d
}

func (d *Differences) detectMetadataChanges() {
	for key, oldValue := range d.oldModel.Metadata() {
		newValue, ok := d.newModel.MetadataProperty(key)
		if ok && !node.Equal(oldValue, newValue) {
			d.changedMetadata = append(d.changedMetadata, ChangedMetadata{Key: key, Old: oldValue, New: newValue})
		}
	}
}

func (d *Differences) detectShapeChanges() {
	for oldShape := range d.oldModel.Graph().All() {
		newShape, ok := d.newModel.Graph().Get(oldShape.ID())
		if ok && !model.ShapesEqual(oldShape, newShape) {
			d.changedShapes = append(d.changedShapes, &ChangedShape{Old: oldShape, New: newShape})
		}
	}
}

// OldModel returns the old model.
func (d *Differences) OldModel() *model.Model { return d.oldModel }

// NewModel returns the new model.
func (d *Differences) NewModel() *model.Model { return d.newModel }

// AddedShapes iterates shapes whose id exists in the new model but not the
// old.
func (d *Differences) AddedShapes() iter.Seq[model.Shape] {
	return func(yield func(model.Shape) bool) {
		for shape := range d.newModel.Graph().All() {
			if _, ok := d.oldModel.Graph().Get(shape.ID()); !ok {
				if !yield(shape) {
					return
				}
			}
		}
	}
}

// RemovedShapes iterates shapes whose id exists in the old model but not
// the new.
func (d *Differences) RemovedShapes() iter.Seq[model.Shape] {
	return func(yield func(model.Shape) bool) {
		for shape := range d.oldModel.Graph().All() {
			if _, ok := d.newModel.Graph().Get(shape.ID()); !ok {
				if !yield(shape) {
					return
				}
			}
		}
	}
}

// ChangedShapes iterates the precomputed changed-shape pairs.
func (d *Differences) ChangedShapes() iter.Seq[*ChangedShape] {
	return func(yield func(*ChangedShape) bool) {
		for _, c := range d.changedShapes {
			if !yield(c) {
				return
			}
		}
	}
}

// ChangedMetadata iterates the precomputed changed-metadata entries.
func (d *Differences) ChangedMetadata() iter.Seq[ChangedMetadata] {
	return func(yield func(ChangedMetadata) bool) {
		for _, c := range d.changedMetadata {
			if !yield(c) {
				return
			}
		}
	}
}

// AddedMetadata iterates metadata keys present in the new model but not
// the old, with their values.
func (d *Differences) AddedMetadata() iter.Seq2[string, node.Node] {
	return func(yield func(string, node.Node) bool) {
		for key, value := range d.newModel.Metadata() {
			if _, ok := d.oldModel.MetadataProperty(key); !ok {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// RemovedMetadata iterates metadata keys present in the old model but not
// the new, with their old values.
func (d *Differences) RemovedMetadata() iter.Seq2[string, node.Node] {
	return func(yield func(string, node.Node) bool) {
		for key, value := range d.oldModel.Metadata() {
			if _, ok := d.newModel.MetadataProperty(key); !ok {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// Changed pairs the typed old and new sides of a changed shape whose kind
// matched the requested type on both sides.
type Changed[T model.Shape] struct {
	Old T
	New T
}

// ID returns the shared shape id.
func (c Changed[T]) ID() model.ShapeId { return c.Old.ID() }

// AddedShapesOf iterates added shapes of a concrete shape type.
func AddedShapesOf[T model.Shape](d *Differences) iter.Seq[T] {
	return filterShapes[T](d.AddedShapes())
}

// RemovedShapesOf iterates removed shapes of a concrete shape type.
func RemovedShapesOf[T model.Shape](d *Differences) iter.Seq[T] {
	return filterShapes[T](d.RemovedShapes())
}

// ChangedShapesOf iterates changed shapes where both the old and the new
// side are of the concrete shape type T. Pairs whose kind itself changed
// never match and are only visible through ChangedShapes.
func ChangedShapesOf[T model.Shape](d *Differences) iter.Seq[Changed[T]] {
	return func(yield func(Changed[T]) bool) {
		for c := range d.ChangedShapes() {
			oldShape, okOld := c.Old.(T)
			newShape, okNew := c.New.(T)
			if okOld && okNew {
				if !yield(Changed[T]{Old: oldShape, New: newShape}) {
					return
				}
			}
		}
	}
}

func filterShapes[T model.Shape](seq iter.Seq[model.Shape]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for s := range seq {
			if typed, ok := s.(T); ok {
				if !yield(typed) {
					return
				}
			}
		}
	}
}
