package geometry

import (
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.Empty() {
		t.Fatal("new bounding box should be empty")
	}

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	if bbox.Min != NewVector3(-1, 0, 2) {
		t.Errorf("Min failed: got %v", bbox.Min)
	}
	if bbox.Max != NewVector3(4, 5, 6) {
		t.Errorf("Max failed: got %v", bbox.Max)
	}
}

func TestBoundingBoxCenterAndSize(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(10, 20, 30))

	if got := bbox.Size(); got != NewVector3(10, 20, 30) {
		t.Errorf("Size failed: got %v", got)
	}
	if got := bbox.Center(); got != NewVector3(5, 10, 15) {
		t.Errorf("Center failed: got %v", got)
	}
}

func TestBoundingBoxEmptySize(t *testing.T) {
	bbox := NewBoundingBox()
	if got := bbox.Size(); !got.IsZero() {
		t.Errorf("empty box size: expected zero, got %v", got)
	}
}

func TestBoundingBoxExtent(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(-1, -1, -1))
	bbox.Extend(NewVector3(1, 1, 1))

	lo, hi := bbox.Extent(UnitY)
	if lo != -1 || hi != 1 {
		t.Errorf("Extent along Y: got [%v, %v]", lo, hi)
	}
}
