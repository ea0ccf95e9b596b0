package binding

import (
	"math"
	"testing"
)

func TestGetMissingKey(t *testing.T) {
	b := New().With("x", Scalar(1))
	if _, err := b.Get("y"); !IsKeyNotFound(err) {
		t.Fatalf("expected KeyNotFound, got %v", err)
	}
	if got := ErrKeyNotFound("y").Error(); got != "binding key not found: y" {
		t.Fatalf("error should name the key, got %q", got)
	}
}

func TestWithDoesNotMutate(t *testing.T) {
	a := New().With("x", Scalar(1))
	b := a.With("y", Scalar(2))
	if a.Has("y") {
		t.Fatalf("With mutated the receiver")
	}
	if !b.Has("x") || !b.Has("y") {
		t.Fatalf("derived binding missing keys: %v", b.Keys())
	}
	// Rebinding replaces only in the copy.
	c := b.With("x", Scalar(9))
	v, err := b.Get("x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s, _ := v.AsScalar(); s != 1 {
		t.Fatalf("original binding changed: %v", s)
	}
	v, _ = c.Get("x")
	if s, _ := v.AsScalar(); s != 9 {
		t.Fatalf("rebind lost: %v", s)
	}
}

func TestMergeDisjoint(t *testing.T) {
	a := New().With("x", Scalar(1)).With("y", Scalar(2))
	b := New().With("z", Scalar(3))
	m, err := a.Merge(b)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	for name, want := range map[string]float64{"x": 1, "y": 2, "z": 3} {
		v, err := m.Get(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		if s, _ := v.AsScalar(); s != want {
			t.Fatalf("%s = %v, want %v", name, s, want)
		}
	}
}

func TestMergeConflict(t *testing.T) {
	a := New().With("x", Scalar(1))
	b := New().With("x", Scalar(2)).With("y", Scalar(3))
	if _, err := a.Merge(b); !IsKeyConflict(err) {
		t.Fatalf("expected KeyConflict, got %v", err)
	}
}

func TestValueImmutability(t *testing.T) {
	data := []float64{1, 2, 3}
	v := Vector(data)
	data[0] = 99
	if v.Data()[0] != 1 {
		t.Fatalf("Vector did not copy input")
	}
	out := v.Data()
	out[1] = 99
	if v.Data()[1] != 2 {
		t.Fatalf("Data did not return a copy")
	}
}

func TestNewValueShapeChecks(t *testing.T) {
	if _, err := NewValue([]int{2, 3}, make([]float64, 6)); err != nil {
		t.Fatalf("valid shape rejected: %v", err)
	}
	if _, err := NewValue([]int{2, 3}, make([]float64, 5)); err == nil {
		t.Fatalf("shape/data mismatch accepted")
	}
	v, err := NewValue(nil, []float64{1, 2})
	if err != nil {
		t.Fatalf("nil shape: %v", err)
	}
	if got := v.Shape(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("nil shape not defaulted to vector: %v", got)
	}
}

func TestAsScalar(t *testing.T) {
	if s, ok := Scalar(math.Pi).AsScalar(); !ok || s != math.Pi {
		t.Fatalf("scalar round trip failed: %v %v", s, ok)
	}
	if _, ok := Vector([]float64{1, 2}).AsScalar(); ok {
		t.Fatalf("vector reported as scalar")
	}
}

func TestZeroBinding(t *testing.T) {
	var zero Binding
	if !zero.IsZero() {
		t.Fatalf("zero binding not detected")
	}
	if New().IsZero() {
		t.Fatalf("empty binding reported as zero")
	}
}
