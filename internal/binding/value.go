package binding

import "fmt"

// Value is an immutable numeric array with an explicit shape. Scalars carry
// an empty shape and exactly one element. Constructors copy their inputs and
// accessors return copies, so a Value can be shared freely.
type Value struct {
	shape []int
	data  []float64
}

// NewValue builds a Value and checks that the shape matches the data length.
// A nil shape is interpreted as a one-dimensional array of len(data).
func NewValue(shape []int, data []float64) (Value, error) {
	if shape == nil {
		shape = []int{len(data)}
	}
	n := 1
	for _, d := range shape {
		if d < 0 {
			return Value{}, fmt.Errorf("negative dimension %d in shape %v", d, shape)
		}
		n *= d
	}
	if n != len(data) {
		return Value{}, fmt.Errorf("shape %v implies %d elements, got %d", shape, n, len(data))
	}
	return Value{shape: append([]int(nil), shape...), data: append([]float64(nil), data...)}, nil
}

// Scalar wraps a single float as a zero-dimensional Value.
func Scalar(v float64) Value {
	return Value{shape: []int{}, data: []float64{v}}
}

// Vector wraps a slice as a one-dimensional Value. The slice is copied.
func Vector(data []float64) Value {
	return Value{shape: []int{len(data)}, data: append([]float64(nil), data...)}
}

// Shape returns a copy of the value's shape.
func (v Value) Shape() []int { return append([]int(nil), v.shape...) }

// Data returns a copy of the value's elements in row-major order.
func (v Value) Data() []float64 { return append([]float64(nil), v.data...) }

// Len returns the number of elements.
func (v Value) Len() int { return len(v.data) }

// AsScalar returns the single element of a zero- or one-element value.
func (v Value) AsScalar() (float64, bool) {
	if len(v.data) != 1 {
		return 0, false
	}
	return v.data[0], true
}

// SameShape reports whether two values have identical shapes.
func (v Value) SameShape(o Value) bool {
	if len(v.shape) != len(o.shape) {
		return false
	}
	for i := range v.shape {
		if v.shape[i] != o.shape[i] {
			return false
		}
	}
	return true
}

func (v Value) String() string {
	return fmt.Sprintf("Value(shape=%v, n=%d)", v.shape, len(v.data))
}
