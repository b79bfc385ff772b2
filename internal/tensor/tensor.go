// Package tensor describes model tensors independently of the runtime that
// produced them and holds the display helpers used to summarize detector
// outputs.
package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

// DType is a tensor element type.
type DType int

const (
	NoType DType = iota
	Float32
	Float16
	Int8
	UInt8
	Int16
	Int32
	Int64
	Bool
	String
	Complex64
)

var dtypeNames = map[DType]string{
	NoType:    "notype",
	Float32:   "float32",
	Float16:   "float16",
	Int8:      "int8",
	UInt8:     "uint8",
	Int16:     "int16",
	Int32:     "int32",
	Int64:     "int64",
	Bool:      "bool",
	String:    "string",
	Complex64: "complex64",
}

func (d DType) String() string {
	if name, ok := dtypeNames[d]; ok {
		return name
	}
	return "dtype(" + strconv.Itoa(int(d)) + ")"
}

// Size returns the element width in bytes, or 0 when the type has no fixed
// width.
func (d DType) Size() int {
	switch d {
	case Int8, UInt8, Bool:
		return 1
	case Float16, Int16:
		return 2
	case Float32, Int32:
		return 4
	case Int64, Complex64:
		return 8
	}
	return 0
}

// Quantization holds the affine quantization of a tensor. A zero Scale means
// the tensor is not quantized.
type Quantization struct {
	Scale     float64
	ZeroPoint int
}

// Info is the runtime metadata of one input or output slot.
type Info struct {
	Index int
	Name  string
	Type  DType
	Shape []int
	Quant Quantization
}

// NumElements is the product of the shape dimensions.
func (i Info) NumElements() int {
	n := 1
	for _, d := range i.Shape {
		n *= d
	}
	return n
}

func (i Info) String() string {
	s := fmt.Sprintf("%d: shape=%s, dtype=%s, name=%s", i.Index, FormatShape(i.Shape), i.Type, i.Name)
	if i.Quant.Scale != 0 {
		s += fmt.Sprintf(", quant=(scale=%g, zero_point=%d)", i.Quant.Scale, i.Quant.ZeroPoint)
	}
	return s
}

// FormatShape renders a shape as a bracketed, comma separated list.
func FormatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatValues renders values the same way as FormatShape.
func FormatValues(values []float32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
