package tensor

// ZeroInput is an all-zero buffer for one input tensor. Exactly one of the
// typed slices is set, chosen from the declared element type.
type ZeroInput struct {
	Type  DType
	Shape []int

	Float32s []float32
	UInt8s   []uint8
	Int8s    []int8
	// Raw backs every other element type. A zero byte pattern reads as zero
	// for all numeric types, which stands in for a float zero fill.
	Raw []byte
}

// NewZeroInput builds the zero buffer for info.
func NewZeroInput(info Info) ZeroInput {
	n := info.NumElements()
	z := ZeroInput{Type: info.Type, Shape: append([]int(nil), info.Shape...)}
	switch info.Type {
	case Float32:
		z.Float32s = make([]float32, n)
	case UInt8:
		z.UInt8s = make([]uint8, n)
	case Int8:
		z.Int8s = make([]int8, n)
	default:
		size := info.Type.Size()
		if size == 0 {
			size = Float32.Size()
		}
		z.Raw = make([]byte, n*size)
	}
	return z
}

// Len is the number of elements in the buffer.
func (z ZeroInput) Len() int {
	switch {
	case z.Float32s != nil:
		return len(z.Float32s)
	case z.UInt8s != nil:
		return len(z.UInt8s)
	case z.Int8s != nil:
		return len(z.Int8s)
	}
	size := z.Type.Size()
	if size == 0 {
		size = Float32.Size()
	}
	return len(z.Raw) / size
}
