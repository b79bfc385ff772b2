/* ---------------------------------------------------------------------------
** This software is in the public domain, furnished "as is", without technical
** support, and with no warranty, express or implied, as to its usefulness for
** any purpose.
** -------------------------------------------------------------------------*/

package tensor

import "github.com/pkg/errors"

var (
	ErrFewAttributes = errors.New("need at least 4 attributes per candidate")
	ErrShortData     = errors.New("tensor data shorter than its shape")
)

const (
	// YOLOX export used by the app: cx, cy, w, h, objectness, 53 class scores.
	ClassCount       = 53
	ClassOffset      = 5
	ObjectnessIndex  = 4
	FullBoxSize      = ClassOffset + ClassCount
	DefaultPreviewN  = 3
	minBoxAttributes = 4
)

// Box is one candidate read through a Layout.
type Box struct {
	Index      int
	CX, CY     float32
	W, H       float32
	Objectness float32
	ClassMax   float32
	HasClass   bool
}

// ClassRange returns the attribute range holding class scores. The 53 class
// count is fixed to the app's model and not read from metadata.
func ClassRange(attrs int) (lo, hi int) {
	if attrs >= FullBoxSize {
		return ClassOffset, ClassOffset + ClassCount
	}
	if attrs < ClassOffset {
		return ClassOffset, ClassOffset
	}
	return ClassOffset, attrs
}

func maxOf(f []float32) float32 {
	m := f[0]
	for _, v := range f {
		if v > m {
			m = v
		}
	}
	return m
}

// PreviewBoxes reads up to n candidates of the first batch. It fails with
// ErrFewAttributes when a candidate has no room for cx, cy, w, h and with
// ErrShortData when values does not cover the layout.
func PreviewBoxes(values []float32, l Layout, n int) ([]Box, error) {
	attrs := l.Attributes()
	if attrs < minBoxAttributes {
		return nil, errors.Wrapf(ErrFewAttributes, "got %d", attrs)
	}
	if need := l.Candidates() * attrs; len(values) < need {
		return nil, errors.Wrapf(ErrShortData, "have %d values, need %d", len(values), need)
	}
	if n > l.Candidates() {
		n = l.Candidates()
	}
	lo, hi := ClassRange(attrs)
	boxes := make([]Box, 0, n)
	for c := 0; c < n; c++ {
		box := Box{
			Index: c,
			CX:    l.At(values, c, 0),
			CY:    l.At(values, c, 1),
			W:     l.At(values, c, 2),
			H:     l.At(values, c, 3),
		}
		if attrs > ObjectnessIndex {
			box.Objectness = l.At(values, c, ObjectnessIndex)
		}
		if hi > lo {
			scores := make([]float32, 0, hi-lo)
			for a := lo; a < hi; a++ {
				scores = append(scores, l.At(values, c, a))
			}
			box.ClassMax = maxOf(scores)
			box.HasClass = true
		}
		boxes = append(boxes, box)
	}
	return boxes, nil
}
