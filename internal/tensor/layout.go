/*
 * SPDX-License-Identifier: Unlicense
 *
 * This is free and unencumbered software released into the public domain.
 *
 * Anyone is free to copy, modify, publish, use, compile, sell, or distribute this
 * software, either in source code form or as a compiled binary, for any purpose,
 * commercial or non-commercial, and by any means.
 *
 * For more information, please refer to <http://unlicense.org/>
 */

package tensor

// Layout addresses per-candidate attributes inside the first batch of a
// flattened (batch, a, b) detector output.
//
// Which axis holds the candidates is guessed from the shape: the larger of a
// and b. Nothing in the model metadata backs this up, so treat it as a
// display heuristic only.
type Layout interface {
	// Kind is "row" when candidates run along axis a, "col" otherwise.
	Kind() string
	Candidates() int
	Attributes() int
	At(values []float32, candidate, attr int) float32
}

type rowLayout struct {
	a, b int
}

func (l rowLayout) Kind() string    { return "row" }
func (l rowLayout) Candidates() int { return l.a }
func (l rowLayout) Attributes() int { return l.b }

func (l rowLayout) At(values []float32, candidate, attr int) float32 {
	return values[candidate*l.b+attr]
}

type colLayout struct {
	a, b int
}

func (l colLayout) Kind() string    { return "col" }
func (l colLayout) Candidates() int { return l.b }
func (l colLayout) Attributes() int { return l.a }

func (l colLayout) At(values []float32, candidate, attr int) float32 {
	return values[attr*l.b+candidate]
}

// ResolveLayout applies the axis heuristic to a rank 3 shape. Ties keep the
// row layout.
func ResolveLayout(shape []int) (Layout, bool) {
	if len(shape) != 3 {
		return nil, false
	}
	a, b := shape[1], shape[2]
	if a >= b {
		return rowLayout{a: a, b: b}, true
	}
	return colLayout{a: a, b: b}, true
}
