package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/mpromonet/tflite-inspect/internal/tensor"
)

var rule = strings.Repeat("=", 60)

// report writes to w and keeps the first write error.
type report struct {
	w   io.Writer
	err error
}

func (r *report) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *report) header(path string) {
	r.printf("%s\nmodel: %s\n%s\n", rule, path, rule)
}

func (r *report) section(title string) {
	r.printf("\n[%s]\n", title)
}

func (r *report) infos(title string, infos []tensor.Info) {
	r.section(title)
	for _, info := range infos {
		r.printf("  %s\n", info)
	}
}

func (r *report) unreadable(info tensor.Info, err error) {
	r.printf("  output %d: shape=%s\n", info.Index, tensor.FormatShape(info.Shape))
	r.printf("    values unavailable: %v\n", err)
}

func (r *report) output(info tensor.Info, values []float32, rows int) {
	r.printf("  output %d: shape=%s\n", info.Index, tensor.FormatShape(info.Shape))
	stats, ok := tensor.Describe(values)
	if !ok {
		r.printf("    empty\n")
		return
	}
	r.printf("    min=%.4f, max=%.4f, mean=%.4f\n", stats.Min, stats.Max, stats.Mean)
	r.printf("    first %d: %s\n", len(stats.Head), tensor.FormatValues(stats.Head))

	layout, ok := tensor.ResolveLayout(info.Shape)
	if !ok {
		return
	}
	r.printf("    -> num_boxes=%d, box_size=%d (YOLOX: cx,cy,w,h,objectness,%d classes)\n",
		layout.Candidates(), layout.Attributes(), tensor.ClassCount)
	boxes, err := tensor.PreviewBoxes(values, layout, rows)
	if err != nil {
		r.printf("    no box preview: %v\n", err)
		return
	}
	for _, b := range boxes {
		class := "n/a"
		if b.HasClass {
			class = fmt.Sprintf("%.4f", b.ClassMax)
		}
		r.printf("    %s %d: cx=%.4f cy=%.4f w=%.4f h=%.4f obj=%.4f class_max=%s\n",
			layout.Kind(), b.Index, b.CX, b.CY, b.W, b.H, b.Objectness, class)
	}
}

func (r *report) footer() {
	r.printf("\n%s\n", rule)
	r.printf("check against the shape the app expects:\n")
	r.printf("  - app: dim1=3549, dim2=58 -> (cx,cy,w,h) standard order, normalized to 0..1\n")
	r.printf("  - confirm the export keeps the same preprocessing (size, normalization, RGB) and output decode\n")
	r.printf("%s\n", rule)
}
