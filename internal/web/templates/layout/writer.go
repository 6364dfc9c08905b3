package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer renders markup, keeping the first write error
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as is
func (hw *Writer) Raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// Text writes s escaped for element content or a quoted attribute value
func (hw *Writer) Text(s string) {
	hw.Raw(templ.EscapeString(s))
}

// URL writes a sanitized, escaped URL for use in href
func (hw *Writer) URL(s string) {
	hw.Text(string(templ.URL(s)))
}

// Component renders a nested component
func (hw *Writer) Component(ctx context.Context, c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

// Err returns the first error encountered
func (hw *Writer) Err() error {
	return hw.err
}
