package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup until the first error and then drops the rest,
// so component bodies read top to bottom without an error check per line.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (hw *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, p)
	}
}

// text writes s escaped for element content or a quoted attribute value.
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (hw *htmlWriter) attr(name, value string) {
	hw.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// href writes an href attribute, dropping unsafe URL schemes.
func (hw *htmlWriter) href(u string) {
	hw.attr("href", string(templ.URL(u)))
}

func (hw *htmlWriter) component(c templ.Component) {
	if hw.err != nil {
		return
	}
	hw.err = c.Render(hw.ctx, hw.w)
}
