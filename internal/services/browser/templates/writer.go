package templates

import (
	"io"

	"github.com/a-h/templ"
)

// markup accumulates writes and keeps the first error.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(parts ...string) {
	for _, part := range parts {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, part)
	}
}

func (m *markup) text(value string) {
	m.raw(templ.EscapeString(value))
}

// attr writes ` name="value"` with value escaped.
func (m *markup) attr(name, value string) {
	m.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// optionalAttr writes the attribute only when value is non-empty.
func (m *markup) optionalAttr(name, value string) {
	if value != "" {
		m.attr(name, value)
	}
}

// url writes a sanitized URL attribute.
func (m *markup) url(name, value string) {
	m.attr(name, string(templ.URL(value)))
}
