package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Login renders the sign-in form.
func Login(page LoginPage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := &markup{w: w}
		m.raw("<!DOCTYPE html>\n<html")
		m.optionalAttr("lang", page.Lang)
		m.raw(">\n<head>\n<meta charset=\"utf-8\">\n<title>")
		m.text(T(page.Loc, "login.title"))
		m.raw("</title>\n</head>\n<body class=\"login\">\n<main>\n<h1>")
		m.text(T(page.Loc, "login.heading"))
		m.raw("</h1>\n")
		if page.ErrorText != "" {
			m.raw(`<p class="alert alert-danger" role="alert">`)
			m.text(page.ErrorText)
			m.raw("</p>\n")
		}
		m.raw(`<form method="post"`)
		m.url("action", page.Action)
		m.raw(">\n")
		if page.Next != "" {
			m.raw(`<input type="hidden" name="next"`)
			m.attr("value", page.Next)
			m.raw(">\n")
		}
		m.raw(`<label for="email">`)
		m.text(T(page.Loc, "login.email"))
		m.raw(`</label>` + "\n" + `<input id="email" name="email" type="email" autocomplete="username" required`)
		m.attr("value", page.Email)
		m.raw(">\n<label for=\"password\">")
		m.text(T(page.Loc, "login.password"))
		m.raw("</label>\n<input id=\"password\" name=\"password\" type=\"password\" autocomplete=\"current-password\" required>\n<button type=\"submit\">")
		m.text(T(page.Loc, "login.submit"))
		m.raw("</button>\n</form>\n</main>\n</body>\n</html>\n")
		return m.err
	})
}
