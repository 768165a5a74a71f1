package templates

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
)

// ErrorPage is the view model of the shared error document.
type ErrorPage struct {
	Lang       string
	Loc        Localizer
	StatusCode int
	BackURL    string
}

// ErrorMessageKey returns the copy key describing statusCode.
func ErrorMessageKey(statusCode int) string {
	switch statusCode {
	case http.StatusNotFound:
		return "error.http.404"
	case http.StatusServiceUnavailable:
		return "error.http.503"
	default:
		return "error.http.500"
	}
}

// AppError renders the shared error document.
func AppError(page ErrorPage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := &markup{w: w}
		m.raw("<!DOCTYPE html>\n<html")
		m.optionalAttr("lang", page.Lang)
		m.raw(">\n<head>\n<meta charset=\"utf-8\">\n<title>")
		m.text(T(page.Loc, "error.page.title", page.StatusCode))
		m.raw("</title>\n</head>\n<body class=\"error\">\n<main>\n<h1>")
		m.text(strconv.Itoa(page.StatusCode) + " " + http.StatusText(page.StatusCode))
		m.raw("</h1>\n<p>")
		m.text(T(page.Loc, ErrorMessageKey(page.StatusCode)))
		m.raw("</p>\n")
		if page.BackURL != "" {
			m.raw("<a")
			m.url("href", page.BackURL)
			m.raw(">")
			m.text(T(page.Loc, "error.page.back"))
			m.raw("</a>\n")
		}
		m.raw("</main>\n</body>\n</html>\n")
		return m.err
	})
}
