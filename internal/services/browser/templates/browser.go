package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
)

// BrowserIndex renders the main browser document.
func BrowserIndex(page BrowserPage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := &markup{w: w}
		m.raw("<!DOCTYPE html>\n<html")
		m.optionalAttr("lang", page.Lang)
		m.raw(">\n<head>\n<meta charset=\"utf-8\">\n<title>")
		m.text(page.Title)
		m.raw("</title>\n")
		for _, href := range page.Stylesheets {
			m.raw(`<link rel="stylesheet" type="text/css"`)
			m.url("href", href)
			m.raw(">\n")
		}
		m.raw("</head>\n<body>\n<nav class=\"navbar\" id=\"browser-menus\">\n<ul class=\"nav navbar-nav\">\n")
		for _, menu := range page.Menus {
			writeMenu(m, menu)
		}
		m.raw("</ul>\n")
		writeUser(m, page)
		m.raw("</nav>\n<div id=\"dockerContainer\" class=\"browser-docker\"></div>\n")
		for _, src := range page.Scripts {
			m.raw(`<script type="application/javascript"`)
			m.url("src", src)
			m.raw("></script>\n")
		}
		m.raw("</body>\n</html>\n")
		return m.err
	})
}

func writeMenu(m *markup, menu Menu) {
	if len(menu.Items) == 0 {
		return
	}
	m.raw(`<li class="dropdown"`)
	m.attr("id", "mnu_"+menu.Name)
	m.raw(">\n<a href=\"#\" class=\"dropdown-toggle\" data-toggle=\"dropdown\">")
	m.text(menu.Heading)
	m.raw("</a>\n<ul class=\"dropdown-menu\">\n")
	for _, item := range menu.Items {
		writeMenuItem(m, item)
	}
	m.raw("</ul>\n</li>\n")
}

func writeMenuItem(m *markup, item plugin.MenuItem) {
	m.raw("<li")
	m.optionalAttr("id", item.Name)
	m.raw("><a")
	if item.URL != "" {
		m.url("href", item.URL)
	} else {
		m.raw(` href="#"`)
	}
	m.optionalAttr("target", item.Target)
	m.optionalAttr("data-module", item.Module)
	m.optionalAttr("data-callback", item.Callback)
	m.optionalAttr("data-category", item.Category)
	m.attr("data-priority", strconv.Itoa(item.Priority))
	m.raw(">")
	if item.Icon != "" {
		m.raw(`<span`)
		m.attr("class", item.Icon)
		m.raw("></span> ")
	}
	m.text(item.Label)
	m.raw("</a></li>\n")
}

func writeUser(m *markup, page BrowserPage) {
	if page.Username == "" {
		return
	}
	m.raw("<ul class=\"nav navbar-nav navbar-right\">\n<li class=\"dropdown\" id=\"mnu_user\">\n<a href=\"#\" class=\"dropdown-toggle\" data-toggle=\"dropdown\">")
	if page.AvatarURL != "" {
		m.raw(`<img class="user-avatar" alt=""`)
		m.url("src", page.AvatarURL)
		m.raw("> ")
	}
	m.text(page.Username)
	m.raw("</a>\n<ul class=\"dropdown-menu\">\n<li><form method=\"post\"")
	m.url("action", page.LogoutURL)
	m.raw("><button type=\"submit\" class=\"btn btn-link\">")
	m.text(T(page.Loc, "browser.sign_out"))
	m.raw("</button></form></li>\n</ul>\n</li>\n</ul>\n")
}
