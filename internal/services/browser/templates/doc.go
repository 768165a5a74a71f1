// Package templates renders the browser's server-side HTML pages and the
// generated core script fragment as templ components.
package templates
