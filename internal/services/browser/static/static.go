// Package static embeds browser-owned assets served under /browser/static/.
package static

import "embed"

// FS exposes browser static assets for HTTP serving.
//
//go:embed css/*.css
var FS embed.FS
