// Package web embeds the static assets served under /static/. The pages
// pull their utility classes from the Tailwind CDN; app.css carries the
// handful of custom rules the console needs on top of it.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
