// Package web embeds the public static assets and the bundled YAML
// content tree.
package web

import "embed"

// StaticFS embeds web/static, served at /static/ and copied by the export.
//
//go:embed all:static
var StaticFS embed.FS

// ContentFS embeds web/content, the default file backend tree and the
// source of the Postgres seed.
//
//go:embed content
var ContentFS embed.FS
