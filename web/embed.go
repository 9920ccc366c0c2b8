package web

import "embed"

// Templates embeds the invoice document templates.
//
//go:embed templates/documents/*.html
var Templates embed.FS
