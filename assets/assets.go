package assets

import "embed"

//go:embed migrations model
var EmbeddedFiles embed.FS
