// Package web holds the embedded dashboard assets.
package web

import "embed"

//go:embed index.html static
var FS embed.FS
