package scaffold

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templateFS embed.FS

// Templates returns the embedded template root. manifest.yaml sits at its top.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
