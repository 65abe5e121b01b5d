package contractgen

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-contractgen/pkg/bundle"
	"github.com/goliatone/go-contractgen/pkg/renderers/html"
)

//go:embed bundles/*
var sampleBundles embed.FS

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// SampleBundles returns the contract bundles shipped with the module.
func SampleBundles() fs.FS {
	sub, err := fs.Sub(sampleBundles, "bundles")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadCatalog loads every bundle in fsys. A nil fsys loads the samples.
func LoadCatalog(fsys fs.FS) (*bundle.Catalog, error) {
	if fsys == nil {
		fsys = SampleBundles()
	}
	return bundle.LoadFS(fsys)
}
