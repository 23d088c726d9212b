package api

import (
	"github.com/blockwall/portfolio-pulse/app/archive"
	"github.com/blockwall/portfolio-pulse/app/registry"
	"github.com/blockwall/portfolio-pulse/app/store"
)

// Handler serves the generated artifacts over HTTP. Artifact files are
// streamed verbatim; the collector remains the only writer.
type Handler struct {
	registry *registry.Registry
	store    *store.Store
	runs     *archive.RunRepository
	dataDir  string
	version  string
}
