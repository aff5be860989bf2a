package handlers

import (
	"filestats/internal/indexer"
	"filestats/internal/startup"
)

type Handlers struct {
	service    *indexer.Service
	contentDir string
	staticDir  string
}

func New(service *indexer.Service, config *startup.Config) *Handlers {
	return &Handlers{
		service:    service,
		contentDir: config.ContentDir,
		staticDir:  config.StaticDir,
	}
}
