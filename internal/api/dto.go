package api

import "github.com/starford/docscaffold/internal/models"

// LinksResponse lists the link references found in the index document.
type LinksResponse struct {
	Links []string `json:"links"`
	Count int      `json:"count"`
}

// DocumentsResponse lists the scaffold documents on disk.
type DocumentsResponse struct {
	Documents []models.DocumentMetadata `json:"documents"`
}

// ScaffoldResponse is the outcome of a pass triggered over HTTP.
type ScaffoldResponse = models.Report
