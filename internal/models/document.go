// Package models defines the domain types shared across docscaffold surfaces.
package models

import "time"

// DocumentMetadata describes a scaffold document on disk.
type DocumentMetadata struct {
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Report is the outcome of one scan-and-scaffold pass.
type Report struct {
	// Processed counts every link reference handled, duplicates included.
	Processed int      `json:"processed"`
	Created   []string `json:"created"`
	Skipped   []string `json:"skipped"`
}
