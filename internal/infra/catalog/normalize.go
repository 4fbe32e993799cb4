// Package catalog implements the remote read-only catalog adapter and the
// response normalizer for its provider-shaped payloads.
package catalog

import (
	"booktrader/internal/domain/entity"
)

// RawItem is one provider-shaped catalog payload. Only the fields the
// normalizer consumes are declared; everything else is dropped.
type RawItem struct {
	ID         string        `json:"id"`
	VolumeInfo RawVolumeInfo `json:"volumeInfo"`
}

// RawVolumeInfo is the nested descriptive block of a RawItem. Pointer and
// slice fields distinguish "absent" from "zero" so normalization can apply
// explicit defaults.
type RawVolumeInfo struct {
	Title         string        `json:"title"`
	Authors       []string      `json:"authors"`
	Publisher     string        `json:"publisher"`
	PublishedDate string        `json:"publishedDate"`
	Description   string        `json:"description"`
	PageCount     *int          `json:"pageCount"`
	Categories    []string      `json:"categories"`
	PreviewLink   string        `json:"previewLink"`
	ImageLinks    *RawImageLink `json:"imageLinks"`
}

// RawImageLink is the nested image sub-structure a thumbnail is extracted from.
type RawImageLink struct {
	SmallThumbnail string `json:"smallThumbnail"`
}

// Normalize shapes a raw provider payload into a CatalogEntity. Every
// declared field gets an explicit default; present payload fields override
// it, absent ones keep it. The thumbnail comes from the nested image-links
// block and defaults to "" when that block is missing.
func Normalize(raw RawItem) entity.CatalogEntity {
	info := raw.VolumeInfo

	normalized := entity.CatalogEntity{
		ExternalID:    raw.ID,
		Title:         info.Title,
		Authors:       []string{},
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		Description:   info.Description,
		PageCount:     info.PageCount,
		Categories:    []string{},
		PreviewLink:   info.PreviewLink,
		Thumbnail:     "",
	}

	if info.Authors != nil {
		normalized.Authors = info.Authors
	}
	if info.Categories != nil {
		normalized.Categories = info.Categories
	}
	if info.ImageLinks != nil {
		normalized.Thumbnail = info.ImageLinks.SmallThumbnail
	}

	return normalized
}
