package model

import "time"

// DependencyType describes how a package depends on another package.
type DependencyType string

const (
	DependencyDirect     DependencyType = "direct"
	DependencyDev        DependencyType = "dev"
	DependencyTransitive DependencyType = "transitive"
)

// ApiDocPage is one extracted API documentation page of a package.
type ApiDocPage struct {
	RelativePath string   `json:"relative_path"`
	Symbols      []string `json:"symbols,omitempty"`
	TextBlocks   []string `json:"text_blocks,omitempty"`
}

// PackageDocument is the searchable representation of a single package.
// It is the unit of indexing: the collaborator that feeds the index is
// responsible for pre-compacting description and readme text and for
// resolving the tag set.
type PackageDocument struct {
	Package     string `json:"package"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Readme      string `json:"readme,omitempty"`

	Tags []string `json:"tags,omitempty"`

	Created time.Time `json:"created,omitempty"`
	Updated time.Time `json:"updated,omitempty"`

	Popularity float64 `json:"popularity,omitempty"`
	LikeCount  int     `json:"like_count,omitempty"`

	// LikeScore is the normalized [0,1] like score. It is usually computed
	// across the whole corpus at load time; a nil value requests that
	// computation.
	LikeScore *float64 `json:"like_score,omitempty"`

	GrantedPoints int `json:"granted_points,omitempty"`
	MaxPoints     int `json:"max_points,omitempty"`

	Dependencies map[string]DependencyType `json:"dependencies,omitempty"`

	PublisherID     string   `json:"publisher_id,omitempty"`
	UploaderUserIDs []string `json:"uploader_user_ids,omitempty"`

	ApiDocPages []ApiDocPage `json:"api_doc_pages,omitempty"`

	// Timestamp records when this document was built, for freshness
	// diagnostics only.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// PointsRatio returns GrantedPoints/MaxPoints, or 0 when MaxPoints is 0.
func (d *PackageDocument) PointsRatio() float64 {
	if d.MaxPoints <= 0 {
		return 0
	}
	return float64(d.GrantedPoints) / float64(d.MaxPoints)
}

// HasTag reports whether the document carries the given tag.
func (d *PackageDocument) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SdkLibraryDocument is the searchable representation of one SDK library
// page (e.g. dart:async or package:flutter/widgets.dart).
type SdkLibraryDocument struct {
	Library     string `json:"library"`
	Description string `json:"description,omitempty"`
	Url         string `json:"url,omitempty"`
}
