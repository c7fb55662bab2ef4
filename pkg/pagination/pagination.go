// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/artistry/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit caps the page size; larger requests are reduced to it.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage is the last page whose offset fits in an int at [MaxLimit].
	MaxPage = math.MaxInt/MaxLimit + 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps p into the accepted window.
func (p Params) Normalize() Params {
	switch {
	case p.Page < 1:
		p.Page = DefaultPage
	case p.Page > MaxPage:
		p.Page = MaxPage
	}
	switch {
	case p.Limit < 1:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(params Params, total int64) Meta {
	var totalPages int64
	if params.Limit > 0 {
		limit := int64(params.Limit)
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Missing or non-numeric values fall back to [DefaultPage] and
// [DefaultLimit]. A page below 1 becomes 1 and a page past [MaxPage]
// becomes [MaxPage], which is simply empty. A limit below 1 becomes
// [DefaultLimit] and a limit above [MaxLimit] becomes [MaxLimit].
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return Params{
		Page:  convert.ToIntD(query.Get("page"), DefaultPage),
		Limit: convert.ToIntD(query.Get("limit"), DefaultLimit),
	}.Normalize()
}
