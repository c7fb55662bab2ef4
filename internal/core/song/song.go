// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package song manages the songs catalog.

Every song belongs to exactly one artist through artist_id. The reference is
checked before a song is created and enforced by a cascading foreign key, so
deleting an artist removes its songs in the same statement.
*/
package song

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/pkg/pagination"
)

// # Domain Entities

// Song is one row of the songs table.
type Song struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	AlbumName string    `json:"album_name"`
	Genre     string    `json:"genre"`
	ArtistID  int64     `json:"artist_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Patch is a sparse update. The owning artist cannot be changed.
type Patch struct {
	Title     *string
	AlbumName *string
	Genre     *string
}

const (
	FieldTitle     = "title"
	FieldAlbumName = "album_name"
	FieldGenre     = "genre"
	FieldArtistID  = "artist_id"
)

// MaxTextLen is the width of the title and album_name columns.
const MaxTextLen = 255

// unknownArtist is the client error for a song pointing at no artist.
func unknownArtist(artistID int64) *apperr.AppError {
	return apperr.ValidationError(
		fmt.Sprintf("Artist with ID %d doesn't exist!", artistID),
		apperr.FieldError{Field: FieldArtistID, Message: "Unknown artist"},
	)
}

// # Contracts

// Repository persists songs.
type Repository interface {
	List(ctx context.Context, page pagination.Params) ([]*Song, int64, error)
	Create(ctx context.Context, song *Song) (int64, error)
	Get(ctx context.Context, id int64) (*Song, error)
	Update(ctx context.Context, id int64, patch Patch) (*Song, error)
	Delete(ctx context.Context, id int64) error

	// ListByArtist returns every song of one artist ordered by id.
	ListByArtist(ctx context.Context, artistID int64) ([]*Song, error)
}

// ArtistLookup reports whether an artist exists. A missing artists table
// counts as "does not exist".
type ArtistLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
