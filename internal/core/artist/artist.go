// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package artist manages the artists catalog and the read-side of the
artist to songs relation.

An artist owns zero or more songs. Songs are removed together with their
artist by the foreign key's ON DELETE CASCADE; nothing here deletes songs
explicitly.
*/
package artist

import (
	"context"
	"time"

	"github.com/taibuivan/artistry/internal/core/song"
	"github.com/taibuivan/artistry/pkg/pagination"
)

// Artist is one row of the artists table.
type Artist struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	DOB                string    `json:"dob"` // YYYY-MM-DD
	Gender             string    `json:"gender"`
	Address            string    `json:"address"`
	FirstReleaseYear   int       `json:"first_release_year"`
	NoOfAlbumsReleased int       `json:"no_of_albums_released"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Summary is an artist as listed, with the number of songs it owns.
type Summary struct {
	Artist
	Songs int64 `json:"songs"`
}

// Patch is a sparse update; nil fields are left untouched.
type Patch struct {
	Name               *string
	DOB                *string
	Gender             *string
	Address            *string
	FirstReleaseYear   *int
	NoOfAlbumsReleased *int
}

const (
	FieldName               = "name"
	FieldDOB                = "dob"
	FieldGender             = "gender"
	FieldAddress            = "address"
	FieldFirstReleaseYear   = "first_release_year"
	FieldNoOfAlbumsReleased = "no_of_albums_released"
)

const (
	MaxTextLen     = 255
	MinReleaseYear = 1000
)

// Repository persists artists.
type Repository interface {
	List(ctx context.Context, page pagination.Params) ([]*Summary, int64, error)
	Create(ctx context.Context, artist *Artist) (int64, error)
	Get(ctx context.Context, id int64) (*Artist, error)
	Update(ctx context.Context, id int64, patch Patch) (*Artist, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// SongFinder lists the songs of one artist. [song.Service] satisfies it.
type SongFinder interface {
	ListByArtist(ctx context.Context, artistID int64) ([]*song.Song, error)
}
