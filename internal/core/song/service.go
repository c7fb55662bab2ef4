// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

import (
	"context"
	"log/slog"

	"github.com/taibuivan/artistry/pkg/pagination"
)

type Service struct {
	repo    Repository
	artists ArtistLookup
	logger  *slog.Logger
}

func NewService(repo Repository, artists ArtistLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		artists: artists,
		logger:  logger,
	}
}

func (service *Service) List(ctx context.Context, page pagination.Params) ([]*Song, int64, error) {
	return service.repo.List(ctx, page)
}

func (service *Service) Get(ctx context.Context, id int64) (*Song, error) {
	return service.repo.Get(ctx, id)
}

// ListByArtist is used by the artist service, which has already resolved
// the artist.
func (service *Service) ListByArtist(ctx context.Context, artistID int64) ([]*Song, error) {
	return service.repo.ListByArtist(ctx, artistID)
}

// Create rejects an unknown artist before anything is provisioned or written.
func (service *Service) Create(ctx context.Context, song *Song) (int64, error) {
	exists, err := service.artists.Exists(ctx, song.ArtistID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, unknownArtist(song.ArtistID)
	}

	id, err := service.repo.Create(ctx, song)
	if err != nil {
		return 0, err
	}

	service.logger.InfoContext(ctx, "song_created",
		slog.Int64("song_id", id),
		slog.Int64("artist_id", song.ArtistID),
	)
	return id, nil
}

func (service *Service) Update(ctx context.Context, id int64, patch Patch) (*Song, error) {
	song, err := service.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "song_updated", slog.Int64("song_id", id))
	return song, nil
}

func (service *Service) Delete(ctx context.Context, id int64) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "song_deleted", slog.Int64("song_id", id))
	return nil
}
