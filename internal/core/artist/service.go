// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"log/slog"

	"github.com/taibuivan/artistry/internal/core/song"
	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/pkg/pagination"
)

type Service struct {
	repo   Repository
	songs  SongFinder
	logger *slog.Logger
}

func NewService(repo Repository, songs SongFinder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		songs:  songs,
		logger: logger,
	}
}

func (service *Service) List(ctx context.Context, page pagination.Params) ([]*Summary, int64, error) {
	return service.repo.List(ctx, page)
}

func (service *Service) Get(ctx context.Context, id int64) (*Artist, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) Create(ctx context.Context, artist *Artist) (int64, error) {
	id, err := service.repo.Create(ctx, artist)
	if err != nil {
		return 0, err
	}

	service.logger.InfoContext(ctx, "artist_created", slog.Int64("artist_id", id), slog.String("name", artist.Name))
	return id, nil
}

func (service *Service) Update(ctx context.Context, id int64, patch Patch) (*Artist, error) {
	artist, err := service.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "artist_updated", slog.Int64("artist_id", id))
	return artist, nil
}

func (service *Service) Delete(ctx context.Context, id int64) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "artist_deleted", slog.Int64("artist_id", id))
	return nil
}

// ListSongs returns 404 for an unknown artist, including one that was just
// deleted together with its songs.
func (service *Service) ListSongs(ctx context.Context, id int64) ([]*song.Song, error) {
	exists, err := service.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFoundf("Artist with ID %d doesn't exist", id)
	}

	return service.songs.ListByArtist(ctx, id)
}
