// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/artistry/internal/platform/database/schema"
	requestutil "github.com/taibuivan/artistry/internal/platform/request"
	"github.com/taibuivan/artistry/internal/platform/respond"
	"github.com/taibuivan/artistry/internal/platform/validate"
	"github.com/taibuivan/artistry/pkg/pagination"
	"github.com/taibuivan/artistry/pkg/textnorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the song CRUD endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

type createRequest struct {
	Title     string `json:"title"`
	AlbumName string `json:"album_name"`
	Genre     string `json:"genre"`
	ArtistID  *int64 `json:"artist_id"`
}

type patchRequest struct {
	Title     *string `json:"title"`
	AlbumName *string `json:"album_name"`
	Genre     *string `json:"genre"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	songs, total, err := handler.service.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, map[string]any{
		"songs": songs,
		"total": total,
	}, pagination.NewMeta(page, total))
}

/*
POST /songs.

Response:
  - 201: {id}
  - 400: Validation failure, or artist_id names no artist
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var body createRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	s := &Song{
		Title:     textnorm.String(body.Title),
		AlbumName: textnorm.String(body.AlbumName),
		Genre:     textnorm.String(body.Genre),
	}

	v := &validate.Validator{}
	v.Required(FieldTitle, s.Title).MaxLen(FieldTitle, s.Title, MaxTextLen)
	v.Required(FieldAlbumName, s.AlbumName).MaxLen(FieldAlbumName, s.AlbumName, MaxTextLen)
	v.Required(FieldGenre, s.Genre)
	if s.Genre != "" {
		v.OneOf(FieldGenre, s.Genre, schema.Genre.Values...)
	}
	if body.ArtistID == nil {
		v.Custom(FieldArtistID, true, "This field is required")
	} else {
		s.ArtistID = *body.ArtistID
		v.Positive(FieldArtistID, s.ArtistID)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := handler.service.Create(request.Context(), s)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]int64{"id": id})
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "Song")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"song": s})
}

// update accepts title, album_name and genre only.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "Song")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body patchRequest
	if err := requestutil.DecodeStrictJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch := Patch{
		Title:     textnorm.Ptr(body.Title),
		AlbumName: textnorm.Ptr(body.AlbumName),
		Genre:     textnorm.Ptr(body.Genre),
	}

	v := &validate.Validator{}
	if patch.Title != nil {
		v.Required(FieldTitle, *patch.Title).MaxLen(FieldTitle, *patch.Title, MaxTextLen)
	}
	if patch.AlbumName != nil {
		v.Required(FieldAlbumName, *patch.AlbumName).MaxLen(FieldAlbumName, *patch.AlbumName, MaxTextLen)
	}
	if patch.Genre != nil {
		v.OneOf(FieldGenre, *patch.Genre, schema.Genre.Values...)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.Update(request.Context(), id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"song": s})
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "Song")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fmt.Sprintf("Song with ID %d deleted successfully", id))
}
