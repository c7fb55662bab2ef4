// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"fmt"
	"net/http"
	"time"

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
	now     func() time.Time
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// Routes returns a [chi.Router] with the artist CRUD endpoints and the
// nested song listing.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
	router.Get("/{id}/songs", handler.listSongs)

	return router
}

type createRequest struct {
	Name               string `json:"name"`
	DOB                string `json:"dob"`
	Gender             string `json:"gender"`
	Address            string `json:"address"`
	FirstReleaseYear   *int   `json:"first_release_year"`
	NoOfAlbumsReleased *int   `json:"no_of_albums_released"`
}

type patchRequest struct {
	Name               *string `json:"name"`
	DOB                *string `json:"dob"`
	Gender             *string `json:"gender"`
	Address            *string `json:"address"`
	FirstReleaseYear   *int    `json:"first_release_year"`
	NoOfAlbumsReleased *int    `json:"no_of_albums_released"`
}

func (handler *Handler) checkCounts(v *validate.Validator, year, albums *int) {
	if year != nil {
		v.Range(FieldFirstReleaseYear, *year, MinReleaseYear, handler.now().Year())
	}
	if albums != nil {
		v.Custom(FieldNoOfAlbumsReleased, *albums < 0, "Must not be negative")
	}
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	artists, total, err := handler.service.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, map[string]any{
		"artists": artists,
		"total":   total,
	}, pagination.NewMeta(page, total))
}

/*
POST /artists.

Response:
  - 201: {id}
  - 400: Validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var body createRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	a := &Artist{
		Name:    textnorm.String(body.Name),
		DOB:     textnorm.String(body.DOB),
		Gender:  textnorm.String(body.Gender),
		Address: textnorm.String(body.Address),
	}

	v := &validate.Validator{}
	v.Required(FieldName, a.Name).MaxLen(FieldName, a.Name, MaxTextLen)
	v.Required(FieldDOB, a.DOB)
	if a.DOB != "" {
		v.Date(FieldDOB, a.DOB)
	}
	v.Required(FieldGender, a.Gender)
	if a.Gender != "" {
		v.OneOf(FieldGender, a.Gender, schema.Gender.Values...)
	}
	v.Required(FieldAddress, a.Address).MaxLen(FieldAddress, a.Address, MaxTextLen)
	v.Custom(FieldFirstReleaseYear, body.FirstReleaseYear == nil, "This field is required")
	v.Custom(FieldNoOfAlbumsReleased, body.NoOfAlbumsReleased == nil, "This field is required")
	handler.checkCounts(v, body.FirstReleaseYear, body.NoOfAlbumsReleased)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}
	a.FirstReleaseYear = *body.FirstReleaseYear
	a.NoOfAlbumsReleased = *body.NoOfAlbumsReleased

	id, err := handler.service.Create(request.Context(), a)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]int64{"id": id})
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "Artist")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	a, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"artist": a})
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "Artist")
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
		Name:               textnorm.Ptr(body.Name),
		DOB:                textnorm.Ptr(body.DOB),
		Gender:             textnorm.Ptr(body.Gender),
		Address:            textnorm.Ptr(body.Address),
		FirstReleaseYear:   body.FirstReleaseYear,
		NoOfAlbumsReleased: body.NoOfAlbumsReleased,
	}

	v := &validate.Validator{}
	if patch.Name != nil {
		v.Required(FieldName, *patch.Name).MaxLen(FieldName, *patch.Name, MaxTextLen)
	}
	if patch.DOB != nil {
		v.Date(FieldDOB, *patch.DOB)
	}
	if patch.Gender != nil {
		v.OneOf(FieldGender, *patch.Gender, schema.Gender.Values...)
	}
	if patch.Address != nil {
		v.Required(FieldAddress, *patch.Address).MaxLen(FieldAddress, *patch.Address, MaxTextLen)
	}
	handler.checkCounts(v, patch.FirstReleaseYear, patch.NoOfAlbumsReleased)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	a, err := handler.service.Update(request.Context(), id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"artist": a})
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "Artist")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fmt.Sprintf("Artist with ID %d deleted successfully", id))
}

/*
GET /artists/{id}/songs.

Response:
  - 200: {songs}
  - 404: No such artist
*/
func (handler *Handler) listSongs(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "Artist")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	songs, err := handler.service.ListSongs(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"songs": songs})
}
