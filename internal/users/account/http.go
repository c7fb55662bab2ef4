// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/artistry/internal/platform/database/schema"
	requestutil "github.com/taibuivan/artistry/internal/platform/request"
	"github.com/taibuivan/artistry/internal/platform/respond"
	"github.com/taibuivan/artistry/internal/platform/validate"
	"github.com/taibuivan/artistry/pkg/pagination"
	"github.com/taibuivan/artistry/pkg/textnorm"
)

// Handler implements the HTTP layer for one account kind.
type Handler struct {
	service  *Service
	label    string
	singular string
	plural   string
}

// NewHandler constructs a [Handler] serving accounts of kind.
func NewHandler(service *Service, kind schema.Kind) *Handler {
	label := Label(kind)
	return &Handler{
		service:  service,
		label:    label,
		singular: strings.ToLower(label),
		plural:   string(kind),
	}
}

// Routes returns a [chi.Router] with the CRUD endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Request Payloads

type createRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	DOB       string `json:"dob"`
	Gender    string `json:"gender"`
	Address   string `json:"address"`
}

type patchRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	DOB       *string `json:"dob"`
	Gender    *string `json:"gender"`
	Address   *string `json:"address"`
}

/*
DecodeCreate reads, normalises and validates a registration body.

It is shared by POST /users and POST /admin/register, which accept the same
payload. The password is kept verbatim.
*/
func DecodeCreate(request *http.Request) (CreateInput, error) {
	var body createRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		return CreateInput{}, err
	}

	input := CreateInput{
		FirstName: textnorm.String(body.FirstName),
		LastName:  textnorm.String(body.LastName),
		Email:     textnorm.String(body.Email),
		Password:  body.Password,
		Phone:     textnorm.String(body.Phone),
		DOB:       textnorm.String(body.DOB),
		Gender:    textnorm.String(body.Gender),
		Address:   textnorm.String(body.Address),
	}

	v := &validate.Validator{}
	v.Required(FieldFirstName, input.FirstName).MaxLen(FieldFirstName, input.FirstName, MaxNameLen)
	v.Required(FieldLastName, input.LastName).MaxLen(FieldLastName, input.LastName, MaxNameLen)
	v.Required(FieldEmail, input.Email).MaxLen(FieldEmail, input.Email, MaxEmailLen)
	if input.Email != "" {
		v.Email(FieldEmail, input.Email)
	}
	v.Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLen).
		MaxLen(FieldPassword, input.Password, MaxPasswordLen)
	v.Required(FieldPhone, input.Phone).MaxLen(FieldPhone, input.Phone, MaxPhoneLen)
	v.Required(FieldDOB, input.DOB)
	if input.DOB != "" {
		v.Date(FieldDOB, input.DOB)
	}
	v.Required(FieldGender, input.Gender)
	if input.Gender != "" {
		v.OneOf(FieldGender, input.Gender, schema.Gender.Values...)
	}
	v.Required(FieldAddress, input.Address).MaxLen(FieldAddress, input.Address, MaxAddressLen)

	if err := v.Err(); err != nil {
		return CreateInput{}, err
	}

	return input, nil
}

// decodePatch reads a sparse update. Unknown fields, email and password
// included, are rejected.
func decodePatch(request *http.Request) (Patch, error) {
	var body patchRequest
	if err := requestutil.DecodeStrictJSON(request, &body); err != nil {
		return Patch{}, err
	}

	patch := Patch{
		FirstName: textnorm.Ptr(body.FirstName),
		LastName:  textnorm.Ptr(body.LastName),
		Phone:     textnorm.Ptr(body.Phone),
		DOB:       textnorm.Ptr(body.DOB),
		Gender:    textnorm.Ptr(body.Gender),
		Address:   textnorm.Ptr(body.Address),
	}

	v := &validate.Validator{}
	if patch.FirstName != nil {
		v.Required(FieldFirstName, *patch.FirstName).MaxLen(FieldFirstName, *patch.FirstName, MaxNameLen)
	}
	if patch.LastName != nil {
		v.Required(FieldLastName, *patch.LastName).MaxLen(FieldLastName, *patch.LastName, MaxNameLen)
	}
	if patch.Phone != nil {
		v.Required(FieldPhone, *patch.Phone).MaxLen(FieldPhone, *patch.Phone, MaxPhoneLen)
	}
	if patch.DOB != nil {
		v.Date(FieldDOB, *patch.DOB)
	}
	if patch.Gender != nil {
		v.OneOf(FieldGender, *patch.Gender, schema.Gender.Values...)
	}
	if patch.Address != nil {
		v.Required(FieldAddress, *patch.Address).MaxLen(FieldAddress, *patch.Address, MaxAddressLen)
	}

	return patch, v.Err()
}

// # Endpoints

/*
GET /users.

Response:
  - 200: {users: [...], total}, with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	accounts, total, err := handler.service.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, map[string]any{
		handler.plural: accounts,
		"total":        total,
	}, pagination.NewMeta(page, total))
}

/*
POST /users.

Response:
  - 201: {id}
  - 400: Validation failure
  - 409: Duplicate email
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	input, err := DecodeCreate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]int64{"id": id})
}

/*
GET /users/{id}.

Response:
  - 200: {user}
  - 404: No such user
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, handler.label)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{handler.singular: account})
}

/*
PATCH /users/{id}.

Response:
  - 200: {user} after the update
  - 400: Validation failure or unknown field
  - 404: No such user
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, handler.label)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch, err := decodePatch(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.Update(request.Context(), id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{handler.singular: account})
}

/*
DELETE /users/{id}.

Response:
  - 200: Confirmation message
  - 404: No such user
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, handler.label)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fmt.Sprintf("%s with ID %d deleted successfully", handler.label, id))
}
