// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/artistry/internal/platform/request"
	"github.com/taibuivan/artistry/internal/platform/respond"
	"github.com/taibuivan/artistry/internal/platform/validate"
	"github.com/taibuivan/artistry/internal/users/account"
	"github.com/taibuivan/artistry/pkg/textnorm"
)

// Handler implements the public administrator endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with the authentication routes.
//
// # Endpoints
//   - POST /register : Creates an administrator.
//   - POST /login    : Authenticates and returns a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /admin/register.

Request:
  - Body: the same payload as POST /users

Response:
  - 201: {id}
  - 400: Validation failure
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	input, err := account.DecodeCreate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]int64{"id": id})
}

/*
POST /admin/login.

Response:
  - 200: {token}
  - 400: Validation failure
  - 401: Invalid email or password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var body loginRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := LoginInput{
		Email:    textnorm.String(body.Email),
		Password: body.Password,
	}

	validator := &validate.Validator{}
	validator.Required(account.FieldEmail, input.Email).
		MaxLen(account.FieldEmail, input.Email, account.MaxEmailLen)
	if input.Email != "" {
		validator.Email(account.FieldEmail, input.Email)
	}
	validator.Required(account.FieldPassword, input.Password).
		MaxLen(account.FieldPassword, input.Password, account.MaxPasswordLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"token": token})
}
