// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It hides the router's parameter extraction and the body decoding rules so
every handler reports malformed input the same way.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/internal/platform/ctxutil"
	"github.com/taibuivan/artistry/internal/platform/sec"
	"github.com/taibuivan/artistry/internal/platform/validate"
	"github.com/taibuivan/artistry/pkg/convert"
)

// unknownFieldPrefix is how encoding/json reports a field rejected by
// DisallowUnknownFields.
const unknownFieldPrefix = "json: unknown field "

/*
DecodeJSON reads the request body and decodes it into target.

Fields the target does not declare are ignored.
*/
func DecodeJSON(request *http.Request, target any) error {
	return decode(request, target, false)
}

/*
DecodeStrictJSON is DecodeJSON for sparse patches: a field the target does not
declare fails with 400 and names the offending field.
*/
func DecodeStrictJSON(request *http.Request, target any) error {
	return decode(request, target, true)
}

func decode(request *http.Request, target any, strict bool) error {
	decoder := json.NewDecoder(request.Body)
	if strict {
		decoder.DisallowUnknownFields()
	}

	if err := decoder.Decode(target); err != nil {
		return decodeError(err)
	}

	// Exactly one JSON value per body.
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}

	return nil
}

// decodeError turns a decoder failure into a 400 that points at the field
// when encoding/json tells us which one it was.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("Must be a %s", jsonKind(typeErr.Type.String())),
		})
	}

	if name, ok := strings.CutPrefix(err.Error(), unknownFieldPrefix); ok {
		field := strings.Trim(name, `"`)
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   field,
			Message: "Unknown field",
		})
	}

	return validate.ErrInvalidJSON
}

func jsonKind(goType string) string {
	switch {
	case strings.Contains(goType, "int"):
		return "whole number"
	case strings.Contains(goType, "string"):
		return "string"
	default:
		return "valid value"
	}
}

/*
ID parses the {id} URL parameter. Anything that is not a positive integer
cannot address a row, so it is reported as resource not found.
*/
func ID(request *http.Request, resource string) (int64, error) {
	raw := chi.URLParam(request, "id")
	id, ok := convert.ToID(raw)
	if !ok {
		return 0, apperr.NotFoundf("%s with ID %s doesn't exist", resource, raw)
	}
	return id, nil
}

/*
Claims returns the verified token claims, or nil on public routes.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetClaims(request.Context())
}
