// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Nina Simone", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "admin@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "admin@", false},
		{"undotted_domain", "admin@localhost", false},
		{"display_name", "Admin <admin@example.com>", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Date checks ISO calendar dates.
*/
func TestValidator_Date(t *testing.T) {
	tests := []struct {
		value   string
		isValid bool
	}{
		{"1990-05-17", true},
		{"2000-02-29", true},
		{"1999-02-29", false},
		{"17/05/1990", false},
		{"1990-5-17", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := &validate.Validator{}
			v.Date("dob", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOfAndRange checks enumerations and numeric bounds.
*/
func TestValidator_OneOfAndRange(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("gender", "m", "m", "f", "o").
		Range("first_release_year", 1999, 1000, 2026).
		Positive("artist_id", 3)
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	err := v.OneOf("genre", "polka", "rnb", "country", "classic", "rock", "jazz").
		Range("first_release_year", 999, 1000, 2026).
		Positive("artist_id", 0).
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 3)
	assert.Equal(t, "Must be one of: rnb, country, classic, rock, jazz", ae.Details[0].Message)
	assert.Equal(t, "Must be between 1000 and 2026", ae.Details[1].Message)
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("first_name", "").
		MinLen("password", "short", 8).
		MaxLen("phone", "012345678901234567890", 20).
		Email("email", "not-an-email").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 4)
}
