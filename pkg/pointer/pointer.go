// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer builds and reads the optional fields of sparse patches,
// where nil means "not supplied".
package pointer

// To returns a pointer to a copy of v, e.g. Patch{Genre: pointer.To("rock")}.
func To[T any](v T) *T {
	return &v
}

// Fallback returns *p, or current when the field was not supplied.
func Fallback[T any](p *T, current T) T {
	if p == nil {
		return current
	}
	return *p
}
