// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalises free-text input before it is validated and
// stored.
//
// # Pipeline
//
//  1. Normalizes to NFC, so "é" typed as e + combining acute and the
//     precomposed "é" compare and count the same.
//  2. Drops control characters other than ordinary whitespace.
//  3. Trims leading and trailing whitespace.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// String returns the canonical form of s.
func String(s string) string {
	t := transform.Chain(norm.NFC, transform.RemoveFunc(isControl))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = norm.NFC.String(s)
	}
	return strings.TrimSpace(result)
}

// Ptr applies [String] through a sparse-patch pointer. nil stays nil.
func Ptr(s *string) *string {
	if s == nil {
		return nil
	}
	v := String(*s)
	return &v
}

func isControl(r rune) bool {
	return unicode.IsControl(r) && !unicode.IsSpace(r)
}
