// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides quick, fault-tolerant string conversions for query
and path parameters.

Use the explicit strconv functions instead when malformed input must be told
apart from a zero value.
*/
package convert

import (
	"math"
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning def if the string is empty
// or cannot be parsed.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
		return v
	}

	return def
}

// MaxID is the largest key a SERIAL column can hold.
const MaxID = math.MaxInt32

// ToID parses a positive decimal row identifier. ok is false for anything
// else, including signs, blanks and values above [MaxID].
func ToID(str string) (id int64, ok bool) {
	if str == "" || str[0] == '+' || str[0] == '-' {
		return 0, false
	}

	v, err := strconv.ParseInt(str, 10, 64)
	if err != nil || v <= 0 || v > MaxID {
		return 0, false
	}

	return v, true
}
