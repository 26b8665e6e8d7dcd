// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// OutOfRangeError indicates that a Value was out of its acceptable
// range, or that the range itself was empty.
type OutOfRangeError[T cmp.Ordered] struct {
	Value        *T   // The actual out-of-range value
	LessThanMin  bool // true if and only if min boundary is violated
	InvalidRange bool // true if and only if min is greater than max
}

func (e *OutOfRangeError[T]) Error() string {
	switch {
	case e.InvalidRange:
		return "min is greater than max"
	case e.LessThanMin:
		return fmt.Sprintf("value %v is less than min", *e.Value)
	default:
		return fmt.Sprintf("value %v is greater than max", *e.Value)
	}
}

// VerifyRange checks that (*value) is nil or falls in the inclusive
// [minb, maxb] range. A nil boundary is not checked. An out-of-range
// value is clamped to the violated boundary, and the original value is
// reported in the returned error.
func VerifyRange[T cmp.Ordered](
	value **T, minb, maxb *T,
) *OutOfRangeError[T] {
	switch {
	case minb != nil && maxb != nil && (*minb) > (*maxb):
		return &OutOfRangeError[T]{InvalidRange: true}
	case (*value) == nil:
		return nil
	}
	switch v := **value; {
	case minb != nil && v < *minb:
		**value = *minb
		return &OutOfRangeError[T]{Value: &v, LessThanMin: true}
	case maxb != nil && v > *maxb:
		**value = *maxb
		return &OutOfRangeError[T]{Value: &v}
	}
	return nil
}
