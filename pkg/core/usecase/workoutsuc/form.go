// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package workoutsuc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/momeni/mapty/pkg/core/model"
)

// ErrInvalidInput indicates that a submitted form contained a
// non-numeric, non-finite, or non-positive value for a field which
// requires a positive number.
var ErrInvalidInput = errors.New("please enter a positive number")

// InputError reports the first rejected Form field.
type InputError struct {
	Field string  // name of the rejected input, like distance
	Value float64 // coerced value of the rejected input
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("%s=%v: %s", e.Field, e.Value, ErrInvalidInput)
}

// Unwrap makes InputError match ErrInvalidInput with errors.Is.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// Form contains the raw values of the workout form inputs, as they
// were typed by the user. Values are kept as strings, so a rejected
// form can be reported back to its user without changes.
type Form struct {
	Distance  string // in kilometers
	Duration  string // in minutes
	Cadence   string // steps per minute, only for running
	Elevation string // elevation gain in meters, only for cycling
}

// Number converts a raw input value like the numeric conversion of
// browsers: surrounding spaces are ignored, a blank value is zero,
// unsigned 0x, 0o, and 0b integer literals are accepted, and a value
// which is not a number is NaN.
func Number(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if len(raw) > 1 && raw[0] == '0' {
		switch raw[1] {
		case 'x', 'X':
			return prefixed(raw[2:], 16)
		case 'o', 'O':
			return prefixed(raw[2:], 8)
		case 'b', 'B':
			return prefixed(raw[2:], 2)
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// prefixed parses the `digits` of an integer literal in the `base`.
// Signs, underscores, fractions, and exponents are not accepted.
// Huge values are rounded instead of overflowing.
func prefixed(digits string, base int) float64 {
	if digits == "" {
		return math.NaN()
	}
	var f float64
	for _, r := range digits {
		d, err := strconv.ParseUint(string(r), base, 8)
		if err != nil {
			return math.NaN()
		}
		f = f*float64(base) + float64(d)
	}
	return f
}

type input struct {
	name  string
	value float64
}

// validate checks the `f` form for a `k` kind workout and returns its
// distance, duration, and kind specific metric values.
// All inputs of the kind must be finite numbers. Distance and duration
// must be positive for both kinds, cadence must be positive too, but
// elevation may take any finite value unless `positiveElevation` is set.
func validate(k model.Kind, f Form, positiveElevation bool) (
	distance, duration, metric float64, err error,
) {
	distance, duration = Number(f.Distance), Number(f.Duration)
	ins := []input{{"distance", distance}, {"duration", duration}}
	positives := 2
	switch k {
	case model.KindRunning:
		metric = Number(f.Cadence)
		ins = append(ins, input{"cadence", metric})
		positives++
	case model.KindCycling:
		metric = Number(f.Elevation)
		ins = append(ins, input{"elevation", metric})
		if positiveElevation {
			positives++
		}
	default:
		return 0, 0, 0, model.KindError(k)
	}
	for _, in := range ins {
		if math.IsNaN(in.value) || math.IsInf(in.value, 0) {
			return 0, 0, 0, &InputError{Field: in.name, Value: in.value}
		}
	}
	for _, in := range ins[:positives] {
		if in.value <= 0 {
			return 0, 0, 0, &InputError{Field: in.name, Value: in.value}
		}
	}
	return distance, duration, metric, nil
}
