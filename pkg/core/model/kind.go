// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// Kind is the discriminant of the Workout tagged union. Although this
// enum is numeric, it is (de)serialized as a lower-case string both in
// the REST APIs and in the persisted history.
type Kind int

// Valid values for the Kind enum.
const (
	KindInvalid Kind = iota // zero value is invalid

	KindRunning // running workouts carry cadence and pace
	KindCycling // cycling workouts carry elevation and speed
)

// ErrUnknownKind indicates that a given string may not be parsed as
// a known workout kind. Similar to other parsing errors, it does not
// include the invalid string because the caller already knows it.
var ErrUnknownKind = errors.New("unknown workout kind")

// KindError indicates an invalid numeric workout kind.
type KindError int

// Error implements the error interface.
func (e KindError) Error() string {
	return fmt.Sprintf("invalid workout kind: %d", e)
}

// Validate returns nil if Kind value is valid. For invalid values, an
// instance of the KindError will be returned.
func (k Kind) Validate() error {
	switch k {
	case KindRunning, KindCycling:
		return nil
	default:
		return KindError(k)
	}
}

// String converts the Kind enum to its lower-case name, like running.
// Invalid kinds cause a panic.
func (k Kind) String() string {
	switch k {
	case KindRunning:
		return "running"
	case KindCycling:
		return "cycling"
	default:
		panic(KindError(k))
	}
}

// Title returns the capitalized name of the `k` kind, e.g., Running.
func (k Kind) Title() string {
	switch k {
	case KindRunning:
		return "Running"
	case KindCycling:
		return "Cycling"
	default:
		panic(KindError(k))
	}
}

// Emoji returns the pictogram which decorates list entries and popups.
func (k Kind) Emoji() string {
	if k == KindRunning {
		return "🏃‍♂️"
	}
	return "🚴‍♀️"
}

// MetricField names the kind specific form input, i.e., cadence for
// running and elevation for cycling workouts.
func (k Kind) MetricField() string {
	if k == KindCycling {
		return "elevation"
	}
	return "cadence"
}

// MarshalText implements the encoding.TextMarshaler interface.
func (k Kind) MarshalText() ([]byte, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// In case of errors, `k` is left unchanged.
func (k *Kind) UnmarshalText(text []byte) error {
	kk, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kk
	return nil
}

// ParseKind parses the given string and returns a Kind. For invalid
// strings, KindInvalid and ErrUnknownKind will be returned.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "running":
		return KindRunning, nil
	case "cycling":
		return KindCycling, nil
	default:
		return KindInvalid, ErrUnknownKind
	}
}
