// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which is read and written in the
// time.ParseDuration format, e.g., 1h30m, in YAML files.
type Duration time.Duration

// UnmarshalText parses `data` using time.ParseDuration. The `d`
// receiver is only updated if no error is returned.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// MarshalText writes the `d` duration like time.Duration.String, but
// without zero trailing units, e.g., 12h instead of 12h0m0s.
func (d *Duration) MarshalText() ([]byte, error) {
	if d == nil {
		return nil, errors.New("nil duration")
	}
	s := (*time.Duration)(d).String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return []byte(s), nil
}

// LogValue implements slog.LogValuer, reporting a nil Duration with
// the constant "nil-duration" value.
func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("nil-duration")
	}
	return slog.DurationValue(time.Duration(*d))
}
