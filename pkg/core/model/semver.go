// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// SemVer represents a released semantic version, consisting of the
// major, minor, and patch components. It versions the configuration
// file format and the database schema, so an older binary can refuse
// to work with newer files or tables which it does not understand.
type SemVer [3]uint

// UnmarshalText deserializes text byte slice as a string consisting of
// one to three dot-separated numbers and fills the sv SemVer instance.
// Missing components are taken as zero. In case of errors, sv will be
// left unchanged.
func (sv *SemVer) UnmarshalText(text []byte) error {
	p := strings.Split(string(text), ".")
	if l := len(p); l > 3 {
		return fmt.Errorf("the %q has wrong number of components", text)
	}
	var v SemVer
	for i, s := range p {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fmt.Errorf("the %q component is not numeric", s)
		}
		v[i] = uint(n)
	}
	*sv = v
	return nil
}

// MarshalText implements encoding.TextMarshaler interface and
// serializes `sv` semantic version as its string representation.
func (sv SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

// String returns the sv semantic version as a dot-separated string
// like major.minor.patch.
func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}

// Compare returns -1, 0, or +1 if `sv` is respectively older than,
// equal to, or newer than the `other` version.
func (sv SemVer) Compare(other SemVer) int {
	for i := range sv {
		if c := cmp.Compare(sv[i], other[i]); c != 0 {
			return c
		}
	}
	return 0
}
