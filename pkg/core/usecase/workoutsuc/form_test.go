// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package workoutsuc_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/momeni/mapty/pkg/core/usecase/workoutsuc"
	"github.com/stretchr/testify/assert"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

func TestNumber(t *testing.T) {
	for raw, expected := range map[string]float64{
		"":                     0,
		"   ":                  0,
		"5":                    5,
		" 4.5 ":                4.5,
		"-5":                   -5,
		"1e3":                  1000,
		"017":                  17,
		"0x10":                 16,
		"0X1f":                 31,
		"0o17":                 15,
		"0b101":                5,
		"0B0":                  0,
		"0xFFFFFFFFFFFFFFFFFF": 4722366482869645213695,
	} {
		assert.Equal(t, expected, workoutsuc.Number(raw), "raw=%q", raw)
	}
	assert.True(t, math.IsNaN(workoutsuc.Number("abc")))
	assert.True(t, math.IsNaN(workoutsuc.Number("5km")))
	assert.True(t, math.IsInf(workoutsuc.Number("Inf"), 1))
	for _, raw := range []string{
		"0x", "0b", "-0x10", "+0x10", "0x1p-2", "0x1_0", "0b102", "0o8",
		"0x1.8",
	} {
		assert.True(t, math.IsNaN(workoutsuc.Number(raw)), "raw=%q", raw)
	}
}
