// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"testing"
	"time"

	"github.com/momeni/mapty/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationText(t *testing.T) {
	for _, tc := range []struct {
		in, out string
	}{
		{"12h", "12h"},
		{"90m", "1h30m"},
		{"2m", "2m"},
		{"45s", "45s"},
		{"1h0m5s", "1h0m5s"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			var d settings.Duration
			require.NoError(t, d.UnmarshalText([]byte(tc.in)))
			b, err := d.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tc.out, string(b))
		})
	}
	var d settings.Duration
	assert.Error(t, d.UnmarshalText([]byte("soon")))
	_, err := (*settings.Duration)(nil).MarshalText()
	assert.Error(t, err)
}

func TestVerifyRange(t *testing.T) {
	lo, hi := 1, 19
	v := 25
	p := &v
	err := settings.VerifyRange(&p, &lo, &hi)
	require.NotNil(t, err)
	assert.False(t, err.LessThanMin)
	assert.Equal(t, 25, *err.Value)
	assert.Equal(t, 19, *p, "value must be clamped to max")

	v = 0
	p = &v
	err = settings.VerifyRange(&p, &lo, &hi)
	require.NotNil(t, err)
	assert.True(t, err.LessThanMin)
	assert.Equal(t, 1, *p)

	var missing *int
	assert.Nil(t, settings.VerifyRange(&missing, &lo, &hi))
	assert.True(t, settings.VerifyRange(&missing, &hi, &lo).InvalidRange)
}

func TestDefaults(t *testing.T) {
	var b *bool
	settings.Nil2Zero(&b)
	require.NotNil(t, b)
	assert.False(t, *b)

	var d *settings.Duration
	settings.Default(&d, settings.Duration(time.Hour))
	require.NotNil(t, d)
	settings.Default(&d, settings.Duration(time.Minute))
	assert.Equal(t, settings.Duration(time.Hour), *d, "set value is kept")
}
