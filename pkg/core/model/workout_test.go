// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/momeni/mapty/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	here = model.Coordinate{Lat: 51.5, Lon: -0.12}
	day  = time.Date(2024, time.April, 14, 9, 30, 0, 0, time.UTC)
)

func TestNewRunning(t *testing.T) {
	for _, tc := range []struct {
		distance, duration, cadence float64
	}{
		{5, 30, 178},
		{0.4, 2, 190},
		{42.195, 215.5, 170},
	} {
		name := fmt.Sprintf("%v-%v", tc.distance, tc.duration)
		t.Run(name, func(t *testing.T) {
			w := model.NewRunning(
				1234, day, here, tc.distance, tc.duration, tc.cadence,
			)
			r, ok := w.Running()
			require.True(t, ok, "running payload is missing")
			_, ok = w.Cycling()
			assert.False(t, ok, "cycling payload must be missing")
			assert.Equal(t, model.KindRunning, w.Kind())
			assert.Equal(t, tc.duration/tc.distance, r.Pace())
			assert.Equal(t, tc.cadence, r.Cadence)
			assert.Equal(t, r.Pace(), w.Rate())
			assert.Equal(t, tc.cadence, w.Metric())
			assert.True(
				t, strings.HasPrefix(w.Description(), "Running on"),
				"unexpected description: %q", w.Description(),
			)
		})
	}
}

func TestScenarioRunningPace(t *testing.T) {
	w := model.NewRunning(100, day, here, 5, 30, 178)
	r, _ := w.Running()
	assert.Equal(t, 6.0, r.Pace())
	assert.Equal(t, "Running on April 14", w.Description())
}

func TestNewCycling(t *testing.T) {
	for _, tc := range []struct {
		distance, duration, elevation, speed float64
	}{
		{20, 60, -5, 20},
		{30, 90, 0, 20},
		{10, 15, 120, 40},
	} {
		name := fmt.Sprintf("%v-%v", tc.distance, tc.duration)
		t.Run(name, func(t *testing.T) {
			w := model.NewCycling(
				4321, day, here, tc.distance, tc.duration, tc.elevation,
			)
			c, ok := w.Cycling()
			require.True(t, ok, "cycling payload is missing")
			assert.Equal(t, model.KindCycling, w.Kind())
			assert.InDelta(t, tc.speed, c.Speed(), 1e-9)
			assert.Equal(t, tc.elevation, c.Elevation)
			assert.Equal(t, "Cycling on April 14", w.Description())
		})
	}
}

func TestConstructionNeverFails(t *testing.T) {
	w := model.NewRunning(100, day, here, 0, 30, 0)
	assert.True(t, math.IsInf(w.Rate(), 1), "pace should be +Inf")
}

func TestDescribeMonths(t *testing.T) {
	d := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Cycling on December 1", model.Describe(model.KindCycling, d))
	d = time.Date(2023, time.January, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "Running on January 31", model.Describe(model.KindRunning, d))
}

func TestRestoreKeepsStoredFields(t *testing.T) {
	f := model.Fields{
		ID:          777,
		Date:        day,
		Coords:      here,
		Distance:    10,
		Duration:    50,
		Kind:        model.KindRunning,
		Description: "stored as is",
		Cadence:     160,
		Pace:        1.5, // not equal to 50/10 on purpose
	}
	w := model.Restore(f)
	assert.Equal(t, "stored as is", w.Description())
	assert.Equal(t, 1.5, w.Rate(), "pace must not be derived again")
	assert.Equal(t, f, w.Fields())
}

func TestRestoreUnknownKindAsCycling(t *testing.T) {
	w := model.Restore(model.Fields{Elevation: 12, Speed: 3})
	assert.Equal(t, model.KindCycling, w.Kind())
	assert.Equal(t, 12.0, w.Metric())
}

func TestFieldsRoundTrip(t *testing.T) {
	for _, w := range []*model.Workout{
		model.NewRunning(101, day, here, 5, 30, 178),
		model.NewCycling(102, day, here, 20, 60, -5),
	} {
		assert.Equal(t, w, model.Restore(w.Fields()))
	}
}

func TestRandomIDRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := model.RandomID()
		require.GreaterOrEqual(t, id, model.MinID)
		require.LessOrEqual(t, id, model.MaxID)
	}
}

func TestParseKind(t *testing.T) {
	k, err := model.ParseKind("cycling")
	require.NoError(t, err)
	assert.Equal(t, model.KindCycling, k)
	assert.Equal(t, "elevation", k.MetricField())
	_, err = model.ParseKind("swimming")
	assert.ErrorIs(t, err, model.ErrUnknownKind)
	assert.Error(t, model.KindInvalid.Validate())
	assert.Panics(t, func() { _ = model.KindInvalid.String() })
}

func TestSemVerCompare(t *testing.T) {
	var v model.SemVer
	require.NoError(t, v.UnmarshalText([]byte("1.2")))
	assert.Equal(t, model.SemVer{1, 2, 0}, v)
	assert.Equal(t, -1, v.Compare(model.SemVer{1, 3, 0}))
	assert.Equal(t, 0, v.Compare(model.SemVer{1, 2, 0}))
	assert.Error(t, v.UnmarshalText([]byte("1.x")))
	assert.Equal(t, "1.2.0", v.String())
}
