// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package workoutsuc

import (
	"errors"
	"fmt"
	"time"
)

// Option is a functional option for the workouts use case.
type Option func(uc *UseCase) error

// WithZoom option configures the zoom level which is used when the
// map is centered on the user position and when it pans to a workout.
// Valid levels are in the [1, 19] range.
func WithZoom(zoom int) Option {
	return func(uc *UseCase) error {
		if zoom < 1 || zoom > 19 {
			return fmt.Errorf("zoom (%d) is out of [1, 19] range", zoom)
		}
		if uc.zoom != 0 {
			return errors.New("zoom is already configured")
		}
		uc.zoom = zoom
		return nil
	}
}

// WithIdleTTL option configures how long a client session may stay
// idle before it is evicted. An evicted client gets a fresh session,
// restored from its history, by its next request.
func WithIdleTTL(ttl time.Duration) Option {
	return func(uc *UseCase) error {
		if d := int64(ttl); d <= 0 {
			return fmt.Errorf("idle ttl (%d) is not positive", d)
		}
		if uc.idleTTL != 0 {
			return errors.New("idle ttl is already configured")
		}
		uc.idleTTL = ttl
		return nil
	}
}

// WithPositiveElevation option makes the cycling workouts validation
// reject non-positive elevation gains, similar to the running cadence.
// By default, elevation is only checked to be a finite number.
func WithPositiveElevation() Option {
	return func(uc *UseCase) error {
		uc.positiveElevation = true
		return nil
	}
}

// WithClock option replaces time.Now as the source of creation times.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("nil clock")
		}
		uc.now = now
		return nil
	}
}

// WithIDGenerator option replaces model.RandomID as the source of new
// workout identifiers.
func WithIDGenerator(newID func() int) Option {
	return func(uc *UseCase) error {
		if newID == nil {
			return errors.New("nil id generator")
		}
		uc.newID = newID
		return nil
	}
}

// WithRecorder option reports the use case activities to `r`.
func WithRecorder(r Recorder) Option {
	return func(uc *UseCase) error {
		if r == nil {
			return errors.New("nil recorder")
		}
		uc.recorder = r
		return nil
	}
}
