// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// The central model is the Workout tagged union which represents one
// logged running or cycling session, as recorded by clicking on the
// map and filling the workout form.
package model

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// These constants bound the randomly chosen workout identifiers.
// Identifiers are small for readability in the list markup and their
// collisions are not prevented.
const (
	MinID = 100
	MaxID = 10000
)

// Workout models a logged workout. Common fields are exported, while
// the Kind discriminant, the kind specific payload, and the derived
// description are only set by the NewRunning, NewCycling, and Restore
// constructors, so they stay consistent with each other.
// Exactly one of the running or cycling payloads is non-nil.
type Workout struct {
	ID       int        // small random identifier
	Date     time.Time  // creation time
	Coords   Coordinate // location which was clicked on the map
	Distance float64    // in kilometers
	Duration float64    // in minutes

	kind        Kind
	running     *Running
	cycling     *Cycling
	description string
}

// Running is the payload of running workouts.
type Running struct {
	Cadence float64 // steps per minute

	pace float64
}

// Pace returns the derived pace in minutes per kilometer.
func (r Running) Pace() float64 {
	return r.pace
}

// Cycling is the payload of cycling workouts.
type Cycling struct {
	Elevation float64 // elevation gain in meters, may be negative

	speed float64
}

// Speed returns the derived speed in kilometers per hour.
func (c Cycling) Speed() float64 {
	return c.speed
}

// NewRunning creates a running workout and computes its pace as
// duration/distance and its description. No validation is performed,
// so a zero distance yields an infinite pace.
func NewRunning(
	id int, date time.Time, c Coordinate,
	distance, duration, cadence float64,
) *Workout {
	return &Workout{
		ID:       id,
		Date:     date,
		Coords:   c,
		Distance: distance,
		Duration: duration,
		kind:     KindRunning,
		running: &Running{
			Cadence: cadence,
			pace:    duration / distance,
		},
		description: Describe(KindRunning, date),
	}
}

// NewCycling creates a cycling workout and computes its speed as
// distance/(duration/60) and its description. No validation is
// performed.
func NewCycling(
	id int, date time.Time, c Coordinate,
	distance, duration, elevation float64,
) *Workout {
	return &Workout{
		ID:       id,
		Date:     date,
		Coords:   c,
		Distance: distance,
		Duration: duration,
		kind:     KindCycling,
		cycling: &Cycling{
			Elevation: elevation,
			speed:     distance / (duration / 60),
		},
		description: Describe(KindCycling, date),
	}
}

// Describe returns the human-readable title of a workout with the `k`
// kind which is created at the `date` time, like "Running on April 14".
// Month names are always in English.
func Describe(k Kind, date time.Time) string {
	return fmt.Sprintf("%s on %s %d", k.Title(), date.Month(), date.Day())
}

// RandomID returns a random identifier in the [MinID, MaxID] range.
func RandomID() int {
	return MinID + rand.IntN(MaxID-MinID+1)
}

// Kind returns the discriminant of the `w` workout.
func (w *Workout) Kind() Kind {
	return w.kind
}

// Description returns the derived title of the `w` workout.
func (w *Workout) Description() string {
	return w.description
}

// Running returns the running payload and true for running workouts.
func (w *Workout) Running() (Running, bool) {
	if w.running == nil {
		return Running{}, false
	}
	return *w.running, true
}

// Cycling returns the cycling payload and true for cycling workouts.
func (w *Workout) Cycling() (Cycling, bool) {
	if w.cycling == nil {
		return Cycling{}, false
	}
	return *w.cycling, true
}

// Metric returns the kind specific input value, that is, the cadence
// of running workouts or the elevation gain of cycling workouts.
func (w *Workout) Metric() float64 {
	if w.running != nil {
		return w.running.Cadence
	}
	return w.cycling.Elevation
}

// Rate returns the kind specific derived value, that is, the pace of
// running workouts or the speed of cycling workouts.
func (w *Workout) Rate() float64 {
	if w.running != nil {
		return w.running.pace
	}
	return w.cycling.speed
}

// Fields contains all fields of a Workout as plain data. It is used
// for persisting workouts and restoring them without re-deriving the
// pace, speed, or description values. Only the Cadence and Pace or
// the Elevation and Speed fields are meaningful, based on the Kind.
type Fields struct {
	ID          int
	Date        time.Time
	Coords      Coordinate
	Distance    float64
	Duration    float64
	Kind        Kind
	Description string

	Cadence, Pace    float64
	Elevation, Speed float64
}

// Fields returns a plain data snapshot of the `w` workout.
func (w *Workout) Fields() Fields {
	f := Fields{
		ID:          w.ID,
		Date:        w.Date,
		Coords:      w.Coords,
		Distance:    w.Distance,
		Duration:    w.Duration,
		Kind:        w.kind,
		Description: w.description,
	}
	if r, ok := w.Running(); ok {
		f.Cadence, f.Pace = r.Cadence, r.pace
	}
	if c, ok := w.Cycling(); ok {
		f.Elevation, f.Speed = c.Elevation, c.speed
	}
	return f
}

// Restore rebuilds a workout from the plain `f` fields as they were
// persisted. Derived values are taken as they are and are not computed
// again, so restored workouts are display-only data.
// A Kind which is not KindRunning is restored as a cycling workout.
func Restore(f Fields) *Workout {
	w := &Workout{
		ID:          f.ID,
		Date:        f.Date,
		Coords:      f.Coords,
		Distance:    f.Distance,
		Duration:    f.Duration,
		description: f.Description,
	}
	if f.Kind == KindRunning {
		w.kind = KindRunning
		w.running = &Running{Cadence: f.Cadence, pace: f.Pace}
		return w
	}
	w.kind = KindCycling
	w.cycling = &Cycling{Elevation: f.Elevation, speed: f.Speed}
	return w
}

// LogValue implements slog.LogValuer, reporting the identifying
// fields of the `w` workout.
func (w *Workout) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("id", w.ID),
		slog.String("kind", w.kind.String()),
		slog.Float64("distance", w.Distance),
		slog.Float64("duration", w.Duration),
	)
}
