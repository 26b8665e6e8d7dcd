// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package historyrp

import (
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/mapty/pkg/core/model"
)

// jWorkout is the persisted form of a workout. Both kinds share one
// flat object and only one pair of the kind specific fields is filled.
// Non-finite numbers are stored as null.
type jWorkout struct {
	ID          int        `json:"id"`
	Date        time.Time  `json:"date"`
	Coords      [2]float64 `json:"coords"`
	Distance    *float64   `json:"distance"`
	Duration    *float64   `json:"duration"`
	Type        string     `json:"type,omitempty"`
	Description string     `json:"description"`

	Cadence   *float64 `json:"cadence,omitempty"`
	Pace      *float64 `json:"pace,omitempty"`
	Elevation *float64 `json:"elevation,omitempty"`
	Speed     *float64 `json:"speed,omitempty"`

	// Histories which were written by the browser-only version of the
	// app use these misspelled names. They are read, but not written.
	OldDescription string   `json:"discription,omitempty"`
	OldCadence     *float64 `json:"cadance,omitempty"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func encode(workouts []*model.Workout) ([]byte, error) {
	jws := make([]jWorkout, 0, len(workouts))
	for _, w := range workouts {
		f := w.Fields()
		jw := jWorkout{
			ID:          f.ID,
			Date:        f.Date,
			Coords:      f.Coords.Pair(),
			Distance:    finite(f.Distance),
			Duration:    finite(f.Duration),
			Type:        f.Kind.String(),
			Description: f.Description,
		}
		if f.Kind == model.KindRunning {
			jw.Cadence, jw.Pace = finite(f.Cadence), finite(f.Pace)
		} else {
			jw.Elevation, jw.Speed = finite(f.Elevation), finite(f.Speed)
		}
		jws = append(jws, jw)
	}
	b, err := json.Marshal(jws)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}
	return b, nil
}

// decode parses a persisted history. Entries without a type are taken
// as running workouts if they have a cadence field, and as cycling
// workouts otherwise.
func decode(data string) ([]*model.Workout, error) {
	var jws []jWorkout
	if err := json.Unmarshal([]byte(data), &jws); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}
	workouts := make([]*model.Workout, 0, len(jws))
	for _, jw := range jws {
		if jw.Description == "" {
			jw.Description = jw.OldDescription
		}
		if jw.Cadence == nil {
			jw.Cadence = jw.OldCadence
		}
		k, err := model.ParseKind(jw.Type)
		if err != nil {
			k = model.KindCycling
			if jw.Cadence != nil {
				k = model.KindRunning
			}
		}
		workouts = append(workouts, model.Restore(model.Fields{
			ID:          jw.ID,
			Date:        jw.Date,
			Coords:      model.CoordinateFromPair(jw.Coords),
			Distance:    value(jw.Distance),
			Duration:    value(jw.Duration),
			Kind:        k,
			Description: jw.Description,
			Cadence:     value(jw.Cadence),
			Pace:        value(jw.Pace),
			Elevation:   value(jw.Elevation),
			Speed:       value(jw.Speed),
		}))
	}
	return workouts, nil
}
