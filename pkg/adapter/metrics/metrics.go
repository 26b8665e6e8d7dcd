// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package metrics exports the workouts use case activities as
// Prometheus collectors. The Recorder type implements the
// workoutsuc.Recorder interface.
package metrics

import (
	"fmt"

	"github.com/momeni/mapty/pkg/core/model"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mapty"

// Recorder keeps the Prometheus collectors of the workouts use case.
type Recorder struct {
	recorded *prometheus.CounterVec
	rejected *prometheus.CounterVec
	sessions prometheus.Gauge
}

// New creates a Recorder and registers its collectors in `reg`.
// Pass prometheus.DefaultRegisterer in order to expose them with the
// promhttp.Handler.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		recorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workouts",
			Name:      "recorded_total",
			Help:      "Number of workouts which are recorded, per kind.",
		}, []string{"kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workouts",
			Name:      "rejected_total",
			Help:      "Number of workout forms which failed validation, per kind.",
		}, []string{"kind"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Number of client sessions which are kept in memory.",
		}),
	}
	for _, c := range []prometheus.Collector{
		r.recorded, r.rejected, r.sessions,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}
	return r, nil
}

// WorkoutRecorded counts a new workout of the `k` kind.
func (r *Recorder) WorkoutRecorded(k model.Kind) {
	r.recorded.WithLabelValues(label(k)).Inc()
}

// SubmissionRejected counts an invalid form of the `k` kind.
func (r *Recorder) SubmissionRejected(k model.Kind) {
	r.rejected.WithLabelValues(label(k)).Inc()
}

// SessionsActive sets the number of kept sessions.
func (r *Recorder) SessionsActive(n int) {
	r.sessions.Set(float64(n))
}

func label(k model.Kind) string {
	if k.Validate() != nil {
		return "invalid"
	}
	return k.String()
}
