// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package workoutsuc contains the workouts UseCase which plays the
// application controller role for every client page. It supports
// these use cases:
//  1. Opening a page, restoring the client history from storage,
//  2. Loading the map after the user position is known (or reporting
//     that it is not available),
//  3. Picking a location on the map and composing a workout form,
//  4. Switching the form between running and cycling workouts,
//  5. Submitting the form, validating and recording a workout,
//  6. Panning the map to a workout which is clicked in the list,
//  7. Reading or clearing the client history.
//
// A client is a browser which keeps its history in the storage, while
// each page which it opens has its own session. Pages are identified
// by the token which Open returns in View.Page, so several pages of
// one client may compose their forms independently.
// UI events are dispatched through a table which is keyed by their
// EventKind, and each event returns a View describing the changes
// which the client page must display.
package workoutsuc

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/mapty/pkg/core/cerr"
	"github.com/momeni/mapty/pkg/core/log"
	"github.com/momeni/mapty/pkg/core/model"
	"github.com/momeni/mapty/pkg/core/repo"
)

// Recorder receives notifications about the use case activities, e.g.,
// in order to maintain metrics.
type Recorder interface {
	WorkoutRecorded(k model.Kind)
	SubmissionRejected(k model.Kind)
	SessionsActive(n int)
}

type nopRecorder struct{}

func (nopRecorder) WorkoutRecorded(model.Kind)    {}
func (nopRecorder) SubmissionRejected(model.Kind) {}
func (nopRecorder) SessionsActive(int)            {}

// UseCase represents the workouts use case. It holds a database
// connection pool, the history repository instance (to be guided with
// the DB pool), a factory of map views, and the sessions of clients.
type UseCase struct {
	pool    repo.Pool
	history repo.History
	newMap  repo.MapViewFactory

	zoom              int
	idleTTL           time.Duration
	positiveElevation bool
	now               func() time.Time
	newID             func() int
	recorder          Recorder

	dispatch map[EventKind]handler

	// rwlock guards the sessions map itself, while each session is
	// guarded by its own mutex. A session must not be locked while
	// rwlock is held for writing.
	rwlock   sync.RWMutex
	sessions map[pageKey]*session
}

// pageKey identifies the session of one page of a client.
type pageKey struct {
	client, page uuid.UUID
}

// New instantiates a workouts use case.
// Required parameters are passed individually, while optional
// parameters are passed as a series of functional options.
func New(
	p repo.Pool, h repo.History, newMap repo.MapViewFactory,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool:     p,
		history:  h,
		newMap:   newMap,
		sessions: make(map[pageKey]*session),
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.zoom == 0 {
		uc.zoom = 13
	}
	if uc.idleTTL == 0 {
		uc.idleTTL = 12 * time.Hour
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.newID == nil {
		uc.newID = model.RandomID
	}
	if uc.recorder == nil {
		uc.recorder = nopRecorder{}
	}
	uc.dispatch = uc.handlers()
	return uc, nil
}

// Open use case starts a fresh page for the `client` and returns its
// token in the Page field of the returned View. Other pages of the
// same client are kept intact. The client history is restored from
// the storage immediately, regardless of the map, and is reported in
// the Added field of the returned View. A history which cannot be read
// is treated as an empty history.
func (uc *UseCase) Open(ctx context.Context, client uuid.UUID) *View {
	s := uc.open(ctx, pageKey{client: client, page: uuid.New()})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.added = slices.Clone(s.workouts)
	return s.view()
}

func (uc *UseCase) open(ctx context.Context, key pageKey) *session {
	s := newSession(key.client, key.page, uc.newMap())
	workouts, err := uc.load(ctx, key.client)
	if err != nil {
		log.Warn(
			ctx, "history is not available, starting empty",
			log.Client(key.client), log.Err("err", err),
		)
		workouts = nil
	}
	s.workouts = workouts
	s.lastSeen = uc.now()
	uc.rwlock.Lock()
	uc.sessions[key] = s
	uc.evictIdle(s.lastSeen)
	n := len(uc.sessions)
	uc.rwlock.Unlock()
	uc.recorder.SessionsActive(n)
	log.Info(
		ctx, "page is opened",
		log.Client(key.client), log.Page(key.page),
		slog.Int("workouts", len(s.workouts)),
	)
	return s
}

// evictIdle removes the sessions which were not used since the idle
// TTL before `now`. Caller must hold uc.rwlock for writing.
func (uc *UseCase) evictIdle(now time.Time) {
	deadline := now.Add(-uc.idleTTL)
	for key, s := range uc.sessions {
		if s.mu.TryLock() {
			idle := s.lastSeen.Before(deadline)
			s.mu.Unlock()
			if idle {
				delete(uc.sessions, key)
			}
		}
	}
}

// session returns the session of the `key` page, opening a fresh one
// with the same token if it does not exist (e.g., after it was evicted
// or the server restarted). Since such a page already displays its
// list, the restored workouts are not reported as added ones.
func (uc *UseCase) session(ctx context.Context, key pageKey) *session {
	uc.rwlock.RLock()
	s, ok := uc.sessions[key]
	uc.rwlock.RUnlock()
	if ok {
		return s
	}
	return uc.open(ctx, key)
}

// Dispatch use case processes the `ev` event of the `page` of the
// `client` using the handler of its kind and returns the resulting
// View. The View is returned even if the handler fails, so its notices
// can be shown. Unknown event kinds are reported by a NotFound error.
func (uc *UseCase) Dispatch(
	ctx context.Context, client, page uuid.UUID, ev Event,
) (*View, error) {
	h, ok := uc.dispatch[ev.Kind]
	if !ok {
		return nil, cerr.NotFound(
			fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind),
		)
	}
	s := uc.session(ctx, pageKey{client: client, page: page})
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = uc.now()
	err := h(ctx, s, ev)
	if err != nil {
		err = fmt.Errorf("handling %s event: %w", ev.Kind, err)
	}
	return s.view(), err
}

// History use case returns the persisted workouts of the `client` in
// their insertion order. Unlike opening a page, a history which cannot
// be read is reported as an error.
func (uc *UseCase) History(
	ctx context.Context, client uuid.UUID,
) ([]*model.Workout, error) {
	workouts, err := uc.load(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return workouts, nil
}

// Reset use case clears the persisted history of the `client` and
// empties the workouts lists of its open pages (if any). This is the
// only way to remove recorded workouts.
func (uc *UseCase) Reset(ctx context.Context, client uuid.UUID) error {
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return uc.history.Conn(c).Clear(ctx, client)
	})
	if err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	var pages []*session
	uc.rwlock.RLock()
	for key, s := range uc.sessions {
		if key.client == client {
			pages = append(pages, s)
		}
	}
	uc.rwlock.RUnlock()
	for _, s := range pages {
		s.mu.Lock()
		s.workouts = nil
		s.mu.Unlock()
	}
	log.Info(ctx, "history is cleared", log.Client(client))
	return nil
}

func (uc *UseCase) load(
	ctx context.Context, client uuid.UUID,
) (workouts []*model.Workout, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		var err error
		workouts, err = uc.history.Conn(c).Load(ctx, client)
		return err
	})
	return workouts, err
}

func (uc *UseCase) save(
	ctx context.Context, client uuid.UUID, workouts []*model.Workout,
) error {
	return uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return uc.history.Conn(c).Save(ctx, client, workouts)
	})
}
