// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package workoutsuc_test

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/momeni/mapty/pkg/core/model"
	"github.com/momeni/mapty/pkg/core/repo"
)

type fakePool struct{}

func (fakePool) Conn(ctx context.Context, h repo.ConnHandler) error {
	return h(ctx, nil)
}

type fakeHistory struct {
	mu      sync.Mutex
	saved   map[uuid.UUID][]*model.Workout
	saves   int
	loadErr error
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{saved: make(map[uuid.UUID][]*model.Workout)}
}

func (h *fakeHistory) Conn(repo.Conn) repo.HistoryQueryer { return h }
func (h *fakeHistory) Tx(repo.Tx) repo.HistoryQueryer     { return h }

func (h *fakeHistory) Save(
	_ context.Context, client uuid.UUID, ws []*model.Workout,
) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves++
	h.saved[client] = slices.Clone(ws)
	return nil
}

func (h *fakeHistory) Load(
	_ context.Context, client uuid.UUID,
) ([]*model.Workout, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.loadErr != nil {
		return nil, h.loadErr
	}
	return slices.Clone(h.saved[client]), nil
}

func (h *fakeHistory) Clear(_ context.Context, client uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.saved, client)
	return nil
}

var errStorageDown = errors.New("storage is down")

type marker struct {
	At        model.Coordinate
	Popup     string
	ClassName string
}

type pan struct {
	At       model.Coordinate
	Zoom     int
	Animated bool
}

// fakeMap records the map operations as commands of its own types.
type fakeMap struct {
	ready   bool
	center  model.Coordinate
	handler func(model.Coordinate)
	cmds    []repo.MapCommand
}

func (m *fakeMap) Init(c model.Coordinate, zoom int) {
	m.ready, m.center = true, c
	m.cmds = append(m.cmds, pan{At: c, Zoom: zoom})
}

func (m *fakeMap) Ready() bool { return m.ready }

func (m *fakeMap) OnMapClick(h func(model.Coordinate)) { m.handler = h }

func (m *fakeMap) Click(c model.Coordinate) bool {
	if !m.ready || m.handler == nil {
		return false
	}
	m.handler(c)
	return true
}

func (m *fakeMap) PlaceMarker(c model.Coordinate, popup, className string) {
	m.cmds = append(m.cmds, marker{At: c, Popup: popup, ClassName: className})
}

func (m *fakeMap) PanTo(c model.Coordinate, zoom int, animated bool) {
	m.cmds = append(m.cmds, pan{At: c, Zoom: zoom, Animated: animated})
}

func (m *fakeMap) Drain() []repo.MapCommand {
	cmds := m.cmds
	m.cmds = nil
	return cmds
}

type counter struct {
	mu       sync.Mutex
	recorded map[model.Kind]int
	rejected map[model.Kind]int
	active   int
}

func newCounter() *counter {
	return &counter{
		recorded: make(map[model.Kind]int),
		rejected: make(map[model.Kind]int),
	}
}

func (c *counter) WorkoutRecorded(k model.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recorded[k]++
}

func (c *counter) SubmissionRejected(k model.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejected[k]++
}

func (c *counter) SessionsActive(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = n
}
