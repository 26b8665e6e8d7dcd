// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package workoutsuc

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/mapty/pkg/core/cerr"
	"github.com/momeni/mapty/pkg/core/log"
	"github.com/momeni/mapty/pkg/core/model"
	"github.com/momeni/mapty/pkg/core/repo"
)

// session is the state of one client page: its workouts list, the
// form state machine, and its map view. The form is either idle
// (hidden) or composing (shown, with a picked location in pending).
// All fields are guarded by mu, so events of one page are processed
// one at a time in their arrival order.
type session struct {
	mu sync.Mutex

	client   uuid.UUID
	page     uuid.UUID
	workouts []*model.Workout // in insertion order, append only
	lastSeen time.Time

	composing bool
	pending   model.Coordinate
	kind      model.Kind
	form      Form
	focus     string

	mapView repo.MapView
	notices []string
	added   []*model.Workout
}

func newSession(client, page uuid.UUID, mv repo.MapView) *session {
	return &session{
		client:  client,
		page:    page,
		kind:    model.KindRunning,
		mapView: mv,
	}
}

// view builds the View of `s` and forgets the reported notices, added
// workouts, and map commands. Caller must hold s.mu.
func (s *session) view() *View {
	v := &View{
		Page:        s.page,
		FormVisible: s.composing,
		Kind:        s.kind,
		MetricField: s.kind.MetricField(),
		Form:        s.form,
		Focus:       s.focus,
		Notices:     s.notices,
		Added:       s.added,
		Map:         s.mapView.Drain(),
		MapOn:       s.mapView.Ready(),
		Total:       len(s.workouts),
	}
	s.notices, s.added, s.focus = nil, nil, ""
	return v
}

func (s *session) notify(notice string) {
	s.notices = append(s.notices, notice)
}

func (s *session) showForm(c model.Coordinate) {
	s.composing = true
	s.pending = c
	s.focus = "distance"
}

func (s *session) hideForm() {
	s.composing = false
	s.form = Form{}
}

func (s *session) find(id string) *model.Workout {
	for _, w := range s.workouts {
		if strconv.Itoa(w.ID) == id {
			return w
		}
	}
	return nil
}

func popupText(w *model.Workout) string {
	return w.Kind().Emoji() + " " + w.Description()
}

func popupClass(w *model.Workout) string {
	return w.Kind().String() + "-popup"
}

func (uc *UseCase) loadMap(
	ctx context.Context, s *session, ev Event,
) error {
	if s.mapView.Ready() {
		log.Debug(ctx, "map is already loaded", log.Client(s.client))
		return nil
	}
	s.mapView.Init(ev.Coord, uc.zoom)
	s.mapView.OnMapClick(s.showForm)
	for _, w := range s.workouts {
		s.mapView.PlaceMarker(w.Coords, popupText(w), popupClass(w))
	}
	log.Info(
		ctx, "map is loaded",
		log.Client(s.client), log.Valuer("center", ev.Coord),
	)
	return nil
}

func (uc *UseCase) rejectMap(
	ctx context.Context, s *session, _ Event,
) error {
	s.notify(NoticeNoPosition)
	log.Info(ctx, "geolocation is not available", log.Client(s.client))
	return nil
}

func (uc *UseCase) clickMap(
	ctx context.Context, s *session, ev Event,
) error {
	if !s.mapView.Click(ev.Coord) {
		log.Debug(ctx, "ignoring click on a disabled map", log.Client(s.client))
	}
	return nil
}

func (uc *UseCase) toggleType(
	_ context.Context, s *session, ev Event,
) error {
	k, err := model.ParseKind(ev.Type)
	if err != nil {
		return cerr.BadRequest(err)
	}
	s.kind = k
	return nil
}

func (uc *UseCase) newWorkout(
	ctx context.Context, s *session, ev Event,
) error {
	if !s.composing {
		return cerr.Conflict(ErrFormHidden)
	}
	k, err := model.ParseKind(ev.Type)
	if err != nil {
		return cerr.BadRequest(err)
	}
	s.kind, s.form = k, ev.Form
	distance, duration, metric, err := validate(
		k, ev.Form, uc.positiveElevation,
	)
	if err != nil {
		s.notify(NoticeInvalidInput)
		uc.recorder.SubmissionRejected(k)
		return cerr.Unprocessable(err)
	}
	id, now := uc.newID(), uc.now()
	var w *model.Workout
	if k == model.KindRunning {
		w = model.NewRunning(id, now, s.pending, distance, duration, metric)
	} else {
		w = model.NewCycling(id, now, s.pending, distance, duration, metric)
	}
	s.workouts = append(s.workouts, w)
	if err := uc.save(ctx, s.client, slices.Clone(s.workouts)); err != nil {
		log.Error(
			ctx, "failed to save history",
			log.Client(s.client), log.Err("err", err),
		)
	}
	if s.mapView.Ready() {
		s.mapView.PlaceMarker(w.Coords, popupText(w), popupClass(w))
	}
	s.added = append(s.added, w)
	s.hideForm()
	uc.recorder.WorkoutRecorded(k)
	log.Info(
		ctx, "workout is recorded",
		log.Client(s.client), log.Valuer("workout", w),
	)
	return nil
}

func (uc *UseCase) moveToMarker(
	ctx context.Context, s *session, ev Event,
) error {
	if ev.ID == "" || !s.mapView.Ready() {
		return nil
	}
	w := s.find(ev.ID)
	if w == nil {
		log.Debug(
			ctx, "clicked workout is not in the list",
			log.Client(s.client), slog.String("id", ev.ID),
		)
		return nil
	}
	s.mapView.PanTo(w.Coords, uc.zoom, true)
	return nil
}
