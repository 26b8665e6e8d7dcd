// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package workoutsuc

import (
	"context"
	"errors"

	"github.com/momeni/mapty/pkg/core/model"
)

// EventKind names one of the UI events which a client can report.
type EventKind string

// Supported event kinds. Each kind is served by one handler in the
// dispatch table of the UseCase.
const (
	// EventGeolocated reports the user position (in Event.Coord).
	EventGeolocated EventKind = "geolocated"
	// EventGeolocationFailed reports a denied or missing geolocation.
	EventGeolocationFailed EventKind = "geolocation-failed"
	// EventMapClick reports a click on the map (in Event.Coord).
	EventMapClick EventKind = "map-click"
	// EventToggle reports a change of the type selector (Event.Type).
	EventToggle EventKind = "toggle"
	// EventSubmit reports a submitted form (Event.Type and Event.Form).
	EventSubmit EventKind = "submit"
	// EventListClick reports a click on the workouts list. Event.ID
	// holds the data-id of the clicked entry, or is empty if the click
	// was not on an entry.
	EventListClick EventKind = "list-click"
)

// ErrUnknownEvent indicates an event kind without a handler.
var ErrUnknownEvent = errors.New("unknown event kind")

// ErrFormHidden indicates a submit event while the form is hidden,
// that is, before any location is picked on the map.
var ErrFormHidden = errors.New("no location is picked on the map")

// Event is a UI event as reported by a client. Only the fields which
// are relevant for its Kind are used.
type Event struct {
	Kind  EventKind
	Coord model.Coordinate
	Type  string
	Form  Form
	ID    string
}

// handler processes one event on the session which is locked by the
// caller. Returned errors are reported to the client along with the
// resulting view.
type handler func(ctx context.Context, s *session, ev Event) error

// EventKinds lists all supported event kinds.
func EventKinds() []EventKind {
	return []EventKind{
		EventGeolocated, EventGeolocationFailed, EventMapClick,
		EventToggle, EventSubmit, EventListClick,
	}
}

func (uc *UseCase) handlers() map[EventKind]handler {
	return map[EventKind]handler{
		EventGeolocated:        uc.loadMap,
		EventGeolocationFailed: uc.rejectMap,
		EventMapClick:          uc.clickMap,
		EventToggle:            uc.toggleType,
		EventSubmit:            uc.newWorkout,
		EventListClick:         uc.moveToMarker,
	}
}
