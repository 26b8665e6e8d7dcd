// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package workoutsuc

import (
	"github.com/google/uuid"
	"github.com/momeni/mapty/pkg/core/model"
	"github.com/momeni/mapty/pkg/core/repo"
)

// Notices which are shown to users by an alert.
const (
	NoticeNoPosition   = "Couldn't get your position"
	NoticeInvalidInput = "Please enter a positive number!"
)

// View describes what a client must display after an event. Form
// related fields are complete snapshots, while Notices, Added, and Map
// only contain what happened since the previous View of that client.
type View struct {
	Page        uuid.UUID  // token of the page which must send events
	FormVisible bool       // whether the workout form is shown
	Kind        model.Kind // the selected workout type
	MetricField string     // the visible input: cadence or elevation
	Form        Form       // the current input values
	Focus       string     // input to focus, if any

	Notices []string          // alerts to be shown, in order
	Added   []*model.Workout  // workouts to be appended to the list
	Map     []repo.MapCommand // map widget commands, in order
	MapOn   bool              // whether the map is initialized
	Total   int               // number of workouts in the list
}
