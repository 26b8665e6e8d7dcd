// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package workoutsrs

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/momeni/mapty/pkg/core/model"
	"github.com/momeni/mapty/pkg/core/usecase/workoutsuc"
)

//go:embed assets/templates/*.html assets/static/*
var assets embed.FS

// Templates parses the embedded page and list entry templates.
func Templates() (*template.Template, error) {
	t, err := template.ParseFS(assets, "assets/templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return t, nil
}

// Static returns the embedded script and style sheet files.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "assets/static")
	if err != nil {
		panic(err) // the embedded directory always exists
	}
	return sub
}

// entry is the data of one list entry template.
type entry struct {
	ID          int
	Type        string
	Description string
	Icon        string
	Distance    string
	Duration    string
	Rate        string
	RateUnit    string
	MetricIcon  string
	Metric      string
	MetricUnit  string
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func floor(v float64) string {
	return number(math.Floor(v))
}

func newEntry(w *model.Workout) entry {
	e := entry{
		ID:          w.ID,
		Type:        w.Kind().String(),
		Description: w.Description(),
		Icon:        w.Kind().Emoji(),
		Distance:    number(w.Distance),
		Duration:    number(w.Duration),
		Rate:        floor(w.Rate()),
		Metric:      floor(w.Metric()),
	}
	if w.Kind() == model.KindRunning {
		e.RateUnit, e.MetricIcon, e.MetricUnit = "min/km", "🦶🏼", "spm"
	} else {
		e.RateUnit, e.MetricIcon, e.MetricUnit = "km/h", "⛰", "m"
	}
	return e
}

// renderEntries renders the list entries of `workouts` in their order.
func renderEntries(
	t *template.Template, workouts []*model.Workout,
) ([]string, error) {
	entries := make([]string, 0, len(workouts))
	var buf bytes.Buffer
	for _, w := range workouts {
		buf.Reset()
		if err := t.ExecuteTemplate(&buf, "workout.html", newEntry(w)); err != nil {
			return nil, fmt.Errorf("rendering workout %d: %w", w.ID, err)
		}
		entries = append(entries, buf.String())
	}
	return entries, nil
}

// kindOption is an option of the workout type selector.
type kindOption struct {
	Value, Title string
	Selected     bool
}

// pageData is the data of the page template.
type pageData struct {
	View    *workoutsuc.View
	Kinds   []kindOption
	Entries []entry     // newest first, as they are shown
	State   template.JS // the initial view, without its entries
}

func newPageData(v *workoutsuc.View) (*pageData, error) {
	pd := &pageData{View: v}
	for _, k := range []model.Kind{model.KindRunning, model.KindCycling} {
		pd.Kinds = append(pd.Kinds, kindOption{
			Value: k.String(), Title: k.Title(), Selected: k == v.Kind,
		})
	}
	for i := len(v.Added) - 1; i >= 0; i-- {
		pd.Entries = append(pd.Entries, newEntry(v.Added[i]))
	}
	state := newViewResponse(v, nil)
	b, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encoding initial view: %w", err)
	}
	pd.State = template.JS(b)
	return pd, nil
}
