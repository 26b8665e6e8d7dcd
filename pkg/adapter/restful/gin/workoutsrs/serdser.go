// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package workoutsrs

import (
	"html/template"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/mapty/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/mapty/pkg/core/cerr"
	"github.com/momeni/mapty/pkg/core/model"
	"github.com/momeni/mapty/pkg/core/repo"
	"github.com/momeni/mapty/pkg/core/usecase/workoutsuc"
)

type rawPageReq struct {
	Page string `form:"page" binding:"required,uuid"`
}

type rawCoordReq struct {
	Lat string `form:"lat" binding:"required,latitude"`
	Lng string `form:"lng" binding:"required,longitude"`
}

type rawToggleReq struct {
	Type string `form:"type" binding:"required"`
}

type rawSubmitReq struct {
	Type      string `form:"type" binding:"required"`
	Distance  string `form:"distance"`
	Duration  string `form:"duration"`
	Cadence   string `form:"cadence"`
	Elevation string `form:"elevation"`
}

type rawListClickReq struct {
	ID string `form:"id" binding:"omitempty,numeric"`
}

func (rc rawCoordReq) toModel() (c model.Coordinate, err error) {
	c.Lat, err = strconv.ParseFloat(rc.Lat, 64)
	if err != nil {
		return
	}
	c.Lon, err = strconv.ParseFloat(rc.Lng, 64)
	return
}

// dserPage deserializes the token of the page which sent an event.
// If it is missing or invalid, an error response is written and false
// is returned.
func dserPage(c *gin.Context) (uuid.UUID, bool) {
	req := &rawPageReq{}
	if !serdser.Bind(c, req, binding.Form) {
		return uuid.Nil, false
	}
	page, err := uuid.Parse(req.Page)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "page", "Form param page is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return page, true
}

// dserEvent deserializes the form parameters of a `kind` event.
// If they are not acceptable, an error response is written and nil
// is returned. Events without parameters accept any other params.
func dserEvent(c *gin.Context, kind workoutsuc.EventKind) *workoutsuc.Event {
	ev := &workoutsuc.Event{Kind: kind}
	switch kind {
	case workoutsuc.EventGeolocated, workoutsuc.EventMapClick:
		req := &rawCoordReq{}
		if !serdser.Bind(c, req, binding.Form) {
			return nil
		}
		var err error
		ev.Coord, err = req.toModel()
		if err != nil {
			var errs map[string][]string
			serdser.AddErr(&errs, "lat/lng", err.Error())
			c.JSON(http.StatusBadRequest, errs)
			return nil
		}
	case workoutsuc.EventToggle:
		req := &rawToggleReq{}
		if !serdser.Bind(c, req, binding.Form) {
			return nil
		}
		ev.Type = req.Type
	case workoutsuc.EventSubmit:
		req := &rawSubmitReq{}
		if !serdser.Bind(c, req, binding.Form) {
			return nil
		}
		ev.Type = req.Type
		ev.Form = workoutsuc.Form{
			Distance:  req.Distance,
			Duration:  req.Duration,
			Cadence:   req.Cadence,
			Elevation: req.Elevation,
		}
	case workoutsuc.EventListClick:
		req := &rawListClickReq{}
		if !serdser.Bind(c, req, binding.Form) {
			return nil
		}
		ev.ID = req.ID
	}
	return ev
}

type formResponse struct {
	Distance  string `json:"distance"`
	Duration  string `json:"duration"`
	Cadence   string `json:"cadence"`
	Elevation string `json:"elevation"`
}

// viewResponse is the JSON rendition of a workoutsuc.View which is
// applied by the page script. Added workouts are rendered as the HTML
// of their list entries.
type viewResponse struct {
	Page        string            `json:"page"`
	FormVisible bool              `json:"formVisible"`
	Type        string            `json:"type"`
	MetricField string            `json:"metricField"`
	Form        formResponse      `json:"form"`
	Focus       string            `json:"focus,omitempty"`
	Notices     []string          `json:"notices,omitempty"`
	Entries     []string          `json:"entries,omitempty"`
	Map         []repo.MapCommand `json:"map,omitempty"`
	MapOn       bool              `json:"mapOn"`
	Total       int               `json:"total"`
	Detail      string            `json:"detail,omitempty"`
}

func newViewResponse(v *workoutsuc.View, entries []string) *viewResponse {
	return &viewResponse{
		Page:        v.Page.String(),
		FormVisible: v.FormVisible,
		Type:        v.Kind.String(),
		MetricField: v.MetricField,
		Form: formResponse{
			Distance:  v.Form.Distance,
			Duration:  v.Form.Duration,
			Cadence:   v.Form.Cadence,
			Elevation: v.Form.Elevation,
		},
		Focus:   v.Focus,
		Notices: v.Notices,
		Entries: entries,
		Map:     v.Map,
		MapOn:   v.MapOn,
		Total:   v.Total,
	}
}

// serView writes `v` with the `err` detail (if any). The status code
// is taken from `err`, so rejected events still deliver their view.
func serView(
	c *gin.Context, t *template.Template, v *workoutsuc.View, err error,
) {
	entries, rerr := renderEntries(t, v.Added)
	if rerr != nil {
		serdser.SerErr(c, rerr)
		return
	}
	resp := newViewResponse(v, entries)
	status := http.StatusOK
	if err != nil {
		status = cerr.StatusCode(err)
		resp.Detail = serdser.Detail(err)
	}
	c.JSON(status, resp)
}

// workoutResponse is the stored representation of a workout.
// Non-finite numbers are reported as null.
type workoutResponse struct {
	ID          int        `json:"id"`
	Date        string     `json:"date"`
	Coords      [2]float64 `json:"coords"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Distance    *float64   `json:"distance"`
	Duration    *float64   `json:"duration"`
	Cadence     *float64   `json:"cadence,omitempty"`
	Pace        *float64   `json:"pace,omitempty"`
	Elevation   *float64   `json:"elevation,omitempty"`
	Speed       *float64   `json:"speed,omitempty"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func serWorkouts(workouts []*model.Workout) []workoutResponse {
	resp := make([]workoutResponse, 0, len(workouts))
	for _, w := range workouts {
		f := w.Fields()
		wr := workoutResponse{
			ID:          f.ID,
			Date:        f.Date.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			Coords:      f.Coords.Pair(),
			Type:        f.Kind.String(),
			Description: f.Description,
			Distance:    finite(f.Distance),
			Duration:    finite(f.Duration),
		}
		if f.Kind == model.KindRunning {
			wr.Cadence, wr.Pace = finite(f.Cadence), finite(f.Pace)
		} else {
			wr.Elevation, wr.Speed = finite(f.Elevation), finite(f.Speed)
		}
		resp = append(resp, wr)
	}
	return resp
}
