// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package workoutsrs realizes the workouts resource. It serves the
// page (and its embedded script and style sheet) and accepts the UI
// events of that page, delegating them to the workouts use case and
// answering with the resulting views. Browsers are identified by the
// ClientCookie cookie, and each page of a browser by its page token.
package workoutsrs

import (
	"fmt"
	"html/template"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/momeni/mapty/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/mapty/pkg/core/cerr"
	"github.com/momeni/mapty/pkg/core/usecase/workoutsuc"
)

type resource struct {
	workouts *workoutsuc.UseCase
	tmpl     *template.Template
}

// Register instantiates a resource adapting the workouts use case
// instance with these routes:
//  1. GET request to / for opening the page,
//  2. GET requests to /static/* for the page script and style sheet,
//  3. POST request to /api/mapty/v1/events/:kind for UI events, which
//     carry the token of their page (as returned in the page state),
//  4. GET request to /api/mapty/v1/workouts for the client history,
//  5. DELETE request to /api/mapty/v1/workouts for clearing it.
func Register(e *gin.Engine, workouts *workoutsuc.UseCase) error {
	t, err := Templates()
	if err != nil {
		return fmt.Errorf("Templates: %w", err)
	}
	rs := &resource{workouts: workouts, tmpl: t}
	e.SetHTMLTemplate(t)
	e.GET("/", rs.Page)
	e.StaticFS("/static", http.FS(Static()))
	g := e.Group("/api/mapty/v1")
	g.POST("events/:kind", rs.Event)
	g.GET("workouts", rs.ListWorkouts)
	g.DELETE("workouts", rs.ClearWorkouts)
	return nil
}

func (rs *resource) Page(c *gin.Context) {
	v := rs.workouts.Open(c, client(c))
	pd, err := newPageData(v)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", pd)
}

func (rs *resource) Event(c *gin.Context) {
	kind := workoutsuc.EventKind(c.Param("kind"))
	if !slices.Contains(workoutsuc.EventKinds(), kind) {
		serdser.SerErr(c, cerr.NotFound(
			fmt.Errorf("%w: %q", workoutsuc.ErrUnknownEvent, kind),
		))
		return
	}
	page, ok := dserPage(c)
	if !ok {
		return
	}
	ev := dserEvent(c, kind)
	if ev == nil {
		return
	}
	v, err := rs.workouts.Dispatch(c, client(c), page, *ev)
	if v == nil {
		serdser.SerErr(c, err)
		return
	}
	serView(c, rs.tmpl, v, err)
}

func (rs *resource) ListWorkouts(c *gin.Context) {
	ws, err := rs.workouts.History(c, client(c))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serWorkouts(ws))
}

func (rs *resource) ClearWorkouts(c *gin.Context) {
	if err := rs.workouts.Reset(c, client(c)); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
