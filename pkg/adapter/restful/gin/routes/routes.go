// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/mapty/pkg/adapter/config/cfg1"
	"github.com/momeni/mapty/pkg/adapter/metrics"
	"github.com/momeni/mapty/pkg/adapter/restful/gin/workoutsrs"
	"github.com/momeni/mapty/pkg/core/repo"
	"github.com/momeni/mapty/pkg/core/usecase/workoutsuc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register instantiates the workouts use case based on the c
// configuration settings and registers its resource using the e
// gin-gonic engine instance. The p connections pool is passed to the
// use case, so it may acquire/release connections on demand and pass
// them to the history repository.
// The use case activities are recorded as collectors in reg, which is
// also exposed by a GET /metrics handler.
// Possible errors will be returned after possible wrapping.
func Register(
	e *gin.Engine, p repo.Pool, c *cfg1.Config, reg *prometheus.Registry,
) error {
	rec, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("creating metrics recorder: %w", err)
	}
	uc, err := c.NewWorkoutsUseCase(p, workoutsuc.WithRecorder(rec))
	if err != nil {
		return fmt.Errorf("creating workouts use case: %w", err)
	}
	if err = workoutsrs.Register(e, uc); err != nil {
		return fmt.Errorf("registering workouts resource: %w", err)
	}
	e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry: reg,
	})))
	return nil
}
