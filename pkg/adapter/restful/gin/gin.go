// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine creation and its middlewares,
// so the config package may instantiate an engine without depending on
// the gin-gonic packages directly. Resources are kept in the sub-packages
// which are named like workoutsrs and are registered by the routes
// package.
package gin

import (
	"log/slog"

	ginslog "github.com/FabienMht/ginslog/logger"
	"github.com/gin-gonic/gin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// SlogLogger logs every request with the default slog logger, so
// request logs share the format and destination of other logs.
func SlogLogger() HandlerFunc {
	return ginslog.New(slog.Default())
}
