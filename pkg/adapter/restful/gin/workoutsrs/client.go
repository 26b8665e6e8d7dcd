// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package workoutsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientCookie is the name of the cookie which identifies a browser.
// Its value is a UUID which keys the workouts history of that browser.
const ClientCookie = "mapty_client"

const clientCookieMaxAge = 400 * 24 * 60 * 60 // seconds

// client returns the identifier of the requesting browser, assigning
// a new one (and setting its cookie) if it has none or it is invalid.
func client(c *gin.Context) uuid.UUID {
	if v, err := c.Cookie(ClientCookie); err == nil {
		if id, err := uuid.Parse(v); err == nil {
			return id
		}
	}
	id := uuid.New()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		ClientCookie, id.String(), clientCookieMaxAge, "/", "", false, true,
	)
	return id
}
