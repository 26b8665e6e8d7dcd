// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr provides the core error type which carries the HTTP
// status code that an adapter should report for a wrapped error.
// Use cases wrap their expected failures (e.g., a rejected workout
// form) using these helpers, while unexpected failures are returned
// as plain errors and reported as internal server errors.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict reports an event which is not acceptable in the current
// state, such as submitting a form which is not shown.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// Unprocessable reports a well-formed request whose contents were
// rejected by a business rule, such as a non-positive distance.
func Unprocessable(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnprocessableEntity}
}

// StatusCode returns the HTTP status code of `err` if it wraps an
// *Error instance, and http.StatusInternalServerError otherwise.
func StatusCode(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.HTTPStatusCode
	}
	return http.StatusInternalServerError
}
