// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by all resource packages.
// Binding and validation errors are reported as a JSON object which
// maps each invalid field name to its error messages, while other
// errors are reported as a JSON object with a "detail" field.
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/mapty/pkg/core/cerr"
)

// Bind deserializes the request into `req` using `b` binding and
// validates it. If it fails, an error response is written and false
// is returned.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case nil:
		return true
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

// AddErr appends `msgs` to the error messages of the `name` field,
// allocating the (*errs) map if it is nil.
func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	(*errs)[name] = append((*errs)[name], msgs...)
}

// Assert calls AddErr if `ok` is false, and returns `ok`.
func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr writes `err` as a JSON object with a "detail" field.
// The status code is taken from a wrapped *cerr.Error, if any.
func SerErr(c *gin.Context, err error) {
	c.JSON(cerr.StatusCode(err), gin.H{
		"detail": Detail(err),
	})
}

// Detail returns the message of `err` which may be shown to users.
// A wrapped *cerr.Error is reported without its wrapping context.
func Detail(err error) string {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		return ce.Err.Error()
	}
	return err.Error()
}
