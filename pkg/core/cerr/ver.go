// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"

	"github.com/momeni/mapty/pkg/core/model"
)

// MismatchingSemVerError indicates that a specific semantic version was
// expected, but another version was found, for example, when a config
// file declares a database schema version which this binary does not
// know. The first element is the expected version and the second
// element is the actual version.
type MismatchingSemVerError [2]model.SemVer

// Error implements the error interface.
func (msve *MismatchingSemVerError) Error() string {
	return fmt.Sprintf(
		"expected v%s, but got v%s", msve[0].String(), msve[1].String(),
	)
}
