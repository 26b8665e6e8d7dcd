// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"database/sql"
	"fmt"
)

// rowsAdapter adapts *sql.Rows to the repo.Rows interface.
type rowsAdapter struct {
	*sql.Rows
}

// Close releases the result set. Its error is reported by Err.
func (ra rowsAdapter) Close() {
	_ = ra.Rows.Close()
}

// Values scans the current row into a slice of driver values.
func (ra rowsAdapter) Values() ([]any, error) {
	cols, err := ra.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	vals := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := ra.Scan(dest...); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return vals, nil
}
