// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storagerp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/mapty/pkg/adapter/db/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gItem struct {
	ClientID  uuid.UUID `gorm:"primaryKey;type:uuid;column:client_id"`
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string
	UpdatedAt time.Time
}

func (gi *gItem) TableName() string {
	return "mapty1.storage"
}

// GetItem returns the `key` item value of the `client` client.
// The `found` flag is false (with a nil error) if no such item exists.
func GetItem[Q postgres.Queryer](
	ctx context.Context, q Q, client uuid.UUID, key string,
) (value string, found bool, err error) {
	var gi gItem
	err = q.GORM(ctx).Where(
		"client_id=? AND key=?", client, key,
	).Take(&gi).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("query: %w", err)
	}
	return gi.Value, true, nil
}

// SetItem inserts the `key` item of the `client` client, or overwrites
// its value if it already exists.
func SetItem[Q postgres.Queryer](
	ctx context.Context, q Q, client uuid.UUID, key, value string,
) error {
	gi := &gItem{ClientID: client, Key: key, Value: value}
	err := q.GORM(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "client_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{"value", "updated_at"},
		),
	}).Create(gi).Error
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// RemoveItem deletes the `key` item of the `client` client.
// Removing a missing item is not an error.
func RemoveItem[Q postgres.Queryer](
	ctx context.Context, q Q, client uuid.UUID, key string,
) error {
	err := q.GORM(ctx).Where(
		"client_id=? AND key=?", client, key,
	).Delete(&gItem{}).Error
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}
