package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstraintErrors(t *testing.T) {
	fkErr := &pq.Error{Code: "23503", Constraint: "blogs_user_id_fkey"}
	uniqueErr := &pq.Error{Code: "23505", Constraint: "users_username_key"}

	testCases := []struct {
		name       string
		err        error
		foreignKey bool
		unique     bool
	}{
		{name: "foreign key violation", err: fkErr, foreignKey: true},
		{name: "wrapped foreign key violation", err: fmt.Errorf("insert: %w", fkErr), foreignKey: true},
		{name: "unique violation", err: uniqueErr, unique: true},
		{name: "other constraint", err: &pq.Error{Code: "23505", Constraint: "other_key"}},
		{name: "plain error", err: errors.New("boom")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.foreignKey, ForeignKeyError(tc.err, "blogs_user_id_fkey"))
			assert.Equal(t, tc.unique, UniqueViolationError(tc.err, "users_username_key"))
		})
	}
}

func TestMigrateDB(t *testing.T) {
	db := TestDB(t)

	// already migrated by TestDB, so this must be a no-op
	err := MigrateDB(db)
	assert.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM information_schema.tables WHERE table_name IN ('users', 'blogs', 'comments')").Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}
