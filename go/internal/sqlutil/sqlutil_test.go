package sqlutil

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestInt32Conversions(t *testing.T) {
	assert.False(t, ToSqlInt32(nil).Valid)
	assert.Nil(t, FromSqlInt32(sql.NullInt32{}))

	v := 4
	n := ToSqlInt32(&v)
	assert.True(t, n.Valid)
	assert.Equal(t, int32(4), n.Int32)

	back := FromSqlInt32(n)
	if assert.NotNil(t, back) {
		assert.Equal(t, 4, *back)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}

	assert.True(t, IsUniqueViolation(dup))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert room: %w", dup)))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
	assert.False(t, IsUniqueViolation(nil))
}
