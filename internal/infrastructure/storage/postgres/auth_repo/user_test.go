package auth_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/domain/auth"
)

func TestListQuery(t *testing.T) {
	active := true
	q := listQuery(auth.UserFilter{Search: "ram", Role: "staff", IsActive: &active})

	sql, args, err := q.Column("COUNT(*)").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM users WHERE (email ILIKE $1 OR name ILIKE $2) AND role = $3 AND is_active = $4", sql)
	assert.Equal(t, []any{"%ram%", "%ram%", "staff", true}, args)
}

func TestListQuery_NoFilter(t *testing.T) {
	sql, args, err := listQuery(auth.UserFilter{}).Column("COUNT(*)").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM users", sql)
	assert.Empty(t, args)
}
