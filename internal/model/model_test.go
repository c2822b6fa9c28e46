package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockStatus(t *testing.T) {
	tests := map[int]string{-1: StockOut, 0: StockOut, 1: StockLow, 3: StockLow, 4: StockIn, 100: StockIn}
	for qty, want := range tests {
		assert.Equal(t, want, StockStatus(qty), "qty %d", qty)
	}
}

func TestRecord_JSON(t *testing.T) {
	r := NewRecord(7, RecordFields{Title: "X", Price: decimal.RequireFromString("9.99")})

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, 9.99, m["price"])
	assert.Equal(t, "", m["customerId"])
	assert.Contains(t, m, "customerEmail")
	assert.EqualValues(t, 7, m["id"])
}

func TestRecord_FieldsRoundTrip(t *testing.T) {
	f := DefaultRecords[0]
	assert.Equal(t, f, NewRecord(1, f).Fields())
}

func TestRoles(t *testing.T) {
	assert.Equal(t, []string{PrivRecordView, PrivRecordCreate}, PrivilegesFor(RoleClerk))
	assert.Len(t, PrivilegesFor(RoleAdmin), len(DefaultPrivileges))
	assert.Nil(t, PrivilegesFor("guest"))

	assert.True(t, IsValidRole(RoleManager))
	assert.False(t, IsValidRole(""))

	p := PrivilegesFor(RoleAdmin)
	p[0] = "changed"
	assert.Equal(t, PrivRecordView, PrivilegesFor(RoleAdmin)[0])
}

func TestUser_Password(t *testing.T) {
	u := User{Email: "a@b.c"}
	require.NoError(t, u.SetPassword("password"))
	assert.NotEqual(t, "password", u.Password)
	assert.True(t, u.CheckPassword("password"))
	assert.False(t, u.CheckPassword("Password"))
	assert.False(t, u.CheckPassword("password\x00"))
	assert.False(t, u.CheckPassword("password\x00password"))
	assert.False(t, u.CheckPassword(""))

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), u.Password)
}
