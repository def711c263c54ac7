package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/dto"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func at(d time.Duration) *dto.LocalTime {
	lt := dto.NewLocalTime(fixedNow.Add(d))
	return &lt
}

func TestValidator_Booking(t *testing.T) {
	v := New(clock)

	tests := []struct {
		name    string
		req     dto.CreateBookingRequest
		wantErr string
	}{
		{"valid", dto.CreateBookingRequest{ItemID: 1, Start: at(time.Hour), End: at(2 * time.Hour)}, ""},
		{"start now", dto.CreateBookingRequest{ItemID: 1, Start: at(0), End: at(time.Hour)}, ""},
		{"missing item", dto.CreateBookingRequest{Start: at(time.Hour), End: at(2 * time.Hour)}, "ItemID must not be blank"},
		{"missing end", dto.CreateBookingRequest{ItemID: 1, Start: at(time.Hour)}, "End must not be blank"},
		{"start in past", dto.CreateBookingRequest{ItemID: 1, Start: at(-time.Hour), End: at(time.Hour)}, "start must not be in the past"},
		{"end in past", dto.CreateBookingRequest{ItemID: 1, Start: at(time.Hour), End: at(-time.Hour)}, "end must be in the future"},
		{"end equals start", dto.CreateBookingRequest{ItemID: 1, Start: at(time.Hour), End: at(time.Hour)}, "end must be after start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, Message(err), tt.wantErr)
		})
	}
}

func TestValidator_User(t *testing.T) {
	v := New(clock)

	assert.NoError(t, v.Validate(dto.CreateUserRequest{Name: "Ann", Email: "ann@example.com"}))

	err := v.Validate(dto.CreateUserRequest{Name: "  ", Email: "ann@example.com"})
	require.Error(t, err)
	assert.Contains(t, Message(err), "Name must not be blank")

	err = v.Validate(dto.CreateUserRequest{Name: "Ann", Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, Message(err), "Email must be a valid email")

	assert.NoError(t, v.Validate(dto.UpdateUserRequest{Name: "Ann"}))
	assert.Error(t, v.Validate(dto.UpdateUserRequest{Email: "bad"}))
}

func TestValidator_Item(t *testing.T) {
	v := New(clock)
	yes := true

	assert.NoError(t, v.Validate(dto.CreateItemRequest{Name: "Drill", Description: "cordless", Available: &yes}))

	err := v.Validate(dto.CreateItemRequest{Name: "Drill", Description: "cordless"})
	require.Error(t, err)
	assert.Contains(t, Message(err), "Available must not be blank")

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	err = v.Validate(dto.UpdateItemRequest{Name: string(long)})
	require.Error(t, err)
	assert.Contains(t, Message(err), "at most 200")
}

func TestValidator_Page(t *testing.T) {
	v := New(clock)

	assert.NoError(t, v.Validate(dto.PageQuery{From: 0, Size: 1}))
	assert.Error(t, v.Validate(dto.PageQuery{From: -1, Size: 10}))
	assert.Error(t, v.Validate(dto.PageQuery{From: 0, Size: 0}))
}
