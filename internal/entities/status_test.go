package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestStatusTransitions(t *testing.T) {
	testCases := []struct {
		name    string
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{"создана -> некорректна", StatusCreated, StatusIncorrect, true},
		{"создана -> выполнена", StatusCreated, StatusCompleted, true},
		{"некорректна -> выполнена", StatusIncorrect, StatusCompleted, true},
		{"некорректна -> создана", StatusIncorrect, StatusCreated, false},
		{"выполнена -> создана", StatusCompleted, StatusCreated, false},
		{"выполнена -> некорректна", StatusCompleted, StatusIncorrect, false},
		{"создана -> создана", StatusCreated, StatusCreated, false},
		{"выполнена -> выполнена", StatusCompleted, StatusCompleted, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestRequestStatusIsFinal(t *testing.T) {
	assert.False(t, StatusCreated.IsFinal())
	assert.False(t, StatusIncorrect.IsFinal())
	assert.True(t, StatusCompleted.IsFinal())
}

func TestParseRequestStatus(t *testing.T) {
	st, ok := ParseRequestStatus("CREATED")
	assert.True(t, ok)
	assert.Equal(t, StatusCreated, st)

	_, ok = ParseRequestStatus("UNKNOWN")
	assert.False(t, ok)

	// Регистр значим: статусы храним в верхнем регистре.
	_, ok = ParseRequestStatus("created")
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("DISPATCHER")
	assert.True(t, ok)
	assert.Equal(t, RoleDispatcher, role)

	_, ok = ParseRole("SUPERADMIN")
	assert.False(t, ok)
}
