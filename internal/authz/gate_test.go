package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"request-tracker/internal/entities"
	apperrors "request-tracker/pkg/errors"
)

func userWithRole(role entities.Role) *entities.User {
	return &entities.User{ID: uuid.New(), Role: role}
}

func TestGateNilActorIsUnauthenticated(t *testing.T) {
	gate := NewGate()

	err := gate.Can(nil, CreateRequest, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGateManageUser(t *testing.T) {
	gate := NewGate()

	assert.NoError(t, gate.Can(userWithRole(entities.RoleAdmin), ManageUser, nil))
	assert.ErrorIs(t, gate.Can(userWithRole(entities.RoleDispatcher), ManageUser, nil), apperrors.ErrForbidden)
	assert.ErrorIs(t, gate.Can(userWithRole(entities.RoleManager), ManageUser, nil), apperrors.ErrForbidden)
}

func TestGateCreateRequestAllowedForAll(t *testing.T) {
	gate := NewGate()

	for _, role := range []entities.Role{entities.RoleManager, entities.RoleDispatcher, entities.RoleAdmin} {
		assert.NoError(t, gate.Can(userWithRole(role), CreateRequest, nil))
	}
}

func TestGateDeleteRequest(t *testing.T) {
	gate := NewGate()
	owner := userWithRole(entities.RoleManager)
	request := &entities.Request{ID: uuid.New(), UserID: owner.ID}

	assert.NoError(t, gate.Can(owner, DeleteRequest, request))
	assert.NoError(t, gate.Can(userWithRole(entities.RoleAdmin), DeleteRequest, request))

	// Диспетчер не владелец — удалять не может, даже видимую заявку.
	assert.ErrorIs(t, gate.Can(userWithRole(entities.RoleDispatcher), DeleteRequest, request), apperrors.ErrForbidden)

	otherManager := userWithRole(entities.RoleManager)
	assert.ErrorIs(t, gate.Can(otherManager, DeleteRequest, request), apperrors.ErrForbidden)
}

func TestGateUpdateAndComplete(t *testing.T) {
	gate := NewGate()
	owner := userWithRole(entities.RoleManager)
	request := &entities.Request{ID: uuid.New(), UserID: owner.ID}

	for _, action := range []Action{UpdateRequest, CompleteRequest} {
		assert.NoError(t, gate.Can(owner, action, request))
		assert.NoError(t, gate.Can(userWithRole(entities.RoleDispatcher), action, request))
		assert.NoError(t, gate.Can(userWithRole(entities.RoleAdmin), action, request))

		otherManager := userWithRole(entities.RoleManager)
		assert.ErrorIs(t, gate.Can(otherManager, action, request), apperrors.ErrForbidden)
	}
}

func TestGateUnknownActionForbidden(t *testing.T) {
	gate := NewGate()

	err := gate.Can(userWithRole(entities.RoleAdmin), Action("requests:export"), nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCanTriggerCorrection(t *testing.T) {
	gate := NewGate()

	assert.True(t, gate.CanTriggerCorrection(userWithRole(entities.RoleDispatcher)))
	assert.True(t, gate.CanTriggerCorrection(userWithRole(entities.RoleAdmin)))
	assert.False(t, gate.CanTriggerCorrection(userWithRole(entities.RoleManager)))
	assert.False(t, gate.CanTriggerCorrection(nil))
}
