package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"request-tracker/internal/authz"
	"request-tracker/internal/dto"
	"request-tracker/internal/entities"
	apperrors "request-tracker/pkg/errors"
)

func newMessageService(store *fakeStore) MessageServiceInterface {
	return NewMessageService(
		&fakeTxManager{},
		&fakeRequestRepo{store: store},
		&fakeMessageRepo{store: store},
		authz.NewGate(),
		zap.NewNop(),
	)
}

func TestPostMessageAppendsToThread(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser(entities.RoleManager)
	request := store.addRequest(owner, entities.StatusCreated)
	svc := newMessageService(store)

	posted, err := svc.PostMessage(ctxWithActor(owner), request.ID, dto.CreateMessageDTO{Message: "уточните склад"})
	require.NoError(t, err)
	assert.Equal(t, "уточните склад", posted.Message)

	messages, err := svc.GetMessages(ctxWithActor(owner), request.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, owner.ID.String(), messages[0].User.ID)
}

func TestPostMessageInvisibleRequestIsNotFound(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser(entities.RoleManager)
	stranger := store.addUser(entities.RoleManager)
	request := store.addRequest(owner, entities.StatusCreated)
	svc := newMessageService(store)

	_, err := svc.PostMessage(ctxWithActor(stranger), request.ID, dto.CreateMessageDTO{Message: "чужая"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, store.messages)
}

func TestPostMessageNeedCorrectionByDispatcher(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser(entities.RoleManager)
	dispatcher := store.addUser(entities.RoleDispatcher)
	request := store.addRequest(owner, entities.StatusCreated)
	svc := newMessageService(store)

	_, err := svc.PostMessage(ctxWithActor(dispatcher), request.ID, dto.CreateMessageDTO{
		Message:        "не заполнен склад",
		NeedCorrection: true,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.StatusIncorrect, store.requests[request.ID].Status)
	assert.Len(t, store.messages, 1)
}

func TestPostMessageNeedCorrectionIdempotentOnIncorrect(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser(entities.RoleManager)
	dispatcher := store.addUser(entities.RoleDispatcher)
	request := store.addRequest(owner, entities.StatusIncorrect)
	svc := newMessageService(store)

	_, err := svc.PostMessage(ctxWithActor(dispatcher), request.ID, dto.CreateMessageDTO{
		Message:        "всё ещё неверно",
		NeedCorrection: true,
	})
	require.NoError(t, err)

	// Статус не меняется, сообщение сохраняется.
	assert.Equal(t, entities.StatusIncorrect, store.requests[request.ID].Status)
	assert.Len(t, store.messages, 1)
}

func TestPostMessageNeedCorrectionOnCompletedIsRejected(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser(entities.RoleManager)
	dispatcher := store.addUser(entities.RoleDispatcher)
	request := store.addRequest(owner, entities.StatusCompleted)
	svc := newMessageService(store)

	_, err := svc.PostMessage(ctxWithActor(dispatcher), request.ID, dto.CreateMessageDTO{
		Message:        "поздно",
		NeedCorrection: true,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	assert.Equal(t, entities.StatusCompleted, store.requests[request.ID].Status)
	// Сообщение тоже не сохраняется.
	assert.Empty(t, store.messages)
}

func TestPostMessageNeedCorrectionByManagerIsIgnored(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser(entities.RoleManager)
	request := store.addRequest(owner, entities.StatusCreated)
	svc := newMessageService(store)

	_, err := svc.PostMessage(ctxWithActor(owner), request.ID, dto.CreateMessageDTO{
		Message:        "пометьте некорректной",
		NeedCorrection: true,
	})
	require.NoError(t, err)

	// Флаг менеджера молча игнорируется: сообщение есть, статус прежний.
	assert.Equal(t, entities.StatusCreated, store.requests[request.ID].Status)
	assert.Len(t, store.messages, 1)
}

func TestPostMessageCompletedRequestWithoutFlagAllowed(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser(entities.RoleManager)
	request := store.addRequest(owner, entities.StatusCompleted)
	svc := newMessageService(store)

	// Тред живёт и после выполнения заявки.
	_, err := svc.PostMessage(ctxWithActor(owner), request.ID, dto.CreateMessageDTO{Message: "спасибо"})
	require.NoError(t, err)
	assert.Len(t, store.messages, 1)
}
