package entities

import (
	"time"

	"github.com/google/uuid"
)

// Message — сообщение в треде заявки. Append-only: редактирования и
// удаления по одному сообщению нет, тред удаляется только каскадом
// вместе с заявкой. Флаг needCorrection не хранится — это триггер
// на создании (см. MessageService.PostMessage).
type Message struct {
	ID        uuid.UUID `json:"id"`
	RequestID uuid.UUID `json:"requestId"`
	UserID    uuid.UUID `json:"userId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
