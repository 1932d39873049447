package dto

import (
	"time"

	"request-tracker/internal/entities"
)

type CreateMessageDTO struct {
	Message        string `json:"message" validate:"required,min=1,max=1000"`
	NeedCorrection bool   `json:"needCorrection"`
}

// MessageDTO — сообщение треда со сводкой об авторе.
type MessageDTO struct {
	ID        string  `json:"id"`
	RequestID string  `json:"requestId"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"createdAt"`
	User      UserDTO `json:"user"`
}

func MessageToDTO(m *entities.Message, author *entities.User) MessageDTO {
	out := MessageDTO{
		ID:        m.ID.String(),
		RequestID: m.RequestID.String(),
		Message:   m.Message,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if author != nil {
		out.User = UserToDTO(author)
	}
	return out
}
