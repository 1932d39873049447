package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// User — учётная запись. Роль меняется только действием администратора.
// RfRu — необязательный классификационный код (до 24 символов).
type User struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Password  string      `json:"-"`
	Role      Role        `json:"role"`
	Name      string      `json:"name"`
	Surname   string      `json:"surname"`
	Email     string      `json:"email"`
	RfRu      null.String `json:"rfRu"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
