package dto

import (
	"request-tracker/internal/entities"
)

// UserDTO — денормализованная сводка о пользователе (владельце заявки,
// авторе сообщения); пароль наружу не отдаётся никогда.
type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	RfRu     string `json:"rfRu,omitempty"`
}

func UserToDTO(u *entities.User) UserDTO {
	return UserDTO{
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     u.Role.String(),
		Name:     u.Name,
		Surname:  u.Surname,
		Email:    u.Email,
		RfRu:     u.RfRu.String,
	}
}

// UpdateProfileDTO — самостоятельное редактирование профиля.
type UpdateProfileDTO struct {
	Name    string `json:"name" validate:"omitempty,max=100"`
	Surname string `json:"surname" validate:"omitempty,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	RfRu    string `json:"rfRu" validate:"omitempty,max=24"`
}

// AdminUpdateUserDTO — админское редактирование: в дополнение к профилю
// меняет роль. Только этим путём роль вообще может измениться.
type AdminUpdateUserDTO struct {
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Surname  string `json:"surname" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	RfRu     string `json:"rfRu" validate:"omitempty,max=24"`
	Role     string `json:"role" validate:"omitempty,oneof=MANAGER DISPATCHER ADMIN"`
}
