package services

import (
	"context"

	"request-tracker/internal/authz"
	"request-tracker/internal/dto"
	"request-tracker/internal/entities"
	"request-tracker/internal/repositories"
	apperrors "request-tracker/pkg/errors"
	"request-tracker/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserServiceInterface interface {
	GetProfile(ctx context.Context) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, payload dto.UpdateProfileDTO) (*dto.UserDTO, error)
	GetUsers(ctx context.Context, limit, offset uint64) ([]dto.UserDTO, uint64, error)
	AdminUpdateUser(ctx context.Context, userID uuid.UUID, payload dto.AdminUpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	gate     *authz.Gate
	logger   *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	gate *authz.Gate,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{userRepo: userRepo, gate: gate, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context) (*dto.UserDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	result := dto.UserToDTO(actor)
	return &result, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, payload dto.UpdateProfileDTO) (*dto.UserDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	// Профиль правит только сам владелец; роль здесь неизменяема.
	user, err := s.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if payload.Name != "" {
		user.Name = payload.Name
	}
	if payload.Surname != "" {
		user.Surname = payload.Surname
	}
	if payload.Email != "" {
		user.Email = payload.Email
	}
	if payload.RfRu != "" {
		user.RfRu = null.StringFrom(payload.RfRu)
	}

	updated, err := s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	result := dto.UserToDTO(updated)
	return &result, nil
}

func (s *UserService) GetUsers(ctx context.Context, limit, offset uint64) ([]dto.UserDTO, uint64, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := s.gate.Can(actor, authz.ManageUser, nil); err != nil {
		return nil, 0, err
	}

	users, total, err := s.userRepo.GetUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		result = append(result, dto.UserToDTO(&users[i]))
	}
	return result, total, nil
}

func (s *UserService) AdminUpdateUser(ctx context.Context, userID uuid.UUID, payload dto.AdminUpdateUserDTO) (*dto.UserDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Can(actor, authz.ManageUser, nil); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payload.Username != "" {
		user.Username = payload.Username
	}
	if payload.Name != "" {
		user.Name = payload.Name
	}
	if payload.Surname != "" {
		user.Surname = payload.Surname
	}
	if payload.Email != "" {
		user.Email = payload.Email
	}
	if payload.RfRu != "" {
		user.RfRu = null.StringFrom(payload.RfRu)
	}
	if payload.Role != "" {
		role, ok := entities.ParseRole(payload.Role)
		if !ok {
			return nil, apperrors.NewInvalidInputError("неизвестная роль: %s", payload.Role)
		}
		if user.ID == actor.ID && role != entities.RoleAdmin {
			// Админ не может снять роль с самого себя и потерять доступ
			// к управлению пользователями.
			return nil, apperrors.ErrForbidden
		}
		user.Role = role
	}

	updated, err := s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("пользователь обновлён администратором",
		zap.String("userId", updated.ID.String()),
		zap.String("adminId", actor.ID.String()),
	)
	result := dto.UserToDTO(updated)
	return &result, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return err
	}
	if err := s.gate.Can(actor, authz.ManageUser, nil); err != nil {
		return err
	}
	if actor.ID == userID {
		return apperrors.ErrForbidden
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("пользователь удалён администратором",
		zap.String("userId", userID.String()),
		zap.String("adminId", actor.ID.String()),
	)
	return nil
}
