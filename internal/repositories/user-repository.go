package repositories

import (
	"context"
	"errors"
	"fmt"

	"request-tracker/internal/entities"
	apperrors "request-tracker/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const userSelectFields = "u.id, u.username, u.password, u.role, u.name, u.surname, u.email, u.rf_ru, u.created_at, u.updated_at"

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, limit, offset uint64) ([]entities.User, uint64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	var role string
	err := row.Scan(
		&user.ID, &user.Username, &user.Password, &role,
		&user.Name, &user.Surname, &user.Email, &user.RfRu,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	parsed, ok := entities.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("неизвестная роль %q у пользователя %s", role, user.ID)
	}
	user.Role = parsed
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users u WHERE u.id = $1", userSelectFields)
	user, err := scanUser(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapStorageErr("поиск пользователя по id", err)
	}
	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users u WHERE u.username = $1", userSelectFields)
	user, err := scanUser(r.storage.QueryRow(ctx, query, username))
	if err != nil {
		return nil, wrapStorageErr("поиск пользователя по username", err)
	}
	return user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, limit, offset uint64) ([]entities.User, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, wrapStorageErr("подсчёт пользователей", err)
	}

	query, args, err := sq.
		Select(userSelectFields).
		From("users u").
		OrderBy("u.created_at DESC").
		Limit(limit).
		Offset(offset).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса списка пользователей: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapStorageErr("получение списка пользователей", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования пользователя в списке: %w", err)
		}
		users = append(users, *user)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	query := `
		INSERT INTO users (id, username, password, role, name, surname, email, rf_ru, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.storage.QueryRow(ctx, query,
		user.ID, user.Username, user.Password, user.Role.String(),
		user.Name, user.Surname, user.Email, user.RfRu,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, wrapStorageErr("создание пользователя", err)
	}
	return user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	query := `
		UPDATE users
		SET username = $2, role = $3, name = $4, surname = $5, email = $6, rf_ru = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.storage.QueryRow(ctx, query,
		user.ID, user.Username, user.Role.String(),
		user.Name, user.Surname, user.Email, user.RfRu,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapStorageErr("обновление пользователя", err)
	}
	return user, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return wrapStorageErr("удаление пользователя", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
