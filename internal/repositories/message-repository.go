package repositories

import (
	"context"
	"fmt"

	"request-tracker/internal/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// MessageWithAuthor — сообщение треда вместе с автором.
type MessageWithAuthor struct {
	Message entities.Message
	Author  entities.User
}

type MessageRepositoryInterface interface {
	CreateMessageInTx(ctx context.Context, tx pgx.Tx, message *entities.Message) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]MessageWithAuthor, error)
	DeleteByRequestInTx(ctx context.Context, tx pgx.Tx, requestID uuid.UUID) error
}

type MessageRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMessageRepository(storage *pgxpool.Pool, logger *zap.Logger) MessageRepositoryInterface {
	return &MessageRepository{storage: storage, logger: logger}
}

func (r *MessageRepository) CreateMessageInTx(ctx context.Context, tx pgx.Tx, message *entities.Message) error {
	query := `
		INSERT INTO messages (id, request_id, user_id, message, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at`

	err := tx.QueryRow(ctx, query, message.ID, message.RequestID, message.UserID, message.Message).
		Scan(&message.CreatedAt)
	if err != nil {
		return wrapStorageErr("создание сообщения", err)
	}
	return nil
}

func (r *MessageRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]MessageWithAuthor, error) {
	query := `
		SELECT m.id, m.request_id, m.user_id, m.message, m.created_at,
			u.id, u.username, u.role, u.name, u.surname, u.email, u.rf_ru
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.request_id = $1
		ORDER BY m.created_at ASC`

	rows, err := r.storage.Query(ctx, query, requestID)
	if err != nil {
		return nil, wrapStorageErr("получение сообщений заявки", err)
	}
	defer rows.Close()

	messages := make([]MessageWithAuthor, 0)
	for rows.Next() {
		var item MessageWithAuthor
		var role string
		err := rows.Scan(
			&item.Message.ID, &item.Message.RequestID, &item.Message.UserID,
			&item.Message.Message, &item.Message.CreatedAt,
			&item.Author.ID, &item.Author.Username, &role, &item.Author.Name,
			&item.Author.Surname, &item.Author.Email, &item.Author.RfRu,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования сообщения: %w", err)
		}
		parsed, ok := entities.ParseRole(role)
		if !ok {
			return nil, fmt.Errorf("неизвестная роль %q у пользователя %s", role, item.Author.ID)
		}
		item.Author.Role = parsed
		messages = append(messages, item)
	}
	return messages, rows.Err()
}

// DeleteByRequestInTx удаляет весь тред заявки. Вызывается в одной
// транзакции с удалением самой заявки: либо оба, либо ничего.
func (r *MessageRepository) DeleteByRequestInTx(ctx context.Context, tx pgx.Tx, requestID uuid.UUID) error {
	if _, err := tx.Exec(ctx, "DELETE FROM messages WHERE request_id = $1", requestID); err != nil {
		return wrapStorageErr("удаление сообщений заявки", err)
	}
	return nil
}
