package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"request-tracker/internal/entities"
	"request-tracker/pkg/config"
	"request-tracker/pkg/utils"
)

func seedAdmin(ctx context.Context, db *pgxpool.Pool, seed config.SeedConfig) error {
	log.Printf("  - Создание пользователя %q...", seed.AdminUsername)
	return seedUser(ctx, db, seed.AdminUsername, seed.AdminPassword, entities.RoleAdmin, "Администратор", "Системы", seed.AdminEmail)
}

func seedDemoUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание демонстрационных пользователей...")
	if err := seedUser(ctx, db, "manager", "manager12345", entities.RoleManager, "Менеджер", "Демо", "manager@example.com"); err != nil {
		return err
	}
	return seedUser(ctx, db, "dispatcher", "dispatcher12345", entities.RoleDispatcher, "Диспетчер", "Демо", "dispatcher@example.com")
}

func seedUser(ctx context.Context, db *pgxpool.Pool, username, password string, role entities.Role, name, surname, email string) error {
	var existingID uuid.UUID
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&existingID)
	if err == nil {
		log.Printf("    - Пользователь %q уже существует. Пропускаем.", username)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка проверки существования пользователя %q: %w", username, err)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, username, password, role, name, surname, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := db.Exec(ctx, query, uuid.New(), username, hashedPassword, role.String(), name, surname, email); err != nil {
		return fmt.Errorf("ошибка создания пользователя %q: %w", username, err)
	}

	log.Printf("    - Пользователь %q успешно создан.", username)
	return nil
}
