package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"request-tracker/pkg/config"
)

// SeedUsers создаёт администратора (учётные данные — из конфигурации)
// и демонстрационных пользователей.
func SeedUsers(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("▶️  Запуск создания пользователей...")

	if err := seedAdmin(ctx, db, cfg.Seed); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
	if err := seedDemoUsers(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка создания демонстрационных пользователей: %v", err)
	}

	log.Println("✅ Создание пользователей завершено!")
}
