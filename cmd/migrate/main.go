package main

import (
	"database/sql"
	"flag"
	"log"

	"request-tracker/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	command := flag.String("command", "up", "Команда goose: up, down, status")
	dir := flag.String("dir", "migrations", "Каталог с миграциями")
	flag.Parse()

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ Ошибка подключения к БД: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("❌ Ошибка установки диалекта goose: %v", err)
	}

	switch *command {
	case "up":
		err = goose.Up(db, *dir)
	case "down":
		err = goose.Down(db, *dir)
	case "status":
		err = goose.Status(db, *dir)
	default:
		log.Fatalf("❌ Неизвестная команда: %s", *command)
	}
	if err != nil {
		log.Fatalf("❌ Ошибка выполнения миграций: %v", err)
	}

	log.Println("✅ Миграции успешно применены.")
}
