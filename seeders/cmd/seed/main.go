package main

import (
	"flag"
	"log"

	"deltica/pkg/config"
	"deltica/pkg/database/postgresql"
	"deltica/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runRegistry := flag.Bool("registry", false, "Запустить наполнение реестра оборудования демо-данными")
	runAll := flag.Bool("all", false, "Запустить все сидеры")

	flag.Parse()

	if !*runRegistry && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -registry")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	if err := postgresql.RunMigrations(cfg.Postgres.DSN); err != nil {
		log.Fatalf("❌ Ошибка применения миграций: %v", err)
	}

	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runRegistry {
		seeders.SeedRegistry(dbPool)
		log.Println("======================================================")
	}

	log.Println("🎉 Готово.")
}
