// make-admin выдаёт права администратора пользователю по номеру телефона.
// Пользователь должен хотя бы раз войти в приложение, чтобы запись
// существовала.
//
// Использование:
//
//	make-admin -phone +4915112345678
package main

import (
	"flag"
	"log"
	"os"

	"github.com/yourusername/rewardquiz-api/internal/config"
	pgRepo "github.com/yourusername/rewardquiz-api/internal/repository/postgres"
	"github.com/yourusername/rewardquiz-api/internal/service"
	"github.com/yourusername/rewardquiz-api/pkg/database"
)

func main() {
	phone := flag.String("phone", "", "номер телефона пользователя в формате E.164")
	flag.Parse()

	if *phone == "" {
		flag.Usage()
		os.Exit(2)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userService := service.NewUserService(pgRepo.NewUserRepo(db))

	user, err := userService.PromoteByPhone(*phone)
	if err != nil {
		log.Fatalf("Failed to promote user %s: %v", *phone, err)
	}

	log.Printf("Пользователь %s (id=%s) теперь администратор", user.PhoneNumber, user.ID)
}
