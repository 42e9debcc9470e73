package config

import (
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		slog.Error("Variável de ambiente DB_URL não definida.")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("Falha ao conectar no banco de dados", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("Conexão com o banco de dados estabelecida")
}
