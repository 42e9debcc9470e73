package config

import (
	"log/slog"
	"os"
)

var JwtKey []byte

func LoadJwtKey() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("Variável de ambiente JWT_SECRET não definida.")
		os.Exit(1)
	}
	JwtKey = []byte(secret)
}
