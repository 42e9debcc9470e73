package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/config"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/routes"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("Arquivo .env não encontrado, usando variáveis de ambiente do processo")
	}

	config.LoadJwtKey()
	config.ConnectDB()
	config.ConnectRedis()

	err := config.DB.AutoMigrate(
		&models.Usuario{},
		&models.Obra{},
		&models.ContatoObra{},
		&models.ItemOrcamento{},
		&models.Medicao{},
		&models.MedicaoItem{},
		&models.Aditivo{},
		&models.AditivoItem{},
		&models.CronogramaFinanceiro{},
		&models.CronogramaItem{},
		&models.CronogramaPeriodo{},
		&models.RelatorioDiario{},
		&models.AtividadeRdo{},
		&models.ImportacaoRdo{},
		&models.NotificacaoAtraso{},
	)
	if err != nil {
		slog.Error("Falha na migração do banco", "error", err)
		os.Exit(1)
	}

	r := gin.Default()
	routes.SetupRoutes(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}
	slog.Info("Servidor iniciado", "porta", porta)
	if err := r.Run(":" + porta); err != nil {
		slog.Error("Servidor encerrado com erro", "error", err)
		os.Exit(1)
	}
}
