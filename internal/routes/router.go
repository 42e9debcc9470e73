package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/middleware"
)

// SetupRoutes inicializa todas as rotas da aplicação.
func SetupRoutes(r *gin.Engine) {
	// Rotas públicas: apenas autenticação.
	RegisterAuthRoutes(r)

	// Tudo o mais exige token válido.
	autenticado := r.Group("/")
	autenticado.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(autenticado)
	}
}
