package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/handlers"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/middleware"
)

// RegisterAuthRoutes registra as rotas públicas de autenticação.
func RegisterAuthRoutes(r *gin.Engine) {
	r.POST("/login", handlers.LoginHandler)
	r.GET("/logout", handlers.LogoutHandler)

	// Cadastro de usuário é restrito a administradores autenticados.
	r.POST("/register", middleware.AuthMiddleware(), middleware.AdminMiddleware(), handlers.RegisterHandler)
}
