package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/config"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/middleware"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

type LoginInput struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

// LoginHandler valida as credenciais e emite o token JWT em cookie e no
// corpo da resposta.
func LoginHandler(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe e-mail e senha"})
		return
	}

	var usuario models.Usuario
	if err := config.DB.Where("email = ?", input.Email).First(&usuario).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(input.Senha)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}

	expiracao := time.Now().Add(12 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": usuario.ID,
		"perfil":  usuario.Perfil,
		"exp":     expiracao.Unix(),
	})
	assinado, err := token.SignedString(config.JwtKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível emitir o token"})
		return
	}

	c.SetCookie("auth_token", assinado, int(time.Until(expiracao).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token":   assinado,
		"usuario": usuario,
	})
}

// LogoutHandler invalida o cookie de sessão.
func LogoutHandler(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Sessão encerrada"})
}

type RegistroInput struct {
	NomeCompleto string `json:"nomeCompleto" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Senha        string `json:"senha" binding:"required,min=8"`
	Perfil       string `json:"perfil" binding:"required"`
}

// RegisterHandler cadastra um novo usuário. Restrito a administradores
// pelo middleware da rota.
func RegisterHandler(c *gin.Context) {
	var input RegistroInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Senha), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível processar a senha"})
		return
	}

	usuario := models.Usuario{
		NomeCompleto: input.NomeCompleto,
		Email:        input.Email,
		SenhaHash:    string(hash),
		Perfil:       input.Perfil,
	}
	if err := config.DB.Create(&usuario).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível criar o usuário: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, usuario)
}

type AtualizarUsuarioInput struct {
	NomeCompleto string `json:"nomeCompleto"`
	Perfil       string `json:"perfil"`
	Senha        string `json:"senha"`
}

// AtualizarUsuarioHandler altera nome, perfil ou senha de um usuário.
// Restrito a administradores pelo middleware da rota; a entrada de
// cache do usuário é invalidada para o novo perfil valer já na próxima
// requisição.
func AtualizarUsuarioHandler(c *gin.Context) {
	var usuario models.Usuario
	if err := config.DB.First(&usuario, c.Param("usuarioId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	var input AtualizarUsuarioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	if input.NomeCompleto != "" {
		usuario.NomeCompleto = input.NomeCompleto
	}
	if input.Perfil != "" {
		usuario.Perfil = input.Perfil
	}
	if input.Senha != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Senha), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível processar a senha"})
			return
		}
		usuario.SenhaHash = string(hash)
	}

	if err := config.DB.Save(&usuario).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível atualizar o usuário: " + err.Error()})
		return
	}

	middleware.InvalidarCacheUsuario(usuario.ID)
	c.JSON(http.StatusOK, usuario)
}
