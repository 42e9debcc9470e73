package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/config"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

// DadosUsuarioCache é a fatia de dados do usuário mantida no Redis para
// evitar uma consulta ao banco por requisição.
type DadosUsuarioCache struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Perfil string `json:"perfil"`
}

// AuthMiddleware valida o token JWT (cookie ou header Authorization) e
// coloca user_id e perfil no contexto.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abortarNaoAutorizado(c, "Token de autenticação não informado")
				return
			}
			partes := strings.Split(authHeader, " ")
			if len(partes) != 2 || !strings.EqualFold(partes[0], "bearer") {
				abortarNaoAutorizado(c, "Formato do header Authorization inválido")
				return
			}
			tokenStr = partes[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		})
		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			abortarNaoAutorizado(c, "Token inválido ou expirado")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortarNaoAutorizado(c, "Claims do token inválidas")
			return
		}
		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			abortarNaoAutorizado(c, "Identificador de usuário inválido no token")
			return
		}
		userID := uint(userIDFloat)

		dados, err := carregarDadosUsuario(userID)
		if err != nil {
			abortarNaoAutorizado(c, "Usuário não encontrado")
			return
		}

		c.Set("user_id", dados.UserID)
		c.Set("perfil", dados.Perfil)
		c.Next()
	}
}

// carregarDadosUsuario tenta o cache do Redis antes do banco; o cache
// expira sozinho e é apagado quando o perfil do usuário muda.
func carregarDadosUsuario(userID uint) (*DadosUsuarioCache, error) {
	chave := fmt.Sprintf("usuario:%d:dados", userID)

	if config.RDB != nil {
		valor, err := config.RDB.Get(config.Ctx, chave).Result()
		if err == nil {
			var dados DadosUsuarioCache
			if json.Unmarshal([]byte(valor), &dados) == nil {
				return &dados, nil
			}
		}
	}

	var usuario models.Usuario
	if err := config.DB.First(&usuario, userID).Error; err != nil {
		return nil, err
	}
	dados := &DadosUsuarioCache{UserID: usuario.ID, Email: usuario.Email, Perfil: usuario.Perfil}

	if config.RDB != nil {
		if serializado, err := json.Marshal(dados); err == nil {
			if err := config.RDB.Set(config.Ctx, chave, serializado, 15*time.Minute).Err(); err != nil {
				slog.Warn("Falha ao gravar cache de usuário", "user_id", userID, "error", err)
			}
		}
	}
	return dados, nil
}

// InvalidarCacheUsuario remove a entrada de cache após alterações de
// perfil.
func InvalidarCacheUsuario(userID uint) {
	if config.RDB == nil {
		return
	}
	config.RDB.Del(config.Ctx, fmt.Sprintf("usuario:%d:dados", userID))
}

// AdminMiddleware restringe a rota a administradores. As regras de
// negócio reverificam a capacidade — esta camada só corta cedo.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("perfil") != models.PerfilAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Operação restrita a administradores"})
			return
		}
		c.Next()
	}
}

func abortarNaoAutorizado(c *gin.Context, motivo string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": motivo})
}
