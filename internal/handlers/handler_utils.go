package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/config"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

// usuarioIDDoContexto extrai o id do usuário autenticado colocado no
// contexto pelo middleware.
func usuarioIDDoContexto(c *gin.Context) (uint, error) {
	val, ok := c.Get("user_id")
	if !ok {
		return 0, fmt.Errorf("user_id ausente no contexto")
	}
	switch v := val.(type) {
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	case int64:
		return uint(v), nil
	case float64:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("tipo inesperado de user_id: %T", val)
	}
}

// usuarioAtual carrega o usuário autenticado a partir do banco.
func usuarioAtual(c *gin.Context) (*models.Usuario, error) {
	id, err := usuarioIDDoContexto(c)
	if err != nil {
		return nil, err
	}
	var usuario models.Usuario
	if err := config.DB.First(&usuario, id).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

// parseData aceita datas no formato ISO (2006-01-02).
func parseData(valor string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", valor, time.UTC)
}
