package handlers

import (
	"fmt"
	"net/http"

	"github.com/Knetic/govaluate"
	"github.com/gin-gonic/gin"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/config"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/planilha"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

type ReajusteInput struct {
	// Parametros alimenta a fórmula com os índices do período
	// (ex.: {"I0": 812.4, "I1": 845.1}).
	Parametros map[string]float64 `json:"parametros" binding:"required"`
}

// CalcularReajusteHandler avalia a fórmula paramétrica de reajuste
// cadastrada na obra. Além dos índices informados, a fórmula enxerga
// "V" (valor vigente do contrato, com aditivos) e "V0" (valor
// original). O resultado não é persistido — reajuste efetivado vira um
// aditivo como outro qualquer.
func CalcularReajusteHandler(c *gin.Context) {
	var obra models.Obra
	if err := config.DB.First(&obra, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}
	if obra.FormulaReajuste == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "A obra não tem fórmula de reajuste cadastrada"})
		return
	}

	var input ReajusteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	vigente, err := valorVigente(&obra)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível apurar o valor vigente: " + err.Error()})
		return
	}

	parametros := make(map[string]interface{}, len(input.Parametros)+2)
	for nome, valor := range input.Parametros {
		parametros[nome] = valor
	}
	parametros["V"] = vigente
	parametros["V0"] = obra.ValorOriginal

	expressao, err := govaluate.NewEvaluableExpression(obra.FormulaReajuste)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("Fórmula inválida %q: %v", obra.FormulaReajuste, err)})
		return
	}
	resultado, err := expressao.Evaluate(parametros)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Não foi possível avaliar a fórmula: " + err.Error()})
		return
	}
	valor, ok := resultado.(float64)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "O resultado da fórmula não é numérico"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"formula":       obra.FormulaReajuste,
		"valorVigente":  vigente,
		"valorReajuste": planilha.Arredondar2(valor),
	})
}
