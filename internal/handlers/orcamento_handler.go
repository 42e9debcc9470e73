package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/config"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/lifecycle"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/planilha"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

// ImportarOrcamentoHandler recebe a planilha orçamentária, roda o
// parser e devolve a prévia (itens, erros e avisos) sem gravar nada.
// A confirmação em /confirmar é que persiste.
func ImportarOrcamentoHandler(c *gin.Context) {
	var obra models.Obra
	if err := config.DB.First(&obra, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}

	arquivo, err := c.FormFile("arquivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Envie a planilha no campo \"arquivo\""})
		return
	}

	leitor, err := arquivo.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível abrir o arquivo enviado"})
		return
	}
	defer leitor.Close()

	grade, err := planilha.Parse(leitor, arquivo.Filename)
	if err != nil {
		if errors.Is(err, planilha.ErrNenhumaAbaUtilizavel) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Não foi possível ler a planilha: " + err.Error()})
		return
	}

	resultado, err := planilha.ImportarOrcamento(grade)
	if err != nil {
		var estrutural *planilha.ErroEstruturalColunas
		if errors.As(err, &estrutural) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":    estrutural.Error(),
				"faltando": estrutural.Faltando,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso": resultado.Sucesso(),
		"itens":   resultado.Itens,
		"erros":   resultado.Erros,
		"avisos":  resultado.Avisos,
		"resumo":  resultado.Resumo,
	})
}

type ConfirmarOrcamentoInput struct {
	Itens []models.ItemOrcamento `json:"itens" binding:"required"`
}

// ConfirmarOrcamentoHandler grava os itens validados na prévia,
// substituindo o orçamento contratual anterior da obra. Itens
// extracontratuais (criados por aditivos) não são tocados.
func ConfirmarOrcamentoHandler(c *gin.Context) {
	var obra models.Obra
	if err := config.DB.First(&obra, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}

	var input ConfirmarOrcamentoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}
	if len(input.Itens) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Nenhum item para importar"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("obra_id = ? AND origem = ?", obra.ID, models.OrigemContrato).
			Delete(&models.ItemOrcamento{}).Error; err != nil {
			return err
		}
		for i := range input.Itens {
			input.Itens[i].ID = 0
			input.Itens[i].ObraID = obra.ID
			input.Itens[i].Origem = models.OrigemContrato
			input.Itens[i].Ordem = i + 1
		}
		return tx.Create(&input.Itens).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível gravar o orçamento: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"importados": len(input.Itens)})
}

// ListarItensObraHandler lista o orçamento completo da obra, itens do
// contrato e extracontratuais, na ordem da planilha.
func ListarItensObraHandler(c *gin.Context) {
	var itens []models.ItemOrcamento
	err := config.DB.Where("obra_id = ?", c.Param("id")).
		Order("origem, ordem").Find(&itens).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível listar os itens"})
		return
	}
	if itens == nil {
		itens = make([]models.ItemOrcamento, 0)
	}
	c.JSON(http.StatusOK, itens)
}

type ItemEdicaoInput struct {
	Descricao     *string  `json:"descricao"`
	Unidade       *string  `json:"unidade"`
	Quantidade    *float64 `json:"quantidade"`
	PrecoUnitario *float64 `json:"precoUnitario"`
	PrecoTotal    *float64 `json:"precoTotal"`
}

// AtualizarItemHandler edita um item manualmente. A edição é recusada
// quando alguma medição bloqueada referencia o item ou, para item
// extracontratual, quando o aditivo que o criou está publicado.
func AtualizarItemHandler(c *gin.Context) {
	var item models.ItemOrcamento
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item não encontrado"})
		return
	}

	var medicoesBloqueadas int64
	err := config.DB.Table("medicao_itens mi").
		Joins("JOIN medicoes m ON m.id = mi.medicao_id").
		Where("mi.item_orcamento_id = ? AND m.bloqueada = TRUE AND m.deleted_at IS NULL", item.ID).
		Count(&medicoesBloqueadas).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao verificar medições do item"})
		return
	}
	if medicoesBloqueadas > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "O item pertence a uma medição bloqueada e não pode ser editado"})
		return
	}

	if item.Origem == models.OrigemExtracontratual {
		var publicados int64
		err := config.DB.Table("aditivo_itens ai").
			Joins("JOIN aditivos a ON a.id = ai.aditivo_id").
			Where("ai.item_orcamento_id = ? AND a.bloqueado = TRUE AND a.deleted_at IS NULL", item.ID).
			Count(&publicados).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao verificar aditivos do item"})
			return
		}
		if publicados > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": lifecycle.ErrAditivoPublicado.Error()})
			return
		}
	}

	var input ItemEdicaoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	if input.Descricao != nil {
		item.Descricao = *input.Descricao
	}
	if input.Unidade != nil {
		item.Unidade = *input.Unidade
	}
	if input.Quantidade != nil {
		item.Quantidade = *input.Quantidade
	}
	if input.PrecoUnitario != nil {
		item.PrecoUnitario = *input.PrecoUnitario
	}
	if input.PrecoTotal != nil {
		item.PrecoTotal = *input.PrecoTotal
	} else if input.Quantidade != nil || input.PrecoUnitario != nil {
		item.PrecoTotal = planilha.Arredondar2(item.Quantidade * item.PrecoUnitario)
	}

	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível salvar o item"})
		return
	}
	c.JSON(http.StatusOK, item)
}
