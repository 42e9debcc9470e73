package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/config"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/aditivos"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/lifecycle"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/planilha"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

// ListAditivosHandler lista os aditivos da obra: publicados em ordem de
// sequência, depois os rascunhos.
func ListAditivosHandler(c *gin.Context) {
	var lista []models.Aditivo
	err := config.DB.Where("obra_id = ?", c.Param("id")).
		Order("bloqueado DESC, sequencia NULLS LAST, created_at").Find(&lista).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível listar os aditivos"})
		return
	}
	if lista == nil {
		lista = make([]models.Aditivo, 0)
	}
	c.JSON(http.StatusOK, lista)
}

type AditivoInput struct {
	Nome string `json:"nome" binding:"required"`
}

// CreateAditivoHandler abre um rascunho de aditivo. A sequência só é
// atribuída na publicação.
func CreateAditivoHandler(c *gin.Context) {
	var obra models.Obra
	if err := config.DB.First(&obra, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}

	var input AditivoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	aditivo := models.Aditivo{ObraID: obra.ID, Nome: input.Nome}
	if err := config.DB.Create(&aditivo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível criar o aditivo: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, aditivo)
}

func GetAditivoHandler(c *gin.Context) {
	var aditivo models.Aditivo
	err := config.DB.Preload("Itens.Item").First(&aditivo, c.Param("aditivoId")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Aditivo não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar o aditivo"})
		return
	}
	c.JSON(http.StatusOK, aditivo)
}

type AditivoItemInput struct {
	// ItemOrcamentoID aponta um item existente do contrato; ausente,
	// NovoItem descreve um item extracontratual criado por este
	// aditivo.
	ItemOrcamentoID *uint                    `json:"itemOrcamentoId"`
	NovoItem        *NovoItemExtracontratual `json:"novoItem"`
	Quantidade      float64                  `json:"quantidade"`
	Total           float64                  `json:"total"`
}

type NovoItemExtracontratual struct {
	Item          string  `json:"item" binding:"required"`
	CodigoBanco   string  `json:"codigoBanco"`
	Descricao     string  `json:"descricao" binding:"required"`
	Unidade       string  `json:"unidade"`
	PrecoUnitario float64 `json:"precoUnitario"`
}

// AtualizarItensAditivoHandler grava os deltas do rascunho (upsert por
// item). Aditivo publicado não aceita edição.
func AtualizarItensAditivoHandler(c *gin.Context) {
	var aditivo models.Aditivo
	if err := config.DB.First(&aditivo, c.Param("aditivoId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aditivo não encontrado"})
		return
	}
	if err := lifecycle.PodeEditarAditivo(&aditivo); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	var input []AditivoItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var ultimaOrdem int
		tx.Model(&models.ItemOrcamento{}).Where("obra_id = ?", aditivo.ObraID).
			Select("COALESCE(MAX(ordem), 0)").Scan(&ultimaOrdem)

		for _, entrada := range input {
			var itemID uint
			var item models.ItemOrcamento

			switch {
			case entrada.ItemOrcamentoID != nil:
				if err := tx.First(&item, *entrada.ItemOrcamentoID).Error; err != nil {
					return fmt.Errorf("item %d não encontrado", *entrada.ItemOrcamentoID)
				}
				itemID = item.ID
			case entrada.NovoItem != nil:
				ultimaOrdem++
				item = models.ItemOrcamento{
					ObraID:        aditivo.ObraID,
					Item:          entrada.NovoItem.Item,
					CodigoBanco:   entrada.NovoItem.CodigoBanco,
					Descricao:     entrada.NovoItem.Descricao,
					Unidade:       entrada.NovoItem.Unidade,
					Quantidade:    entrada.Quantidade,
					PrecoUnitario: entrada.NovoItem.PrecoUnitario,
					PrecoTotal:    planilha.Arredondar2(entrada.Quantidade * entrada.NovoItem.PrecoUnitario),
					Origem:        models.OrigemExtracontratual,
					Ordem:         ultimaOrdem,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				itemID = item.ID
			default:
				return fmt.Errorf("cada entrada precisa de itemOrcamentoId ou novoItem")
			}

			total := entrada.Total
			if total == 0 && entrada.Quantidade != 0 {
				total = planilha.Arredondar2(entrada.Quantidade * item.PrecoUnitario)
			}
			percentual := 0.0
			if item.Quantidade != 0 {
				percentual = planilha.Arredondar2(entrada.Quantidade / item.Quantidade * 100)
			}

			registro := models.AditivoItem{
				AditivoID:       aditivo.ID,
				ItemOrcamentoID: itemID,
				Quantidade:      entrada.Quantidade,
				Percentual:      percentual,
				Total:           total,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "aditivo_id"}, {Name: "item_orcamento_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"quantidade", "percentual", "total"}),
			}).Create(&registro).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível gravar os deltas: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"atualizados": len(input)})
}

// PublicarAditivoHandler publica o rascunho. Aditivos nunca publicados
// recebem a próxima sequência; na republicação a sequência original é
// mantida e validada contra duplicidade.
func PublicarAditivoHandler(c *gin.Context) {
	var aditivo models.Aditivo
	if err := config.DB.First(&aditivo, c.Param("aditivoId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aditivo não encontrado"})
		return
	}

	var irmaos []models.Aditivo
	if err := config.DB.Where("obra_id = ? AND sequencia IS NOT NULL", aditivo.ObraID).Find(&irmaos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao verificar as sequências existentes"})
		return
	}
	emUso := make(map[int]uint, len(irmaos))
	for _, irmao := range irmaos {
		emUso[*irmao.Sequencia] = irmao.ID
	}

	if err := lifecycle.PublicarAditivo(&aditivo, emUso); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&aditivo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível publicar o aditivo"})
		return
	}
	c.JSON(http.StatusOK, aditivo)
}

// ReabrirAditivoHandler volta o aditivo a rascunho (admin apenas),
// preservando a sequência para a republicação.
func ReabrirAditivoHandler(c *gin.Context) {
	ator, err := usuarioAtual(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuário não identificado"})
		return
	}

	var aditivo models.Aditivo
	if err := config.DB.First(&aditivo, c.Param("aditivoId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aditivo não encontrado"})
		return
	}

	if err := lifecycle.ReabrirAditivo(&aditivo, ator); err != nil {
		status := http.StatusConflict
		if errors.Is(err, lifecycle.ErrSemPermissao) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&aditivo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível reabrir o aditivo"})
		return
	}
	c.JSON(http.StatusOK, aditivo)
}

// DeleteAditivoHandler exclui o aditivo em qualquer estado, desde que
// confirmado com ?confirmar=true. Como o resumo é recalculado a cada
// leitura, os acumulados seguintes se ajustam sozinhos.
func DeleteAditivoHandler(c *gin.Context) {
	var aditivo models.Aditivo
	if err := config.DB.First(&aditivo, c.Param("aditivoId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aditivo não encontrado"})
		return
	}

	if err := lifecycle.PodeExcluirAditivo(&aditivo, c.Query("confirmar") == "true"); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// Itens extracontratuais criados por este aditivo caem junto.
		var deltas []models.AditivoItem
		if err := tx.Where("aditivo_id = ?", aditivo.ID).Find(&deltas).Error; err != nil {
			return err
		}
		if err := tx.Where("aditivo_id = ?", aditivo.ID).Delete(&models.AditivoItem{}).Error; err != nil {
			return err
		}
		for _, delta := range deltas {
			tx.Where("id = ? AND origem = ?", delta.ItemOrcamentoID, models.OrigemExtracontratual).
				Delete(&models.ItemOrcamento{})
		}
		return tx.Delete(&aditivo).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível excluir o aditivo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Aditivo excluído"})
}

// ResumoAditivosHandler devolve o quadro financeiro dos aditivos,
// recalculado do estado persistido a cada chamada.
func ResumoAditivosHandler(c *gin.Context) {
	var obra models.Obra
	if err := config.DB.First(&obra, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}

	resumo, err := resumoAditivosDaObra(&obra)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível calcular o resumo: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valorOriginal": obra.ValorOriginal,
		"resumo":        resumo,
	})
}

func resumoAditivosDaObra(obra *models.Obra) (aditivos.Resumo, error) {
	var itens []models.ItemOrcamento
	if err := config.DB.Where("obra_id = ?", obra.ID).Find(&itens).Error; err != nil {
		return aditivos.Resumo{}, err
	}
	var lista []models.Aditivo
	if err := config.DB.Preload("Itens").Where("obra_id = ?", obra.ID).Find(&lista).Error; err != nil {
		return aditivos.Resumo{}, err
	}
	return aditivos.CalcularResumo(obra.ValorOriginal, itens, lista), nil
}
