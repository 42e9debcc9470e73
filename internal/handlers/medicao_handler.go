package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/config"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/lifecycle"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/planilha"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

// ListMedicoesHandler lista as medições da obra em ordem de sequência.
func ListMedicoesHandler(c *gin.Context) {
	var medicoes []models.Medicao
	err := config.DB.Where("obra_id = ?", c.Param("id")).Order("sequencia").Find(&medicoes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível listar as medições"})
		return
	}
	if medicoes == nil {
		medicoes = make([]models.Medicao, 0)
	}
	c.JSON(http.StatusOK, medicoes)
}

type MedicaoInput struct {
	Nome string `json:"nome" binding:"required"`
}

// CreateMedicaoHandler abre uma nova medição com a próxima sequência da
// obra. Várias medições abertas podem coexistir.
func CreateMedicaoHandler(c *gin.Context) {
	var obra models.Obra
	if err := config.DB.First(&obra, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}

	var input MedicaoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	var ultima int
	config.DB.Model(&models.Medicao{}).Where("obra_id = ?", obra.ID).
		Select("COALESCE(MAX(sequencia), 0)").Scan(&ultima)

	medicao := models.Medicao{ObraID: obra.ID, Nome: input.Nome, Sequencia: ultima + 1}
	if err := config.DB.Create(&medicao).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível criar a medição: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, medicao)
}

func GetMedicaoHandler(c *gin.Context) {
	var medicao models.Medicao
	err := config.DB.Preload("Itens.Item").First(&medicao, c.Param("medicaoId")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Medição não encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar a medição"})
		return
	}
	c.JSON(http.StatusOK, medicao)
}

type MedicaoItemInput struct {
	ItemOrcamentoID uint    `json:"itemOrcamentoId" binding:"required"`
	Quantidade      float64 `json:"quantidade"`
}

// AtualizarItensMedicaoHandler grava os valores medidos (upsert por
// item). Recusada com StateError quando a medição está bloqueada — a
// checagem é feita aqui, não no front-end.
func AtualizarItensMedicaoHandler(c *gin.Context) {
	var medicao models.Medicao
	if err := config.DB.First(&medicao, c.Param("medicaoId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medição não encontrada"})
		return
	}
	if err := lifecycle.PodeEditarMedicao(&medicao); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	var input []MedicaoItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, entrada := range input {
			var item models.ItemOrcamento
			if err := tx.First(&item, entrada.ItemOrcamentoID).Error; err != nil {
				return fmt.Errorf("item %d não encontrado", entrada.ItemOrcamentoID)
			}

			percentual := 0.0
			if item.Quantidade != 0 {
				percentual = planilha.Arredondar2(entrada.Quantidade / item.Quantidade * 100)
			}
			registro := models.MedicaoItem{
				MedicaoID:       medicao.ID,
				ItemOrcamentoID: item.ID,
				Quantidade:      entrada.Quantidade,
				Percentual:      percentual,
				Total:           planilha.Arredondar2(entrada.Quantidade * item.PrecoUnitario),
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "medicao_id"}, {Name: "item_orcamento_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"quantidade", "percentual", "total"}),
			}).Create(&registro).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível gravar os valores: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"atualizados": len(input)})
}

// BloquearMedicaoHandler fecha a medição, carimbando autor e instante.
func BloquearMedicaoHandler(c *gin.Context) {
	ator, err := usuarioAtual(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuário não identificado"})
		return
	}

	var medicao models.Medicao
	if err := config.DB.First(&medicao, c.Param("medicaoId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medição não encontrada"})
		return
	}

	if err := lifecycle.BloquearMedicao(&medicao, ator, time.Now()); err != nil {
		status := http.StatusConflict
		if errors.Is(err, lifecycle.ErrSemPermissao) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&medicao).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível bloquear a medição"})
		return
	}
	c.JSON(http.StatusOK, medicao)
}

// ReabrirMedicaoHandler limpa o carimbo de bloqueio (admin apenas); os
// valores medidos permanecem intactos.
func ReabrirMedicaoHandler(c *gin.Context) {
	ator, err := usuarioAtual(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuário não identificado"})
		return
	}

	var medicao models.Medicao
	if err := config.DB.First(&medicao, c.Param("medicaoId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medição não encontrada"})
		return
	}

	if err := lifecycle.ReabrirMedicao(&medicao, ator); err != nil {
		status := http.StatusConflict
		if errors.Is(err, lifecycle.ErrSemPermissao) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	err = config.DB.Model(&medicao).Select("bloqueada", "bloqueada_em", "bloqueada_por").
		Updates(map[string]interface{}{"bloqueada": false, "bloqueada_em": nil, "bloqueada_por": nil}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível reabrir a medição"})
		return
	}
	c.JSON(http.StatusOK, medicao)
}

// DeleteMedicaoHandler exclui a medição. Bloqueada, só com
// ?override=true e capacidade administrativa — nunca em silêncio.
func DeleteMedicaoHandler(c *gin.Context) {
	ator, err := usuarioAtual(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuário não identificado"})
		return
	}

	var medicao models.Medicao
	if err := config.DB.First(&medicao, c.Param("medicaoId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medição não encontrada"})
		return
	}

	override := c.Query("override") == "true"
	if err := lifecycle.PodeExcluirMedicao(&medicao, ator, override); err != nil {
		status := http.StatusConflict
		if errors.Is(err, lifecycle.ErrSemPermissao) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("medicao_id = ?", medicao.ID).Delete(&models.MedicaoItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&medicao).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível excluir a medição"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medição excluída"})
}

// ExportarMedicaoHandler gera a planilha Excel do boletim de medição.
func ExportarMedicaoHandler(c *gin.Context) {
	var medicao models.Medicao
	err := config.DB.Preload("Itens.Item").First(&medicao, c.Param("medicaoId")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medição não encontrada"})
		return
	}

	f := excelize.NewFile()
	aba := "Boletim de Medição"
	indice, _ := f.NewSheet(aba)
	f.SetActiveSheet(indice)
	f.DeleteSheet("Sheet1")

	cabecalhos := []string{"Item", "Código", "Descrição", "Unidade", "Qtd. orçada", "Qtd. medida", "% medido", "Valor medido"}
	for i, cabecalho := range cabecalhos {
		celula, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(aba, celula, cabecalho)
	}

	for i, registro := range medicao.Itens {
		linha := i + 2
		if registro.Item != nil {
			f.SetCellValue(aba, fmt.Sprintf("A%d", linha), registro.Item.Item)
			f.SetCellValue(aba, fmt.Sprintf("B%d", linha), registro.Item.CodigoBanco)
			f.SetCellValue(aba, fmt.Sprintf("C%d", linha), registro.Item.Descricao)
			f.SetCellValue(aba, fmt.Sprintf("D%d", linha), registro.Item.Unidade)
			f.SetCellValue(aba, fmt.Sprintf("E%d", linha), registro.Item.Quantidade)
		}
		f.SetCellValue(aba, fmt.Sprintf("F%d", linha), registro.Quantidade)
		f.SetCellValue(aba, fmt.Sprintf("G%d", linha), registro.Percentual)
		f.SetCellValue(aba, fmt.Sprintf("H%d", linha), registro.Total)
	}

	nomeArquivo := fmt.Sprintf("medicao_%d_%s.xlsx", medicao.Sequencia, time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+nomeArquivo)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível gerar a planilha"})
	}
}
