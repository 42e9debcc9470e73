package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/config"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/planilha"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

// ImportarCronogramaHandler processa a planilha do cronograma
// físico-financeiro e devolve a prévia das etapas detectadas.
func ImportarCronogramaHandler(c *gin.Context) {
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
		c.JSON(http.StatusBadRequest, gin.H{"error": "Não foi possível ler a planilha: " + err.Error()})
		return
	}

	itens, err := planilha.ImportarCronograma(grade)
	if err != nil {
		if errors.Is(err, planilha.ErrCabecalhoNaoEncontrado) || errors.Is(err, planilha.ErrNenhumItemEncontrado) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"itens": itens})
}

type ConfirmarCronogramaInput struct {
	Itens []planilha.ItemCronograma `json:"itens" binding:"required"`
}

// ConfirmarCronogramaHandler grava o cronograma confirmado. A
// reimportação substitui o agregado inteiro — o cronograma anterior é
// removido, nunca mesclado.
func ConfirmarCronogramaHandler(c *gin.Context) {
	var obra models.Obra
	if err := config.DB.First(&obra, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}

	var input ConfirmarCronogramaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}
	if len(input.Itens) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": planilha.ErrNenhumItemEncontrado.Error()})
		return
	}

	var cronograma models.CronogramaFinanceiro
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var anteriores []models.CronogramaFinanceiro
		if err := tx.Where("obra_id = ?", obra.ID).Find(&anteriores).Error; err != nil {
			return err
		}
		for _, anterior := range anteriores {
			if err := excluirCronograma(tx, anterior.ID); err != nil {
				return err
			}
		}

		cronograma = models.CronogramaFinanceiro{ObraID: obra.ID}
		if err := tx.Create(&cronograma).Error; err != nil {
			return err
		}
		for ordem, item := range input.Itens {
			registro := models.CronogramaItem{
				CronogramaID: cronograma.ID,
				NumeroItem:   item.NumeroItem,
				Descricao:    item.Descricao,
				TotalEtapa:   item.TotalEtapa,
				Ordem:        ordem + 1,
			}
			if err := tx.Create(&registro).Error; err != nil {
				return err
			}
			for _, periodo := range item.Periodos {
				p := models.CronogramaPeriodo{
					CronogramaItemID: registro.ID,
					DiasPeriodo:      periodo.Dias,
					Valor:            periodo.Valor,
					PercentualEtapa:  periodo.PercentualEtapa,
				}
				if err := tx.Create(&p).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível gravar o cronograma: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cronogramaId": cronograma.ID, "etapas": len(input.Itens)})
}

// GetCronogramaHandler devolve o cronograma vigente da obra.
func GetCronogramaHandler(c *gin.Context) {
	var cronograma models.CronogramaFinanceiro
	err := config.DB.Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("ordem") }).
		Preload("Itens.Periodos").
		Where("obra_id = ?", c.Param("id")).
		Order("created_at DESC").
		First(&cronograma).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "A obra não tem cronograma importado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar o cronograma"})
		return
	}
	c.JSON(http.StatusOK, cronograma)
}

// DeleteCronogramaHandler remove o agregado inteiro (etapas e períodos
// juntos).
func DeleteCronogramaHandler(c *gin.Context) {
	var cronograma models.CronogramaFinanceiro
	if err := config.DB.Where("obra_id = ?", c.Param("id")).First(&cronograma).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A obra não tem cronograma importado"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return excluirCronograma(tx, cronograma.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível excluir o cronograma"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cronograma excluído"})
}

func excluirCronograma(tx *gorm.DB, cronogramaID uint) error {
	var itens []models.CronogramaItem
	if err := tx.Where("cronograma_id = ?", cronogramaID).Find(&itens).Error; err != nil {
		return err
	}
	for _, item := range itens {
		if err := tx.Where("cronograma_item_id = ?", item.ID).Delete(&models.CronogramaPeriodo{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("cronograma_id = ?", cronogramaID).Delete(&models.CronogramaItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.CronogramaFinanceiro{}, cronogramaID).Error
}
