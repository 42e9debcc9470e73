package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/config"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

type ObraInput struct {
	Nome            string  `json:"nome" binding:"required"`
	Municipio       string  `json:"municipio"`
	NumeroContrato  string  `json:"numeroContrato" binding:"required"`
	Status          string  `json:"status"`
	ValorOriginal   float64 `json:"valorOriginal"`
	DataInicio      string  `json:"dataInicio"`
	RdoHabilitado   bool    `json:"rdoHabilitado"`
	FormulaReajuste string  `json:"formulaReajuste"`
	FiscalID        *uint   `json:"fiscalId"`
}

// ListObrasHandler devolve a lista paginada de obras, com busca por
// nome, município ou número de contrato.
func ListObrasHandler(c *gin.Context) {
	var obras []models.Obra
	var totalRows int64

	query := config.DB.Model(&models.Obra{})

	if search := c.Query("search"); search != "" {
		padrao := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(nome) LIKE ? OR LOWER(municipio) LIKE ? OR LOWER(numero_contrato) LIKE ?",
			padrao, padrao, padrao,
		)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível contar as obras"})
		return
	}

	if err := query.Preload("Fiscal").Scopes(Paginate(c)).Order("nome").Find(&obras).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível listar as obras: " + err.Error()})
		return
	}

	if obras == nil {
		obras = make([]models.Obra, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, obras, totalRows))
}

func CreateObraHandler(c *gin.Context) {
	var input ObraInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	obra := models.Obra{
		Nome:            input.Nome,
		Municipio:       input.Municipio,
		NumeroContrato:  input.NumeroContrato,
		Status:          input.Status,
		ValorOriginal:   input.ValorOriginal,
		RdoHabilitado:   input.RdoHabilitado,
		FormulaReajuste: input.FormulaReajuste,
		FiscalID:        input.FiscalID,
	}
	if obra.Status == "" {
		obra.Status = models.ObraPlanejamento
	}
	if input.DataInicio != "" {
		inicio, err := parseData(input.DataInicio)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Data de início inválida (use AAAA-MM-DD)"})
			return
		}
		obra.DataInicio = &inicio
	}

	if err := config.DB.Create(&obra).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível criar a obra: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, obra)
}

func GetObraHandler(c *gin.Context) {
	var obra models.Obra
	err := config.DB.Preload("Fiscal").Preload("Contatos").First(&obra, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar a obra"})
		return
	}
	c.JSON(http.StatusOK, obra)
}

func UpdateObraHandler(c *gin.Context) {
	var obra models.Obra
	if err := config.DB.First(&obra, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}

	var input ObraInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	obra.Nome = input.Nome
	obra.Municipio = input.Municipio
	obra.NumeroContrato = input.NumeroContrato
	obra.ValorOriginal = input.ValorOriginal
	obra.RdoHabilitado = input.RdoHabilitado
	obra.FormulaReajuste = input.FormulaReajuste
	obra.FiscalID = input.FiscalID
	if input.Status != "" {
		obra.Status = input.Status
	}
	if input.DataInicio != "" {
		inicio, err := parseData(input.DataInicio)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Data de início inválida (use AAAA-MM-DD)"})
			return
		}
		obra.DataInicio = &inicio
	}

	if err := config.DB.Save(&obra).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível atualizar a obra: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, obra)
}

func DeleteObraHandler(c *gin.Context) {
	result := config.DB.Delete(&models.Obra{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível excluir a obra"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Obra excluída"})
}

type ContatoInput struct {
	Nome  string `json:"nome"`
	Email string `json:"email" binding:"required,email"`
}

// AddContatoObraHandler cadastra um e-mail da empreiteira para receber
// as notificações da obra.
func AddContatoObraHandler(c *gin.Context) {
	var obra models.Obra
	if err := config.DB.First(&obra, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}

	var input ContatoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	contato := models.ContatoObra{ObraID: obra.ID, Nome: input.Nome, Email: input.Email}
	if err := config.DB.Create(&contato).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível salvar o contato"})
		return
	}
	c.JSON(http.StatusCreated, contato)
}

// valorVigente calcula o valor atual do contrato (original + aditivos
// publicados) sem jamais ler de cache.
func valorVigente(obra *models.Obra) (float64, error) {
	resumo, err := resumoAditivosDaObra(obra)
	if err != nil {
		return 0, err
	}
	return resumo.ValorFinalContrato, nil
}
