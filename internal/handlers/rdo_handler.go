package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/config"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/lifecycle"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/planilha"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/rdo"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

type AtividadeInput struct {
	Tipo                string  `json:"tipo" binding:"required"`
	Descricao           string  `json:"descricao"`
	ItemOrcamentoID     *uint   `json:"itemOrcamentoId"`
	QuantidadeExecutada float64 `json:"quantidadeExecutada"`
}

type RdoInput struct {
	Data          string           `json:"data" binding:"required"`
	SemExpediente bool             `json:"semExpediente"`
	Atividades    []AtividadeInput `json:"atividades"`
}

// CreateRdoHandler registra o relatório diário da obra. Um RDO por dia;
// o lançamento nasce como rascunho e só conta para importação e para a
// varredura de atraso depois de aprovado.
func CreateRdoHandler(c *gin.Context) {
	var obra models.Obra
	if err := config.DB.First(&obra, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}

	var input RdoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}
	data, err := parseData(input.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data inválida (use AAAA-MM-DD)"})
		return
	}

	relatorio := models.RelatorioDiario{
		ObraID:        obra.ID,
		Data:          rdo.Dia(data),
		Status:        models.RdoRascunho,
		SemExpediente: input.SemExpediente,
	}
	for _, atividade := range input.Atividades {
		relatorio.Atividades = append(relatorio.Atividades, models.AtividadeRdo{
			Tipo:                atividade.Tipo,
			Descricao:           atividade.Descricao,
			ItemOrcamentoID:     atividade.ItemOrcamentoID,
			QuantidadeExecutada: atividade.QuantidadeExecutada,
		})
	}

	if err := config.DB.Create(&relatorio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível registrar o RDO: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, relatorio)
}

// ListRdosHandler lista os RDOs da obra por data.
func ListRdosHandler(c *gin.Context) {
	var relatorios []models.RelatorioDiario
	query := config.DB.Where("obra_id = ?", c.Param("id"))
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("data DESC").Find(&relatorios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível listar os RDOs"})
		return
	}
	if relatorios == nil {
		relatorios = make([]models.RelatorioDiario, 0)
	}
	c.JSON(http.StatusOK, relatorios)
}

// AprovarRdoHandler marca o RDO como aprovado (fiscal ou admin).
func AprovarRdoHandler(c *gin.Context) {
	var relatorio models.RelatorioDiario
	if err := config.DB.First(&relatorio, c.Param("rdoId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "RDO não encontrado"})
		return
	}
	if relatorio.Status == models.RdoAprovado {
		c.JSON(http.StatusConflict, gin.H{"error": "O RDO já está aprovado"})
		return
	}

	if err := config.DB.Model(&relatorio).Update("status", models.RdoAprovado).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível aprovar o RDO"})
		return
	}
	c.JSON(http.StatusOK, relatorio)
}

type ImportarAvancoInput struct {
	MedicaoID  uint   `json:"medicaoId" binding:"required"`
	DataInicio string `json:"dataInicio" binding:"required"`
	DataFim    string `json:"dataFim" binding:"required"`
}

// ImportarAvancoHandler importa para a medição o avanço físico dos RDOs
// aprovados do período. O intervalo não pode sobrepor nenhuma
// importação anterior da obra; os agregados são somados às quantidades
// já medidas de cada item.
func ImportarAvancoHandler(c *gin.Context) {
	usuario, err := usuarioAtual(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuário não identificado"})
		return
	}

	var obra models.Obra
	if err := config.DB.First(&obra, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Obra não encontrada"})
		return
	}

	var input ImportarAvancoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}
	inicio, err := parseData(input.DataInicio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data inicial inválida (use AAAA-MM-DD)"})
		return
	}
	fim, err := parseData(input.DataFim)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data final inválida (use AAAA-MM-DD)"})
		return
	}

	var medicao models.Medicao
	if err := config.DB.First(&medicao, input.MedicaoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medição não encontrada"})
		return
	}
	if err := lifecycle.PodeEditarMedicao(&medicao); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	resultado, err := rdo.ImportarPeriodo(config.DB, obra.ID, medicao.ID, inicio, fim, usuario.ID)
	if err != nil {
		var sobreposto *rdo.ErrPeriodoSobreposto
		switch {
		case errors.As(err, &sobreposto):
			c.JSON(http.StatusConflict, gin.H{"error": sobreposto.Error(), "conflito": sobreposto.Conflito})
		case errors.Is(err, rdo.ErrIntervaloInvalido),
			errors.Is(err, rdo.ErrSemRdoAprovado),
			errors.Is(err, rdo.ErrSemValoresExecutados):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha na importação: " + err.Error()})
		}
		return
	}

	if err := aplicarAgregados(medicao, resultado.Agregados); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agregados apurados, mas a gravação na medição falhou: " + err.Error()})
		return
	}

	resposta := gin.H{"agregados": resultado.Agregados, "registro": resultado.Registro}
	if resultado.AvisoRegistro != "" {
		resposta["aviso"] = resultado.AvisoRegistro
	}
	c.JSON(http.StatusOK, resposta)
}

// aplicarAgregados soma as quantidades importadas às já medidas,
// recalculando percentual e valor de cada item.
func aplicarAgregados(medicao models.Medicao, agregados map[string]float64) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		for codigoItem, quantidade := range agregados {
			var item models.ItemOrcamento
			if err := tx.Where("obra_id = ? AND item = ?", medicao.ObraID, codigoItem).
				First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			var existente models.MedicaoItem
			err := tx.Where("medicao_id = ? AND item_orcamento_id = ?", medicao.ID, item.ID).
				First(&existente).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			total := existente.Quantidade + quantidade
			percentual := 0.0
			if item.Quantidade != 0 {
				percentual = planilha.Arredondar2(total / item.Quantidade * 100)
			}
			registro := models.MedicaoItem{
				MedicaoID:       medicao.ID,
				ItemOrcamentoID: item.ID,
				Quantidade:      total,
				Percentual:      percentual,
				Total:           planilha.Arredondar2(total * item.PrecoUnitario),
			}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "medicao_id"}, {Name: "item_orcamento_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"quantidade", "percentual", "total"}),
			}).Create(&registro).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ListImportacoesHandler lista os intervalos já importados da obra.
func ListImportacoesHandler(c *gin.Context) {
	var registros []models.ImportacaoRdo
	err := config.DB.Where("obra_id = ?", c.Param("id")).Order("data_inicio").Find(&registros).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível listar as importações"})
		return
	}
	if registros == nil {
		registros = make([]models.ImportacaoRdo, 0)
	}
	c.JSON(http.StatusOK, registros)
}

// DeleteImportacaoHandler libera o intervalo para reimportação. As
// quantidades já gravadas na medição não são desfeitas — a correção é
// manual.
func DeleteImportacaoHandler(c *gin.Context) {
	result := config.DB.Delete(&models.ImportacaoRdo{}, c.Param("importacaoId"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível excluir o registro"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro de importação não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Intervalo liberado para reimportação; as quantidades já medidas permanecem e devem ser corrigidas manualmente",
	})
}
