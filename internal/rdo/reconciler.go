package rdo

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

var (
	ErrIntervaloInvalido    = errors.New("a data inicial deve ser anterior ou igual à data final")
	ErrSemRdoAprovado       = errors.New("nenhum RDO aprovado no período informado")
	ErrSemValoresExecutados = errors.New("os RDOs do período não têm quantidades executadas vinculadas a itens")
)

// ErrPeriodoSobreposto nomeia o intervalo já importado que conflita com
// o pedido, para o usuário escolher outro período.
type ErrPeriodoSobreposto struct {
	Conflito models.ImportacaoRdo
}

func (e *ErrPeriodoSobreposto) Error() string {
	return fmt.Sprintf("o período conflita com a importação de %s a %s",
		e.Conflito.DataInicio.Format("02/01/2006"), e.Conflito.DataFim.Format("02/01/2006"))
}

// ResultadoImportacao separa os dois desfechos independentes da
// importação: os agregados apurados e o registro de rastreio do
// intervalo. A falha da escrita do registro não desfaz os agregados —
// ela é devolvida como aviso para o usuário corrigir o rastreio depois.
type ResultadoImportacao struct {
	// Agregados soma as quantidades executadas por código de item
	// através de todos os RDOs aprovados do período.
	Agregados map[string]float64 `json:"agregados"`

	Registro      *models.ImportacaoRdo `json:"registro,omitempty"`
	AvisoRegistro string                `json:"avisoRegistro,omitempty"`
}

type linhaAgregado struct {
	Item  string
	Total float64
}

// ImportarPeriodo apura o avanço físico dos RDOs aprovados da obra no
// intervalo [inicio, fim]. Pré-condições: inicio ≤ fim e nenhuma
// importação viva da obra pode sobrepor o intervalo. A checagem de
// sobreposição é refeita imediatamente antes do insert do registro;
// permanece uma janela estreita entre a checagem e o insert, aceita
// como limitação conhecida na ausência de transação entre as coleções.
func ImportarPeriodo(db *gorm.DB, obraID, medicaoID uint, inicio, fim time.Time, usuarioID uint) (*ResultadoImportacao, error) {
	inicio, fim = Dia(inicio), Dia(fim)
	if inicio.After(fim) {
		return nil, ErrIntervaloInvalido
	}

	if err := verificarSobreposicao(db, obraID, inicio, fim); err != nil {
		return nil, err
	}

	// Somente atividades de tabela com vínculo de item contam; a
	// granularidade por RDO é descartada de propósito — só o agregado
	// por código de item interessa adiante.
	var linhas []linhaAgregado
	err := db.Table("atividades_rdo a").
		Select("i.item AS item, SUM(a.quantidade_executada) AS total").
		Joins("JOIN relatorios_diarios r ON r.id = a.relatorio_diario_id").
		Joins("JOIN itens_orcamento i ON i.id = a.item_orcamento_id").
		Where("r.obra_id = ? AND r.status = ? AND r.deleted_at IS NULL", obraID, models.RdoAprovado).
		Where("r.data BETWEEN ? AND ?", inicio, fim).
		Where("a.tipo = ? AND a.item_orcamento_id IS NOT NULL", models.AtividadeTabela).
		Group("i.item").
		Scan(&linhas).Error
	if err != nil {
		return nil, err
	}

	var totalRdos int64
	if err := db.Model(&models.RelatorioDiario{}).
		Where("obra_id = ? AND status = ? AND data BETWEEN ? AND ?", obraID, models.RdoAprovado, inicio, fim).
		Count(&totalRdos).Error; err != nil {
		return nil, err
	}
	if totalRdos == 0 {
		return nil, ErrSemRdoAprovado
	}
	if len(linhas) == 0 {
		return nil, ErrSemValoresExecutados
	}

	resultado := &ResultadoImportacao{Agregados: make(map[string]float64, len(linhas))}
	for _, linha := range linhas {
		resultado.Agregados[linha.Item] = linha.Total
	}

	// Recheca a sobreposição na iminência do insert: duas importações
	// concorrentes do mesmo intervalo não podem ambas passar.
	if err := verificarSobreposicao(db, obraID, inicio, fim); err != nil {
		return nil, err
	}

	registro := models.ImportacaoRdo{
		Uuid:         uuid.NewString(),
		ObraID:       obraID,
		MedicaoID:    medicaoID,
		DataInicio:   inicio,
		DataFim:      fim,
		ImportadoPor: usuarioID,
	}
	if err := db.Create(&registro).Error; err != nil {
		slog.Warn("Importação apurada, mas o registro do intervalo falhou",
			"obra_id", obraID, "error", err)
		resultado.AvisoRegistro = "os valores foram apurados, mas o registro do intervalo importado falhou; o período continua livre para reimportação"
		return resultado, nil
	}

	resultado.Registro = &registro
	return resultado, nil
}

func verificarSobreposicao(db *gorm.DB, obraID uint, inicio, fim time.Time) error {
	var existentes []models.ImportacaoRdo
	if err := db.Where("obra_id = ?", obraID).Order("data_inicio").Find(&existentes).Error; err != nil {
		return err
	}
	for _, registro := range existentes {
		if Sobrepoe(inicio, fim, registro.DataInicio, registro.DataFim) {
			return &ErrPeriodoSobreposto{Conflito: registro}
		}
	}
	return nil
}
