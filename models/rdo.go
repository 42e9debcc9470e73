package models

import (
	"time"

	"gorm.io/gorm"
)

// Status de um RDO.
const (
	RdoRascunho  = "rascunho"
	RdoEnviado   = "enviado"
	RdoAprovado  = "aprovado"
	RdoRejeitado = "rejeitado"
)

// Tipos de atividade lançada em um RDO.
const (
	AtividadeTabela = "tabela"
	AtividadeTexto  = "texto"
)

// RelatorioDiario é o RDO — relatório diário de obra. SemExpediente
// marca dias sem atividade (chuva, feriado), que contam como dia
// reportado para a detecção de atraso.
type RelatorioDiario struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `                  json:"createdAt"`
	UpdatedAt time.Time      `                  json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"      json:"-"`

	ObraID        uint      `gorm:"column:obra_id;index:idx_rdo_obra_data,unique" json:"obraId"`
	Data          time.Time `gorm:"column:data;type:date;index:idx_rdo_obra_data,unique" json:"data"`
	Status        string    `gorm:"column:status;index" json:"status"`
	SemExpediente bool      `gorm:"column:sem_expediente" json:"semExpediente"`

	Atividades []AtividadeRdo `gorm:"foreignKey:RelatorioDiarioID" json:"atividades,omitempty"`
}

func (RelatorioDiario) TableName() string { return "relatorios_diarios" }

// AtividadeRdo é um lançamento do RDO. Somente atividades do tipo
// tabela com vínculo a um item de orçamento entram na importação de
// avanço físico.
type AtividadeRdo struct {
	ID                  uint    `gorm:"primaryKey"                          json:"id"`
	RelatorioDiarioID   uint    `gorm:"column:relatorio_diario_id;index"    json:"relatorioDiarioId"`
	Tipo                string  `gorm:"column:tipo"                         json:"tipo"`
	Descricao           string  `gorm:"column:descricao"                    json:"descricao"`
	ItemOrcamentoID     *uint   `gorm:"column:item_orcamento_id;index"      json:"itemOrcamentoId,omitempty"`
	QuantidadeExecutada float64 `gorm:"column:quantidade_executada;type:numeric(14,4)" json:"quantidadeExecutada"`

	Item *ItemOrcamento `gorm:"foreignKey:ItemOrcamentoID" json:"item,omitempty"`
}

func (AtividadeRdo) TableName() string { return "atividades_rdo" }
