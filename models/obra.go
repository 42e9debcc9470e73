package models

import (
	"time"

	"gorm.io/gorm"
)

// Status possíveis de uma obra.
const (
	ObraPlanejamento = "planejamento"
	ObraEmAndamento  = "em_andamento"
	ObraParalisada   = "paralisada"
	ObraConcluida    = "concluida"
)

// Obra representa um contrato de obra pública acompanhado pelo sistema.
// ValorOriginal é o valor contratado antes de qualquer aditivo; o valor
// vigente é sempre derivado (valor original + aditivos publicados) e
// nunca gravado.
type Obra struct {
	ID        uint           `gorm:"primaryKey"  json:"id"`
	CreatedAt time.Time      `                   json:"createdAt"`
	UpdatedAt time.Time      `                   json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"       json:"-"`

	Nome           string     `gorm:"column:nome"                        json:"nome"`
	Municipio      string     `gorm:"column:municipio"                   json:"municipio"`
	NumeroContrato string     `gorm:"column:numero_contrato;uniqueIndex" json:"numeroContrato"`
	Status         string     `gorm:"column:status;index"                json:"status"`
	ValorOriginal  float64    `gorm:"column:valor_original;type:numeric(14,2)" json:"valorOriginal"`
	DataInicio     *time.Time `gorm:"column:data_inicio"                 json:"dataInicio,omitempty"`

	// RdoHabilitado indica se a obra exige RDO diário; obras sem RDO
	// ficam fora da varredura de atraso.
	RdoHabilitado bool `gorm:"column:rdo_habilitado" json:"rdoHabilitado"`

	// FormulaReajuste guarda a fórmula paramétrica de reajuste do
	// contrato (ex.: "V * (I1 / I0 - 1)"), avaliada sob demanda.
	FormulaReajuste string `gorm:"column:formula_reajuste" json:"formulaReajuste"`

	FiscalID *uint    `gorm:"column:fiscal_id;index" json:"fiscalId,omitempty"`
	Fiscal   *Usuario `gorm:"foreignKey:FiscalID"    json:"fiscal,omitempty"`

	Contatos []ContatoObra `gorm:"foreignKey:ObraID" json:"contatos,omitempty"`
}

func (Obra) TableName() string { return "obras" }

// ContatoObra é um e-mail da empreiteira cadastrado para receber
// notificações da obra.
type ContatoObra struct {
	ID     uint   `gorm:"primaryKey"          json:"id"`
	ObraID uint   `gorm:"column:obra_id;index" json:"obraId"`
	Nome   string `gorm:"column:nome"          json:"nome"`
	Email  string `gorm:"column:email"         json:"email"`
}

func (ContatoObra) TableName() string { return "contatos_obra" }
