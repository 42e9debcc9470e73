package models

import (
	"time"

	"gorm.io/gorm"
)

// Medicao é o boletim periódico de quantidades executadas da obra.
// Enquanto Bloqueada = false os valores podem ser editados; o bloqueio
// registra quem e quando fechou o boletim.
type Medicao struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `                  json:"createdAt"`
	UpdatedAt time.Time      `                  json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"      json:"-"`

	ObraID    uint   `gorm:"column:obra_id;index" json:"obraId"`
	Nome      string `gorm:"column:nome"          json:"nome"`
	Sequencia int    `gorm:"column:sequencia"     json:"sequencia"`

	Bloqueada    bool       `gorm:"column:bloqueada"      json:"bloqueada"`
	BloqueadaEm  *time.Time `gorm:"column:bloqueada_em"   json:"bloqueadaEm,omitempty"`
	BloqueadaPor *uint      `gorm:"column:bloqueada_por"  json:"bloqueadaPor,omitempty"`

	Itens []MedicaoItem `gorm:"foreignKey:MedicaoID" json:"itens,omitempty"`
}

func (Medicao) TableName() string { return "medicoes" }

// MedicaoItem é o valor medido de um item de orçamento dentro de uma
// medição (uma entrada do mapa medição → item).
type MedicaoItem struct {
	ID              uint    `gorm:"primaryKey"                                      json:"id"`
	MedicaoID       uint    `gorm:"column:medicao_id;index:idx_medicao_item,unique" json:"medicaoId"`
	ItemOrcamentoID uint    `gorm:"column:item_orcamento_id;index:idx_medicao_item,unique" json:"itemOrcamentoId"`
	Quantidade      float64 `gorm:"column:quantidade;type:numeric(14,4)"            json:"quantidade"`
	Percentual      float64 `gorm:"column:percentual;type:numeric(7,2)"             json:"percentual"`
	Total           float64 `gorm:"column:total;type:numeric(14,2)"                 json:"total"`

	Item *ItemOrcamento `gorm:"foreignKey:ItemOrcamentoID" json:"item,omitempty"`
}

func (MedicaoItem) TableName() string { return "medicao_itens" }
