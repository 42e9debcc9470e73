package models

import (
	"time"

	"gorm.io/gorm"
)

// Aditivo é um termo aditivo do contrato. Rascunhos (Bloqueado = false)
// não entram no resumo financeiro; a publicação atribui a Sequencia,
// que define a ordem de acumulação e nunca é reutilizada — reabrir um
// aditivo publicado preserva a sequência para a republicação.
type Aditivo struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `                  json:"createdAt"`
	UpdatedAt time.Time      `                  json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"      json:"-"`

	ObraID uint   `gorm:"column:obra_id;index" json:"obraId"`
	Nome   string `gorm:"column:nome"          json:"nome"`

	// Sequencia é nula enquanto o aditivo nunca foi publicado.
	Sequencia *int `gorm:"column:sequencia" json:"sequencia,omitempty"`

	Bloqueado bool `gorm:"column:bloqueado" json:"bloqueado"`

	Itens []AditivoItem `gorm:"foreignKey:AditivoID" json:"itens,omitempty"`
}

func (Aditivo) TableName() string { return "aditivos" }

// AditivoItem é o delta de um item dentro de um aditivo. Total negativo
// representa supressão; total positivo em item extracontratual
// representa acréscimo fora do contrato original.
type AditivoItem struct {
	ID              uint    `gorm:"primaryKey"                                        json:"id"`
	AditivoID       uint    `gorm:"column:aditivo_id;index:idx_aditivo_item,unique"   json:"aditivoId"`
	ItemOrcamentoID uint    `gorm:"column:item_orcamento_id;index:idx_aditivo_item,unique" json:"itemOrcamentoId"`
	Quantidade      float64 `gorm:"column:quantidade;type:numeric(14,4)"              json:"quantidade"`
	Percentual      float64 `gorm:"column:percentual;type:numeric(7,2)"               json:"percentual"`
	Total           float64 `gorm:"column:total;type:numeric(14,2)"                   json:"total"`

	Item *ItemOrcamento `gorm:"foreignKey:ItemOrcamentoID" json:"item,omitempty"`
}

func (AditivoItem) TableName() string { return "aditivo_itens" }
