package models

import (
	"time"

	"gorm.io/gorm"
)

// Origem de um item de orçamento.
const (
	OrigemContrato        = "contrato"
	OrigemExtracontratual = "extracontratual"
)

// ItemOrcamento é uma linha da planilha orçamentária da obra.
// Itens extracontratuais nascem em um aditivo e não existem no
// contrato original.
type ItemOrcamento struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `                  json:"createdAt"`
	UpdatedAt time.Time      `                  json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"      json:"-"`

	ObraID uint `gorm:"column:obra_id;index" json:"obraId"`

	Item          string  `gorm:"column:item"                               json:"item"`
	CodigoBanco   string  `gorm:"column:codigo_banco"                       json:"codigoBanco"`
	Descricao     string  `gorm:"column:descricao"                          json:"descricao"`
	Unidade       string  `gorm:"column:unidade"                            json:"unidade"`
	Quantidade    float64 `gorm:"column:quantidade;type:numeric(14,4)"      json:"quantidade"`
	PrecoUnitario float64 `gorm:"column:preco_unitario;type:numeric(14,2)"  json:"precoUnitario"`
	PrecoTotal    float64 `gorm:"column:preco_total;type:numeric(14,2)"     json:"precoTotal"`

	// Nivel é a profundidade do item na estrutura analítica (1 = etapa,
	// 2 = subetapa, ...), inferida da numeração "1.2.3".
	Nivel int `gorm:"column:nivel" json:"nivel"`

	// EhAdministracaoLocal marca itens de administração da obra, que
	// alguns relatórios tratam à parte.
	EhAdministracaoLocal bool `gorm:"column:eh_administracao_local" json:"ehAdministracaoLocal"`

	Origem string `gorm:"column:origem;index" json:"origem"`
	Ordem  int    `gorm:"column:ordem"        json:"ordem"`
}

func (ItemOrcamento) TableName() string { return "itens_orcamento" }
