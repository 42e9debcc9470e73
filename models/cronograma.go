package models

import "time"

// CronogramaFinanceiro é o cronograma de desembolso importado da
// planilha da obra. Uma reimportação substitui o agregado inteiro —
// itens e períodos nunca são mesclados com a versão anterior.
type CronogramaFinanceiro struct {
	ID        uint      `gorm:"primaryKey"           json:"id"`
	CreatedAt time.Time `                            json:"createdAt"`
	ObraID    uint      `gorm:"column:obra_id;index" json:"obraId"`

	Itens []CronogramaItem `gorm:"foreignKey:CronogramaID;constraint:OnDelete:CASCADE" json:"itens,omitempty"`
}

func (CronogramaFinanceiro) TableName() string { return "cronogramas_financeiros" }

// CronogramaItem é uma etapa do cronograma com seu valor total.
type CronogramaItem struct {
	ID           uint    `gorm:"primaryKey"                 json:"id"`
	CronogramaID uint    `gorm:"column:cronograma_id;index" json:"cronogramaId"`
	NumeroItem   int     `gorm:"column:numero_item"         json:"numeroItem"`
	Descricao    string  `gorm:"column:descricao"           json:"descricao"`
	TotalEtapa   float64 `gorm:"column:total_etapa;type:numeric(14,2)" json:"totalEtapa"`
	Ordem        int     `gorm:"column:ordem"               json:"ordem"`

	Periodos []CronogramaPeriodo `gorm:"foreignKey:CronogramaItemID;constraint:OnDelete:CASCADE" json:"periodos,omitempty"`
}

func (CronogramaItem) TableName() string { return "cronograma_itens" }

// CronogramaPeriodo é a fatia do valor da etapa prevista para um
// período ("30 DIAS", "60 DIAS", ...).
type CronogramaPeriodo struct {
	ID               uint    `gorm:"primaryKey"                      json:"id"`
	CronogramaItemID uint    `gorm:"column:cronograma_item_id;index" json:"cronogramaItemId"`
	DiasPeriodo      int     `gorm:"column:dias_periodo"             json:"diasPeriodo"`
	Valor            float64 `gorm:"column:valor;type:numeric(14,2)" json:"valor"`
	PercentualEtapa  float64 `gorm:"column:percentual_etapa;type:numeric(7,2)" json:"percentualEtapa"`
}

func (CronogramaPeriodo) TableName() string { return "cronograma_periodos" }
