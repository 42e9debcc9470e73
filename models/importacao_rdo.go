package models

import "time"

// ImportacaoRdo registra um intervalo de datas já consumido por uma
// importação de avanço físico. O invariante é: para uma mesma obra,
// dois registros vivos nunca se sobrepõem (teste inclusivo nas duas
// pontas). Excluir o registro libera o intervalo para reimportação,
// mas não desfaz as quantidades já gravadas na medição.
type ImportacaoRdo struct {
	ID        uint   `gorm:"primaryKey"            json:"id"`
	Uuid      string `gorm:"column:uuid;uniqueIndex" json:"uuid"`
	ObraID    uint   `gorm:"column:obra_id;index"  json:"obraId"`
	MedicaoID uint   `gorm:"column:medicao_id"     json:"medicaoId"`

	DataInicio time.Time `gorm:"column:data_inicio;type:date" json:"dataInicio"`
	DataFim    time.Time `gorm:"column:data_fim;type:date"    json:"dataFim"`

	ImportadoPor uint      `gorm:"column:importado_por" json:"importadoPor"`
	CreatedAt    time.Time `                            json:"createdAt"`
}

func (ImportacaoRdo) TableName() string { return "importacoes_rdo" }
