package models

import "time"

// NotificacaoAtraso é a trava de idempotência do detector de atraso:
// no máximo uma notificação por obra por dia-calendário, mesmo com
// execuções repetidas da varredura.
type NotificacaoAtraso struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ObraID         uint      `gorm:"column:obra_id;index:idx_notificacao_obra_data,unique" json:"obraId"`
	DataReferencia time.Time `gorm:"column:data_referencia;type:date;index:idx_notificacao_obra_data,unique" json:"dataReferencia"`
	Destinatarios  string    `gorm:"column:destinatarios" json:"destinatarios"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (NotificacaoAtraso) TableName() string { return "notificacoes_atraso" }
