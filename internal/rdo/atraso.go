package rdo

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/notify"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

// LimiteAtrasoDias é o tamanho da lacuna de preenchimento, em dias
// corridos, a partir do qual a obra é notificada.
const LimiteAtrasoDias = 7

const chaveDia = "2006-01-02"

// PrimeiraLacuna percorre os dias-calendário de inicio (inclusive) a
// hoje (exclusive) e devolve o primeiro dia sem RDO aprovado e sem
// marcação de "sem expediente". Os conjuntos usam a data no formato
// AAAA-MM-DD.
func PrimeiraLacuna(inicio, hoje time.Time, reportados, semExpediente map[string]bool) (time.Time, bool) {
	for dia := Dia(inicio); dia.Before(Dia(hoje)); dia = dia.AddDate(0, 0, 1) {
		chave := dia.Format(chaveDia)
		if !reportados[chave] && !semExpediente[chave] {
			return dia, true
		}
	}
	return time.Time{}, false
}

// DiasCorridos conta os dias-calendário inteiros entre a lacuna e hoje.
func DiasCorridos(lacuna, hoje time.Time) int {
	return int(Dia(hoje).Sub(Dia(lacuna)).Hours() / 24)
}

// ResultadoVarredura resume uma execução da varredura de atraso.
type ResultadoVarredura struct {
	ObrasVerificadas int `json:"obrasVerificadas"`
	Notificadas      int `json:"notificadas"`
	Falhas           int `json:"falhas"`
}

// VarrerAtrasos roda a detecção de atraso sobre todas as obras em
// andamento com RDO habilitado. A falha em uma obra é registrada e a
// varredura segue para as demais. A trava NotificacaoAtraso garante no
// máximo uma notificação por obra por dia, mesmo com execuções
// repetidas do gatilho.
func VarrerAtrasos(db *gorm.DB, notifier notify.Notifier, hoje time.Time) ResultadoVarredura {
	var resultado ResultadoVarredura

	var obras []models.Obra
	if err := db.Preload("Fiscal").Preload("Contatos").
		Where("status = ? AND rdo_habilitado = ?", models.ObraEmAndamento, true).
		Find(&obras).Error; err != nil {
		slog.Error("Varredura de atraso: falha ao listar obras", "error", err)
		resultado.Falhas++
		return resultado
	}

	for _, obra := range obras {
		resultado.ObrasVerificadas++
		notificada, err := verificarObra(db, notifier, obra, hoje)
		if err != nil {
			slog.Error("Varredura de atraso: falha na obra", "obra_id", obra.ID, "error", err)
			resultado.Falhas++
			continue
		}
		if notificada {
			resultado.Notificadas++
		}
	}
	return resultado
}

func verificarObra(db *gorm.DB, notifier notify.Notifier, obra models.Obra, hoje time.Time) (bool, error) {
	if obra.DataInicio == nil {
		return false, nil
	}

	var relatorios []models.RelatorioDiario
	if err := db.Select("data", "status", "sem_expediente").
		Where("obra_id = ?", obra.ID).Find(&relatorios).Error; err != nil {
		return false, err
	}

	reportados := map[string]bool{}
	semExpediente := map[string]bool{}
	for _, r := range relatorios {
		chave := Dia(r.Data).Format(chaveDia)
		if r.SemExpediente {
			semExpediente[chave] = true
		} else if r.Status == models.RdoAprovado {
			reportados[chave] = true
		}
	}

	lacuna, existe := PrimeiraLacuna(*obra.DataInicio, hoje, reportados, semExpediente)
	if !existe {
		return false, nil
	}
	if DiasCorridos(lacuna, hoje) < LimiteAtrasoDias {
		return false, nil
	}

	// Já notificada hoje? A chave (obra, dia) é única.
	var existentes int64
	if err := db.Model(&models.NotificacaoAtraso{}).
		Where("obra_id = ? AND data_referencia = ?", obra.ID, Dia(hoje)).
		Count(&existentes).Error; err != nil {
		return false, err
	}
	if existentes > 0 {
		return false, nil
	}

	destinatarios := montarDestinatarios(obra)
	mensagem := notify.Mensagem{
		Para:      destinatarios,
		Assunto:   fmt.Sprintf("Obra %s sem RDO desde %s", obra.Nome, lacuna.Format("02/01/2006")),
		CorpoHTML: corpoAtraso(obra, lacuna, hoje),
	}
	if err := notifier.Enviar(mensagem); err != nil {
		// A entrega falhou; sem a trava gravada, a próxima varredura
		// tenta de novo.
		return false, err
	}

	trava := models.NotificacaoAtraso{
		ObraID:         obra.ID,
		DataReferencia: Dia(hoje),
		Destinatarios:  strings.Join(destinatarios, ";"),
	}
	if err := db.Create(&trava).Error; err != nil {
		return true, err
	}
	return true, nil
}

// montarDestinatarios junta o destinatário fixo do órgão, os contatos
// da empreiteira e o fiscal designado, sem duplicatas.
func montarDestinatarios(obra models.Obra) []string {
	vistos := map[string]bool{}
	var lista []string
	incluir := func(email string) {
		email = strings.TrimSpace(email)
		if email == "" || vistos[email] {
			return
		}
		vistos[email] = true
		lista = append(lista, email)
	}

	incluir(os.Getenv("NOTIFICACAO_EMAIL_FIXO"))
	for _, contato := range obra.Contatos {
		incluir(contato.Email)
	}
	if obra.Fiscal != nil {
		incluir(obra.Fiscal.Email)
	}
	return lista
}

func corpoAtraso(obra models.Obra, lacuna, hoje time.Time) string {
	return fmt.Sprintf(
		"<p>A obra <strong>%s</strong> (contrato %s) está há <strong>%d dias</strong> sem relatório diário.</p>"+
			"<p>Último dia coberto antes da lacuna: %s. Regularize o preenchimento do RDO.</p>",
		obra.Nome, obra.NumeroContrato,
		DiasCorridos(lacuna, hoje),
		lacuna.AddDate(0, 0, -1).Format("02/01/2006"))
}
