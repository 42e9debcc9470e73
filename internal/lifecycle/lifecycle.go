// Package lifecycle concentra as regras de transição de estado de
// medições e aditivos. Os handlers aplicam estas funções antes de
// qualquer escrita — a proteção não depende do front-end desabilitar
// botões.
package lifecycle

import (
	"errors"
	"time"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

var (
	ErrSemPermissao        = errors.New("operação restrita a administradores")
	ErrMedicaoBloqueada    = errors.New("a medição está bloqueada para edição")
	ErrMedicaoJaBloqueada  = errors.New("a medição já está bloqueada")
	ErrMedicaoNaoBloqueada = errors.New("a medição não está bloqueada")
	ErrExclusaoBloqueada   = errors.New("medição bloqueada só pode ser excluída com override administrativo")

	ErrAditivoPublicado    = errors.New("o aditivo está publicado e não aceita edição")
	ErrAditivoJaPublicado  = errors.New("o aditivo já está publicado")
	ErrAditivoNaoPublicado = errors.New("o aditivo não está publicado")
	ErrSequenciaDuplicada  = errors.New("já existe aditivo publicado com esta sequência")
	ErrConfirmacaoExigida  = errors.New("a exclusão de aditivo exige confirmação explícita")
)

// BloquearMedicao fecha a medição, carimbando autor e instante. Exige
// capacidade administrativa.
func BloquearMedicao(m *models.Medicao, ator *models.Usuario, agora time.Time) error {
	if !ator.EhAdmin() {
		return ErrSemPermissao
	}
	if m.Bloqueada {
		return ErrMedicaoJaBloqueada
	}
	m.Bloqueada = true
	m.BloqueadaEm = &agora
	m.BloqueadaPor = &ator.ID
	return nil
}

// ReabrirMedicao limpa o carimbo de bloqueio. Admin apenas; os valores
// medidos não são tocados.
func ReabrirMedicao(m *models.Medicao, ator *models.Usuario) error {
	if !ator.EhAdmin() {
		return ErrSemPermissao
	}
	if !m.Bloqueada {
		return ErrMedicaoNaoBloqueada
	}
	m.Bloqueada = false
	m.BloqueadaEm = nil
	m.BloqueadaPor = nil
	return nil
}

// PodeEditarMedicao autoriza alterações nos valores medidos.
func PodeEditarMedicao(m *models.Medicao) error {
	if m.Bloqueada {
		return ErrMedicaoBloqueada
	}
	return nil
}

// PodeExcluirMedicao permite exclusão enquanto aberta; bloqueada, só
// com override explícito de um administrador — nunca em silêncio.
func PodeExcluirMedicao(m *models.Medicao, ator *models.Usuario, override bool) error {
	if !m.Bloqueada {
		return nil
	}
	if !override {
		return ErrExclusaoBloqueada
	}
	if !ator.EhAdmin() {
		return ErrSemPermissao
	}
	return nil
}

// PublicarAditivo publica o rascunho. Aditivo nunca publicado recebe a
// próxima sequência do contador monotônico; aditivo reaberto mantém a
// sequência original na republicação. Sequência já usada por outro
// aditivo é rejeitada em vez de silenciosamente ignorada.
func PublicarAditivo(a *models.Aditivo, sequenciasEmUso map[int]uint) error {
	if a.Bloqueado {
		return ErrAditivoJaPublicado
	}
	if a.Sequencia == nil {
		proxima := 1
		for s := range sequenciasEmUso {
			if s >= proxima {
				proxima = s + 1
			}
		}
		a.Sequencia = &proxima
	} else if dono, usada := sequenciasEmUso[*a.Sequencia]; usada && dono != a.ID {
		return ErrSequenciaDuplicada
	}
	a.Bloqueado = true
	return nil
}

// ReabrirAditivo volta o aditivo a rascunho sem limpar a sequência.
// Admin apenas. O resumo financeiro deixa de contá-lo imediatamente,
// por ser recalculado a cada leitura.
func ReabrirAditivo(a *models.Aditivo, ator *models.Usuario) error {
	if !ator.EhAdmin() {
		return ErrSemPermissao
	}
	if !a.Bloqueado {
		return ErrAditivoNaoPublicado
	}
	a.Bloqueado = false
	return nil
}

// PodeEditarAditivo autoriza alterações nos deltas do aditivo.
func PodeEditarAditivo(a *models.Aditivo) error {
	if a.Bloqueado {
		return ErrAditivoPublicado
	}
	return nil
}

// PodeExcluirAditivo aceita exclusão em qualquer estado, mas sempre com
// confirmação. Excluir um aditivo publicado invalida os acumulados
// seguintes; como o resumo é recalculado a cada leitura, não há cache a
// limpar.
func PodeExcluirAditivo(a *models.Aditivo, confirmado bool) error {
	if !confirmado {
		return ErrConfirmacaoExigida
	}
	return nil
}
