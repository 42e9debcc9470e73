package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

var (
	admin  = &models.Usuario{ID: 1, Perfil: models.PerfilAdmin}
	fiscal = &models.Usuario{ID: 2, Perfil: models.PerfilFiscal}
)

func TestBloquearMedicao(t *testing.T) {
	agora := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("admin bloqueia e carimba autor e instante", func(t *testing.T) {
		m := &models.Medicao{}
		if err := BloquearMedicao(m, admin, agora); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if !m.Bloqueada {
			t.Fatal("medição deveria estar bloqueada")
		}
		if m.BloqueadaEm == nil || !m.BloqueadaEm.Equal(agora) {
			t.Fatalf("BloqueadaEm = %v, esperado %v", m.BloqueadaEm, agora)
		}
		if m.BloqueadaPor == nil || *m.BloqueadaPor != admin.ID {
			t.Fatalf("BloqueadaPor = %v, esperado %d", m.BloqueadaPor, admin.ID)
		}
	})

	t.Run("não admin é recusado", func(t *testing.T) {
		m := &models.Medicao{}
		if err := BloquearMedicao(m, fiscal, agora); !errors.Is(err, ErrSemPermissao) {
			t.Fatalf("esperava ErrSemPermissao, veio %v", err)
		}
		if m.Bloqueada {
			t.Fatal("medição não deveria ter sido bloqueada")
		}
	})

	t.Run("bloquear duas vezes falha", func(t *testing.T) {
		m := &models.Medicao{Bloqueada: true}
		if err := BloquearMedicao(m, admin, agora); !errors.Is(err, ErrMedicaoJaBloqueada) {
			t.Fatalf("esperava ErrMedicaoJaBloqueada, veio %v", err)
		}
	})
}

func TestReabrirMedicao(t *testing.T) {
	t.Run("reabrir limpa o carimbo", func(t *testing.T) {
		agora := time.Now()
		m := &models.Medicao{Bloqueada: true, BloqueadaEm: &agora, BloqueadaPor: &admin.ID}
		if err := ReabrirMedicao(m, admin); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if m.Bloqueada || m.BloqueadaEm != nil || m.BloqueadaPor != nil {
			t.Fatalf("carimbo não foi limpo: %+v", m)
		}
	})

	t.Run("reabrir medição aberta falha", func(t *testing.T) {
		if err := ReabrirMedicao(&models.Medicao{}, admin); !errors.Is(err, ErrMedicaoNaoBloqueada) {
			t.Fatalf("esperava ErrMedicaoNaoBloqueada, veio %v", err)
		}
	})

	t.Run("não admin é recusado", func(t *testing.T) {
		m := &models.Medicao{Bloqueada: true}
		if err := ReabrirMedicao(m, fiscal); !errors.Is(err, ErrSemPermissao) {
			t.Fatalf("esperava ErrSemPermissao, veio %v", err)
		}
	})
}

func TestPodeEditarMedicao(t *testing.T) {
	if err := PodeEditarMedicao(&models.Medicao{}); err != nil {
		t.Fatalf("medição aberta deveria aceitar edição: %v", err)
	}
	if err := PodeEditarMedicao(&models.Medicao{Bloqueada: true}); !errors.Is(err, ErrMedicaoBloqueada) {
		t.Fatalf("esperava ErrMedicaoBloqueada, veio %v", err)
	}
}

func TestPodeExcluirMedicao(t *testing.T) {
	t.Run("aberta qualquer um exclui", func(t *testing.T) {
		if err := PodeExcluirMedicao(&models.Medicao{}, fiscal, false); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
	})

	t.Run("bloqueada sem override falha mesmo para admin", func(t *testing.T) {
		m := &models.Medicao{Bloqueada: true}
		if err := PodeExcluirMedicao(m, admin, false); !errors.Is(err, ErrExclusaoBloqueada) {
			t.Fatalf("esperava ErrExclusaoBloqueada, veio %v", err)
		}
	})

	t.Run("override exige admin", func(t *testing.T) {
		m := &models.Medicao{Bloqueada: true}
		if err := PodeExcluirMedicao(m, fiscal, true); !errors.Is(err, ErrSemPermissao) {
			t.Fatalf("esperava ErrSemPermissao, veio %v", err)
		}
		if err := PodeExcluirMedicao(m, admin, true); err != nil {
			t.Fatalf("admin com override deveria poder excluir: %v", err)
		}
	})
}

func TestPublicarAditivo(t *testing.T) {
	t.Run("primeira publicação recebe a próxima sequência", func(t *testing.T) {
		a := &models.Aditivo{ID: 7}
		emUso := map[int]uint{1: 5, 2: 6}
		if err := PublicarAditivo(a, emUso); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if !a.Bloqueado {
			t.Fatal("aditivo deveria estar publicado")
		}
		if a.Sequencia == nil || *a.Sequencia != 3 {
			t.Fatalf("Sequencia = %v, esperado 3", a.Sequencia)
		}
	})

	t.Run("sem publicações anteriores a sequência é 1", func(t *testing.T) {
		a := &models.Aditivo{ID: 1}
		if err := PublicarAditivo(a, map[int]uint{}); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if *a.Sequencia != 1 {
			t.Fatalf("Sequencia = %d, esperado 1", *a.Sequencia)
		}
	})

	t.Run("republicação mantém a sequência original", func(t *testing.T) {
		s := 2
		a := &models.Aditivo{ID: 6, Sequencia: &s}
		emUso := map[int]uint{1: 5, 2: 6, 3: 9}
		if err := PublicarAditivo(a, emUso); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if *a.Sequencia != 2 {
			t.Fatalf("Sequencia = %d, esperado 2", *a.Sequencia)
		}
	})

	t.Run("sequência de outro aditivo é rejeitada", func(t *testing.T) {
		s := 2
		a := &models.Aditivo{ID: 7, Sequencia: &s}
		emUso := map[int]uint{2: 6}
		if err := PublicarAditivo(a, emUso); !errors.Is(err, ErrSequenciaDuplicada) {
			t.Fatalf("esperava ErrSequenciaDuplicada, veio %v", err)
		}
		if a.Bloqueado {
			t.Fatal("aditivo não deveria ter sido publicado")
		}
	})

	t.Run("publicar duas vezes falha", func(t *testing.T) {
		a := &models.Aditivo{ID: 8, Bloqueado: true}
		if err := PublicarAditivo(a, nil); !errors.Is(err, ErrAditivoJaPublicado) {
			t.Fatalf("esperava ErrAditivoJaPublicado, veio %v", err)
		}
	})
}

func TestReabrirAditivo(t *testing.T) {
	t.Run("reabrir preserva a sequência", func(t *testing.T) {
		s := 3
		a := &models.Aditivo{Bloqueado: true, Sequencia: &s}
		if err := ReabrirAditivo(a, admin); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if a.Bloqueado {
			t.Fatal("aditivo deveria voltar a rascunho")
		}
		if a.Sequencia == nil || *a.Sequencia != 3 {
			t.Fatalf("Sequencia = %v, esperado 3", a.Sequencia)
		}
	})

	t.Run("não admin é recusado", func(t *testing.T) {
		a := &models.Aditivo{Bloqueado: true}
		if err := ReabrirAditivo(a, fiscal); !errors.Is(err, ErrSemPermissao) {
			t.Fatalf("esperava ErrSemPermissao, veio %v", err)
		}
	})

	t.Run("reabrir rascunho falha", func(t *testing.T) {
		if err := ReabrirAditivo(&models.Aditivo{}, admin); !errors.Is(err, ErrAditivoNaoPublicado) {
			t.Fatalf("esperava ErrAditivoNaoPublicado, veio %v", err)
		}
	})
}

func TestPodeEditarAditivo(t *testing.T) {
	if err := PodeEditarAditivo(&models.Aditivo{}); err != nil {
		t.Fatalf("rascunho deveria aceitar edição: %v", err)
	}
	if err := PodeEditarAditivo(&models.Aditivo{Bloqueado: true}); !errors.Is(err, ErrAditivoPublicado) {
		t.Fatalf("esperava ErrAditivoPublicado, veio %v", err)
	}
}

func TestPodeExcluirAditivo(t *testing.T) {
	if err := PodeExcluirAditivo(&models.Aditivo{}, false); !errors.Is(err, ErrConfirmacaoExigida) {
		t.Fatalf("esperava ErrConfirmacaoExigida, veio %v", err)
	}
	if err := PodeExcluirAditivo(&models.Aditivo{Bloqueado: true}, true); err != nil {
		t.Fatalf("com confirmação a exclusão é permitida: %v", err)
	}
}
