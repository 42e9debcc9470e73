package aditivos

import (
	"math"
	"testing"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

func seq(n int) *int { return &n }

func quase(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCalcularResumo(t *testing.T) {
	itens := []models.ItemOrcamento{
		{ID: 1, Origem: models.OrigemContrato},
		{ID: 2, Origem: models.OrigemContrato},
		{ID: 3, Origem: models.OrigemExtracontratual},
	}

	t.Run("acrescimos supressoes e extracontratual em um aditivo", func(t *testing.T) {
		aditivos := []models.Aditivo{
			{
				ID: 10, Nome: "1º Termo Aditivo", Sequencia: seq(1), Bloqueado: true,
				Itens: []models.AditivoItem{
					{ItemOrcamentoID: 1, Total: 5000},
					{ItemOrcamentoID: 2, Total: -1000},
					{ItemOrcamentoID: 3, Total: 3000},
				},
			},
		}
		resumo := CalcularResumo(100000, itens, aditivos)
		if len(resumo.Linhas) != 1 {
			t.Fatalf("esperava 1 linha, veio %d", len(resumo.Linhas))
		}
		linha := resumo.Linhas[0]
		if linha.Acrescimos != 5000 || linha.Supressoes != 1000 || linha.Extracontratual != 3000 {
			t.Fatalf("parcelas inesperadas: %+v", linha)
		}
		if linha.TotalGeral != 7000 {
			t.Fatalf("TotalGeral = %v, esperado 7000", linha.TotalGeral)
		}
		if !quase(linha.PercentualAditivo, 7.0) || !quase(linha.PercentualAcumulado, 7.0) {
			t.Fatalf("percentuais inesperados: %+v", linha)
		}
		if linha.ValorAposAditivo != 107000 || resumo.ValorFinalContrato != 107000 {
			t.Fatalf("valores finais inesperados: linha=%v resumo=%v", linha.ValorAposAditivo, resumo.ValorFinalContrato)
		}
	})

	t.Run("acumulado atravessa os aditivos na ordem da sequencia", func(t *testing.T) {
		// Fora de ordem de propósito: a sequência manda, não a posição.
		aditivos := []models.Aditivo{
			{
				ID: 21, Nome: "2º Termo", Sequencia: seq(2), Bloqueado: true,
				Itens: []models.AditivoItem{{ItemOrcamentoID: 2, Total: -4000}},
			},
			{
				ID: 20, Nome: "1º Termo", Sequencia: seq(1), Bloqueado: true,
				Itens: []models.AditivoItem{{ItemOrcamentoID: 1, Total: 10000}},
			},
		}
		resumo := CalcularResumo(50000, itens, aditivos)
		if len(resumo.Linhas) != 2 {
			t.Fatalf("esperava 2 linhas, veio %d", len(resumo.Linhas))
		}
		primeira, segunda := resumo.Linhas[0], resumo.Linhas[1]
		if primeira.AditivoID != 20 || segunda.AditivoID != 21 {
			t.Fatalf("ordem errada: %v depois %v", primeira.AditivoID, segunda.AditivoID)
		}
		if primeira.ValorAposAditivo != 60000 {
			t.Fatalf("após o 1º termo esperava 60000, veio %v", primeira.ValorAposAditivo)
		}
		if segunda.TotalGeral != -4000 || segunda.ValorAposAditivo != 56000 {
			t.Fatalf("2º termo inesperado: %+v", segunda)
		}
		if !quase(segunda.PercentualAcumulado, 12.0) {
			t.Fatalf("acumulado do 2º termo = %v, esperado 12", segunda.PercentualAcumulado)
		}
		if resumo.ValorFinalContrato != 56000 {
			t.Fatalf("valor final = %v, esperado 56000", resumo.ValorFinalContrato)
		}
	})

	t.Run("rascunho e aditivo sem sequencia ficam de fora", func(t *testing.T) {
		aditivos := []models.Aditivo{
			{ID: 30, Sequencia: seq(1), Bloqueado: false,
				Itens: []models.AditivoItem{{ItemOrcamentoID: 1, Total: 999}}},
			{ID: 31, Sequencia: nil, Bloqueado: true,
				Itens: []models.AditivoItem{{ItemOrcamentoID: 1, Total: 999}}},
		}
		resumo := CalcularResumo(10000, itens, aditivos)
		if len(resumo.Linhas) != 0 {
			t.Fatalf("nenhuma linha deveria ser apurada: %+v", resumo.Linhas)
		}
		if resumo.ValorFinalContrato != 10000 {
			t.Fatalf("valor final deveria ser o original, veio %v", resumo.ValorFinalContrato)
		}
	})

	t.Run("valor original zero zera os percentuais", func(t *testing.T) {
		aditivos := []models.Aditivo{
			{ID: 40, Sequencia: seq(1), Bloqueado: true,
				Itens: []models.AditivoItem{{ItemOrcamentoID: 1, Total: 500}}},
		}
		resumo := CalcularResumo(0, itens, aditivos)
		linha := resumo.Linhas[0]
		if linha.PercentualAditivo != 0 || linha.PercentualAcumulado != 0 {
			t.Fatalf("percentuais deveriam ser 0: %+v", linha)
		}
		if linha.TotalGeral != 500 || resumo.ValorFinalContrato != 500 {
			t.Fatalf("valores absolutos seguem valendo: %+v", linha)
		}
	})

	t.Run("delta zero nao conta em parcela nenhuma", func(t *testing.T) {
		aditivos := []models.Aditivo{
			{ID: 50, Sequencia: seq(1), Bloqueado: true,
				Itens: []models.AditivoItem{
					{ItemOrcamentoID: 1, Total: 0},
					{ItemOrcamentoID: 3, Total: 0},
				}},
		}
		resumo := CalcularResumo(10000, itens, aditivos)
		linha := resumo.Linhas[0]
		if linha.Acrescimos != 0 || linha.Supressoes != 0 || linha.Extracontratual != 0 || linha.TotalGeral != 0 {
			t.Fatalf("delta zero vazou para alguma parcela: %+v", linha)
		}
	})

	t.Run("supressao em item extracontratual entra como supressao", func(t *testing.T) {
		aditivos := []models.Aditivo{
			{ID: 60, Sequencia: seq(1), Bloqueado: true,
				Itens: []models.AditivoItem{{ItemOrcamentoID: 3, Total: -200}}},
		}
		resumo := CalcularResumo(10000, itens, aditivos)
		linha := resumo.Linhas[0]
		if linha.Supressoes != 200 || linha.Extracontratual != 0 {
			t.Fatalf("supressão extracontratual classificada errado: %+v", linha)
		}
	})
}
