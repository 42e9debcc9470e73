package planilha

import (
	"errors"
	"testing"
)

func TestImportarCronograma(t *testing.T) {
	t.Run("distribuição simples em dois períodos", func(t *testing.T) {
		g := Grid{
			{"CRONOGRAMA FÍSICO-FINANCEIRO"},
			{"Item", "Descrição", "Total", "30 DIAS", "60 DIAS"},
			{"1", "Fundação", "10000", "4000", "6000"},
		}
		itens, err := ImportarCronograma(g)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(itens) != 1 {
			t.Fatalf("esperava 1 item, veio %d", len(itens))
		}
		item := itens[0]
		if item.NumeroItem != 1 || item.Descricao != "Fundação" || item.TotalEtapa != 10000 {
			t.Fatalf("item inesperado: %+v", item)
		}
		if len(item.Periodos) != 2 {
			t.Fatalf("esperava 2 períodos, veio %d", len(item.Periodos))
		}
		p30, p60 := item.Periodos[0], item.Periodos[1]
		if p30.Dias != 30 || p30.Valor != 4000 || p30.PercentualEtapa != 40.0 {
			t.Fatalf("período de 30 dias inesperado: %+v", p30)
		}
		if p60.Dias != 60 || p60.Valor != 6000 || p60.PercentualEtapa != 60.0 {
			t.Fatalf("período de 60 dias inesperado: %+v", p60)
		}
	})

	t.Run("período zerado é omitido", func(t *testing.T) {
		g := Grid{
			{"Item", "Descrição", "Total", "30 DIAS", "60 DIAS", "90 DIAS"},
			{"2", "Estrutura", "5000", "0", "5000", ""},
		}
		itens, err := ImportarCronograma(g)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		periodos := itens[0].Periodos
		if len(periodos) != 1 || periodos[0].Dias != 60 {
			t.Fatalf("esperava só o período de 60 dias, veio %+v", periodos)
		}
	})

	t.Run("linhas de resumo da planilha são puladas", func(t *testing.T) {
		g := Grid{
			{"Item", "Descrição", "Total", "30 DIAS"},
			{"1", "Fundação", "1000", "1000"},
			{"2", "CUSTO MENSAL", "1000", "1000"},
			{"3", "PORCENTAGEM ACUMULADA", "100", "100"},
		}
		itens, err := ImportarCronograma(g)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(itens) != 1 || itens[0].Descricao != "Fundação" {
			t.Fatalf("só a etapa real deveria sobrar: %+v", itens)
		}
	})

	t.Run("número da etapa aceita decimal exato", func(t *testing.T) {
		g := Grid{
			{"Item", "Descrição", "Total", "30 DIAS"},
			{"3,0", "Cobertura", "2000", "2000"},
			{"3.5", "fração não é etapa", "1000", "1000"},
			{"etapa", "texto não é etapa", "1000", "1000"},
			{"0", "zero não é etapa", "1000", "1000"},
		}
		itens, err := ImportarCronograma(g)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(itens) != 1 || itens[0].NumeroItem != 3 {
			t.Fatalf("esperava só a etapa 3: %+v", itens)
		}
	})

	t.Run("total zero deixa percentuais em zero", func(t *testing.T) {
		g := Grid{
			{"Item", "Descrição", "Total", "30 DIAS"},
			{"1", "Etapa sem total", "0", "500"},
		}
		itens, err := ImportarCronograma(g)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if itens[0].Periodos[0].PercentualEtapa != 0 {
			t.Fatalf("percentual deveria ser 0 com total zero, veio %v", itens[0].Periodos[0].PercentualEtapa)
		}
	})

	t.Run("sem linha de cabeçalho", func(t *testing.T) {
		g := Grid{
			{"Cronograma"},
			{"1", "Fundação", "1000", "1000"},
		}
		if _, err := ImportarCronograma(g); !errors.Is(err, ErrCabecalhoNaoEncontrado) {
			t.Fatalf("esperava ErrCabecalhoNaoEncontrado, veio %v", err)
		}
	})

	t.Run("cabeçalho sem nenhuma etapa", func(t *testing.T) {
		g := Grid{
			{"Item", "Descrição", "Total", "30 DIAS"},
			{"", "TOTAL GERAL", "1000", "1000"},
		}
		if _, err := ImportarCronograma(g); !errors.Is(err, ErrNenhumItemEncontrado) {
			t.Fatalf("esperava ErrNenhumItemEncontrado, veio %v", err)
		}
	})
}
