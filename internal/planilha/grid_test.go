package planilha

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	t.Run("separador ponto e vírgula", func(t *testing.T) {
		entrada := "Item;Descrição;Total\n1;Fundação;10.000,00\n"
		g, err := Parse(strings.NewReader(entrada), "orcamento.csv")
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(g) != 2 || Celula(g[1], 2) != "10.000,00" {
			t.Fatalf("grade inesperada: %v", g)
		}
	})

	t.Run("separador vírgula", func(t *testing.T) {
		entrada := "Item,Descrição,Total\n1,Fundação,10000\n"
		g, err := Parse(strings.NewReader(entrada), "ORCAMENTO.CSV")
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if Celula(g[1], 1) != "Fundação" {
			t.Fatalf("grade inesperada: %v", g)
		}
	})

	t.Run("empate entre separadores prefere ponto e vírgula", func(t *testing.T) {
		entrada := "a;b,c\nx;y,z\n"
		g, err := Parse(strings.NewReader(entrada), "a.csv")
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(g[0]) != 2 || g[0][1] != "b,c" {
			t.Fatalf("esperava divisão por ponto e vírgula: %v", g[0])
		}
	})

	t.Run("extensão xls vai para o leitor binário", func(t *testing.T) {
		// Conteúdo inválido para qualquer formato: o que importa é o
		// roteamento não cair na camada zip do excelize.
		_, err := Parse(strings.NewReader("isto não é uma planilha"), "orcamento.XLS")
		if err == nil {
			t.Fatal("conteúdo inválido deveria falhar")
		}
		if strings.Contains(err.Error(), "zip") {
			t.Fatalf("arquivo .xls não deveria passar pelo leitor de xlsx: %v", err)
		}
	})

	t.Run("arquivo sem dados suficientes", func(t *testing.T) {
		entrada := "Item;Descrição\n;\n"
		if _, err := Parse(strings.NewReader(entrada), "vazio.csv"); !errors.Is(err, ErrNenhumaAbaUtilizavel) {
			t.Fatalf("esperava ErrNenhumaAbaUtilizavel, veio %v", err)
		}
	})
}

func TestLinhaVazia(t *testing.T) {
	casos := []struct {
		linha    []string
		esperado bool
	}{
		{nil, true},
		{[]string{}, true},
		{[]string{"", "  ", "\t"}, true},
		{[]string{"", "x"}, false},
	}
	for _, caso := range casos {
		if got := LinhaVazia(caso.linha); got != caso.esperado {
			t.Fatalf("LinhaVazia(%v) = %v, esperado %v", caso.linha, got, caso.esperado)
		}
	}
}

func TestCelula(t *testing.T) {
	linha := []string{" a ", "b"}
	if Celula(linha, 0) != "a" {
		t.Fatalf("Celula deveria aparar espaços, veio %q", Celula(linha, 0))
	}
	if Celula(linha, 5) != "" || Celula(linha, -1) != "" {
		t.Fatal("índice fora da linha deveria devolver vazio")
	}
}
