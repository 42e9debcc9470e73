package planilha

import "testing"

func TestParseNumero(t *testing.T) {
	casos := []struct {
		entrada string
		querido float64
	}{
		{"1.234,56", 1234.56},
		{"1234.56", 1234.56},
		{"1,5", 1.5},
		{"1,234", 1234},
		{"1.234.567,89", 1234567.89},
		// Só pontos: apenas o último é decimal.
		{"1.234.567", 1234.567},
		{"R$ 2.500,00", 2500},
		{"0,01", 0.01},
		{"-1.000,50", -1000.5},
		{"42", 42},
		{"", 0},
		{"abc", 0},
		{"12abc", 0},
	}

	for _, caso := range casos {
		t.Run(caso.entrada, func(t *testing.T) {
			obtido := ParseNumero(caso.entrada)
			if obtido != caso.querido {
				t.Fatalf("ParseNumero(%q) = %v, esperado %v", caso.entrada, obtido, caso.querido)
			}
		})
	}
}

func TestEhNumerico(t *testing.T) {
	t.Run("zero explícito é numérico", func(t *testing.T) {
		if !EhNumerico("0") {
			t.Fatal("esperava que \"0\" fosse numérico")
		}
		if !EhNumerico("0,00") {
			t.Fatal("esperava que \"0,00\" fosse numérico")
		}
	})

	t.Run("texto não é numérico", func(t *testing.T) {
		if EhNumerico("FUNDAÇÃO") {
			t.Fatal("texto não deveria ser numérico")
		}
		if EhNumerico("") {
			t.Fatal("vazio não deveria ser numérico")
		}
	})
}
