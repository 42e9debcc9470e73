package planilha

import "testing"

func TestNormalizarCabecalho(t *testing.T) {
	casos := []struct {
		entrada string
		querido string
	}{
		{"Descrição", "descricao"},
		{"  PREÇO   UNITÁRIO  ", "preco unitario"},
		{"Código (Banco)", "codigo banco"},
		{"Valor Unit. c/ BDI", "valor unit c bdi"},
		{"QTDE.", "qtde"},
	}

	for _, caso := range casos {
		t.Run(caso.entrada, func(t *testing.T) {
			obtido := NormalizarCabecalho(caso.entrada)
			if obtido != caso.querido {
				t.Fatalf("NormalizarCabecalho(%q) = %q, esperado %q", caso.entrada, obtido, caso.querido)
			}
		})
	}
}

func TestResolverSinonimo(t *testing.T) {
	casos := []struct {
		entrada string
		querido string
	}{
		{"codigo", ColunaCodigoBanco},
		{"codigo banco", ColunaCodigoBanco},
		{"descricao do servico", ColunaDescricao},
		{"und", ColunaUnidade},
		{"qtd", ColunaQuantidade},
		{"preco unitario", ColunaPrecoUnitario},
		{"valor total", ColunaPrecoTotal},
		{"item", ColunaItem},
		{"coluna estranha", ""},
	}

	for _, caso := range casos {
		t.Run(caso.entrada, func(t *testing.T) {
			obtido := ResolverSinonimo(caso.entrada)
			if obtido != caso.querido {
				t.Fatalf("ResolverSinonimo(%q) = %q, esperado %q", caso.entrada, obtido, caso.querido)
			}
		})
	}
}
