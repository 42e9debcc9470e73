package planilha

import "strings"

// Chaves canônicas das colunas reconhecidas no orçamento.
const (
	ColunaItem          = "item"
	ColunaCodigoBanco   = "codigo_banco"
	ColunaDescricao     = "descricao"
	ColunaUnidade       = "unidade"
	ColunaQuantidade    = "quantidade"
	ColunaPrecoUnitario = "preco_unitario"
	ColunaPrecoTotal    = "preco_total"
)

// ColunasObrigatorias na ordem em que aparecem nas mensagens ao usuário.
var ColunasObrigatorias = []string{
	ColunaItem, ColunaCodigoBanco, ColunaDescricao, ColunaUnidade,
	ColunaQuantidade, ColunaPrecoUnitario, ColunaPrecoTotal,
}

var removeAcentos = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

// NormalizarCabecalho prepara o texto de um cabeçalho para consulta na
// tabela de sinônimos: minúsculas, sem acento, pontuação e espaços
// repetidos reduzidos a um espaço.
func NormalizarCabecalho(texto string) string {
	s := removeAcentos.Replace(strings.ToLower(strings.TrimSpace(texto)))

	var b strings.Builder
	b.Grow(len(s))
	espacoPendente := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if espacoPendente && b.Len() > 0 {
				b.WriteByte(' ')
			}
			espacoPendente = false
			b.WriteRune(r)
		} else {
			espacoPendente = true
		}
	}
	return b.String()
}

// sinonimos mapeia o cabeçalho normalizado (sem espaços) para a coluna
// canônica. Tabela explícita: cabeçalho desconhecido não é adivinhado,
// a coluna simplesmente fica sem mapeamento e a importação falha com a
// lista de colunas faltantes.
var sinonimos = map[string]string{
	"item":   ColunaItem,
	"itens":  ColunaItem,
	"numero": ColunaItem,

	"codigo":        ColunaCodigoBanco,
	"codigobanco":   ColunaCodigoBanco,
	"codigodobanco": ColunaCodigoBanco,
	"codigosinapi":  ColunaCodigoBanco,
	"cod":           ColunaCodigoBanco,
	"codsinapi":     ColunaCodigoBanco,

	"descricao":            ColunaDescricao,
	"descricaodoservico":   ColunaDescricao,
	"descricaodosservicos": ColunaDescricao,
	"discriminacao":        ColunaDescricao,
	"especificacao":        ColunaDescricao,
	"servico":              ColunaDescricao,
	"servicos":             ColunaDescricao,

	"unidade": ColunaUnidade,
	"und":     ColunaUnidade,
	"unid":    ColunaUnidade,
	"un":      ColunaUnidade,
	"um":      ColunaUnidade,

	"quantidade":  ColunaQuantidade,
	"quantidades": ColunaQuantidade,
	"quant":       ColunaQuantidade,
	"qtd":         ColunaQuantidade,
	"qtde":        ColunaQuantidade,

	"precounitario":       ColunaPrecoUnitario,
	"precounit":           ColunaPrecoUnitario,
	"valorunitario":       ColunaPrecoUnitario,
	"valorunit":           ColunaPrecoUnitario,
	"custounitario":       ColunaPrecoUnitario,
	"punitario":           ColunaPrecoUnitario,
	"precounitariocombdi": ColunaPrecoUnitario,
	"valorunitariocombdi": ColunaPrecoUnitario,

	"precototal": ColunaPrecoTotal,
	"valortotal": ColunaPrecoTotal,
	"custototal": ColunaPrecoTotal,
	"total":      ColunaPrecoTotal,
	"ptotal":     ColunaPrecoTotal,
}

// ResolverSinonimo devolve a chave canônica da coluna ou "" quando o
// cabeçalho não consta da tabela.
func ResolverSinonimo(normalizado string) string {
	return sinonimos[strings.ReplaceAll(normalizado, " ", "")]
}
