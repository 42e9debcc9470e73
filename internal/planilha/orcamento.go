package planilha

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

// Limite de erros/avisos exibidos ao usuário; os totais completos vão
// no resumo.
const LimiteExibicao = 10

// ErroEstruturalColunas bloqueia a importação inteira antes de
// qualquer linha ser processada.
type ErroEstruturalColunas struct {
	Faltando []string
}

func (e *ErroEstruturalColunas) Error() string {
	return "colunas obrigatórias não encontradas: " + strings.Join(e.Faltando, ", ")
}

// MapeamentoColunas associa cada coluna canônica ao índice em que foi
// encontrada no cabeçalho.
type MapeamentoColunas map[string]int

// DeteccaoColunas é o resultado de DetectarColunas.
type DeteccaoColunas struct {
	Mapeamento     MapeamentoColunas
	Faltando       []string
	Encontradas    []string
	LinhaCabecalho int
}

// DetectarColunas resolve o cabeçalho contra a tabela de sinônimos.
// A primeira ocorrência de cada coluna vence; colunas obrigatórias
// ausentes entram em Faltando.
func DetectarColunas(cabecalho []string) DeteccaoColunas {
	d := DeteccaoColunas{Mapeamento: MapeamentoColunas{}}
	for indice, celula := range cabecalho {
		chave := ResolverSinonimo(NormalizarCabecalho(celula))
		if chave == "" {
			continue
		}
		if _, ja := d.Mapeamento[chave]; !ja {
			d.Mapeamento[chave] = indice
		}
	}
	for _, coluna := range ColunasObrigatorias {
		if _, ok := d.Mapeamento[coluna]; ok {
			d.Encontradas = append(d.Encontradas, coluna)
		} else {
			d.Faltando = append(d.Faltando, coluna)
		}
	}
	return d
}

// localizarCabecalho procura, nas primeiras linhas da grade, a linha
// que resolve o maior número de colunas obrigatórias.
func localizarCabecalho(g Grid) DeteccaoColunas {
	const maxLinhasBusca = 15

	melhor := DeteccaoColunas{Mapeamento: MapeamentoColunas{}, Faltando: ColunasObrigatorias}
	for i, linha := range g {
		if i >= maxLinhasBusca {
			break
		}
		d := DetectarColunas(linha)
		if len(d.Encontradas) > len(melhor.Encontradas) {
			d.LinhaCabecalho = i
			melhor = d
		}
	}
	return melhor
}

// Ocorrencia é um erro ou aviso apontando a linha de origem (1-based,
// como o usuário vê na planilha).
type Ocorrencia struct {
	Linha    int    `json:"linha"`
	Mensagem string `json:"mensagem"`
}

// ResumoImportacao são os contadores completos, sem o corte de
// exibição.
type ResumoImportacao struct {
	Importados int `json:"importados"`
	Avisos     int `json:"avisos"`
	Erros      int `json:"erros"`
}

// ResultadoOrcamento agrega o produto da importação. A importação é
// considerada bem-sucedida quando pelo menos um item foi produzido,
// independentemente de quantos erros ou avisos existam.
type ResultadoOrcamento struct {
	Itens  []models.ItemOrcamento `json:"itens"`
	Erros  []Ocorrencia           `json:"erros"`
	Avisos []Ocorrencia           `json:"avisos"`
	Resumo ResumoImportacao       `json:"resumo"`
}

func (r *ResultadoOrcamento) Sucesso() bool { return len(r.Itens) > 0 }

var (
	padraoData        = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`)
	padraoDecimalPuro = regexp.MustCompile(`^\d+,\d+$`)
)

// ProcessarLinha converte uma linha da grade em item de orçamento.
// Linha em branco é pulada em silêncio; linha sem o identificador de
// item é erro; as demais anomalias viram avisos e não impedem o item.
func ProcessarLinha(linha []string, m MapeamentoColunas, numeroLinha int) (*models.ItemOrcamento, []Ocorrencia, []Ocorrencia) {
	if LinhaVazia(linha) {
		return nil, nil, nil
	}

	var erros, avisos []Ocorrencia

	item := Celula(linha, m[ColunaItem])
	if item == "" {
		erros = append(erros, Ocorrencia{numeroLinha, "coluna \"item\" vazia — linha ignorada"})
		return nil, erros, nil
	}

	// Artefatos de autoformatação do Excel: item virando data ou
	// número decimal.
	if padraoData.MatchString(item) {
		avisos = append(avisos, Ocorrencia{numeroLinha, fmt.Sprintf("item %q parece uma data; verifique a formatação da planilha", item)})
	} else if padraoDecimalPuro.MatchString(item) {
		avisos = append(avisos, Ocorrencia{numeroLinha, fmt.Sprintf("item %q parece um número formatado automaticamente", item)})
	}

	quantidadeBruta := Celula(linha, m[ColunaQuantidade])
	precoUnitBruto := Celula(linha, m[ColunaPrecoUnitario])
	precoTotalBruto := Celula(linha, m[ColunaPrecoTotal])

	quantidade := ParseNumero(quantidadeBruta)
	precoUnitario := ParseNumero(precoUnitBruto)
	precoTotal := ParseNumero(precoTotalBruto)

	if quantidade <= 0 {
		avisos = append(avisos, Ocorrencia{numeroLinha, fmt.Sprintf("item %q com quantidade %s — provável linha de título ou etapa", item, quantidadeBruta)})
	}

	switch {
	case precoTotalBruto == "" && quantidade > 0 && precoUnitBruto != "":
		precoTotal = Arredondar2(quantidade * precoUnitario)
	case precoUnitBruto == "" && quantidade > 0 && precoTotalBruto != "":
		precoUnitario = Arredondar2(precoTotal / quantidade)
	case precoTotalBruto != "" && precoUnitBruto != "" && quantidade > 0:
		// Cruzamento quantidade × unitário vs. total informado, com
		// tolerância de 1%. O total informado sempre prevalece. A base
		// é o maior dos dois valores para um total informado de 0,00
		// com produto positivo também divergir.
		calculado := quantidade * precoUnitario
		base := math.Max(math.Abs(precoTotal), math.Abs(calculado))
		if base > 0 && math.Abs(calculado-precoTotal)/base > 0.01 {
			avisos = append(avisos, Ocorrencia{numeroLinha, fmt.Sprintf(
				"item %q: quantidade × preço unitário (%.2f) diverge do total informado (%.2f) em mais de 1%%", item, calculado, precoTotal)})
		}
	}

	descricao := Celula(linha, m[ColunaDescricao])
	resultado := &models.ItemOrcamento{
		Item:                 item,
		CodigoBanco:          Celula(linha, m[ColunaCodigoBanco]),
		Descricao:            descricao,
		Unidade:              Celula(linha, m[ColunaUnidade]),
		Quantidade:           quantidade,
		PrecoUnitario:        precoUnitario,
		PrecoTotal:           precoTotal,
		Nivel:                nivelDoItem(item),
		EhAdministracaoLocal: ehAdministracaoLocal(descricao),
		Origem:               models.OrigemContrato,
	}
	return resultado, erros, avisos
}

// ImportarOrcamento processa a grade inteira: localiza o cabeçalho,
// valida as colunas obrigatórias e acumula itens, erros e avisos linha
// a linha, em ordem, para que as mensagens por índice sejam
// determinísticas.
func ImportarOrcamento(g Grid) (*ResultadoOrcamento, error) {
	deteccao := localizarCabecalho(g)
	if len(deteccao.Faltando) > 0 {
		return nil, &ErroEstruturalColunas{Faltando: deteccao.Faltando}
	}

	resultado := &ResultadoOrcamento{}
	ordem := 0
	for i := deteccao.LinhaCabecalho + 1; i < len(g); i++ {
		item, erros, avisos := ProcessarLinha(g[i], deteccao.Mapeamento, i+1)
		resultado.Resumo.Erros += len(erros)
		resultado.Resumo.Avisos += len(avisos)
		for _, e := range erros {
			if len(resultado.Erros) < LimiteExibicao {
				resultado.Erros = append(resultado.Erros, e)
			}
		}
		for _, a := range avisos {
			if len(resultado.Avisos) < LimiteExibicao {
				resultado.Avisos = append(resultado.Avisos, a)
			}
		}
		if item != nil {
			ordem++
			item.Ordem = ordem
			resultado.Itens = append(resultado.Itens, *item)
		}
	}
	resultado.Resumo.Importados = len(resultado.Itens)
	return resultado, nil
}

// nivelDoItem infere a profundidade na estrutura analítica pela
// numeração: "1" → 1, "1.2" → 2, "1.2.3" → 3.
func nivelDoItem(item string) int {
	return strings.Count(strings.Trim(item, "."), ".") + 1
}

func ehAdministracaoLocal(descricao string) bool {
	return strings.Contains(NormalizarCabecalho(descricao), "administracao local")
}

// Arredondar2 arredonda para 2 casas decimais (meio para cima).
func Arredondar2(v float64) float64 {
	return math.Round(v*100) / 100
}
