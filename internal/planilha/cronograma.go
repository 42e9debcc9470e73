package planilha

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrCabecalhoNaoEncontrado = errors.New("nenhuma linha de cabeçalho começando por \"Item\" foi encontrada")
	ErrNenhumItemEncontrado   = errors.New("nenhuma linha de dados válida foi encontrada no cronograma")
)

// PeriodoCronograma é a parcela do valor da etapa atribuída a um
// período de N dias.
type PeriodoCronograma struct {
	Dias            int     `json:"dias"`
	Valor           float64 `json:"valor"`
	PercentualEtapa float64 `json:"percentualEtapa"`
}

// ItemCronograma é uma etapa do cronograma físico-financeiro com a
// distribuição dos valores por período.
type ItemCronograma struct {
	NumeroItem int                 `json:"numeroItem"`
	Descricao  string              `json:"descricao"`
	TotalEtapa float64             `json:"totalEtapa"`
	Periodos   []PeriodoCronograma `json:"periodos"`
}

var padraoPeriodo = regexp.MustCompile(`(?i)^(\d+)\s*DIAS$`)

// Linhas de resumo geradas pela própria planilha, que não são etapas.
var descricoesResumo = []string{"PORCENTAGEM", "CUSTO", "ACUMULADO"}

type colunaPeriodo struct {
	indice int
	dias   int
}

// ImportarCronograma lê a grade de um cronograma físico-financeiro.
// O cabeçalho é a linha cuja primeira célula é "Item" (sem distinção
// de caixa); dela saem as colunas de período no padrão "<n> DIAS", que
// não precisam ser contíguas nem ordenadas. Só entram períodos com
// valor > 0.
func ImportarCronograma(g Grid) ([]ItemCronograma, error) {
	linhaCabecalho := -1
	for i, linha := range g {
		if strings.EqualFold(Celula(linha, 0), "item") {
			linhaCabecalho = i
			break
		}
	}
	if linhaCabecalho < 0 {
		return nil, ErrCabecalhoNaoEncontrado
	}

	var periodos []colunaPeriodo
	for indice, celula := range g[linhaCabecalho] {
		m := padraoPeriodo.FindStringSubmatch(strings.TrimSpace(celula))
		if m == nil {
			continue
		}
		dias, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		periodos = append(periodos, colunaPeriodo{indice: indice, dias: dias})
	}

	var itens []ItemCronograma
	for i := linhaCabecalho + 1; i < len(g); i++ {
		linha := g[i]
		numeroItem, ok := numeroInteiro(Celula(linha, 0))
		if !ok {
			continue
		}

		descricao := Celula(linha, 1)
		if ehLinhaResumo(descricao) {
			continue
		}

		item := ItemCronograma{
			NumeroItem: numeroItem,
			Descricao:  descricao,
			TotalEtapa: ParseNumero(Celula(linha, 2)),
		}
		for _, p := range periodos {
			valor := ParseNumero(Celula(linha, p.indice))
			if valor <= 0 {
				continue
			}
			percentual := 0.0
			if item.TotalEtapa != 0 {
				percentual = Arredondar2(valor / item.TotalEtapa * 100)
			}
			item.Periodos = append(item.Periodos, PeriodoCronograma{
				Dias:            p.dias,
				Valor:           valor,
				PercentualEtapa: percentual,
			})
		}
		itens = append(itens, item)
	}

	if len(itens) == 0 {
		return nil, ErrNenhumItemEncontrado
	}
	return itens, nil
}

func ehLinhaResumo(descricao string) bool {
	maiuscula := strings.ToUpper(descricao)
	for _, marca := range descricoesResumo {
		if strings.Contains(maiuscula, marca) {
			return true
		}
	}
	return false
}

// numeroInteiro aceita "3", "3.0" e "3,0" como o número de uma etapa.
// Fracionários e texto ficam de fora.
func numeroInteiro(celula string) (int, bool) {
	if !EhNumerico(celula) {
		return 0, false
	}
	v := ParseNumero(celula)
	if v <= 0 || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}
