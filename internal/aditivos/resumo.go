// Package aditivos contém o motor de apuração financeira dos termos
// aditivos. O cálculo é puro e sempre refeito a partir dos aditivos
// publicados no banco — o resumo nunca é persistido nem servido de
// cache, já que publicar ou reabrir um aditivo altera todas as linhas
// acumuladas seguintes.
package aditivos

import (
	"sort"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/models"
)

// LinhaResumo é a apuração de um aditivo publicado.
type LinhaResumo struct {
	AditivoID uint   `json:"aditivoId"`
	Nome      string `json:"nome"`
	Sequencia int    `json:"sequencia"`

	Acrescimos      float64 `json:"acrescimos"`
	Supressoes      float64 `json:"supressoes"`
	Extracontratual float64 `json:"extracontratual"`
	TotalGeral      float64 `json:"totalGeral"`

	PercentualAditivo   float64 `json:"percentualAditivo"`
	PercentualAcumulado float64 `json:"percentualAcumulado"`
	ValorAposAditivo    float64 `json:"valorAposAditivo"`
}

// Resumo é o quadro completo de aditivos da obra.
type Resumo struct {
	Linhas             []LinhaResumo `json:"linhas"`
	ValorFinalContrato float64       `json:"valorFinalContrato"`
}

// CalcularResumo apura, na ordem crescente de sequência, os aditivos
// publicados. Aditivos em rascunho e aditivos sem sequência ficam de
// fora. Deltas negativos entram como supressão pelo valor absoluto;
// deltas positivos em itens extracontratuais entram à parte dos
// acréscimos sobre itens do contrato original. Com valor original
// zero, todos os percentuais são 0 em vez de erro.
func CalcularResumo(valorOriginal float64, itens []models.ItemOrcamento, aditivos []models.Aditivo) Resumo {
	origem := make(map[uint]string, len(itens))
	for _, item := range itens {
		origem[item.ID] = item.Origem
	}

	publicados := make([]models.Aditivo, 0, len(aditivos))
	for _, a := range aditivos {
		if a.Bloqueado && a.Sequencia != nil {
			publicados = append(publicados, a)
		}
	}
	sort.Slice(publicados, func(i, j int) bool {
		return *publicados[i].Sequencia < *publicados[j].Sequencia
	})

	resumo := Resumo{ValorFinalContrato: valorOriginal}
	acumulado := 0.0
	for _, aditivo := range publicados {
		linha := LinhaResumo{
			AditivoID: aditivo.ID,
			Nome:      aditivo.Nome,
			Sequencia: *aditivo.Sequencia,
		}
		for _, delta := range aditivo.Itens {
			switch {
			case delta.Total == 0:
				continue
			case delta.Total < 0:
				linha.Supressoes += -delta.Total
			case origem[delta.ItemOrcamentoID] == models.OrigemExtracontratual:
				linha.Extracontratual += delta.Total
			default:
				linha.Acrescimos += delta.Total
			}
		}
		linha.TotalGeral = linha.Acrescimos - linha.Supressoes + linha.Extracontratual
		acumulado += linha.TotalGeral

		if valorOriginal != 0 {
			linha.PercentualAditivo = linha.TotalGeral / valorOriginal * 100
			linha.PercentualAcumulado = acumulado / valorOriginal * 100
		}
		linha.ValorAposAditivo = valorOriginal + acumulado
		resumo.Linhas = append(resumo.Linhas, linha)
	}

	resumo.ValorFinalContrato = valorOriginal + acumulado
	return resumo
}
