// Package rdo cobre a ponte entre os relatórios diários de obra e as
// medições: importação de avanço físico por intervalo de datas e a
// varredura de atraso de preenchimento.
package rdo

import "time"

// Sobrepoe testa a interseção de dois intervalos de datas com as duas
// pontas inclusas: [aInicio, aFim] ∩ [bInicio, bFim] ≠ ∅. O teste é
// simétrico e vale dia a dia, ignorando a hora.
func Sobrepoe(aInicio, aFim, bInicio, bFim time.Time) bool {
	aInicio, aFim = Dia(aInicio), Dia(aFim)
	bInicio, bFim = Dia(bInicio), Dia(bFim)
	return !aInicio.After(bFim) && !bInicio.After(aFim)
}

// Dia trunca o instante para o dia-calendário em UTC.
func Dia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
