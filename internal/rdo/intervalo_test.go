package rdo

import (
	"testing"
	"time"
)

func dia(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSobrepoe(t *testing.T) {
	casos := []struct {
		nome                         string
		aInicio, aFim, bInicio, bFim string
		esperado                     bool
	}{
		{"intervalo contido", "2024-01-01", "2024-01-10", "2024-01-05", "2024-01-06", true},
		{"intervalos disjuntos", "2024-01-01", "2024-01-10", "2024-01-11", "2024-01-20", false},
		{"pontas encostadas contam", "2024-01-01", "2024-01-10", "2024-01-10", "2024-01-20", true},
		{"mesmo dia único", "2024-03-15", "2024-03-15", "2024-03-15", "2024-03-15", true},
		{"um dia de folga", "2024-01-01", "2024-01-09", "2024-01-10", "2024-01-20", false},
	}

	for _, caso := range casos {
		t.Run(caso.nome, func(t *testing.T) {
			got := Sobrepoe(dia(caso.aInicio), dia(caso.aFim), dia(caso.bInicio), dia(caso.bFim))
			if got != caso.esperado {
				t.Fatalf("Sobrepoe = %v, esperado %v", got, caso.esperado)
			}
			// Simetria.
			invertido := Sobrepoe(dia(caso.bInicio), dia(caso.bFim), dia(caso.aInicio), dia(caso.aFim))
			if invertido != got {
				t.Fatalf("teste deveria ser simétrico: %v vs %v", got, invertido)
			}
		})
	}

	t.Run("hora do dia é ignorada", func(t *testing.T) {
		a := time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)
		b := time.Date(2024, 1, 10, 0, 1, 0, 0, time.UTC)
		if !Sobrepoe(dia("2024-01-01"), a, b, dia("2024-01-20")) {
			t.Fatal("intervalos no mesmo dia-calendário deveriam sobrepor")
		}
	})
}
