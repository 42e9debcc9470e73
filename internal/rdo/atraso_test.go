package rdo

import (
	"testing"
)

func TestPrimeiraLacuna(t *testing.T) {
	t.Run("lacuna logo após os dias reportados", func(t *testing.T) {
		hoje := dia("2024-05-11")
		inicio := hoje.AddDate(0, 0, -10) // 2024-05-01
		reportados := map[string]bool{
			"2024-05-01": true,
			"2024-05-02": true,
		}
		lacuna, existe := PrimeiraLacuna(inicio, hoje, reportados, nil)
		if !existe {
			t.Fatal("esperava lacuna")
		}
		if !lacuna.Equal(dia("2024-05-03")) {
			t.Fatalf("lacuna = %v, esperado 2024-05-03", lacuna)
		}
		if DiasCorridos(lacuna, hoje) != 8 {
			t.Fatalf("DiasCorridos = %d, esperado 8", DiasCorridos(lacuna, hoje))
		}
	})

	t.Run("dia sem expediente não abre lacuna", func(t *testing.T) {
		hoje := dia("2024-05-04")
		inicio := dia("2024-05-01")
		reportados := map[string]bool{"2024-05-01": true, "2024-05-03": true}
		semExpediente := map[string]bool{"2024-05-02": true}
		if _, existe := PrimeiraLacuna(inicio, hoje, reportados, semExpediente); existe {
			t.Fatal("cobertura completa não deveria ter lacuna")
		}
	})

	t.Run("hoje fica fora da varredura", func(t *testing.T) {
		hoje := dia("2024-05-02")
		inicio := dia("2024-05-01")
		reportados := map[string]bool{"2024-05-01": true}
		if _, existe := PrimeiraLacuna(inicio, hoje, reportados, nil); existe {
			t.Fatal("o dia corrente ainda pode ser preenchido")
		}
	})

	t.Run("início no futuro não tem lacuna", func(t *testing.T) {
		if _, existe := PrimeiraLacuna(dia("2024-06-01"), dia("2024-05-01"), nil, nil); existe {
			t.Fatal("obra ainda não começou")
		}
	})

	t.Run("sem nenhum relatório a lacuna é o primeiro dia", func(t *testing.T) {
		lacuna, existe := PrimeiraLacuna(dia("2024-04-01"), dia("2024-04-20"), nil, nil)
		if !existe || !lacuna.Equal(dia("2024-04-01")) {
			t.Fatalf("lacuna = %v existe = %v, esperado 2024-04-01", lacuna, existe)
		}
	})
}

func TestDiasCorridos(t *testing.T) {
	casos := []struct {
		lacuna, hoje string
		esperado     int
	}{
		{"2024-05-03", "2024-05-11", 8},
		{"2024-05-10", "2024-05-11", 1},
		{"2024-05-11", "2024-05-11", 0},
	}
	for _, caso := range casos {
		if got := DiasCorridos(dia(caso.lacuna), dia(caso.hoje)); got != caso.esperado {
			t.Fatalf("DiasCorridos(%s, %s) = %d, esperado %d", caso.lacuna, caso.hoje, got, caso.esperado)
		}
	}
}
