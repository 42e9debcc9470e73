package planilha

import (
	"strconv"
	"strings"
)

// ParseNumero interpreta um número escrito em formato brasileiro
// ("1.234,56") ou com ponto decimal ("1234.56"). Regras de
// desambiguação:
//
//   - ponto e vírgula presentes: ponto é separador de milhar e a última
//     vírgula é o separador decimal;
//   - só vírgula: é decimal apenas quando está entre os 3 últimos
//     caracteres ("1,5"); caso contrário é milhar ("1,234" → 1234);
//   - só ponto: havendo vários, todos menos o último são milhares.
//
// Entrada não numérica devolve 0, nunca erro — quem chama inspeciona o
// texto original para gerar avisos.
func ParseNumero(bruto string) float64 {
	s := strings.TrimSpace(bruto)
	if s == "" {
		return 0
	}

	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}

	temPonto := strings.Contains(s, ".")
	temVirgula := strings.Contains(s, ",")

	switch {
	case temPonto && temVirgula:
		s = strings.ReplaceAll(s, ".", "")
		ultima := strings.LastIndex(s, ",")
		s = strings.ReplaceAll(s[:ultima], ",", "") + "." + s[ultima+1:]
	case temVirgula:
		ultima := strings.LastIndex(s, ",")
		if len(s)-ultima <= 3 {
			s = strings.ReplaceAll(s[:ultima], ",", "") + "." + s[ultima+1:]
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case temPonto:
		if strings.Count(s, ".") > 1 {
			ultimo := strings.LastIndex(s, ".")
			s = strings.ReplaceAll(s[:ultimo], ".", "") + s[ultimo:]
		}
	}

	valor, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return valor
}

// EhNumerico informa se o texto representa um número não nulo segundo
// as regras de ParseNumero, sem confundir "0" com texto inválido.
func EhNumerico(bruto string) bool {
	s := strings.TrimSpace(bruto)
	if s == "" {
		return false
	}
	if ParseNumero(s) != 0 {
		return true
	}
	s = strings.NewReplacer("R$", "", ",", "", ".", "", " ", "", "-", "").Replace(s)
	return s != "" && strings.Trim(s, "0") == ""
}
