// Package planilha converte planilhas (xlsx/xls/csv) de orçamento e de
// cronograma em estruturas validadas, acumulando erros e avisos por
// linha em vez de abortar na primeira inconsistência.
package planilha

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Grid é a grade bruta de células lida do arquivo, linha a linha.
// Células vazias à direita podem estar ausentes (linhas não são
// retangularizadas).
type Grid [][]string

var ErrNenhumaAbaUtilizavel = errors.New("nenhuma aba da planilha contém dados utilizáveis")

// Parse lê o conteúdo enviado e devolve a grade de células. O formato é
// decidido pela extensão do nome do arquivo: .csv é lido como texto,
// .xls vai para o leitor do formato binário legado e qualquer outro
// caso vai para o excelize. Em arquivos com várias abas, vale a
// primeira aba com pelo menos 2 linhas não vazias.
func Parse(r io.Reader, nomeArquivo string) (Grid, error) {
	switch strings.ToLower(filepath.Ext(nomeArquivo)) {
	case ".csv":
		return parseCSV(r)
	case ".xls":
		return parseXLS(r)
	default:
		return parseExcel(r)
	}
}

func parseExcel(r io.Reader) (Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for _, aba := range f.GetSheetList() {
		linhas, err := f.GetRows(aba)
		if err != nil {
			continue
		}
		if contarLinhasComDados(linhas) >= 2 {
			return Grid(linhas), nil
		}
	}
	return nil, ErrNenhumaAbaUtilizavel
}

// parseXLS cobre o .xls binário legado (BIFF), que o excelize não abre
// por não ser um contêiner zip. Mesma regra de abas do parseExcel.
func parseXLS(r io.Reader) (Grid, error) {
	conteudo, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	wb, err := xls.OpenReader(bytes.NewReader(conteudo), "utf-8")
	if err != nil {
		return nil, err
	}

	for i := 0; i < wb.NumSheets(); i++ {
		aba := wb.GetSheet(i)
		if aba == nil {
			continue
		}
		var linhas [][]string
		for l := 0; l <= int(aba.MaxRow); l++ {
			linha := aba.Row(l)
			if linha == nil {
				linhas = append(linhas, nil)
				continue
			}
			celulas := make([]string, 0, linha.LastCol()+1)
			for c := 0; c <= linha.LastCol(); c++ {
				celulas = append(celulas, linha.Col(c))
			}
			linhas = append(linhas, celulas)
		}
		if contarLinhasComDados(linhas) >= 2 {
			return Grid(linhas), nil
		}
	}
	return nil, ErrNenhumaAbaUtilizavel
}

func parseCSV(r io.Reader) (Grid, error) {
	conteudo, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	leitor := csv.NewReader(bytes.NewReader(conteudo))
	leitor.Comma = detectarSeparador(conteudo)
	leitor.FieldsPerRecord = -1
	leitor.LazyQuotes = true

	linhas, err := leitor.ReadAll()
	if err != nil {
		return nil, err
	}
	if contarLinhasComDados(linhas) < 2 {
		return nil, ErrNenhumaAbaUtilizavel
	}
	return Grid(linhas), nil
}

// detectarSeparador decide entre ";" (padrão de exportações brasileiras)
// e "," contando as ocorrências na primeira linha.
func detectarSeparador(conteudo []byte) rune {
	primeiraLinha := conteudo
	if i := bytes.IndexByte(conteudo, '\n'); i >= 0 {
		primeiraLinha = conteudo[:i]
	}
	if bytes.Count(primeiraLinha, []byte(";")) >= bytes.Count(primeiraLinha, []byte(",")) {
		return ';'
	}
	return ','
}

func contarLinhasComDados(linhas [][]string) int {
	total := 0
	for _, linha := range linhas {
		if !LinhaVazia(linha) {
			total++
		}
	}
	return total
}

// LinhaVazia informa se todas as células da linha estão em branco.
func LinhaVazia(linha []string) bool {
	for _, celula := range linha {
		if strings.TrimSpace(celula) != "" {
			return false
		}
	}
	return true
}

// Celula devolve a célula na posição pedida ou "" quando a linha é
// curta demais.
func Celula(linha []string, indice int) string {
	if indice < 0 || indice >= len(linha) {
		return ""
	}
	return strings.TrimSpace(linha[indice])
}
