// Package export writes silver datasets as spreadsheets for ad-hoc analysis.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"parlamentodb/internal"
)

// VotacoesToXLSX writes flattened votes, one sheet, one row per vote. The
// parsed position lists are joined with "; " so the sheet stays flat.
func VotacoesToXLSX(rows []internal.VotacaoRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"vot_id", "ini_id", "ini_nr", "legislatura", "ini_titulo", "ini_tipo",
		"fase", "data_fase", "data", "resultado", "descricao", "reuniao",
		"tipo_reuniao", "unanime", "ausencias", "is_nominal",
		"a_favor", "contra", "abstencao", "ausencia",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.VotID)
		set(2, derefString(row.IniID))
		set(3, derefString(row.IniNr))
		set(4, row.Legislatura)
		set(5, derefString(row.IniTitulo))
		set(6, derefString(row.IniTipo))
		set(7, derefString(row.Fase))
		set(8, derefString(row.DataFase))
		set(9, derefString(row.Data))
		set(10, derefString(row.Resultado))
		set(11, derefString(row.Descricao))
		set(12, derefString(row.Reuniao))
		set(13, derefString(row.TipoReuniao))
		set(14, derefString(row.Unanime))
		set(15, strings.Join(row.Ausencias, "; "))
		set(16, row.IsNominal)
		if d := row.DetalheParsed; d != nil {
			set(17, strings.Join(d.AFavor, "; "))
			set(18, strings.Join(d.Contra, "; "))
			set(19, strings.Join(d.Abstencao, "; "))
			set(20, strings.Join(d.Ausencia, "; "))
		}
	}

	return save(f, outputPath)
}

// DeputadosToXLSX writes the deputy roster with current affiliation columns.
func DeputadosToXLSX(rows []internal.DeputadoRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"legislatura", "dep_cad_id", "nome_parlamentar", "nome_completo",
		"circulo_atual", "partido_atual", "situacao_atual", "partido_historico",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.Legislatura)
		set(2, row.DepCadID)
		set(3, row.NomeParlamentar)
		set(4, derefString(row.NomeCompleto))
		set(5, derefString(row.CirculoAtual))
		set(6, derefString(row.PartidoAtual))
		set(7, derefString(row.SituacaoAtual))

		siglas := make([]string, 0, len(row.PartidoHistorico))
		for _, gp := range row.PartidoHistorico {
			siglas = append(siglas, gp.GpSigla)
		}
		set(8, strings.Join(siglas, " > "))
	}

	return save(f, outputPath)
}

// IniciativasToXLSX writes the scalar initiative columns; opaque nested
// columns are left out since they do not fit a flat sheet.
func IniciativasToXLSX(rows []internal.IniciativaRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"ini_id", "ini_nr", "ini_tipo", "ini_desc_tipo", "legislatura",
		"ini_titulo", "ini_data", "ini_sel", "ini_link_texto", "ini_obs",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, derefString(row.IniID))
		set(2, derefString(row.IniNr))
		set(3, derefString(row.IniTipo))
		set(4, derefString(row.IniDescTipo))
		set(5, row.Legislatura)
		set(6, derefString(row.IniTitulo))
		set(7, derefString(row.IniData))
		set(8, derefString(row.IniSel))
		set(9, derefString(row.IniLinkTexto))
		set(10, derefString(row.IniObs))
	}

	return save(f, outputPath)
}

// OutputPath names an export file: <dataset>_<legislature>.xlsx, or the
// dataset alone when exporting every legislature at once.
func OutputPath(dir, dataset, legislature string) string {
	if legislature == "" {
		return filepath.Join(dir, dataset+".xlsx")
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx", dataset, strings.ToLower(legislature)))
}

func save(f *excelize.File, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
