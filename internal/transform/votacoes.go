package transform

import (
	"bytes"
	"encoding/json"
	"sort"

	"parlamentodb/internal"
)

// nominalDetailThreshold is the detail length from which a vote is assumed to
// list individual members rather than party blocks only.
const nominalDetailThreshold = 1000

// BuildVotacoes flattens every vote out of the initiatives' event lists, one
// row per vote. Rows come out sorted by vote date descending with undated
// votes last, ties broken by vote id.
func BuildVotacoes(iniciativas []internal.IniciativaRow) []internal.VotacaoRow {
	var rows []internal.VotacaoRow

	for i := range iniciativas {
		ini := &iniciativas[i]
		for _, e := range decodeRawList(ini.IniEventos) {
			evt := toMap(e)
			if evt == nil {
				continue
			}
			fase := toStringPtr(evt["Fase"])
			dataFase := toStringPtr(evt["DataFase"])

			for _, v := range toList(evt["Votacao"]) {
				vot := toMap(v)
				if vot == nil {
					continue
				}

				detalhe := toStringPtr(vot["detalhe"])
				row := internal.VotacaoRow{
					VotID:       toString(vot["id"]),
					IniID:       ini.IniID,
					IniNr:       ini.IniNr,
					Legislatura: ini.Legislatura,
					IniTitulo:   ini.IniTitulo,
					IniTipo:     ini.IniTipo,

					Fase:     fase,
					DataFase: dataFase,

					Data:        toStringPtr(vot["data"]),
					Resultado:   toStringPtr(vot["resultado"]),
					Descricao:   toStringPtr(vot["descricao"]),
					Reuniao:     toStringPtr(vot["reuniao"]),
					TipoReuniao: toStringPtr(vot["tipoReuniao"]),
					Unanime:     toStringPtr(vot["unanime"]),
					Ausencias:   toStringSlice(vot["ausencias"]),
					Detalhe:     detalhe,
				}
				if detalhe != nil {
					row.DetalheParsed = ParseDetalhe(*detalhe)
					row.IsNominal = len(*detalhe) >= nominalDetailThreshold
				}
				rows = append(rows, row)
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := compareDateDescNullsLast(rows[i].Data, rows[j].Data); c != 0 {
			return c < 0
		}
		return rows[i].VotID < rows[j].VotID
	})

	return rows
}

// compareDateDescNullsLast orders ISO date strings newest first, with missing
// dates after every dated row.
func compareDateDescNullsLast(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a > *b:
		return -1
	case *a < *b:
		return 1
	}
	return 0
}

// decodeRawList decodes an opaque JSON column back into a generic list.
// Numbers stay json.Number so re-encoding preserves the source formatting.
func decodeRawList(raw json.RawMessage) []any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return toList(v)
}
