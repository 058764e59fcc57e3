package transform

import (
	"encoding/json"
	"strings"
	"testing"

	"parlamentodb/internal"
	"parlamentodb/internal/util"
)

func ini(id string, eventos string) internal.IniciativaRow {
	return internal.IniciativaRow{
		IniID:       util.StringPtr(id),
		IniNr:       util.StringPtr("1"),
		IniTitulo:   util.StringPtr("Título"),
		IniTipo:     util.StringPtr("P"),
		Legislatura: "L17",
		IniEventos:  json.RawMessage(eventos),
	}
}

func TestBuildVotacoesFlattens(t *testing.T) {
	eventos := `[
		{"Fase": "Generalidade", "DataFase": "2025-06-10", "Votacao": [
			{"id": "v1", "data": "2025-06-10", "resultado": "Aprovado", "detalhe": "A Favor: <I>PS</I>"}
		]},
		{"Fase": "Sem votos", "DataFase": "2025-06-11"}
	]`
	rows := BuildVotacoes([]internal.IniciativaRow{ini("i1", eventos)})
	if len(rows) != 1 {
		t.Fatalf("len=%d", len(rows))
	}
	row := rows[0]
	if row.VotID != "v1" || *row.IniID != "i1" || *row.Fase != "Generalidade" {
		t.Fatalf("unexpected row: %+v", row)
	}
	if *row.Resultado != "Aprovado" {
		t.Fatalf("resultado = %v", *row.Resultado)
	}
	if row.DetalheParsed == nil || row.DetalheParsed.AFavor[0] != "PS" {
		t.Fatalf("detalhe_parsed = %+v", row.DetalheParsed)
	}
	if row.IsNominal {
		t.Fatal("short detalhe must not be nominal")
	}
}

func TestBuildVotacoesSingleObjectVotacao(t *testing.T) {
	// Some legislatures serialize a lone vote as an object, not a one-element
	// array.
	eventos := `[{"Fase": "F", "DataFase": "2025-01-01", "Votacao": {"id": "v1", "data": "2025-01-01"}}]`
	rows := BuildVotacoes([]internal.IniciativaRow{ini("i1", eventos)})
	if len(rows) != 1 || rows[0].VotID != "v1" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestBuildVotacoesSortOrder(t *testing.T) {
	eventos := `[{"Fase": "F", "Votacao": [
		{"id": "b", "data": "2025-01-01"},
		{"id": "c"},
		{"id": "a", "data": "2025-03-01"},
		{"id": "d", "data": "2025-03-01"}
	]}]`
	rows := BuildVotacoes([]internal.IniciativaRow{ini("i1", eventos)})
	var ids []string
	for _, r := range rows {
		ids = append(ids, r.VotID)
	}
	// Newest first, undated last, ties by vote id.
	want := []string{"a", "d", "b", "c"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
}

func TestBuildVotacoesNominalThreshold(t *testing.T) {
	long := "A Favor: " + strings.Repeat("X", 1000)
	eventos, _ := json.Marshal([]map[string]any{
		{"Fase": "F", "Votacao": []map[string]any{
			{"id": "v1", "detalhe": long},
		}},
	})
	rows := BuildVotacoes([]internal.IniciativaRow{ini("i1", string(eventos))})
	if len(rows) != 1 || !rows[0].IsNominal {
		t.Fatalf("expected nominal vote, got %+v", rows)
	}
}

func TestBuildVotacoesNoDetalhe(t *testing.T) {
	eventos := `[{"Fase": "F", "Votacao": [{"id": "v1", "data": "2025-01-01"}]}]`
	rows := BuildVotacoes([]internal.IniciativaRow{ini("i1", eventos)})
	row := rows[0]
	if row.Detalhe != nil || row.DetalheParsed != nil || row.IsNominal {
		t.Fatalf("absent detalhe must stay absent: %+v", row)
	}
}

func TestBuildVotacoesNoEvents(t *testing.T) {
	row := ini("i1", "")
	row.IniEventos = nil
	if rows := BuildVotacoes([]internal.IniciativaRow{row}); len(rows) != 0 {
		t.Fatalf("rows = %+v", rows)
	}
}
