package transform

import (
	"bytes"
	"encoding/json"
	"testing"
)

func decodeRecords(t *testing.T, blob string) []any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(blob)))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		t.Fatal(err)
	}
	return toList(doc)
}

func TestBuildIniciativas(t *testing.T) {
	records := decodeRecords(t, `[
		{
			"IniNr": "100",
			"IniTipo": "P",
			"IniTitulo": "Sobre o ambiente",
			"IniId": "303038",
			"IniEventos": [
				{"Fase": "Votação", "DataFase": "2025-07-01T00:00:00"},
				{"Fase": "Entrada", "DataFase": "2025-06-04T00:00:00"}
			],
			"Links": [{"url": "https://example.pt"}]
		}
	]`)

	rows := BuildIniciativas(records, "L17", "2025-08-29T00:00:00Z")
	if len(rows) != 1 {
		t.Fatalf("len=%d", len(rows))
	}
	row := rows[0]

	if *row.IniNr != "100" || *row.IniTitulo != "Sobre o ambiente" || *row.IniID != "303038" {
		t.Fatalf("row = %+v", row)
	}
	if row.Legislatura != "L17" || row.ETLTimestamp != "2025-08-29T00:00:00Z" {
		t.Fatalf("metadata: %s %s", row.Legislatura, row.ETLTimestamp)
	}
	if row.IniData == nil || *row.IniData != "2025-06-04T00:00:00" {
		t.Fatalf("ini_data = %v", row.IniData)
	}
	if row.IniEventos == nil || row.Links == nil {
		t.Fatal("nested columns must be preserved")
	}

	var links []map[string]any
	if err := json.Unmarshal(row.Links, &links); err != nil || links[0]["url"] != "https://example.pt" {
		t.Fatalf("links round trip: %v %v", links, err)
	}
}

func TestBuildIniciativasMissingFields(t *testing.T) {
	rows := BuildIniciativas(decodeRecords(t, `[{"IniNr": "1"}]`), "L16", "ts")
	row := rows[0]
	if row.IniTitulo != nil || row.IniEventos != nil || row.IniData != nil {
		t.Fatalf("absent fields must be nil: %+v", row)
	}
}

func TestBuildIniciativasNumberFormatting(t *testing.T) {
	// Opaque columns must re-encode numbers exactly as the source wrote them.
	rows := BuildIniciativas(decodeRecords(t, `[{"IniNr": "1", "Links": [{"id": 1.10}]}]`), "L17", "ts")
	if !bytes.Contains(rows[0].Links, []byte("1.10")) {
		t.Fatalf("number formatting lost: %s", rows[0].Links)
	}
}

func TestBuildIniciativasSkipsNonObjects(t *testing.T) {
	rows := BuildIniciativas([]any{"not an object", nil}, "L17", "ts")
	if len(rows) != 0 {
		t.Fatalf("rows = %+v", rows)
	}
}
