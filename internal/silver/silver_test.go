package silver

import (
	"path/filepath"
	"testing"

	"parlamentodb/internal"
	"parlamentodb/internal/util"
)

func TestDatasetPath(t *testing.T) {
	got := DatasetPath("/data/silver", "votacoes", "L17")
	want := filepath.Join("/data/silver", "votacoes_l17.parquet")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rows := []internal.PartidoRow{
		{Legislatura: "L17", GpSigla: "PS", GpNome: util.StringPtr("Partido Socialista")},
		{Legislatura: "L17", GpSigla: "PSD"},
	}

	path := DatasetPath(dir, internal.DatasetPartidos, "L17")
	if err := Write(path, rows); err != nil {
		t.Fatal(err)
	}

	got, err := Read[internal.PartidoRow](path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len=%d", len(got))
	}
	if got[0].GpSigla != "PS" || got[0].GpNome == nil || *got[0].GpNome != "Partido Socialista" {
		t.Fatalf("row = %+v", got[0])
	}
	if got[1].GpNome != nil {
		t.Fatalf("optional column must stay nil: %+v", got[1])
	}
}

func TestLegislaturesDiscovery(t *testing.T) {
	dir := t.TempDir()
	if err := Write(DatasetPath(dir, internal.DatasetPartidos, "L17"), []internal.PartidoRow{{Legislatura: "L17", GpSigla: "PS"}}); err != nil {
		t.Fatal(err)
	}
	if err := Write(DatasetPath(dir, internal.DatasetPartidos, "L16"), []internal.PartidoRow{{Legislatura: "L16", GpSigla: "PS"}}); err != nil {
		t.Fatal(err)
	}

	legs, err := Legislatures(dir, internal.DatasetPartidos)
	if err != nil {
		t.Fatal(err)
	}
	if len(legs) != 2 {
		t.Fatalf("legs = %v", legs)
	}
	found := map[string]bool{}
	for _, l := range legs {
		found[l] = true
	}
	if !found["L17"] || !found["L16"] {
		t.Fatalf("legs = %v", legs)
	}

	// A dataset with no files is absent, not an error.
	legs, err = Legislatures(dir, internal.DatasetVotacoes)
	if err != nil || len(legs) != 0 {
		t.Fatalf("legs=%v err=%v", legs, err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(dir, internal.DatasetPartidos, "L17") {
		t.Fatal("nothing written yet")
	}
	if err := Write(DatasetPath(dir, internal.DatasetPartidos, "L17"), []internal.PartidoRow{}); err != nil {
		t.Fatal(err)
	}
	if !Exists(dir, internal.DatasetPartidos, "L17") {
		t.Fatal("file should exist")
	}
}
