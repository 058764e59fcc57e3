package transform

import (
	"sort"

	"parlamentodb/internal"
)

// BuildInfoBase wraps a legislature metadata document into its single silver
// row. The top-level sections are kept opaque; the flatteners below unpack
// the ones that become reference datasets.
func BuildInfoBase(doc any, legislature, etlTimestamp string) internal.InfoBaseRow {
	m := toMap(doc)
	return internal.InfoBaseRow{
		Legislatura:         legislature,
		DetalheLegislatura:  toRawJSON(m["DetalheLegislatura"]),
		Deputados:           toRawJSON(m["Deputados"]),
		GruposParlamentares: toRawJSON(m["GruposParlamentares"]),
		CirculosEleitorais:  toRawJSON(m["CirculosEleitorais"]),
		ETLTimestamp:        etlTimestamp,
	}
}

// BuildDeputados flattens the deputy list, one row per deputy, sorted by
// parliamentary name. The "current" party and status are the LAST entries of
// the respective histories: the source keeps those lists in chronological
// order and carries no per-entry ordering key to re-sort by.
func BuildDeputados(info internal.InfoBaseRow) []internal.DeputadoRow {
	items := decodeRawList(info.Deputados)
	rows := make([]internal.DeputadoRow, 0, len(items))

	for _, item := range items {
		dep := toMap(item)
		if dep == nil {
			continue
		}

		row := internal.DeputadoRow{
			Legislatura:     info.Legislatura,
			NomeParlamentar: toString(dep["DepNomeParlamentar"]),
			NomeCompleto:    toStringPtr(dep["DepNomeCompleto"]),
			CirculoAtual:    toStringPtr(dep["DepCPDes"]),
			CirculoID:       toFloatPtr(dep["DepCPId"]),
		}
		if id := toFloatPtr(dep["DepCadId"]); id != nil {
			row.DepCadID = *id
		}

		for _, g := range toList(dep["DepGP"]) {
			gp := toMap(g)
			if gp == nil {
				continue
			}
			row.PartidoHistorico = append(row.PartidoHistorico, internal.PartidoHistorico{
				GpSigla:    toString(gp["gpSigla"]),
				GpDtInicio: toStringPtr(gp["gpDtInicio"]),
				GpDtFim:    toStringPtr(gp["gpDtFim"]),
				GpID:       toFloatPtr(gp["gpId"]),
			})
		}
		if n := len(row.PartidoHistorico); n > 0 {
			row.PartidoAtual = &row.PartidoHistorico[n-1].GpSigla
		}

		for _, s := range toList(dep["DepSituacao"]) {
			sit := toMap(s)
			if sit == nil {
				continue
			}
			row.SituacaoHistorico = append(row.SituacaoHistorico, internal.SituacaoHistorico{
				SioDes:      toString(sit["sioDes"]),
				SioDtInicio: toStringPtr(sit["sioDtInicio"]),
				SioDtFim:    toStringPtr(sit["sioDtFim"]),
			})
		}
		if n := len(row.SituacaoHistorico); n > 0 {
			row.SituacaoAtual = &row.SituacaoHistorico[n-1].SioDes
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].NomeParlamentar < rows[j].NomeParlamentar
	})

	return rows
}

// BuildCirculos flattens the electoral circles, sorted by name.
func BuildCirculos(info internal.InfoBaseRow) []internal.CirculoRow {
	items := decodeRawList(info.CirculosEleitorais)
	rows := make([]internal.CirculoRow, 0, len(items))

	for _, item := range items {
		circ := toMap(item)
		if circ == nil {
			continue
		}
		rows = append(rows, internal.CirculoRow{
			Legislatura: info.Legislatura,
			CpID:        toFloatPtr(circ["cpId"]),
			CpDes:       toString(circ["cpDes"]),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CpDes < rows[j].CpDes
	})

	return rows
}

// BuildPartidos flattens the parliamentary groups, sorted by abbreviation.
func BuildPartidos(info internal.InfoBaseRow) []internal.PartidoRow {
	items := decodeRawList(info.GruposParlamentares)
	rows := make([]internal.PartidoRow, 0, len(items))

	for _, item := range items {
		gp := toMap(item)
		if gp == nil {
			continue
		}
		rows = append(rows, internal.PartidoRow{
			Legislatura: info.Legislatura,
			GpSigla:     toString(gp["sigla"]),
			GpNome:      toStringPtr(gp["nome"]),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].GpSigla < rows[j].GpSigla
	})

	return rows
}
