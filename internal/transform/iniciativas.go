package transform

import "parlamentodb/internal"

// BuildIniciativas normalizes a decoded bronze dump into silver rows. Every
// record is kept: a record missing fields just gets null columns, since the
// source schema drifts between legislatures.
func BuildIniciativas(records []any, legislature, etlTimestamp string) []internal.IniciativaRow {
	rows := make([]internal.IniciativaRow, 0, len(records))
	for _, r := range records {
		record := toMap(r)
		if record == nil {
			continue
		}
		rec := NormalizeRecord(record)

		row := internal.IniciativaRow{
			IniNr:       toStringPtr(rec["ini_nr"]),
			IniTipo:     toStringPtr(rec["ini_tipo"]),
			IniDescTipo: toStringPtr(rec["ini_desc_tipo"]),
			IniLeg:      toStringPtr(rec["ini_leg"]),
			IniSel:      toStringPtr(rec["ini_sel"]),
			IniTitulo:   toStringPtr(rec["ini_titulo"]),

			IniTextoSubst:      toStringPtr(rec["ini_texto_subst"]),
			IniTextoSubstCampo: toStringPtr(rec["ini_texto_subst_campo"]),
			IniLinkTexto:       toStringPtr(rec["ini_link_texto"]),
			IniID:              toStringPtr(rec["ini_id"]),
			IniObs:             toStringPtr(rec["ini_obs"]),
			IniEpigrafe:        toRawJSON(rec["ini_epigrafe"]),

			DataInicioLeg: toStringPtr(rec["data_inicio_leg"]),
			DataFimLeg:    toStringPtr(rec["data_fim_leg"]),

			IniAutorOutros:              toRawJSON(rec["ini_autor_outros"]),
			IniAutorDeputados:           toRawJSON(rec["ini_autor_deputados"]),
			IniAutorGruposParlamentares: toRawJSON(rec["ini_autor_grupos_parlamentares"]),
			IniAnexos:                   toRawJSON(rec["ini_anexos"]),
			IniEventos:                  toRawJSON(rec["ini_eventos"]),
			IniciativasEuropeias:        toRawJSON(rec["iniciativas_europeias"]),
			IniciativasOrigem:           toRawJSON(rec["iniciativas_origem"]),
			IniciativasOriginadas:       toRawJSON(rec["iniciativas_originadas"]),
			Links:                       toRawJSON(rec["links"]),
			Peticoes:                    toRawJSON(rec["peticoes"]),
			PropostasAlteracao:          toRawJSON(rec["propostas_alteracao"]),

			IniData: EarliestEventDate(toList(rec["ini_eventos"])),

			Legislatura:  legislature,
			ETLTimestamp: etlTimestamp,
		}

		rows = append(rows, row)
	}
	return rows
}
