package transform

import "strings"

// fieldMapping translates the source's PascalCase field names to the
// snake_case column vocabulary. Older legislatures already use different
// casings, so names not listed here fall back to plain lowercasing.
var fieldMapping = map[string]string{
	"IniNr":              "ini_nr",
	"IniTipo":            "ini_tipo",
	"IniDescTipo":        "ini_desc_tipo",
	"IniLeg":             "ini_leg",
	"IniSel":             "ini_sel",
	"IniTitulo":          "ini_titulo",
	"IniTextoSubst":      "ini_texto_subst",
	"IniLinkTexto":       "ini_link_texto",
	"IniId":              "ini_id",
	"IniEpigrafe":        "ini_epigrafe",
	"IniObs":             "ini_obs",
	"IniTextoSubstCampo": "ini_texto_subst_campo",

	"DataInicioleg": "data_inicio_leg",
	"DataFimleg":    "data_fim_leg",

	"IniAutorOutros":              "ini_autor_outros",
	"IniAutorDeputados":           "ini_autor_deputados",
	"IniAutorGruposParlamentares": "ini_autor_grupos_parlamentares",
	"IniAnexos":                   "ini_anexos",
	"IniEventos":                  "ini_eventos",
	"IniciativasEuropeias":        "iniciativas_europeias",
	"IniciativasOrigem":           "iniciativas_origem",
	"IniciativasOriginadas":       "iniciativas_originadas",
	"Links":                       "links",
	"Peticoes":                    "peticoes",
	"PropostasAlteracao":          "propostas_alteracao",
}

// NormalizeFieldName maps a source field name to its snake_case column name.
func NormalizeFieldName(name string) string {
	if mapped, ok := fieldMapping[name]; ok {
		return mapped
	}
	return strings.ToLower(name)
}

// NormalizeRecord rewrites every top-level key of a decoded record to its
// normalized column name. Values are untouched; nested keys keep their
// original casing since nested shapes vary per legislature.
func NormalizeRecord(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[NormalizeFieldName(k)] = v
	}
	return out
}

// EarliestEventDate returns the minimum DataFase across an initiative's
// events: the date the initiative entered parliament. Returns nil when no
// event carries a date. Source dates are ISO-ordered strings, so the minimum
// is the lexicographic one and the original text is preserved.
func EarliestEventDate(events []any) *string {
	var min *string
	for _, e := range events {
		evt := toMap(e)
		if evt == nil {
			continue
		}
		d := toStringPtr(evt["DataFase"])
		if d == nil {
			continue
		}
		if min == nil || *d < *min {
			min = d
		}
	}
	return min
}
