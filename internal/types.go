package internal

import "encoding/json"

// Dataset names double as silver file prefixes: a dataset for legislature L17
// lives at <silver>/<dataset>_l17.parquet and downstream consumers discover it
// by file presence, never through a registry.
const (
	DatasetIniciativas        = "iniciativas"
	DatasetInfoBase           = "info_base"
	DatasetVotacoes           = "votacoes"
	DatasetDeputados          = "deputados"
	DatasetCirculos           = "circulos"
	DatasetPartidos           = "partidos"
	DatasetAtividades         = "atividades"
	DatasetAtividadesVotacoes = "atividades_votacoes"
)

// DetalheVotos is the structured breakdown of a vote's free-text detail field.
// Entries are party abbreviations (e.g. "PS"), except unaffiliated members who
// are kept verbatim with their full name and marker (e.g. "Jane Doe (Ninsc)").
// A nil *DetalheVotos means "no detail recorded", which is distinct from a
// present struct with empty lists.
type DetalheVotos struct {
	AFavor    []string `json:"a_favor" parquet:"a_favor"`
	Contra    []string `json:"contra" parquet:"contra"`
	Abstencao []string `json:"abstencao" parquet:"abstencao"`
	Ausencia  []string `json:"ausencia" parquet:"ausencia"`
}

// IniciativaRow is one normalized initiative in the silver layer. Scalar
// columns follow the internal snake_case vocabulary; nested sub-structures the
// transform does not read (events, authorship, attachments...) are preserved
// as opaque JSON columns since their shape drifts between legislatures.
type IniciativaRow struct {
	IniNr       *string `json:"ini_nr" parquet:"ini_nr,optional"`
	IniTipo     *string `json:"ini_tipo" parquet:"ini_tipo,optional"`
	IniDescTipo *string `json:"ini_desc_tipo" parquet:"ini_desc_tipo,optional"`
	IniLeg      *string `json:"ini_leg" parquet:"ini_leg,optional"`
	IniSel      *string `json:"ini_sel" parquet:"ini_sel,optional"`
	IniTitulo   *string `json:"ini_titulo" parquet:"ini_titulo,optional"`

	IniTextoSubst      *string         `json:"ini_texto_subst" parquet:"ini_texto_subst,optional"`
	IniTextoSubstCampo *string         `json:"ini_texto_subst_campo" parquet:"ini_texto_subst_campo,optional"`
	IniLinkTexto       *string         `json:"ini_link_texto" parquet:"ini_link_texto,optional"`
	IniID              *string         `json:"ini_id" parquet:"ini_id,optional"`
	IniObs             *string         `json:"ini_obs" parquet:"ini_obs,optional"`
	IniEpigrafe        json.RawMessage `json:"ini_epigrafe,omitempty" parquet:"ini_epigrafe,optional"`

	DataInicioLeg *string `json:"data_inicio_leg" parquet:"data_inicio_leg,optional"`
	DataFimLeg    *string `json:"data_fim_leg" parquet:"data_fim_leg,optional"`

	IniAutorOutros              json.RawMessage `json:"ini_autor_outros,omitempty" parquet:"ini_autor_outros,optional"`
	IniAutorDeputados           json.RawMessage `json:"ini_autor_deputados,omitempty" parquet:"ini_autor_deputados,optional"`
	IniAutorGruposParlamentares json.RawMessage `json:"ini_autor_grupos_parlamentares,omitempty" parquet:"ini_autor_grupos_parlamentares,optional"`
	IniAnexos                   json.RawMessage `json:"ini_anexos,omitempty" parquet:"ini_anexos,optional"`
	IniEventos                  json.RawMessage `json:"ini_eventos,omitempty" parquet:"ini_eventos,optional"`
	IniciativasEuropeias        json.RawMessage `json:"iniciativas_europeias,omitempty" parquet:"iniciativas_europeias,optional"`
	IniciativasOrigem           json.RawMessage `json:"iniciativas_origem,omitempty" parquet:"iniciativas_origem,optional"`
	IniciativasOriginadas       json.RawMessage `json:"iniciativas_originadas,omitempty" parquet:"iniciativas_originadas,optional"`
	Links                       json.RawMessage `json:"links,omitempty" parquet:"links,optional"`
	Peticoes                    json.RawMessage `json:"peticoes,omitempty" parquet:"peticoes,optional"`
	PropostasAlteracao          json.RawMessage `json:"propostas_alteracao,omitempty" parquet:"propostas_alteracao,optional"`

	// IniData is the minimum event date across ini_eventos: the date the
	// initiative was first known to parliament. Nil when there are no events.
	IniData *string `json:"ini_data" parquet:"ini_data,optional"`

	Legislatura  string `json:"legislatura" parquet:"legislatura"`
	ETLTimestamp string `json:"etl_timestamp" parquet:"etl_timestamp"`
}

// InfoBaseRow carries one legislature's metadata document. The top-level
// sections are kept as JSON columns; the reference-data flatteners unpack the
// ones they need. One row per legislature.
type InfoBaseRow struct {
	Legislatura         string          `json:"legislatura" parquet:"legislatura"`
	DetalheLegislatura  json.RawMessage `json:"detalhe_legislatura,omitempty" parquet:"detalhe_legislatura,optional"`
	Deputados           json.RawMessage `json:"deputados,omitempty" parquet:"deputados,optional"`
	GruposParlamentares json.RawMessage `json:"grupos_parlamentares,omitempty" parquet:"grupos_parlamentares,optional"`
	CirculosEleitorais  json.RawMessage `json:"circulos_eleitorais,omitempty" parquet:"circulos_eleitorais,optional"`
	ETLTimestamp        string          `json:"etl_timestamp" parquet:"etl_timestamp"`
}

// VotacaoRow is one vote flattened out of an initiative's event list.
type VotacaoRow struct {
	VotID       string  `json:"vot_id" parquet:"vot_id"`
	IniID       *string `json:"ini_id" parquet:"ini_id,optional"`
	IniNr       *string `json:"ini_nr" parquet:"ini_nr,optional"`
	Legislatura string  `json:"legislatura" parquet:"legislatura"`
	IniTitulo   *string `json:"ini_titulo" parquet:"ini_titulo,optional"`
	IniTipo     *string `json:"ini_tipo" parquet:"ini_tipo,optional"`

	Fase     *string `json:"fase" parquet:"fase,optional"`
	DataFase *string `json:"data_fase" parquet:"data_fase,optional"`

	Data        *string  `json:"data" parquet:"data,optional"`
	Resultado   *string  `json:"resultado" parquet:"resultado,optional"`
	Descricao   *string  `json:"descricao" parquet:"descricao,optional"`
	Reuniao     *string  `json:"reuniao" parquet:"reuniao,optional"`
	TipoReuniao *string  `json:"tipo_reuniao" parquet:"tipo_reuniao,optional"`
	Unanime     *string  `json:"unanime" parquet:"unanime,optional"`
	Ausencias   []string `json:"ausencias" parquet:"ausencias"`
	Detalhe     *string  `json:"detalhe" parquet:"detalhe,optional"`

	DetalheParsed *DetalheVotos `json:"detalhe_parsed" parquet:"detalhe_parsed,optional"`

	// IsNominal is a length-based heuristic: long detail text means the vote
	// lists individual member names instead of party blocks only.
	IsNominal bool `json:"is_nominal" parquet:"is_nominal"`
}

// AtividadeRow is one normalized non-legislative activity. AtivID is synthetic
// since activities have no reliable natural key.
type AtividadeRow struct {
	AtivID       string  `json:"ativ_id" parquet:"ativ_id"`
	AtivAssunto  *string `json:"ativ_assunto" parquet:"ativ_assunto,optional"`
	AtivTipo     *string `json:"ativ_tipo" parquet:"ativ_tipo,optional"`
	AtivDescTipo *string `json:"ativ_desc_tipo" parquet:"ativ_desc_tipo,optional"`
	AtivNumero   *string `json:"ativ_numero" parquet:"ativ_numero,optional"`
	Sessao       *string `json:"sessao" parquet:"sessao,optional"`

	DataEntrada           *string `json:"data_entrada" parquet:"data_entrada,optional"`
	DataAgendamentoDebate *string `json:"data_agendamento_debate" parquet:"data_agendamento_debate,optional"`
	DataAnuncio           *string `json:"data_anuncio" parquet:"data_anuncio,optional"`

	AtivAutoresGP json.RawMessage `json:"ativ_autores_gp,omitempty" parquet:"ativ_autores_gp,optional"`
	AtivTipoAutor *string         `json:"ativ_tipo_autor" parquet:"ativ_tipo_autor,optional"`

	Publicacao       json.RawMessage `json:"publicacao,omitempty" parquet:"publicacao,optional"`
	PublicacaoDebate json.RawMessage `json:"publicacao_debate,omitempty" parquet:"publicacao_debate,optional"`
	VotacaoDebate    json.RawMessage `json:"votacao_debate,omitempty" parquet:"votacao_debate,optional"`
	Observacoes      *string         `json:"observacoes" parquet:"observacoes,optional"`

	Legislatura  string `json:"legislatura" parquet:"legislatura"`
	ETLTimestamp string `json:"etl_timestamp" parquet:"etl_timestamp"`
}

// AtividadeVotacaoRow is one vote recorded directly on an activity. Source is
// a fixed discriminator so activity votes can be told apart from initiative
// votes downstream.
type AtividadeVotacaoRow struct {
	VotID       string  `json:"vot_id" parquet:"vot_id"`
	AtivID      string  `json:"ativ_id" parquet:"ativ_id"`
	Legislatura string  `json:"legislatura" parquet:"legislatura"`
	Assunto     *string `json:"assunto" parquet:"assunto,optional"`
	Tipo        *string `json:"tipo" parquet:"tipo,optional"`
	Numero      *string `json:"numero" parquet:"numero,optional"`
	DataEntrada *string `json:"data_entrada" parquet:"data_entrada,optional"`

	AutoresGP json.RawMessage `json:"autores_gp,omitempty" parquet:"autores_gp,optional"`

	Data      *string  `json:"data" parquet:"data,optional"`
	Resultado *string  `json:"resultado" parquet:"resultado,optional"`
	Descricao *string  `json:"descricao" parquet:"descricao,optional"`
	Reuniao   *string  `json:"reuniao" parquet:"reuniao,optional"`
	Unanime   *string  `json:"unanime" parquet:"unanime,optional"`
	Ausencias []string `json:"ausencias" parquet:"ausencias"`
	Detalhe   *string  `json:"detalhe" parquet:"detalhe,optional"`

	DetalheParsed   *DetalheVotos `json:"detalhe_parsed" parquet:"detalhe_parsed,optional"`
	HasPartyDetails bool          `json:"has_party_details" parquet:"has_party_details"`
	Source          string        `json:"source" parquet:"source"`
}

// ActivityVoteSource marks vote rows extracted from activities.
const ActivityVoteSource = "atividade"

// PartidoHistorico is one time-bounded party affiliation of a deputy.
type PartidoHistorico struct {
	GpSigla    string   `json:"gp_sigla" parquet:"gp_sigla"`
	GpDtInicio *string  `json:"gp_dt_inicio" parquet:"gp_dt_inicio,optional"`
	GpDtFim    *string  `json:"gp_dt_fim" parquet:"gp_dt_fim,optional"`
	GpID       *float64 `json:"gp_id" parquet:"gp_id,optional"`
}

// SituacaoHistorico is one time-bounded status record of a deputy.
type SituacaoHistorico struct {
	SioDes      string  `json:"sio_des" parquet:"sio_des"`
	SioDtInicio *string `json:"sio_dt_inicio" parquet:"sio_dt_inicio,optional"`
	SioDtFim    *string `json:"sio_dt_fim" parquet:"sio_dt_fim,optional"`
}

// DeputadoRow is one deputy record per legislature. The "current" party and
// status come from the LAST entry of the respective history list; the source
// stores those lists in chronological order.
type DeputadoRow struct {
	Legislatura     string   `json:"legislatura" parquet:"legislatura"`
	DepCadID        float64  `json:"dep_cad_id" parquet:"dep_cad_id"`
	NomeParlamentar string   `json:"nome_parlamentar" parquet:"nome_parlamentar"`
	NomeCompleto    *string  `json:"nome_completo" parquet:"nome_completo,optional"`
	CirculoAtual    *string  `json:"circulo_atual" parquet:"circulo_atual,optional"`
	CirculoID       *float64 `json:"circulo_id" parquet:"circulo_id,optional"`
	PartidoAtual    *string  `json:"partido_atual" parquet:"partido_atual,optional"`
	SituacaoAtual   *string  `json:"situacao_atual" parquet:"situacao_atual,optional"`

	PartidoHistorico  []PartidoHistorico  `json:"partido_historico" parquet:"partido_historico"`
	SituacaoHistorico []SituacaoHistorico `json:"situacao_historico" parquet:"situacao_historico"`
}

// CirculoRow is one electoral circle.
type CirculoRow struct {
	Legislatura string   `json:"legislatura" parquet:"legislatura"`
	CpID        *float64 `json:"cp_id" parquet:"cp_id,optional"`
	CpDes       string   `json:"cp_des" parquet:"cp_des"`
}

// PartidoRow is one parliamentary group.
type PartidoRow struct {
	Legislatura string  `json:"legislatura" parquet:"legislatura"`
	GpSigla     string  `json:"gp_sigla" parquet:"gp_sigla"`
	GpNome      *string `json:"gp_nome" parquet:"gp_nome,optional"`
}
