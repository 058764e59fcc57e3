package transform

import (
	"crypto/md5"
	"encoding/hex"
	"sort"

	"parlamentodb/internal"
)

// BuildAtividades normalizes an activities dump. The source wraps the list
// as {"AtividadesGerais": {"Atividades": [...]}}. Activities carry no
// reliable natural key, so each row gets a synthetic id: the composite
// <legislature>_<tipo>_<numero> when a number exists, otherwise a hash of
// subject and entry date. Rows come out newest first with undated activities
// last.
func BuildAtividades(doc any, legislature, etlTimestamp string) []internal.AtividadeRow {
	gerais := toMap(toMap(doc)["AtividadesGerais"])
	if gerais == nil {
		return nil
	}

	items := toList(gerais["Atividades"])
	rows := make([]internal.AtividadeRow, 0, len(items))
	for _, item := range items {
		ativ := toMap(item)
		if ativ == nil {
			continue
		}

		row := internal.AtividadeRow{
			AtivAssunto:  toStringPtr(ativ["Assunto"]),
			AtivTipo:     toStringPtr(ativ["Tipo"]),
			AtivDescTipo: toStringPtr(ativ["DescTipo"]),
			AtivNumero:   toStringPtr(ativ["Numero"]),
			Sessao:       toStringPtr(ativ["Sessao"]),

			DataEntrada:           toStringPtr(ativ["DataEntrada"]),
			DataAgendamentoDebate: toStringPtr(ativ["DataAgendamentoDebate"]),
			DataAnuncio:           toStringPtr(ativ["DataAnuncio"]),

			AtivAutoresGP: toRawJSON(ativ["AutoresGP"]),
			AtivTipoAutor: toStringPtr(ativ["TipoAutor"]),

			Publicacao:       toRawJSON(ativ["Publicacao"]),
			PublicacaoDebate: toRawJSON(ativ["PublicacaoDebate"]),
			VotacaoDebate:    toRawJSON(ativ["VotacaoDebate"]),
			Observacoes:      toStringPtr(ativ["Observacoes"]),

			Legislatura:  legislature,
			ETLTimestamp: etlTimestamp,
		}
		row.AtivID = syntheticActivityID(legislature, row)

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := compareDateDescNullsLast(rows[i].DataEntrada, rows[j].DataEntrada); c != 0 {
			return c < 0
		}
		return rows[i].AtivID < rows[j].AtivID
	})

	return rows
}

func syntheticActivityID(legislature string, row internal.AtividadeRow) string {
	if row.AtivNumero != nil && row.AtivTipo != nil {
		return legislature + "_" + *row.AtivTipo + "_" + *row.AtivNumero
	}
	var assunto, entrada string
	if row.AtivAssunto != nil {
		assunto = *row.AtivAssunto
	}
	if row.DataEntrada != nil {
		entrada = *row.DataEntrada
	}
	sum := md5.Sum([]byte(assunto + entrada))
	return legislature + "_" + hex.EncodeToString(sum[:])
}

// BuildAtividadesVotacoes flattens the votes recorded on activities. Activity
// votes often lack party detail entirely, so rows expose has_party_details
// instead of the nominal heuristic, plus a fixed source marker to tell them
// apart from initiative votes.
func BuildAtividadesVotacoes(atividades []internal.AtividadeRow) []internal.AtividadeVotacaoRow {
	var rows []internal.AtividadeVotacaoRow

	for i := range atividades {
		ativ := &atividades[i]
		for _, v := range decodeRawList(ativ.VotacaoDebate) {
			vot := toMap(v)
			if vot == nil {
				continue
			}

			detalhe := toStringPtr(vot["detalhe"])
			row := internal.AtividadeVotacaoRow{
				VotID:       toString(vot["id"]),
				AtivID:      ativ.AtivID,
				Legislatura: ativ.Legislatura,
				Assunto:     ativ.AtivAssunto,
				Tipo:        ativ.AtivTipo,
				Numero:      ativ.AtivNumero,
				DataEntrada: ativ.DataEntrada,
				AutoresGP:   ativ.AtivAutoresGP,

				Data:      toStringPtr(vot["data"]),
				Resultado: toStringPtr(vot["resultado"]),
				Descricao: toStringPtr(vot["descricao"]),
				Reuniao:   toStringPtr(vot["reuniao"]),
				Unanime:   toStringPtr(vot["unanime"]),
				Ausencias: toStringSlice(vot["ausencias"]),
				Detalhe:   detalhe,

				Source: internal.ActivityVoteSource,
			}
			if detalhe != nil {
				row.DetalheParsed = ParseDetalhe(*detalhe)
				row.HasPartyDetails = len(*detalhe) > 0
			}
			rows = append(rows, row)
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
