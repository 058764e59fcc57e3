package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"parlamentodb/internal"
	"parlamentodb/internal/config"
	"parlamentodb/internal/silver"
)

// Handlers serves every dataset endpoint off the in-memory silver store.
type Handlers struct {
	store *silver.Store
	cfg   config.Config
}

func NewHandlers(store *silver.Store, cfg config.Config) *Handlers {
	return &Handlers{store: store, cfg: cfg}
}

func (h *Handlers) Register(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/health", h.Health)
		api.GET("/legislaturas", h.Legislaturas)
		api.GET("/iniciativas", h.Iniciativas)
		api.GET("/iniciativas/:id", h.IniciativaDetail)
		api.GET("/votacoes", h.Votacoes)
		api.GET("/votacoes/:id", h.VotacaoDetail)
		api.GET("/atividades", h.Atividades)
		api.GET("/atividades/votacoes", h.AtividadesVotacoes)
		api.GET("/atividades/:id", h.AtividadeDetail)
		api.GET("/deputados", h.Deputados)
		api.GET("/deputados/:id", h.DeputadoDetail)
		api.GET("/circulos", h.Circulos)
		api.GET("/partidos", h.Partidos)
		api.GET("/stats", h.Stats)
	}
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   config.Version,
		"loaded_at": h.store.LoadedAt(),
		"datasets": gin.H{
			internal.DatasetIniciativas:        len(h.store.Iniciativas()),
			internal.DatasetVotacoes:           len(h.store.Votacoes()),
			internal.DatasetAtividades:         len(h.store.Atividades()),
			internal.DatasetAtividadesVotacoes: len(h.store.AtividadesVotacoes()),
			internal.DatasetDeputados:          len(h.store.Deputados()),
			internal.DatasetCirculos:           len(h.store.Circulos()),
			internal.DatasetPartidos:           len(h.store.Partidos()),
		},
	})
}

func (h *Handlers) Legislaturas(c *gin.Context) {
	type legInfo struct {
		ID        string   `json:"id"`
		Name      string   `json:"name,omitempty"`
		StartDate string   `json:"start_date,omitempty"`
		Datasets  []string `json:"datasets"`
	}
	out := []legInfo{}
	for _, id := range h.store.Legislaturas() {
		info := legInfo{ID: id, Datasets: h.datasetsFor(id)}
		if leg, ok := config.Legislatures[id]; ok {
			info.Name = leg.Name
			info.StartDate = leg.StartDate
		}
		out = append(out, info)
	}
	h.respond(c, out, nil)
}

// datasetsFor lists which datasets have at least one loaded row for the
// given legislature.
func (h *Handlers) datasetsFor(leg string) []string {
	out := []string{}
	add := func(name string, present bool) {
		if present {
			out = append(out, name)
		}
	}
	add(internal.DatasetIniciativas, anyLeg(h.store.Iniciativas(), leg, func(r internal.IniciativaRow) string { return r.Legislatura }))
	add(internal.DatasetVotacoes, anyLeg(h.store.Votacoes(), leg, func(r internal.VotacaoRow) string { return r.Legislatura }))
	add(internal.DatasetAtividades, anyLeg(h.store.Atividades(), leg, func(r internal.AtividadeRow) string { return r.Legislatura }))
	add(internal.DatasetAtividadesVotacoes, anyLeg(h.store.AtividadesVotacoes(), leg, func(r internal.AtividadeVotacaoRow) string { return r.Legislatura }))
	add(internal.DatasetDeputados, anyLeg(h.store.Deputados(), leg, func(r internal.DeputadoRow) string { return r.Legislatura }))
	add(internal.DatasetCirculos, anyLeg(h.store.Circulos(), leg, func(r internal.CirculoRow) string { return r.Legislatura }))
	add(internal.DatasetPartidos, anyLeg(h.store.Partidos(), leg, func(r internal.PartidoRow) string { return r.Legislatura }))
	return out
}

func anyLeg[T any](rows []T, leg string, getLeg func(T) string) bool {
	for _, r := range rows {
		if strings.EqualFold(getLeg(r), leg) {
			return true
		}
	}
	return false
}

func (h *Handlers) Iniciativas(c *gin.Context) {
	limit, offset, ok := h.pageParams(c)
	if !ok {
		return
	}
	legislatura := c.Query("legislatura")
	tipo := c.Query("tipo")
	nr := c.Query("nr")
	desde := c.Query("data_desde")
	ate := c.Query("data_ate")

	matched := []internal.IniciativaRow{}
	for _, row := range h.store.Iniciativas() {
		if !matchLegislatura(row.Legislatura, legislatura) {
			continue
		}
		if tipo != "" && (row.IniTipo == nil || !strings.EqualFold(*row.IniTipo, tipo)) {
			continue
		}
		if nr != "" && (row.IniNr == nil || *row.IniNr != nr) {
			continue
		}
		if !inDateRange(row.IniData, desde, ate) {
			continue
		}
		matched = append(matched, row)
	}

	page, p := window(matched, limit, offset)
	h.respond(c, page, p)
}

func (h *Handlers) IniciativaDetail(c *gin.Context) {
	id := c.Param("id")
	for _, row := range h.store.Iniciativas() {
		if row.IniID != nil && *row.IniID == id {
			h.respond(c, row, nil)
			return
		}
	}
	fail(c, http.StatusNotFound, "iniciativa not found")
}

func (h *Handlers) Votacoes(c *gin.Context) {
	limit, offset, ok := h.pageParams(c)
	if !ok {
		return
	}
	legislatura := c.Query("legislatura")
	iniID := c.Query("ini_id")
	resultado := c.Query("resultado")
	partido := c.Query("partido")
	nominal := c.Query("nominal")
	desde := c.Query("data_desde")
	ate := c.Query("data_ate")
	favor := c.Query("partido_favor")
	contra := c.Query("partido_contra")
	abstencao := c.Query("partido_abstencao")

	matched := []internal.VotacaoRow{}
	for _, row := range h.store.Votacoes() {
		if !matchLegislatura(row.Legislatura, legislatura) {
			continue
		}
		if iniID != "" && (row.IniID == nil || *row.IniID != iniID) {
			continue
		}
		if resultado != "" && (row.Resultado == nil || !strings.EqualFold(*row.Resultado, resultado)) {
			continue
		}
		if nominal == "true" && !row.IsNominal {
			continue
		}
		if nominal == "false" && row.IsNominal {
			continue
		}
		if !inDateRange(row.Data, desde, ate) {
			continue
		}
		if partido != "" && !voteMentionsParty(row.DetalheParsed, partido) {
			continue
		}
		if favor != "" && (row.DetalheParsed == nil || !listContains(row.DetalheParsed.AFavor, favor)) {
			continue
		}
		if contra != "" && (row.DetalheParsed == nil || !listContains(row.DetalheParsed.Contra, contra)) {
			continue
		}
		if abstencao != "" && (row.DetalheParsed == nil || !listContains(row.DetalheParsed.Abstencao, abstencao)) {
			continue
		}
		matched = append(matched, row)
	}

	page, p := window(matched, limit, offset)
	h.respond(c, page, p)
}

func (h *Handlers) VotacaoDetail(c *gin.Context) {
	id := c.Param("id")
	for _, row := range h.store.Votacoes() {
		if row.VotID == id {
			h.respond(c, row, nil)
			return
		}
	}
	fail(c, http.StatusNotFound, "votacao not found")
}

func (h *Handlers) Atividades(c *gin.Context) {
	limit, offset, ok := h.pageParams(c)
	if !ok {
		return
	}
	legislatura := c.Query("legislatura")
	tipo := c.Query("tipo")
	hasVotes := c.Query("has_votes")

	var voted map[string]bool
	if hasVotes == "true" || hasVotes == "false" {
		voted = map[string]bool{}
		for _, v := range h.store.AtividadesVotacoes() {
			voted[v.AtivID] = true
		}
	}

	matched := []internal.AtividadeRow{}
	for _, row := range h.store.Atividades() {
		if !matchLegislatura(row.Legislatura, legislatura) {
			continue
		}
		if tipo != "" && (row.AtivTipo == nil || !strings.EqualFold(*row.AtivTipo, tipo)) {
			continue
		}
		if hasVotes == "true" && !voted[row.AtivID] {
			continue
		}
		if hasVotes == "false" && voted[row.AtivID] {
			continue
		}
		matched = append(matched, row)
	}

	page, p := window(matched, limit, offset)
	h.respond(c, page, p)
}

// AtividadeDetail returns one activity together with its flattened votes.
func (h *Handlers) AtividadeDetail(c *gin.Context) {
	id := c.Param("id")
	for _, row := range h.store.Atividades() {
		if row.AtivID == id {
			votes := []internal.AtividadeVotacaoRow{}
			for _, v := range h.store.AtividadesVotacoes() {
				if v.AtivID == id {
					votes = append(votes, v)
				}
			}
			h.respond(c, gin.H{"atividade": row, "votacoes": votes}, nil)
			return
		}
	}
	fail(c, http.StatusNotFound, "atividade not found")
}

func (h *Handlers) AtividadesVotacoes(c *gin.Context) {
	limit, offset, ok := h.pageParams(c)
	if !ok {
		return
	}
	legislatura := c.Query("legislatura")
	tipo := c.Query("tipo")
	withDetails := c.Query("with_details")

	matched := []internal.AtividadeVotacaoRow{}
	for _, row := range h.store.AtividadesVotacoes() {
		if !matchLegislatura(row.Legislatura, legislatura) {
			continue
		}
		if tipo != "" && (row.Tipo == nil || !strings.EqualFold(*row.Tipo, tipo)) {
			continue
		}
		if withDetails == "true" && !row.HasPartyDetails {
			continue
		}
		matched = append(matched, row)
	}

	page, p := window(matched, limit, offset)
	h.respond(c, page, p)
}

func (h *Handlers) Deputados(c *gin.Context) {
	limit, offset, ok := h.pageParams(c)
	if !ok {
		return
	}
	legislatura := c.Query("legislatura")
	partido := c.Query("partido")
	circulo := c.Query("circulo")

	matched := []internal.DeputadoRow{}
	for _, row := range h.store.Deputados() {
		if !matchLegislatura(row.Legislatura, legislatura) {
			continue
		}
		if partido != "" && (row.PartidoAtual == nil || !strings.EqualFold(*row.PartidoAtual, partido)) {
			continue
		}
		if circulo != "" && (row.CirculoAtual == nil || !strings.EqualFold(*row.CirculoAtual, circulo)) {
			continue
		}
		matched = append(matched, row)
	}

	page, p := window(matched, limit, offset)
	h.respond(c, page, p)
}

func (h *Handlers) DeputadoDetail(c *gin.Context) {
	id, err := strconv.ParseFloat(c.Param("id"), 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid deputado id")
		return
	}
	legislatura := c.Query("legislatura")
	for _, row := range h.store.Deputados() {
		if row.DepCadID == id && matchLegislatura(row.Legislatura, legislatura) {
			h.respond(c, row, nil)
			return
		}
	}
	fail(c, http.StatusNotFound, "deputado not found")
}

func (h *Handlers) Circulos(c *gin.Context) {
	legislatura := c.Query("legislatura")
	matched := []internal.CirculoRow{}
	for _, row := range h.store.Circulos() {
		if matchLegislatura(row.Legislatura, legislatura) {
			matched = append(matched, row)
		}
	}
	h.respond(c, matched, nil)
}

func (h *Handlers) Partidos(c *gin.Context) {
	legislatura := c.Query("legislatura")
	matched := []internal.PartidoRow{}
	for _, row := range h.store.Partidos() {
		if matchLegislatura(row.Legislatura, legislatura) {
			matched = append(matched, row)
		}
	}
	h.respond(c, matched, nil)
}

// Stats aggregates counts across the loaded datasets, optionally scoped to
// one legislature.
func (h *Handlers) Stats(c *gin.Context) {
	legislatura := c.Query("legislatura")

	iniciativasByTipo := map[string]int{}
	totalIniciativas := 0
	for _, row := range h.store.Iniciativas() {
		if !matchLegislatura(row.Legislatura, legislatura) {
			continue
		}
		totalIniciativas++
		if row.IniTipo != nil {
			iniciativasByTipo[*row.IniTipo]++
		}
	}

	votacoesByResultado := map[string]int{}
	totalVotacoes := 0
	nominalVotes := 0
	for _, row := range h.store.Votacoes() {
		if !matchLegislatura(row.Legislatura, legislatura) {
			continue
		}
		totalVotacoes++
		if row.IsNominal {
			nominalVotes++
		}
		if row.Resultado != nil {
			votacoesByResultado[*row.Resultado]++
		}
	}

	atividadesByTipo := map[string]int{}
	totalAtividades := 0
	for _, row := range h.store.Atividades() {
		if !matchLegislatura(row.Legislatura, legislatura) {
			continue
		}
		totalAtividades++
		if row.AtivTipo != nil {
			atividadesByTipo[*row.AtivTipo]++
		}
	}

	totalAtividadesVotacoes := 0
	withDetails := 0
	for _, row := range h.store.AtividadesVotacoes() {
		if !matchLegislatura(row.Legislatura, legislatura) {
			continue
		}
		totalAtividadesVotacoes++
		if row.HasPartyDetails {
			withDetails++
		}
	}

	totalDeputados := 0
	for _, row := range h.store.Deputados() {
		if matchLegislatura(row.Legislatura, legislatura) {
			totalDeputados++
		}
	}

	h.respond(c, gin.H{
		"iniciativas": gin.H{
			"total":   totalIniciativas,
			"by_tipo": iniciativasByTipo,
		},
		"votacoes": gin.H{
			"total":        totalVotacoes,
			"nominal":      nominalVotes,
			"by_resultado": votacoesByResultado,
		},
		"atividades": gin.H{
			"total":   totalAtividades,
			"by_tipo": atividadesByTipo,
		},
		"atividades_votacoes": gin.H{
			"total":              totalAtividadesVotacoes,
			"with_party_details": withDetails,
		},
		"deputados": gin.H{
			"total": totalDeputados,
		},
		"votes_by_source": gin.H{
			"iniciativas": totalVotacoes,
			"atividades":  totalAtividadesVotacoes,
			"total":       totalVotacoes + totalAtividadesVotacoes,
		},
	}, nil)
}

// pageParams reads limit/offset, applying the configured default and cap.
// Responds 400 and returns ok=false on a malformed value.
func (h *Handlers) pageParams(c *gin.Context) (limit, offset int, ok bool) {
	limit = h.cfg.APIDefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fail(c, http.StatusBadRequest, "invalid limit")
			return 0, 0, false
		}
		limit = n
	}
	if limit > h.cfg.APIMaxLimit {
		limit = h.cfg.APIMaxLimit
	}

	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fail(c, http.StatusBadRequest, "invalid offset")
			return 0, 0, false
		}
		offset = n
	}
	return limit, offset, true
}

func window[T any](rows []T, limit, offset int) ([]T, *Pagination) {
	p := &Pagination{Limit: limit, Offset: offset, Total: len(rows)}
	if offset >= len(rows) {
		return []T{}, p
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], p
}

func matchLegislatura(rowLeg, filter string) bool {
	return filter == "" || strings.EqualFold(rowLeg, filter)
}

// inDateRange compares ISO-8601 date strings lexicographically. Rows without
// a date only match when no bound is set.
func inDateRange(v *string, desde, ate string) bool {
	if desde == "" && ate == "" {
		return true
	}
	if v == nil {
		return false
	}
	if desde != "" && *v < desde {
		return false
	}
	if ate != "" && *v > ate {
		return false
	}
	return true
}

func listContains(list []string, party string) bool {
	for _, p := range list {
		if strings.EqualFold(p, party) {
			return true
		}
	}
	return false
}

func voteMentionsParty(d *internal.DetalheVotos, party string) bool {
	if d == nil {
		return false
	}
	for _, list := range [][]string{d.AFavor, d.Contra, d.Abstencao, d.Ausencia} {
		for _, p := range list {
			if strings.EqualFold(p, party) {
				return true
			}
		}
	}
	return false
}
