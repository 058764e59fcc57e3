package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"parlamentodb/internal"
	"parlamentodb/internal/config"
	"parlamentodb/internal/silver"
	"parlamentodb/internal/util"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	write := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}

	write(silver.Write(
		silver.DatasetPath(dir, internal.DatasetIniciativas, "L17"),
		[]internal.IniciativaRow{
			{IniID: util.StringPtr("i1"), IniTipo: util.StringPtr("P"), IniData: util.StringPtr("2024-01-10"), Legislatura: "L17"},
			{IniID: util.StringPtr("i2"), IniTipo: util.StringPtr("R"), IniData: util.StringPtr("2024-03-05"), Legislatura: "L17"},
		}))
	write(silver.Write(
		silver.DatasetPath(dir, internal.DatasetIniciativas, "L16"),
		[]internal.IniciativaRow{
			{IniID: util.StringPtr("i3"), IniTipo: util.StringPtr("P"), Legislatura: "L16"},
		}))
	write(silver.Write(
		silver.DatasetPath(dir, internal.DatasetVotacoes, "L17"),
		[]internal.VotacaoRow{
			{
				VotID:       "v1",
				Legislatura: "L17",
				Data:        util.StringPtr("2024-02-01"),
				Resultado:   util.StringPtr("Aprovado"),
				IsNominal:   true,
				DetalheParsed: &internal.DetalheVotos{
					AFavor:    []string{"PS"},
					Contra:    []string{"CH"},
					Abstencao: []string{},
					Ausencia:  []string{},
				},
			},
			{VotID: "v2", Legislatura: "L17", Resultado: util.StringPtr("Rejeitado")},
		}))
	write(silver.Write(
		silver.DatasetPath(dir, internal.DatasetAtividades, "L17"),
		[]internal.AtividadeRow{
			{AtivID: "a1", AtivTipo: util.StringPtr("VOT"), Legislatura: "L17"},
			{AtivID: "a2", AtivTipo: util.StringPtr("DEB"), Legislatura: "L17"},
		}))
	write(silver.Write(
		silver.DatasetPath(dir, internal.DatasetAtividadesVotacoes, "L17"),
		[]internal.AtividadeVotacaoRow{
			{VotID: "av1", AtivID: "a1", Legislatura: "L17", Source: internal.ActivityVoteSource},
		}))
	write(silver.Write(
		silver.DatasetPath(dir, internal.DatasetDeputados, "L17"),
		[]internal.DeputadoRow{
			{Legislatura: "L17", DepCadID: 1, NomeParlamentar: "Ana Silva", PartidoAtual: util.StringPtr("PS")},
			{Legislatura: "L17", DepCadID: 2, NomeParlamentar: "Bruno Costa", PartidoAtual: util.StringPtr("PSD")},
		}))
	write(silver.Write(
		silver.DatasetPath(dir, internal.DatasetPartidos, "L17"),
		[]internal.PartidoRow{
			{Legislatura: "L17", GpSigla: "PS"},
		}))

	store := silver.NewStore(dir, zap.NewNop())
	if err := store.Reload(); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{APIDefaultLimit: 50, APIMaxLimit: 500}
	engine := gin.New()
	NewHandlers(store, cfg).Register(engine)
	return engine
}

func get(t *testing.T, router *gin.Engine, path string) (int, Envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var env Envelope
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return w.Code, env
}

func dataLen(t *testing.T, env Envelope) int {
	t.Helper()
	list, ok := env.Data.([]any)
	if !ok {
		t.Fatalf("data is %T", env.Data)
	}
	return len(list)
}

func TestIniciativasEnvelope(t *testing.T) {
	router := testRouter(t)
	code, env := get(t, router, "/api/v1/iniciativas")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if n := dataLen(t, env); n != 3 {
		t.Fatalf("data len = %d", n)
	}
	if env.Pagination == nil || env.Pagination.Total != 3 || env.Pagination.Limit != 50 {
		t.Fatalf("pagination = %+v", env.Pagination)
	}
	if len(env.Meta.Legislaturas) != 2 || env.Meta.Legislaturas[0] != "L17" {
		t.Fatalf("meta legislaturas = %v", env.Meta.Legislaturas)
	}
	if env.Meta.Version != config.Version {
		t.Fatalf("meta version = %s", env.Meta.Version)
	}
}

func TestIniciativasFilters(t *testing.T) {
	router := testRouter(t)

	// Legislature filter is case-insensitive.
	_, env := get(t, router, "/api/v1/iniciativas?legislatura=l16")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("l16 len = %d", n)
	}

	_, env = get(t, router, "/api/v1/iniciativas?tipo=P")
	if n := dataLen(t, env); n != 2 {
		t.Fatalf("tipo len = %d", n)
	}

	// Date range applies to ini_data; L16's row has none and is excluded.
	_, env = get(t, router, "/api/v1/iniciativas?data_desde=2024-02-01")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("data_desde len = %d", n)
	}
	_, env = get(t, router, "/api/v1/iniciativas?data_desde=2024-01-01&data_ate=2024-01-31")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("range len = %d", n)
	}
}

func TestIniciativaDetail(t *testing.T) {
	router := testRouter(t)

	code, env := get(t, router, "/api/v1/iniciativas/i1")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	row, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data is %T", env.Data)
	}
	if row["ini_id"] != "i1" {
		t.Fatalf("ini_id = %v", row["ini_id"])
	}

	code, _ = get(t, router, "/api/v1/iniciativas/nope")
	if code != http.StatusNotFound {
		t.Fatalf("status = %d", code)
	}
}

func TestPagination(t *testing.T) {
	router := testRouter(t)

	_, env := get(t, router, "/api/v1/iniciativas?limit=2&offset=2")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("len = %d", n)
	}
	if env.Pagination.Total != 3 || env.Pagination.Offset != 2 {
		t.Fatalf("pagination = %+v", env.Pagination)
	}

	// Offset past the end: empty data, total intact.
	_, env = get(t, router, "/api/v1/iniciativas?offset=100")
	if n := dataLen(t, env); n != 0 {
		t.Fatalf("len = %d", n)
	}
	if env.Pagination.Total != 3 {
		t.Fatalf("pagination = %+v", env.Pagination)
	}

	code, _ := get(t, router, "/api/v1/iniciativas?limit=bogus")
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d", code)
	}
	code, _ = get(t, router, "/api/v1/iniciativas?offset=-1")
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d", code)
	}
}

func TestLimitCapped(t *testing.T) {
	router := testRouter(t)
	_, env := get(t, router, "/api/v1/iniciativas?limit=10000")
	if env.Pagination.Limit != 500 {
		t.Fatalf("limit = %d, want capped at 500", env.Pagination.Limit)
	}
}

func TestVotacoesFilters(t *testing.T) {
	router := testRouter(t)

	_, env := get(t, router, "/api/v1/votacoes?resultado=aprovado")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("resultado len = %d", n)
	}

	_, env = get(t, router, "/api/v1/votacoes?nominal=true")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("nominal len = %d", n)
	}

	_, env = get(t, router, "/api/v1/votacoes?partido=ch")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("partido len = %d", n)
	}

	_, env = get(t, router, "/api/v1/votacoes?partido=IL")
	if n := dataLen(t, env); n != 0 {
		t.Fatalf("partido miss len = %d", n)
	}

	// Position-specific party filters.
	_, env = get(t, router, "/api/v1/votacoes?partido_favor=ps")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("partido_favor len = %d", n)
	}
	_, env = get(t, router, "/api/v1/votacoes?partido_favor=CH")
	if n := dataLen(t, env); n != 0 {
		t.Fatalf("partido_favor miss len = %d", n)
	}
	_, env = get(t, router, "/api/v1/votacoes?partido_contra=CH")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("partido_contra len = %d", n)
	}

	// Date range against the vote date; the undated row is excluded.
	_, env = get(t, router, "/api/v1/votacoes?data_desde=2024-01-01")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("data_desde len = %d", n)
	}
}

func TestVotacaoDetail(t *testing.T) {
	router := testRouter(t)

	code, env := get(t, router, "/api/v1/votacoes/v2")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	row := env.Data.(map[string]any)
	if row["vot_id"] != "v2" {
		t.Fatalf("vot_id = %v", row["vot_id"])
	}

	code, _ = get(t, router, "/api/v1/votacoes/nope")
	if code != http.StatusNotFound {
		t.Fatalf("status = %d", code)
	}
}

func TestAtividadesHasVotes(t *testing.T) {
	router := testRouter(t)

	_, env := get(t, router, "/api/v1/atividades?has_votes=true")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("has_votes len = %d", n)
	}
	_, env = get(t, router, "/api/v1/atividades?has_votes=false")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("no votes len = %d", n)
	}
	_, env = get(t, router, "/api/v1/atividades")
	if n := dataLen(t, env); n != 2 {
		t.Fatalf("all len = %d", n)
	}
}

func TestAtividadeDetail(t *testing.T) {
	router := testRouter(t)

	code, env := get(t, router, "/api/v1/atividades/a1")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	body := env.Data.(map[string]any)
	votes, ok := body["votacoes"].([]any)
	if !ok || len(votes) != 1 {
		t.Fatalf("votacoes = %v", body["votacoes"])
	}

	// The static votes route keeps working alongside the detail route.
	_, env = get(t, router, "/api/v1/atividades/votacoes")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("votes list len = %d", n)
	}
}

func TestDeputadoDetail(t *testing.T) {
	router := testRouter(t)

	code, env := get(t, router, "/api/v1/deputados/2")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	row := env.Data.(map[string]any)
	if row["nome_parlamentar"] != "Bruno Costa" {
		t.Fatalf("nome = %v", row["nome_parlamentar"])
	}

	code, _ = get(t, router, "/api/v1/deputados/99")
	if code != http.StatusNotFound {
		t.Fatalf("status = %d", code)
	}
	code, _ = get(t, router, "/api/v1/deputados/abc")
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d", code)
	}
}

func TestDeputadosFilter(t *testing.T) {
	router := testRouter(t)
	_, env := get(t, router, "/api/v1/deputados?partido=ps")
	if n := dataLen(t, env); n != 1 {
		t.Fatalf("len = %d", n)
	}
}

func TestLegislaturasEndpoint(t *testing.T) {
	router := testRouter(t)
	code, env := get(t, router, "/api/v1/legislaturas")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if n := dataLen(t, env); n != 2 {
		t.Fatalf("len = %d", n)
	}
}

func TestStats(t *testing.T) {
	router := testRouter(t)
	code, env := get(t, router, "/api/v1/stats")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	stats, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data is %T", env.Data)
	}
	votacoes := stats["votacoes"].(map[string]any)
	if votacoes["total"].(float64) != 2 || votacoes["nominal"].(float64) != 1 {
		t.Fatalf("votacoes stats = %v", votacoes)
	}
	iniciativas := stats["iniciativas"].(map[string]any)
	if iniciativas["total"].(float64) != 3 {
		t.Fatalf("iniciativas stats = %v", iniciativas)
	}
}

func TestHealth(t *testing.T) {
	router := testRouter(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
