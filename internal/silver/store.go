package silver

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"parlamentodb/internal"
)

// Store keeps every silver dataset in memory for the API. Datasets are
// discovered from the files present in the silver directory at load time;
// a dataset with no files simply stays empty. Reload swaps the whole
// snapshot under the lock, so readers always see a consistent load.
type Store struct {
	dir string
	log *zap.Logger

	mu                 sync.RWMutex
	legislaturas       []string
	iniciativas        []internal.IniciativaRow
	votacoes           []internal.VotacaoRow
	atividades         []internal.AtividadeRow
	atividadesVotacoes []internal.AtividadeVotacaoRow
	deputados          []internal.DeputadoRow
	circulos           []internal.CirculoRow
	partidos           []internal.PartidoRow
	loadedAt           time.Time
}

func NewStore(dir string, log *zap.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// Reload rescans the silver directory and loads every dataset found.
func (s *Store) Reload() error {
	iniciativas, legs, err := loadDataset[internal.IniciativaRow](s, internal.DatasetIniciativas)
	if err != nil {
		return err
	}
	votacoes, _, err := loadDataset[internal.VotacaoRow](s, internal.DatasetVotacoes)
	if err != nil {
		return err
	}
	atividades, _, err := loadDataset[internal.AtividadeRow](s, internal.DatasetAtividades)
	if err != nil {
		return err
	}
	atividadesVotacoes, _, err := loadDataset[internal.AtividadeVotacaoRow](s, internal.DatasetAtividadesVotacoes)
	if err != nil {
		return err
	}
	deputados, _, err := loadDataset[internal.DeputadoRow](s, internal.DatasetDeputados)
	if err != nil {
		return err
	}
	circulos, _, err := loadDataset[internal.CirculoRow](s, internal.DatasetCirculos)
	if err != nil {
		return err
	}
	partidos, _, err := loadDataset[internal.PartidoRow](s, internal.DatasetPartidos)
	if err != nil {
		return err
	}

	sort.Sort(sort.Reverse(sort.StringSlice(legs)))

	s.mu.Lock()
	s.legislaturas = legs
	s.iniciativas = iniciativas
	s.votacoes = votacoes
	s.atividades = atividades
	s.atividadesVotacoes = atividadesVotacoes
	s.deputados = deputados
	s.circulos = circulos
	s.partidos = partidos
	s.loadedAt = time.Now().UTC()
	s.mu.Unlock()

	s.log.Info("silver store loaded",
		zap.Strings("legislaturas", legs),
		zap.Int("iniciativas", len(iniciativas)),
		zap.Int("votacoes", len(votacoes)),
		zap.Int("atividades", len(atividades)),
		zap.Int("deputados", len(deputados)))
	return nil
}

// loadDataset reads every per-legislature file of one dataset and returns
// the concatenated rows plus the legislatures it found files for.
func loadDataset[T any](s *Store, dataset string) ([]T, []string, error) {
	legs, err := Legislatures(s.dir, dataset)
	if err != nil {
		return nil, nil, err
	}
	var all []T
	for _, leg := range legs {
		rows, err := Read[T](DatasetPath(s.dir, dataset, leg))
		if err != nil {
			return nil, nil, err
		}
		all = append(all, rows...)
	}
	return all, legs, nil
}

// Legislaturas lists the legislature IDs with at least an iniciativas file,
// newest first.
func (s *Store) Legislaturas() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.legislaturas
}

func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func (s *Store) Iniciativas() []internal.IniciativaRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.iniciativas
}

func (s *Store) Votacoes() []internal.VotacaoRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.votacoes
}

func (s *Store) Atividades() []internal.AtividadeRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.atividades
}

func (s *Store) AtividadesVotacoes() []internal.AtividadeVotacaoRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.atividadesVotacoes
}

func (s *Store) Deputados() []internal.DeputadoRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deputados
}

func (s *Store) Circulos() []internal.CirculoRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.circulos
}

func (s *Store) Partidos() []internal.PartidoRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.partidos
}
