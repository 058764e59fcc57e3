package transform

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"parlamentodb/internal"
	"parlamentodb/internal/config"
	"parlamentodb/internal/silver"
)

// StructuralError reports a dataset that could not be transformed: a missing
// prerequisite file, unreadable JSON, or a failed silver write.
type StructuralError struct {
	Legislature string
	Dataset     string
	Err         error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("transform %s for %s: %v", e.Dataset, e.Legislature, e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// Options selects which datasets a run produces beyond iniciativas.
type Options struct {
	InfoBase           bool
	Votacoes           bool
	Deputados          bool
	Circulos           bool
	Partidos           bool
	Atividades         bool
	AtividadesVotacoes bool
}

func AllDatasets() Options {
	return Options{
		InfoBase:           true,
		Votacoes:           true,
		Deputados:          true,
		Circulos:           true,
		Partidos:           true,
		Atividades:         true,
		AtividadesVotacoes: true,
	}
}

// Runner turns bronze dumps into silver datasets.
type Runner struct {
	bronzeDir string
	silverDir string
	log       *zap.Logger
	now       func() time.Time
}

func NewRunner(cfg config.Config, log *zap.Logger) *Runner {
	return &Runner{
		bronzeDir: cfg.BronzeDir,
		silverDir: cfg.SilverDir,
		log:       log,
		now:       time.Now,
	}
}

// Run transforms the given legislatures, producing every dataset selected in
// opts. One legislature failing never stops the others; derived datasets are
// only attempted when their prerequisite was produced. Returns the datasets
// written per legislature, plus the collected failures.
func (r *Runner) Run(legislatures []string, opts Options) (map[string][]string, error) {
	results := make(map[string][]string)
	var errs []error

	record := func(leg, dataset string, err error) bool {
		if err != nil {
			r.log.Error("transform failed",
				zap.String("legislature", leg),
				zap.String("dataset", dataset),
				zap.Error(err))
			errs = append(errs, err)
			return false
		}
		results[leg] = append(results[leg], dataset)
		return true
	}

	for _, leg := range legislatures {
		okIniciativas := record(leg, internal.DatasetIniciativas, r.TransformIniciativas(leg))

		okInfoBase := false
		if opts.InfoBase {
			produced, err := r.TransformInfoBase(leg)
			if err != nil || produced {
				okInfoBase = record(leg, internal.DatasetInfoBase, err) && produced
			}
		}

		if opts.Votacoes && okIniciativas {
			record(leg, internal.DatasetVotacoes, r.TransformVotacoes(leg))
		}
		if opts.Deputados && okInfoBase {
			record(leg, internal.DatasetDeputados, r.TransformDeputados(leg))
		}
		if opts.Circulos && okInfoBase {
			record(leg, internal.DatasetCirculos, r.TransformCirculos(leg))
		}
		if opts.Partidos && okInfoBase {
			record(leg, internal.DatasetPartidos, r.TransformPartidos(leg))
		}

		okAtividades := false
		if opts.Atividades {
			produced, err := r.TransformAtividades(leg)
			if err != nil || produced {
				okAtividades = record(leg, internal.DatasetAtividades, err) && produced
			}
		}
		if opts.AtividadesVotacoes && okAtividades {
			record(leg, internal.DatasetAtividadesVotacoes, r.TransformAtividadesVotacoes(leg))
		}
	}

	return results, errors.Join(errs...)
}

// TransformIniciativas normalizes the initiatives bronze dump. A missing
// bronze file is an error: initiatives are the one dataset every legislature
// must have.
func (r *Runner) TransformIniciativas(leg string) error {
	doc, err := readBronze(internal.BronzePath(r.bronzeDir, internal.DatasetIniciativas, leg))
	if err != nil {
		return &StructuralError{Legislature: leg, Dataset: internal.DatasetIniciativas, Err: err}
	}

	rows := BuildIniciativas(toList(doc), leg, r.timestamp())
	out := silver.DatasetPath(r.silverDir, internal.DatasetIniciativas, leg)
	if err := silver.Write(out, rows); err != nil {
		return &StructuralError{Legislature: leg, Dataset: internal.DatasetIniciativas, Err: err}
	}

	r.log.Info("transformed iniciativas",
		zap.String("legislature", leg),
		zap.Int("records", len(rows)),
		zap.String("output", out))
	return nil
}

// TransformInfoBase wraps the legislature metadata dump. The dump is
// optional; returns false with no error when the bronze file is absent.
func (r *Runner) TransformInfoBase(leg string) (bool, error) {
	bronzePath := internal.BronzePath(r.bronzeDir, internal.DatasetInfoBase, leg)
	if _, err := os.Stat(bronzePath); err != nil {
		r.log.Warn("bronze file not found", zap.String("path", bronzePath))
		return false, nil
	}

	doc, err := readBronze(bronzePath)
	if err != nil {
		return false, &StructuralError{Legislature: leg, Dataset: internal.DatasetInfoBase, Err: err}
	}

	row := BuildInfoBase(doc, leg, r.timestamp())
	out := silver.DatasetPath(r.silverDir, internal.DatasetInfoBase, leg)
	if err := silver.Write(out, []internal.InfoBaseRow{row}); err != nil {
		return false, &StructuralError{Legislature: leg, Dataset: internal.DatasetInfoBase, Err: err}
	}

	r.log.Info("transformed info_base", zap.String("legislature", leg), zap.String("output", out))
	return true, nil
}

// TransformVotacoes flattens votes out of the already-written iniciativas
// silver file.
func (r *Runner) TransformVotacoes(leg string) error {
	src := silver.DatasetPath(r.silverDir, internal.DatasetIniciativas, leg)
	iniciativas, err := silver.Read[internal.IniciativaRow](src)
	if err != nil {
		return &StructuralError{Legislature: leg, Dataset: internal.DatasetVotacoes, Err: err}
	}

	rows := BuildVotacoes(iniciativas)
	out := silver.DatasetPath(r.silverDir, internal.DatasetVotacoes, leg)
	if err := silver.Write(out, rows); err != nil {
		return &StructuralError{Legislature: leg, Dataset: internal.DatasetVotacoes, Err: err}
	}

	r.log.Info("transformed votacoes",
		zap.String("legislature", leg),
		zap.Int("votes", len(rows)))
	return nil
}

func (r *Runner) TransformDeputados(leg string) error {
	info, err := r.readInfoBase(leg, internal.DatasetDeputados)
	if err != nil {
		return err
	}
	rows := BuildDeputados(info)
	out := silver.DatasetPath(r.silverDir, internal.DatasetDeputados, leg)
	if err := silver.Write(out, rows); err != nil {
		return &StructuralError{Legislature: leg, Dataset: internal.DatasetDeputados, Err: err}
	}
	r.log.Info("transformed deputados", zap.String("legislature", leg), zap.Int("deputies", len(rows)))
	return nil
}

func (r *Runner) TransformCirculos(leg string) error {
	info, err := r.readInfoBase(leg, internal.DatasetCirculos)
	if err != nil {
		return err
	}
	rows := BuildCirculos(info)
	out := silver.DatasetPath(r.silverDir, internal.DatasetCirculos, leg)
	if err := silver.Write(out, rows); err != nil {
		return &StructuralError{Legislature: leg, Dataset: internal.DatasetCirculos, Err: err}
	}
	r.log.Info("transformed circulos", zap.String("legislature", leg), zap.Int("circles", len(rows)))
	return nil
}

func (r *Runner) TransformPartidos(leg string) error {
	info, err := r.readInfoBase(leg, internal.DatasetPartidos)
	if err != nil {
		return err
	}
	rows := BuildPartidos(info)
	out := silver.DatasetPath(r.silverDir, internal.DatasetPartidos, leg)
	if err := silver.Write(out, rows); err != nil {
		return &StructuralError{Legislature: leg, Dataset: internal.DatasetPartidos, Err: err}
	}
	r.log.Info("transformed partidos", zap.String("legislature", leg), zap.Int("parties", len(rows)))
	return nil
}

// TransformAtividades normalizes the activities dump, which only some
// legislatures publish. Returns false with no error when absent.
func (r *Runner) TransformAtividades(leg string) (bool, error) {
	bronzePath := internal.BronzePath(r.bronzeDir, internal.DatasetAtividades, leg)
	if _, err := os.Stat(bronzePath); err != nil {
		r.log.Warn("bronze file not found", zap.String("path", bronzePath))
		return false, nil
	}

	doc, err := readBronze(bronzePath)
	if err != nil {
		return false, &StructuralError{Legislature: leg, Dataset: internal.DatasetAtividades, Err: err}
	}

	rows := BuildAtividades(doc, leg, r.timestamp())
	out := silver.DatasetPath(r.silverDir, internal.DatasetAtividades, leg)
	if err := silver.Write(out, rows); err != nil {
		return false, &StructuralError{Legislature: leg, Dataset: internal.DatasetAtividades, Err: err}
	}

	r.log.Info("transformed atividades",
		zap.String("legislature", leg),
		zap.Int("activities", len(rows)))
	return true, nil
}

func (r *Runner) TransformAtividadesVotacoes(leg string) error {
	src := silver.DatasetPath(r.silverDir, internal.DatasetAtividades, leg)
	atividades, err := silver.Read[internal.AtividadeRow](src)
	if err != nil {
		return &StructuralError{Legislature: leg, Dataset: internal.DatasetAtividadesVotacoes, Err: err}
	}

	rows := BuildAtividadesVotacoes(atividades)
	out := silver.DatasetPath(r.silverDir, internal.DatasetAtividadesVotacoes, leg)
	if err := silver.Write(out, rows); err != nil {
		return &StructuralError{Legislature: leg, Dataset: internal.DatasetAtividadesVotacoes, Err: err}
	}

	r.log.Info("transformed atividades_votacoes",
		zap.String("legislature", leg),
		zap.Int("votes", len(rows)))
	return nil
}

func (r *Runner) readInfoBase(leg, dataset string) (internal.InfoBaseRow, error) {
	src := silver.DatasetPath(r.silverDir, internal.DatasetInfoBase, leg)
	rows, err := silver.Read[internal.InfoBaseRow](src)
	if err != nil {
		return internal.InfoBaseRow{}, &StructuralError{Legislature: leg, Dataset: dataset, Err: err}
	}
	if len(rows) == 0 {
		return internal.InfoBaseRow{}, &StructuralError{Legislature: leg, Dataset: dataset, Err: errors.New("info_base file is empty")}
	}
	return rows[0], nil
}

func (r *Runner) timestamp() string {
	return r.now().UTC().Format(time.RFC3339)
}

// readBronze decodes a bronze JSON file with number formatting preserved, so
// re-encoded opaque columns keep the source text byte for byte.
func readBronze(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

