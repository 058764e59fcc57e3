package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"parlamentodb/internal"
	"parlamentodb/internal/api"
	"parlamentodb/internal/config"
	"parlamentodb/internal/export"
	"parlamentodb/internal/fetch"
	"parlamentodb/internal/logging"
	"parlamentodb/internal/silver"
	"parlamentodb/internal/transform"
)

func main() {
	cfg, err := config.Load()
	must(err)

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	must(err)
	defer log.Sync()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		legs := fs.String("legislatures", "", "comma-separated IDs (default: all)")
		force := fs.Bool("force", false, "re-download even if bronze files exist")
		_ = fs.Parse(os.Args[2:])

		ids, err := parseLegislatures(*legs)
		must(err)
		client := fetch.NewClient(cfg, log)
		results, err := client.FetchAll(context.Background(), ids, *force)
		printResults("fetch", results)
		must(err)

	case "transform":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		legs := fs.String("legislatures", "", "comma-separated IDs (default: all)")
		skip := fs.String("skip", "", "comma-separated datasets to skip")
		_ = fs.Parse(os.Args[2:])

		ids, err := parseLegislatures(*legs)
		must(err)
		opts, err := parseSkip(*skip)
		must(err)
		runner := transform.NewRunner(cfg, log)
		results, err := runner.Run(ids, opts)
		printResults("transform", results)
		must(err)

	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		legs := fs.String("legislatures", "", "comma-separated IDs (default: all)")
		force := fs.Bool("force", false, "re-download even if bronze files exist")
		_ = fs.Parse(os.Args[2:])

		ids, err := parseLegislatures(*legs)
		must(err)
		client := fetch.NewClient(cfg, log)
		fetched, err := client.FetchAll(context.Background(), ids, *force)
		printResults("fetch", fetched)
		must(err)
		runner := transform.NewRunner(cfg, log)
		results, err := runner.Run(ids, transform.AllDatasets())
		printResults("transform", results)
		must(err)

	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dataset := fs.String("dataset", "", "votacoes|deputados|iniciativas")
		leg := fs.String("legislature", "", "legislature ID (default: all loaded)")
		out := fs.String("out", "", "output xlsx path (default: under OUTPUT_DIR)")
		_ = fs.Parse(os.Args[2:])

		must(runExport(cfg, *dataset, *leg, *out))

	case "serve":
		store := silver.NewStore(cfg.SilverDir, log)
		server := api.NewServer(cfg, store, log)
		server.OnRefresh(func() error {
			ids := config.LegislatureIDs()
			client := fetch.NewClient(cfg, log)
			if _, err := client.FetchAll(context.Background(), ids, false); err != nil {
				return err
			}
			_, err := transform.NewRunner(cfg, log).Run(ids, transform.AllDatasets())
			return err
		})
		must(server.Run())

	case "legislatures":
		for _, id := range config.LegislatureIDs() {
			leg := config.Legislatures[id]
			datasets := []string{}
			for _, ds := range []string{
				internal.DatasetIniciativas, internal.DatasetInfoBase,
				internal.DatasetVotacoes, internal.DatasetDeputados,
				internal.DatasetCirculos, internal.DatasetPartidos,
				internal.DatasetAtividades, internal.DatasetAtividadesVotacoes,
			} {
				if silver.Exists(cfg.SilverDir, ds, id) {
					datasets = append(datasets, ds)
				}
			}
			fmt.Printf("%s  %s (since %s)  silver=[%s]\n", id, leg.Name, leg.StartDate, strings.Join(datasets, " "))
		}

	default:
		usage()
		os.Exit(1)
	}
}

func runExport(cfg config.Config, dataset, legislature, out string) error {
	if dataset == "" {
		return fmt.Errorf("--dataset is required")
	}
	if out == "" {
		out = export.OutputPath(cfg.OutputDir, dataset, legislature)
	}

	legs := []string{legislature}
	if legislature == "" {
		found, err := silver.Legislatures(cfg.SilverDir, dataset)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return fmt.Errorf("no silver files for dataset %s", dataset)
		}
		legs = found
	}

	switch dataset {
	case internal.DatasetVotacoes:
		var rows []internal.VotacaoRow
		for _, leg := range legs {
			part, err := silver.Read[internal.VotacaoRow](silver.DatasetPath(cfg.SilverDir, dataset, leg))
			if err != nil {
				return err
			}
			rows = append(rows, part...)
		}
		if err := export.VotacoesToXLSX(rows, out); err != nil {
			return err
		}
		fmt.Printf("exported %d rows to %s\n", len(rows), out)
	case internal.DatasetDeputados:
		var rows []internal.DeputadoRow
		for _, leg := range legs {
			part, err := silver.Read[internal.DeputadoRow](silver.DatasetPath(cfg.SilverDir, dataset, leg))
			if err != nil {
				return err
			}
			rows = append(rows, part...)
		}
		if err := export.DeputadosToXLSX(rows, out); err != nil {
			return err
		}
		fmt.Printf("exported %d rows to %s\n", len(rows), out)
	case internal.DatasetIniciativas:
		var rows []internal.IniciativaRow
		for _, leg := range legs {
			part, err := silver.Read[internal.IniciativaRow](silver.DatasetPath(cfg.SilverDir, dataset, leg))
			if err != nil {
				return err
			}
			rows = append(rows, part...)
		}
		if err := export.IniciativasToXLSX(rows, out); err != nil {
			return err
		}
		fmt.Printf("exported %d rows to %s\n", len(rows), out)
	default:
		return fmt.Errorf("unsupported export dataset: %s", dataset)
	}
	return nil
}

func parseLegislatures(list string) ([]string, error) {
	if strings.TrimSpace(list) == "" {
		return config.LegislatureIDs(), nil
	}
	var ids []string
	for _, part := range strings.Split(list, ",") {
		id := strings.ToUpper(strings.TrimSpace(part))
		if id == "" {
			continue
		}
		if _, ok := config.Legislatures[id]; !ok {
			return nil, fmt.Errorf("unknown legislature: %s (available: %s)",
				id, strings.Join(config.LegislatureIDs(), ", "))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseSkip(list string) (transform.Options, error) {
	opts := transform.AllDatasets()
	for _, part := range strings.Split(list, ",") {
		switch strings.TrimSpace(part) {
		case "":
		case internal.DatasetInfoBase:
			opts.InfoBase = false
		case internal.DatasetVotacoes:
			opts.Votacoes = false
		case internal.DatasetDeputados:
			opts.Deputados = false
		case internal.DatasetCirculos:
			opts.Circulos = false
		case internal.DatasetPartidos:
			opts.Partidos = false
		case internal.DatasetAtividades:
			opts.Atividades = false
		case internal.DatasetAtividadesVotacoes:
			opts.AtividadesVotacoes = false
		default:
			return opts, fmt.Errorf("unknown dataset to skip: %s", part)
		}
	}
	return opts, nil
}

func printResults(stage string, results map[string][]string) {
	for leg, datasets := range results {
		fmt.Printf("%s %s: %s\n", stage, leg, strings.Join(datasets, " "))
	}
}

func usage() {
	fmt.Println("usage: parlamentodb <command>")
	fmt.Println("commands:")
	fmt.Println("  fetch [--legislatures=L17,L16] [--force]")
	fmt.Println("  transform [--legislatures=L17,L16] [--skip=info_base,votacoes,...]")
	fmt.Println("  run [--legislatures=L17,L16] [--force]")
	fmt.Println("  export:xlsx --dataset=votacoes|deputados|iniciativas [--legislature=L17] [--out=...xlsx]")
	fmt.Println("  serve")
	fmt.Println("  legislatures")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
