// Package main implements the tessera-index tool. It inspects the system
// catalog and synthesizes index view schemas from a published table schema.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/tesseradb/tessera/internal/catalog"
	"github.com/tesseradb/tessera/internal/config"
	"github.com/tesseradb/tessera/internal/index"
	"github.com/tesseradb/tessera/internal/logger"
	"github.com/tesseradb/tessera/internal/schema"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	var (
		configFile  string
		catalogPath string
		schemaFile  string
		indexName   string
		saveView    bool
		showVersion bool
	)

	flag.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.StringVar(&catalogPath, "catalog", "", "Path to the system catalog database")
	flag.StringVar(&schemaFile, "schema", "", "Path to a table schema JSON file")
	flag.StringVar(&indexName, "index", "", "Index name to operate on")
	flag.BoolVar(&saveView, "save", false, "Persist the synthesized view schema to the catalog")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tessera-index - secondary index catalog tooling\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tessera-index [options] <command>\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  list        List registered indexes for the table in -schema\n")
		fmt.Fprintf(os.Stderr, "  show-view   Synthesize and print the view schema for -index\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tessera-index -schema events.json list\n")
		fmt.Fprintf(os.Stderr, "  tessera-index -schema events.json -index by_user -save show-view\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  TESSERA_CATALOG_PATH               Path to system.db\n")
		fmt.Fprintf(os.Stderr, "  TESSERA_USE_NEW_TOKEN_COMPUTATION  Token computation generation\n")
		fmt.Fprintf(os.Stderr, "  TESSERA_LOG_LEVEL                  debug, info, warn, error\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("tessera-index %s (%s)\n", version, commit)
		return
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.LoadFromFile(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	config.LoadFromEnv(cfg)
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log, os.Stderr)

	command := flag.Arg(0)
	if command == "" {
		flag.Usage()
		os.Exit(2)
	}

	base, err := loadSchemaFile(schemaFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load schema")
	}

	mgr := index.NewManager(index.StaticTable(base), log)
	if err := mgr.Reload(); err != nil {
		log.Fatal().Err(err).Msg("failed to load indexes from schema")
	}

	switch command {
	case "list":
		for _, idx := range mgr.ListIndexes() {
			im := idx.Metadata()
			scope := "global"
			if im.Local {
				scope = "local"
			}
			fmt.Printf("%s\t%s\t%s -> %s\n",
				im.Name, scope, idx.TargetColumn(), index.IndexTableName(im.Name))
		}

	case "show-view":
		if indexName == "" {
			log.Fatal().Msg("show-view requires -index")
		}
		im, ok := base.Indexes()[indexName]
		if !ok {
			log.Fatal().Str("index", indexName).Msg("index not found in schema")
		}
		view, err := mgr.CreateViewForIndex(im, cfg.UseNewTokenComputation)
		if err != nil {
			log.Fatal().Err(err).Msg("view synthesis failed")
		}
		out, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to marshal view schema")
		}
		fmt.Println(string(out))

		if saveView {
			cat, err := catalog.NewCatalog(cfg.CatalogPath)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to open catalog")
			}
			defer cat.Close()
			ctx := context.Background()
			if err := cat.SaveIndex(ctx, base.Table(), im); err != nil {
				log.Fatal().Err(err).Msg("failed to save index metadata")
			}
			if err := cat.SaveView(ctx, view); err != nil {
				log.Fatal().Err(err).Msg("failed to save view schema")
			}
			log.Info().Str("view", view.Table()).Str("catalog", cfg.CatalogPath).Msg("view schema saved")
		}

	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n\n", command)
		flag.Usage()
		os.Exit(2)
	}
}

func loadSchemaFile(path string) (*schema.Schema, error) {
	if path == "" {
		return nil, fmt.Errorf("a table schema is required: pass -schema")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	var s schema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}
	return &s, nil
}
