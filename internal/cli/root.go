// Package cli wires configuration, logging, the record source and the table
// into the crm-table command.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"crmtable/internal/browse"
	"crmtable/internal/config"
	"crmtable/internal/pipeline"
	"crmtable/internal/storage"
	"crmtable/internal/ui"
)

type rootOptions struct {
	configPath string
	logLevel   string
	records    int
	pageSize   int
	source     string
	path       string
	plain      bool
	search     string
	sort       string
	pages      int
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the crm-table command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "crm-table",
		Short:        "Browse customers in a searchable, sortable table",
		Long:         "crm-table shows customer records in a table with live search, three-state column sorting and pages that load as you scroll.",
		Example:      rootCmdExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoot(cmd, opts)
		},
	}

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&opts.configPath, "config", "", "config file (default <user config dir>/crmtable/config.yaml)")
	persistent.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	flags := cmd.Flags()
	flags.IntVar(&opts.records, "records", 0, "number of synthetic records to generate")
	flags.IntVar(&opts.pageSize, "page-size", 0, "rows added per page load")
	flags.StringVar(&opts.source, "source", "", "record source: synthetic, csv or sqlite")
	flags.StringVar(&opts.path, "path", "", "file backing a csv or sqlite source")
	flags.BoolVar(&opts.plain, "plain", false, "print the table instead of starting the interactive view")
	flags.StringVar(&opts.search, "search", "", "initial search term")
	flags.StringVar(&opts.sort, "sort", "", "initial sort as field[:asc|desc]")
	flags.IntVar(&opts.pages, "pages", 0, "extra pages to load before printing; negative loads everything")

	cmd.AddCommand(newSeedCmd(opts))
	return cmd
}

const rootCmdExample = `  # Browse one million generated customers
  crm-table

  # Print the first two pages of customers named Sharma, highest score first
  crm-table --plain --search sharma --sort score:desc --pages 1

  # Seed a SQLite file and browse it
  crm-table seed --db customers.db --records 50000
  crm-table --source sqlite --path customers.db`

type session struct {
	cfg    *config.Store
	log    zerolog.Logger
	closer io.Closer
}

func (s *session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// openSession loads config, applies flag overrides and opens the log file.
func openSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyOverrides(cmd, &cfg.Config, opts)

	logger, closer, err := config.InitLogger(cfg.Config.Log.Level, cfg.LogPath())
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("config", cfg.Path()).Str("command", cmd.Name()).Msg("session started")
	return &session{cfg: cfg, log: logger, closer: closer}, nil
}

func applyOverrides(cmd *cobra.Command, cfg *config.Data, opts *rootOptions) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("records") && opts.records > 0 {
		cfg.Records = opts.records
	}
	if flags.Changed("page-size") && opts.pageSize > 0 {
		cfg.PageSize = opts.pageSize
	}
	if flags.Changed("source") {
		cfg.Source.Kind = opts.source
	}
	if flags.Changed("path") {
		cfg.Source.Path = opts.path
	}
}

func generateOptions(cfg *config.Store) storage.GenerateOptions {
	return storage.GenerateOptions{
		Count:    cfg.Config.Records,
		Seed:     cfg.Config.Seed,
		AddedBy:  cfg.Config.AddedBy,
		Location: cfg.Location(),
	}
}

func runRoot(cmd *cobra.Command, opts *rootOptions) error {
	sortCfg, err := pipeline.ParseSortConfig(opts.sort)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	src := storage.Source{Kind: s.cfg.Config.Source.Kind, Path: s.cfg.Config.Source.Path}
	start := time.Now()
	store, report, err := storage.Load(cmd.Context(), src, generateOptions(s.cfg))
	if err != nil {
		s.log.Error().Err(err).Str("source", report.Kind).Msg("load records failed")
		return fmt.Errorf("load records: %w", err)
	}
	s.log.Info().
		Str("source", report.Kind).
		Str("path", report.Path).
		Int("records", store.Len()).
		Int("skipped", report.Import.Skipped).
		Dur("took", time.Since(start)).
		Msg("records loaded")
	for _, msg := range report.Import.Errors {
		s.log.Warn().Str("row", msg).Msg("csv row skipped")
	}

	ctrl := browse.New(pipeline.NewIndex(store), s.cfg.Config.PageSize, s.log)
	ctrl.SetSearch(opts.search)
	ctrl.SetSort(sortCfg)

	if opts.plain || !isTerminal(cmd.OutOrStdout()) {
		if opts.pages != 0 {
			ctrl.LoadAll(opts.pages)
		}
		return printTable(cmd.OutOrStdout(), ctrl)
	}

	program := ui.NewProgram(ctrl, ui.Options{
		LoadDelay:      s.cfg.Config.LoadDelay,
		SearchDebounce: s.cfg.Config.SearchDebounce,
		Logger:         s.log,
	})
	if err := program.Start(); err != nil {
		s.log.Error().Err(err).Msg("program terminated")
		return err
	}
	return nil
}
