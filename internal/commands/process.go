package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/estatement-dev/estatement/internal/auditlog"
	"github.com/estatement-dev/estatement/internal/batch"
	"github.com/estatement-dev/estatement/internal/categorize"
	"github.com/estatement-dev/estatement/internal/config"
	"github.com/estatement-dev/estatement/internal/export"
	"github.com/estatement-dev/estatement/internal/importer"
	"github.com/estatement-dev/estatement/internal/model"
	"github.com/estatement-dev/estatement/internal/pattern"
	"github.com/estatement-dev/estatement/internal/pdftext"
)

func newProcessCommand() *cobra.Command {
	var (
		configPath string
		bankName   string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "process [pdf...]",
		Short: "Extract, categorize and export transactions from statement PDFs",
		Long: `Process reads statement PDFs (the given files, or everything in the
configured statements directory), extracts transactions using per-bank
patterns, categorizes them by keyword, and writes the configured export
formats. Rejected lines are appended to the rejection audit log.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Workers = workers
			}
			return runProcess(cmd, cfg, bankName, args)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	cmd.Flags().StringVarP(&bankName, "bank", "b", "", "skip detection and use this bank for every statement")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of concurrent statements (default: CPU count)")

	return cmd
}

func runProcess(cmd *cobra.Command, cfg *config.Config, bankName string, args []string) error {
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	categorizer, err := loadCategorizer(cfg)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		files, err := importer.Scan(cfg.StatementsDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			paths = append(paths, f.Path)
		}
	}
	if len(paths) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no statement PDFs found in %s\n", cfg.StatementsDir)
		return nil
	}

	var stmts []batch.Statement
	for _, path := range paths {
		text, err := pdftext.ExtractFile(path)
		if err != nil {
			logger.Warn("text extraction failed", "statement", path, "error", err)
			continue
		}
		stmts = append(stmts, batch.Statement{
			Name: filepath.Base(path),
			Bank: bankName,
			Text: text,
		})
	}

	runner := batch.New(registry, cfg.Workers, logger)
	outcomes := runner.Process(stmts)

	var (
		txns     []model.Transaction
		rejected []auditlog.Entry
		failed   int
	)
	now := time.Now()
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			continue
		}
		txns = append(txns, categorizer.Apply(o.Result.Transactions())...)
		for _, rej := range o.Result.Rejections() {
			rejected = append(rejected, auditlog.Entry{
				Timestamp: now,
				Bank:      o.Bank,
				Statement: o.Statement,
				Reason:    rej.Err.Error(),
				Text:      rej.Text,
			})
		}
	}

	if len(rejected) > 0 {
		if err := auditlog.Append(cfg.OutputDir, rejected); err != nil {
			return err
		}
	}
	if err := writeExports(cfg, txns, now); err != nil {
		return err
	}

	if cfg.MoveProcessed && len(args) == 0 {
		for _, o := range outcomes {
			if o.Err == nil {
				if err := importer.MarkProcessed(cfg.StatementsDir, o.Statement); err != nil {
					logger.Warn("could not move processed statement", "statement", o.Statement, "error", err)
				}
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"processed %d statements: %d transactions, %d rejected lines, %d failed statements\n",
		len(outcomes), len(txns), len(rejected), failed)
	return nil
}

func loadRegistry(cfg *config.Config) (*pattern.Registry, error) {
	if cfg.PatternsFile != "" {
		return pattern.LoadFile(cfg.PatternsFile)
	}
	return pattern.LoadDefault()
}

func loadCategorizer(cfg *config.Config) (*categorize.Categorizer, error) {
	if cfg.CategoriesFile != "" {
		return categorize.LoadFile(cfg.CategoriesFile, cfg.DefaultCategory)
	}
	return categorize.LoadDefault(cfg.DefaultCategory)
}

func writeExports(cfg *config.Config, txns []model.Transaction, now time.Time) error {
	if len(txns) == 0 {
		return nil
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	stamp := now.Format("20060102")
	for _, format := range cfg.Formats {
		name := fmt.Sprintf("transactions_%s.%s", stamp, format)
		f, err := os.Create(filepath.Join(cfg.OutputDir, name))
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}

		switch format {
		case "csv":
			err = export.WriteCSV(f, txns)
		case "xlsx":
			err = export.WriteExcel(f, txns)
		case "json":
			err = export.WriteJSON(f, txns)
		default:
			err = fmt.Errorf("unknown export format %q", format)
		}

		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}
