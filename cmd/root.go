package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/contractor-time-tracker/internal/config"
	"github.com/Tiliavir/contractor-time-tracker/internal/kv"
	"github.com/Tiliavir/contractor-time-tracker/internal/ledger"
	"github.com/Tiliavir/contractor-time-tracker/internal/logging"
	"github.com/Tiliavir/contractor-time-tracker/internal/storage"
)

// Exit codes: 1 for invalid input, 2 for storage failures.
const (
	exitInvalid = 1
	exitStorage = 2
)

// storageError marks failures of the backing store rather than of the input.
type storageError struct{ err error }

func (e storageError) Error() string { return e.err.Error() }
func (e storageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var se storageError
	if errors.As(err, &se) || errors.Is(err, ledger.ErrNotPersisted) {
		return exitStorage
	}
	return exitInvalid
}

// app is the state every command works on.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	ledger *ledger.Ledger
	repo   *storage.Repository
	now    func() time.Time
}

// loadConfig is replaced in tests.
var loadConfig = config.Load

func openApp(ctx context.Context, stderr io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log, stderr)

	store, err := kv.Open(kv.Options{
		Backend:    cfg.Storage.Backend,
		DataDir:    cfg.Storage.DataDir,
		SQLitePath: cfg.Storage.SQLitePath,
	})
	if err != nil {
		return nil, storageError{fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)}
	}
	repo := storage.New(store, logging.Component(logger, "storage"))

	return &app{
		cfg:    cfg,
		logger: logger,
		ledger: ledger.Open(ctx, repo, logging.Component(logger, "ledger")),
		repo:   repo,
		now:    time.Now,
	}, nil
}

func (a *app) Close() {
	if err := a.repo.Close(); err != nil {
		a.logger.Warn("closing store", "error", err)
	}
}

// withApp adapts a command body that needs the loaded application state.
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, args, a)
	}
}

// keepIfUnsaved reports whether err only means the change was not saved;
// the command then still prints its result before returning err.
func keepIfUnsaved(err error) bool {
	return err == nil || errors.Is(err, ledger.ErrNotPersisted)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ctt",
		Short: "Contractor Time Tracker - log hours and expenses, export reports and invoices",
		Long: `ctt is a single-binary ledger for independent contractors.
Entries record hours by category, mileage, per diem and expenses. The ledger
can be filtered, exported as CSV, XLSX or JSON, rendered as a PDF report and
turned into a 1099 PDF invoice. State is kept in ~/.ctt/.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newListCmd(),
		newStatusCmd(),
		newReportCmd(),
		newExportCmd(),
		newImportCmd(),
		newInvoiceCmd(),
		newProfileCmd(),
		newCategoryCmd(),
		newThemeCmd(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		code := exitCode(err)
		if code == exitStorage {
			fmt.Fprintln(os.Stderr, "Warning:", err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(code)
	}
}
