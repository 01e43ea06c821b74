package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"eventually/internal/config"
	"eventually/internal/flow"
	"eventually/internal/gateway"
	"eventually/internal/logging"
	"eventually/internal/profile"
	"eventually/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"eventually/cmd/evy/ui"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger for non-interactive subcommands
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "evy",
	Short: "Eventually Yours - AI shopping assistant for your terminal",
	Long: `Eventually Yours collects your shopping profile and preferences,
asks the recommendation backend for personalized product suggestions,
and renders them right in your terminal.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "evy" && cmd.CalledAs() == "evy" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show or clear the stored session identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		clear, _ := cmd.Flags().GetBool("clear")

		_, store, _, err := buildClient()
		if err != nil {
			return err
		}

		if clear {
			if err := store.Clear(); err != nil {
				return err
			}
			logger.Info("session cleared")
			fmt.Println("Session cleared.")
			return nil
		}

		id, ok := store.Get()
		if !ok {
			fmt.Println("No session stored. One is created when the app first runs.")
			return nil
		}
		fmt.Println(id)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the server-side profile for this session as an export file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		cfg, store, client, err := buildClient()
		if err != nil {
			return err
		}
		if out == "" {
			out = cfg.Storage.ExportFile
		}

		id, ok := store.Get()
		if !ok {
			return fmt.Errorf("no session stored; run the interactive app first")
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
		defer cancel()

		raw, err := client.ExportData(ctx, id)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		var resp struct {
			Status string          `json:"status"`
			Data   profile.Profile `json:"data"`
		}
		if err := json.Unmarshal(raw, &resp); err != nil {
			return fmt.Errorf("unexpected export response: %w", err)
		}
		if resp.Status != "success" {
			return fmt.Errorf("export failed: backend reported %q", resp.Status)
		}

		if err := profile.ExportToFile(resp.Data, out, time.Now()); err != nil {
			return err
		}
		logger.Info("profile exported", zap.String("path", out), zap.String("session", id))
		fmt.Printf("Exported profile to %s\n", out)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a previously exported profile document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, client, err := buildClient()
		if err != nil {
			return err
		}

		holder := profile.NewHolder()
		importer := &profile.Importer{
			Holder:  holder,
			Session: store,
			Backend: client,
			NewID:   session.NewID,
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
		defer cancel()

		res, err := importer.ImportFile(ctx, args[0])
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		if !res.Applied {
			fmt.Println("Document carried no profile; nothing imported.")
			return nil
		}

		logger.Info("profile imported",
			zap.String("session", res.SessionID),
			zap.Int("categories", len(res.Profile.Categories)))
		fmt.Printf("Imported profile (%d categories) under session %s\n",
			len(res.Profile.Categories), res.SessionID)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.DefaultConfig()
		fmt.Printf("%s %s\n", cfg.Name, cfg.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")

	sessionCmd.Flags().Bool("clear", false, "clear the stored session id")
	exportCmd.Flags().StringP("output", "o", "", "output file path")

	rootCmd.AddCommand(sessionCmd, exportCmd, importCmd, versionCmd)
}

// buildClient wires the shared non-UI pieces for subcommands.
func buildClient() (*config.Config, *session.Store, *gateway.Client, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}

	store := session.NewStore(cfg.Storage.SessionFile)
	client := gateway.NewClient(gateway.Config{
		BaseURL:   cfg.Backend.BaseURL,
		APIPrefix: cfg.Backend.APIPrefix,
		Timeout:   cfg.RequestTimeout(),
	})
	return cfg, store, client, nil
}

// runInteractive launches the TUI.
func runInteractive() error {
	cfg, store, client, err := buildClient()
	if err != nil {
		return err
	}

	if err := logging.Initialize(cfg.Storage.Home, cfg.Logging.Debug, cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	defer logging.Close()

	d := &deps{
		cfg:    cfg,
		styles: ui.NewStyles(ui.ThemeByName(cfg.UI.Theme)),
		store:  store,
		holder: profile.NewHolder(),
		client: client,
		ctrl:   flow.NewController(store),
	}

	p := tea.NewProgram(newApp(d), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}

	// Best-effort server-side cleanup on the way out. The durable local slot
	// is kept; only an explicit clear removes it.
	if id, ok := store.Get(); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.CleanupSession(ctx, id); err != nil {
			logging.Get(logging.CategorySession).Debug("cleanup-session failed: %v", err)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
