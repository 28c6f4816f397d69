package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-nivo/internal/modelfile"
	"github.com/goliatone/go-nivo/internal/prompt"
	"github.com/goliatone/go-nivo/internal/session"
	"github.com/goliatone/go-nivo/pkg/config"
)

var (
	pagePath   string
	modelPath  string
	configPath string
	outputPath string
	sanitize   bool
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nivo",
	Short: "Bind a model to an HTML page and render the result",
	Long: `nivo binds controller scopes declared in an HTML page (nv-controller)
to values from a model file, renders {{ key }} placeholders and nv-model
inputs, and can replay edits or model file changes through the bindings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}
		if sanitize {
			cfg.Sanitize = true
		}
		logger, err = cfg.Logger(verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Bind every controller in the model and print the page",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		return writeOutput(sess)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Prompt for every bound input and print the re-rendered page",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		changed, err := sess.Edit(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("edits applied", zap.Int("changed", changed))
		for _, line := range sess.Summary() {
			fmt.Fprintln(os.Stderr, line)
		}
		return writeOutput(sess)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-apply the model file whenever it changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		if err := sess.Render(os.Stdout); err != nil {
			return err
		}
		return sess.Watch(cmd.Context(), modelPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&pagePath, "page", "p", "index.html", "HTML page to bind")
	rootCmd.PersistentFlags().StringVarP(&modelPath, "model", "m", "model.yaml", "model file (YAML or JSON) keyed by controller name")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "optional nivo config file")
	rootCmd.PersistentFlags().BoolVar(&sanitize, "sanitize", false, "sanitize page markup before binding")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (stdout if empty)")
	editCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (stdout if empty)")

	rootCmd.AddCommand(renderCmd, editCmd, watchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

func openSession() (*session.Session, error) {
	model, err := modelfile.Load(os.DirFS(filepath.Dir(modelPath)), filepath.Base(modelPath))
	if err != nil {
		return nil, err
	}

	page, err := os.Open(pagePath)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	sess, err := session.Open(page, model,
		session.WithConfig(cfg),
		session.WithLogger(logger),
		session.WithDriver(prompt.NewSurveyDriver(os.Stderr)),
		session.WithOutput(os.Stdout),
	)
	if err != nil {
		return nil, err
	}
	bound, err := sess.Bind()
	if err != nil {
		return nil, err
	}
	logger.Debug("controllers bound", zap.Int("count", bound), zap.String("page", pagePath))
	return sess, nil
}

func writeOutput(sess *session.Session) error {
	if outputPath == "" {
		return sess.Render(os.Stdout)
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer file.Close()
	if err := sess.Render(file); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Page written to %s\n", outputPath)
	return nil
}
