package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"quizlink/internal/app"
	"quizlink/internal/config"
	"quizlink/internal/logging"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// runtime is what a command needs once config is loaded and storage is open.
type runtime struct {
	cfg      config.Config
	logger   zerolog.Logger
	kv       app.KeyValueStore
	storage  *app.LocalStorage
	notifier app.Notifier
	out      io.Writer
	closeKV  func() error
}

func (r *runtime) Close() {
	if r.closeKV == nil {
		return
	}
	if err := r.closeKV(); err != nil {
		r.logger.Warn().Err(err).Msg("close storage")
	}
}

func (r *runtime) baseURL(flags *globalFlags) string {
	if flags.baseURL != "" {
		return flags.baseURL
	}
	return r.cfg.App.BaseURL
}

// loadRuntime reads config, builds the logger and opens the configured store.
func loadRuntime(cmd *cobra.Command, flags *globalFlags) (*runtime, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)
	return openRuntime(cmd, cfg, logger)
}

func openRuntime(cmd *cobra.Command, cfg config.Config, logger zerolog.Logger) (*runtime, error) {
	ctx := logging.IntoContext(cmd.Context(), logger)
	cmd.SetContext(ctx)

	kv, closeKV, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	return &runtime{
		cfg:      cfg,
		logger:   logger,
		kv:       kv,
		storage:  app.NewLocalStorage(kv, logger),
		notifier: printNotifier(out),
		out:      out,
		closeKV:  closeKV,
	}, nil
}

func (r *runtime) book(ctx context.Context) *app.QuizBook {
	book := app.NewQuizBook(r.storage, r.notifier, r.logger)
	book.Load(ctx)
	return book
}

func (r *runtime) collector(ctx context.Context) *app.ResultCollector {
	collector := app.NewResultCollector(r.storage, app.SystemClipboard{}, r.notifier, r.logger)
	collector.Load(ctx)
	return collector
}

var levelStyles = map[app.Level]lipgloss.Style{
	app.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	app.LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	app.LevelDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
}

func printNotifier(w io.Writer) app.Notifier {
	return app.NotifierFunc(func(level app.Level, message string) {
		fmt.Fprintln(w, levelStyles[level].Render(message))
	})
}

// confirm asks a yes/no question on the command's stdin unless --yes was given.
func confirm(cmd *cobra.Command, flags *globalFlags, question string) bool {
	if flags.yes {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
