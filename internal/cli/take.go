package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"quizlink/internal/app"
	"quizlink/internal/config"
	"quizlink/internal/export"
	"quizlink/internal/logging"
	"quizlink/internal/transport/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newTakeCmd(flags *globalFlags) *cobra.Command {
	var (
		name     string
		copyLink bool
		xlsx     bool
		logFile  string
	)
	cmd := &cobra.Command{
		Use:   "take [quiz link]",
		Short: "Take a quiz in the terminal; reads the link from the clipboard when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}

			// the alternate screen owns the terminal, so logs go to a file or nowhere
			var sink io.Writer = io.Discard
			if logFile != "" {
				f, err := tea.LogToFile(logFile, "")
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				sink = f
			}
			logger := logging.NewWithWriter(sink, cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)

			rt, err := openRuntime(cmd, cfg, logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			link := ""
			if len(args) == 1 {
				link = args[0]
			} else if text, err := (app.SystemClipboard{}).ReadText(cmd.Context()); err == nil {
				link = text
			}

			notices := &tui.Notices{}
			session, err := app.Join(link, name, sessionOptions(rt, flags, notices, logger))
			if err != nil {
				for _, n := range notices.Recent(1) {
					rt.notifier.Notify(n.Level, n.Message)
				}
				return err
			}

			model := tui.NewModel(session, notices, tui.Options{
				RevealDelay: config.TTLDuration(cfg.Session.RevealDelay, 2500*time.Millisecond),
			})
			program := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithReportFocus(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run quiz: %w", err)
			}

			return reportAttempt(cmd, rt, session, copyLink, xlsx)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "your name as the teacher will see it")
	cmd.Flags().BoolVar(&copyLink, "copy", false, "copy the result link to the clipboard")
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "also save your answers as an .xlsx workbook")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the quiz runs")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func sessionOptions(rt *runtime, flags *globalFlags, notifier app.Notifier, logger zerolog.Logger) app.SessionOptions {
	questionTime := config.TTLDuration(rt.cfg.Session.QuestionTime, time.Duration(app.DefaultQuestionTime)*time.Second)
	return app.SessionOptions{
		BaseURL:      rt.baseURL(flags),
		QuestionTime: int(questionTime / time.Second),
		VisualLock:   config.TTLDuration(rt.cfg.Session.VisualLock, app.DefaultVisualLock),
		Notifier:     notifier,
		Logger:       logger,
	}
}

// reportAttempt prints the result link once the TUI has exited.
func reportAttempt(cmd *cobra.Command, rt *runtime, session *app.Session, copyLink, xlsx bool) error {
	result, ok := session.Result()
	if !ok {
		fmt.Fprintln(rt.out, "Quiz not finished; no result link was produced.")
		return nil
	}
	title, message := app.Verdict(result.Percentage())
	fmt.Fprintf(rt.out, "%s %s\nScore: %d/%d (%d%%)\n\n", title, message, result.Score, result.TotalQuestions, result.Percentage())
	if session.Locked() {
		rt.notifier.Notify(app.LevelDanger, "Quiz locked and auto-submitted after repeated violations.")
	}
	fmt.Fprintln(rt.out, "Share this link with your teacher:")
	fmt.Fprintln(rt.out, session.ResultLink())

	if copyLink {
		copyToClipboard(cmd, rt, session.ResultLink(), "Result link copied! Send it to your teacher.")
	}
	if xlsx {
		dir := rt.cfg.Export.Dir
		if dir == "" {
			dir = "."
		}
		path, err := export.WriteStudent(dir, session.Quiz(), result, time.Now())
		if err != nil {
			rt.notifier.Notify(app.LevelWarning, "Failed to download results")
			return err
		}
		fmt.Fprintln(rt.out, filepath.Clean(path))
	}
	return nil
}
