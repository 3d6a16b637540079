package cli

import (
	"fmt"
	"time"

	"quizlink/internal/app"
	"quizlink/internal/domain"
	"quizlink/internal/export"

	"github.com/spf13/cobra"
)

func newQuizCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Create, share and export the current quiz",
	}
	cmd.AddCommand(newQuizNewCmd(flags))
	cmd.AddCommand(newQuizLinkCmd(flags))
	cmd.AddCommand(newQuizExportCmd(flags))
	return cmd
}

func newQuizNewCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new quiz; drops current questions and collected results",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			if !confirm(cmd, flags, "Start a new quiz? Current questions and collected results will be removed.") {
				return nil
			}
			id := rt.book(cmd.Context()).NewQuiz(cmd.Context())
			fmt.Fprintln(rt.out, id)
			return nil
		},
	}
}

func newQuizLinkCmd(flags *globalFlags) *cobra.Command {
	var copyLink bool
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print the shareable quiz link",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			link, ok := rt.book(ctx).ShareLink(ctx, rt.baseURL(flags))
			if !ok {
				return domain.ErrNoQuestions
			}
			fmt.Fprintln(rt.out, link)
			if copyLink {
				copyToClipboard(cmd, rt, link, "Link copied! Share it with your students.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyLink, "copy", false, "also copy the link to the clipboard")
	return cmd
}

func newQuizExportCmd(flags *globalFlags) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the questions to an .xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			if dir == "" {
				dir = rt.cfg.Export.Dir
			}
			path, err := export.WriteQuestions(dir, rt.book(cmd.Context()).Definition(), time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(rt.out, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (defaults to export.dir)")
	return cmd
}

func copyToClipboard(cmd *cobra.Command, rt *runtime, text, success string) {
	if err := (app.SystemClipboard{}).WriteText(cmd.Context(), text); err != nil {
		rt.logger.Warn().Err(err).Msg("clipboard write failed")
		rt.notifier.Notify(app.LevelWarning, "Could not copy to clipboard; copy the link above manually.")
		return
	}
	rt.notifier.Notify(app.LevelSuccess, success)
}
