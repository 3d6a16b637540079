package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"quizlink/internal/app"
	"quizlink/internal/export"

	"github.com/spf13/cobra"
)

func newResultsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Collect and export student result links",
	}
	cmd.AddCommand(newResultsCollectCmd(flags))
	cmd.AddCommand(newResultsListCmd(flags))
	cmd.AddCommand(newResultsExportCmd(flags))
	cmd.AddCommand(newResultsClearCmd(flags))
	return cmd
}

func newResultsCollectCmd(flags *globalFlags) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "collect [links...]",
		Short: "Decode pasted result links; reads the clipboard when none are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, "\n")
			if file != "" {
				var data []byte
				var err error
				if file == "-" {
					data, err = io.ReadAll(cmd.InOrStdin())
				} else {
					data, err = os.ReadFile(file)
				}
				if err != nil {
					return fmt.Errorf("read links: %w", err)
				}
				raw = string(data) + "\n" + raw
			}

			rt, err := loadRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			_, err = rt.collector(cmd.Context()).Collect(cmd.Context(), raw)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read links from a file, or - for stdin")
	return cmd
}

func newResultsListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show collected results with summary statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			results := rt.collector(ctx).Results()
			if len(results) == 0 {
				fmt.Fprintln(rt.out, "No results collected yet.")
				return nil
			}

			tw := tabwriter.NewWriter(rt.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STUDENT\tQUIZ\tSCORE\tPERCENT\tCOMPLETED")
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%d%%\t%s\n",
					r.StudentName, r.QuizID, r.Score, r.TotalQuestions, r.Percentage(),
					r.CompletedAt.Local().Format("2006-01-02 15:04"))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			s := app.Summarize(results, len(rt.book(ctx).Questions()))
			fmt.Fprintf(rt.out, "\nStudents: %d  Average: %.1f (%d%%)  Highest: %d  Lowest: %d\n",
				s.TotalStudents, s.AverageScore, s.AveragePercentage, s.Highest, s.Lowest)
			return nil
		},
	}
}

func newResultsExportCmd(flags *globalFlags) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every collected result to an .xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			if dir == "" {
				dir = rt.cfg.Export.Dir
			}
			ctx := cmd.Context()
			results := rt.collector(ctx).Results()
			if len(results) == 0 {
				rt.notifier.Notify(app.LevelWarning, "No student results collected yet! Ask students to share their result links with you.")
			}
			path, err := export.WriteResults(dir, rt.book(ctx).Definition(), results, time.Now())
			if err != nil {
				return err
			}
			rt.notifier.Notify(app.LevelSuccess, "Excel file downloaded successfully!")
			fmt.Fprintln(rt.out, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (defaults to export.dir)")
	return cmd
}

func newResultsClearCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget every collected result",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			if !confirm(cmd, flags, "Are you sure you want to clear all collected results?") {
				return nil
			}
			rt.collector(cmd.Context()).Clear(cmd.Context())
			return nil
		},
	}
}
