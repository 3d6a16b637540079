package cli

import (
	"fmt"
	"strconv"
	"strings"

	"quizlink/internal/domain"

	"github.com/spf13/cobra"
)

func newQuestionCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "question",
		Short: "Manage the questions of the current quiz",
	}
	cmd.AddCommand(newQuestionAddCmd(flags))
	cmd.AddCommand(newQuestionListCmd(flags))
	cmd.AddCommand(newQuestionDeleteCmd(flags))
	cmd.AddCommand(newQuestionClearCmd(flags))
	return cmd
}

func newQuestionAddCmd(flags *globalFlags) *cobra.Command {
	var (
		prompt  string
		options []string
		correct string
		replace int64
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a question with four options",
		Example: `  quizlink question add -q "What is 2 + 2?" -o 3 -o 4 -o 5 -o 6 --correct B`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(options) != domain.OptionCount {
				return fmt.Errorf("%w: exactly %d options are required, got %d", domain.ErrInvalidQuestion, domain.OptionCount, len(options))
			}
			idx, err := parseOption(correct)
			if err != nil {
				return err
			}
			var opts [domain.OptionCount]string
			copy(opts[:], options)

			rt, err := loadRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			book := rt.book(ctx)
			if replace != 0 {
				_, err = book.ReplaceQuestion(ctx, replace, prompt, opts, idx)
				return err
			}
			q, err := book.AddQuestion(ctx, prompt, opts, idx)
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "%d\n", q.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&prompt, "question", "q", "", "question text")
	cmd.Flags().StringArrayVarP(&options, "option", "o", nil, "option text, repeat four times (A to D)")
	cmd.Flags().StringVar(&correct, "correct", "", "correct option: A-D or 1-4")
	cmd.Flags().Int64Var(&replace, "replace", 0, "ID of an existing question to overwrite")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("correct")
	return cmd
}

func newQuestionListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the questions of the current quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			book := rt.book(cmd.Context())
			questions := book.Questions()
			if len(questions) == 0 {
				fmt.Fprintln(rt.out, "No questions added yet.")
				return nil
			}
			fmt.Fprintf(rt.out, "Quiz %s: %d questions\n\n", book.QuizID(), len(questions))
			for i, q := range questions {
				fmt.Fprintf(rt.out, "%d. %s  (id %d)\n", i+1, q.Prompt, q.ID)
				for j, opt := range q.Options {
					marker := " "
					if j == q.CorrectAnswer {
						marker = "✓"
					}
					fmt.Fprintf(rt.out, "   %s %s. %s\n", marker, domain.OptionLabel(j), opt)
				}
			}
			return nil
		},
	}
}

func newQuestionDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a question by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid question id %q: %w", args[0], err)
			}
			rt, err := loadRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			if !confirm(cmd, flags, "Are you sure you want to delete this question?") {
				return nil
			}
			return rt.book(cmd.Context()).DeleteQuestion(cmd.Context(), id)
		},
	}
}

func newQuestionClearCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every question, keeping the quiz ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			if !confirm(cmd, flags, "Are you sure you want to clear all questions?") {
				return nil
			}
			rt.book(cmd.Context()).ClearQuestions(cmd.Context())
			return nil
		},
	}
}

// parseOption accepts A-D (any case) or 1-4.
func parseOption(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) == 1 {
		switch c := s[0]; {
		case c >= 'A' && c < 'A'+domain.OptionCount:
			return int(c - 'A'), nil
		case c >= '1' && c < '1'+domain.OptionCount:
			return int(c - '1'), nil
		}
	}
	return 0, fmt.Errorf("%w: correct answer must be A-D or 1-4, got %q", domain.ErrInvalidQuestion, s)
}
