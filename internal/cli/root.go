package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	baseURL    string
	yes        bool
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "quizlink.yaml"
	}

	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "quizlink",
		Short:         "Author, take and grade quizzes shared as self-contained links",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "base URL share links are built on (overrides config)")
	cmd.PersistentFlags().BoolVarP(&flags.yes, "yes", "y", false, "skip confirmation prompts")

	cmd.AddCommand(newQuestionCmd(flags))
	cmd.AddCommand(newQuizCmd(flags))
	cmd.AddCommand(newTakeCmd(flags))
	cmd.AddCommand(newResultsCmd(flags))
	cmd.AddCommand(newMigrateCmd(flags))
	return cmd
}
