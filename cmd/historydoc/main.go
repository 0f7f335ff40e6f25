package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/historydoc/internal"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "historydoc",
		Short: "Generate a README from the commit history of a repository",
		Long: `Reads the most recent commits of every branch of a repository, asks a
text-generation service to describe the project, and optionally commits
the resulting README back to the repository.

Supports GitHub, GitLab and local clones as hosts, and Gemini, OpenAI
and Ollama as text-generation services.

Usage modes:
  historydoc analyze <url>              Print the generated README
  historydoc analyze <url> --commit     Generate and commit the README
  historydoc commit <url> --file f      Commit an edited README
  historydoc serve                      Expose the same operations over HTTP`,
		SilenceUsage: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.MaximumNArgs(1),
			RunE:  controller.Execute,
		}

		// Add controller-specific flags
		controller.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})

	envErr := godotenv.Load()
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}
	if envErr == nil {
		logger.Debug("Loaded environment from .env")
	}

	cobraRoot := buildRootCommand()

	// Inject controllers via DIG
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.ExecuteContext(context.Background()); err != nil {
		logger.Fatalf("Error executing 'historydoc': %s", err)
	}
}
