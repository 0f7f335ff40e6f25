package controllers

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/historydoc/internal/domain/commands"
	"github.com/rios0rios0/historydoc/internal/domain/entities"
)

const documentPerm = 0o644

// AnalyzeController handles the "analyze" subcommand.
type AnalyzeController struct {
	analyze commands.Analyze
	commit  commands.Commit
}

// NewAnalyzeController creates a new AnalyzeController.
func NewAnalyzeController(analyze commands.Analyze, commit commands.Commit) *AnalyzeController {
	return &AnalyzeController{analyze: analyze, commit: commit}
}

// GetBind returns the Cobra command metadata for the analyze controller.
func (it *AnalyzeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "analyze <repository-url>",
		Short: "Generate a README from the commit history of a repository",
		Long: `Read the most recent commits of every branch of the repository,
ask the configured text-generation service to describe the project,
and print the generated README.

With --output the document is written to a file instead, and with
--commit it is also committed back to the repository.`,
	}
}

// Execute runs the analysis and delivers the document.
func (it *AnalyzeController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	repositoryURL := ""
	if len(args) > 0 {
		repositoryURL = args[0]
	}

	analysis, err := it.analyze.Execute(cmd.Context(), settings, commands.AnalyzeInput{RepositoryURL: repositoryURL})
	if err != nil {
		logger.Errorf("Analysis failed: %v", err)
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, _ = color.New(color.FgCyan, color.Bold).Fprintf(
			cmd.OutOrStdout(), "README for %s (%d commits from %d branches)\n\n",
			analysis.Repository.FullName(), analysis.History.CommitCount(), len(analysis.History.Sections),
		)
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), analysis.Document.Text)
	} else {
		if err = os.WriteFile(output, []byte(analysis.Document.Text+"\n"), documentPerm); err != nil {
			return fmt.Errorf("failed to write %q: %w", output, err)
		}
		_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "README written to %s\n", output)
	}

	if shouldCommit, _ := cmd.Flags().GetBool("commit"); shouldCommit {
		result, commitErr := it.commit.Execute(cmd.Context(), settings, commands.CommitInput{
			RepositoryURL: repositoryURL,
			Content:       analysis.Document.Text,
		})
		if commitErr != nil {
			logger.Errorf("Commit failed: %v", commitErr)
			return commitErr
		}
		_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Committed %s\n", result.URL)
	}
	return nil
}

// AddFlags adds the analyze-specific flags to the given Cobra command.
func (it *AnalyzeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Write the README to this file instead of stdout")
	cmd.Flags().Bool("commit", false, "Commit the generated README to the repository")
}
