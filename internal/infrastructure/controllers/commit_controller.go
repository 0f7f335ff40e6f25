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

// CommitController handles the "commit" subcommand.
type CommitController struct {
	command commands.Commit
}

// NewCommitController creates a new CommitController.
func NewCommitController(command commands.Commit) *CommitController {
	return &CommitController{command: command}
}

// GetBind returns the Cobra command metadata for the commit controller.
func (it *CommitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "commit <repository-url>",
		Short: "Commit a document to a repository",
		Long: `Create or replace a file in the repository with the content of a
local file. The write is conditional: if the file changes between
reading its revision and committing, the commit is rejected.`,
	}
}

// Execute commits the content of --file.
func (it *CommitController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	file, _ := cmd.Flags().GetString("file")
	path, _ := cmd.Flags().GetString("path")
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("%w: failed to read %q: %w", entities.ErrInvalidInput, file, err)
	}

	repositoryURL := ""
	if len(args) > 0 {
		repositoryURL = args[0]
	}

	result, err := it.command.Execute(cmd.Context(), settings, commands.CommitInput{
		RepositoryURL: repositoryURL,
		Content:       string(content),
		Path:          path,
	})
	if err != nil {
		logger.Errorf("Commit failed: %v", err)
		return err
	}

	_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Committed %s\n", result.URL)
	return nil
}

// AddFlags adds the commit-specific flags to the given Cobra command.
func (it *CommitController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Local file with the content to commit")
	cmd.Flags().String("path", "", "Target path in the repository (default: pipeline.output_path)")
	_ = cmd.MarkFlagRequired("file")
}
