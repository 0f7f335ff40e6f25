package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

// Section titles requested from the text-generation service.
const (
	SectionProjectName    = "Project Name"
	SectionDescription    = "Description"
	SectionMainFeatures   = "Main Features"
	SectionRecentActivity = "Recent Activity"
)

const promptTemplate = `You are a senior software engineer and DevOps specialist. Your task is to write a professional README.md for a project based solely on the commit history of all of its branches.

Below is the recent commit history of the repository. Analyze it to understand the evolution, the main features and the purpose of the project.

Commit history:

%s
Based on this analysis, write a complete README.md in plain Markdown with the following sections:
- **%s:** inferred from the context.
- **%s:** one paragraph summarizing the goal of the project, based on the features described in the commits.
- **%s:** a bulleted list of the main features you can infer from the commits (for example "Login implementation", "Financial reports", "API bug fix"). Describe them in your own words instead of quoting commit messages.
- **%s:** a short summary of what appears to be under development right now.
`

// buildPrompt embeds the aggregated history verbatim into the fixed template.
func buildPrompt(history entities.AggregatedHistory) string {
	return fmt.Sprintf(
		promptTemplate,
		history.Text(),
		SectionProjectName,
		SectionDescription,
		SectionMainFeatures,
		SectionRecentActivity,
	)
}

// synthesizeDocument calls the generator exactly once. Failures are surfaced
// with the service message preserved, never replaced by a placeholder.
func synthesizeDocument(
	ctx context.Context,
	generator repositories.GeneratorRepository,
	history entities.AggregatedHistory,
) (entities.GeneratedDocument, error) {
	output, err := generator.Generate(ctx, buildPrompt(history))
	if err != nil {
		return entities.GeneratedDocument{}, fmt.Errorf("%w: %s: %w", entities.ErrSynthesis, generator.Name(), err)
	}

	document := entities.GeneratedDocument{Text: strings.TrimSpace(output)}
	if document.IsBlank() {
		return entities.GeneratedDocument{}, fmt.Errorf(
			"%w: %s returned an empty document", entities.ErrSynthesis, generator.Name(),
		)
	}
	return document, nil
}
