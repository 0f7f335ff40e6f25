package entities

import "strings"

const (
	sectionHeaderPrefix = "## Branch: "
	bulletPrefix        = "- "
	continuationIndent  = "  "
)

// Branch is a named line of commits as reported by the host.
type Branch struct {
	Name string
}

// CommitRecord keeps only the message of a commit.
type CommitRecord struct {
	Message string
}

// BranchHistory holds the most recent commits of one branch, newest first.
type BranchHistory struct {
	Branch  Branch
	Commits []CommitRecord
}

// Render returns the labelled text block of the branch: a header line
// followed by one bullet per commit. Continuation lines of multi-line
// messages are indented under their bullet.
func (h BranchHistory) Render() string {
	var sb strings.Builder
	sb.WriteString(sectionHeaderPrefix)
	sb.WriteString(h.Branch.Name)
	sb.WriteString("\n")

	for _, commit := range h.Commits {
		lines := strings.Split(strings.TrimSpace(commit.Message), "\n")
		sb.WriteString(bulletPrefix)
		sb.WriteString(strings.TrimRight(lines[0], "\r "))
		sb.WriteString("\n")
		for _, line := range lines[1:] {
			line = strings.TrimRight(line, "\r ")
			if line == "" {
				continue
			}
			sb.WriteString(continuationIndent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// AggregatedHistory is the ordered set of non-empty branch sections.
type AggregatedHistory struct {
	Sections []BranchHistory
}

// IsEmpty reports whether no branch contributed any commit.
func (h AggregatedHistory) IsEmpty() bool {
	return len(h.Sections) == 0
}

// Text renders every section in order, separated by a blank line.
func (h AggregatedHistory) Text() string {
	blocks := make([]string, 0, len(h.Sections))
	for _, section := range h.Sections {
		blocks = append(blocks, section.Render())
	}
	return strings.Join(blocks, "\n")
}

// CommitCount returns the total number of commits across all sections.
func (h AggregatedHistory) CommitCount() int {
	total := 0
	for _, section := range h.Sections {
		total += len(section.Commits)
	}
	return total
}
