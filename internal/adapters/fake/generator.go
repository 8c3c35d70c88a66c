package fake

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/ports"
)

// DemoDraft is the message the hosted IDE's generator writes for its sample changes
var DemoDraft = domain.CommitDraft{
	Title: "feat: Update GitHub integration UI and add two-way sync support",
	Description: strings.Join([]string{
		"- Add connected repository state",
		"- Implement commit message editor",
		"- Update modal design for better UX",
		"- Add explanatory text for sync functionality",
	}, "\n"),
}

// Generator writes canned commit messages. With Canned set it always returns that
// draft; otherwise it describes the changed files, falling back to DemoDraft when
// there are none. The description is never empty.
type Generator struct {
	Canned *domain.CommitDraft
}

var _ ports.MessageGenerator = (*Generator)(nil)

// SummarizeChanges implements ports.MessageGenerator
func (g *Generator) SummarizeChanges(ctx context.Context, files []domain.FileChange) (domain.CommitDraft, error) {
	if g.Canned != nil {
		return *g.Canned, nil
	}

	if len(files) == 0 {
		return DemoDraft, nil
	}

	summary := domain.Summarize(files)
	var title string
	switch {
	case summary.Added > 0 && summary.Modified == 0 && summary.Deleted == 0:
		title = fmt.Sprintf("feat: Add %s", fileList(files))
	case summary.Deleted > 0 && summary.Added == 0 && summary.Modified == 0:
		title = fmt.Sprintf("chore: Remove %s", fileList(files))
	default:
		title = fmt.Sprintf("feat: Update %s", fileList(files))
	}

	lines := make([]string, 0, len(files))
	for _, f := range files {
		lines = append(lines, fmt.Sprintf("- %s %s", verb(f.Kind), f.Path))
	}
	description := overview(summary) + "\n\n" + strings.Join(lines, "\n")
	return domain.CommitDraft{Title: title, Description: description}, nil
}

// overview is the opening paragraph, e.g. "This commit touches 2 files: 1 added, 1 modified."
func overview(summary domain.ChangeSummary) string {
	var parts []string
	if summary.Added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", summary.Added))
	}
	if summary.Modified > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", summary.Modified))
	}
	if summary.Deleted > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", summary.Deleted))
	}
	return fmt.Sprintf("This commit touches %s: %s.",
		english.Plural(summary.Total(), "file", ""), strings.Join(parts, ", "))
}

func fileList(files []domain.FileChange) string {
	if len(files) > 2 {
		return fmt.Sprintf("%s and %d more files", files[0].Path, len(files)-1)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Path)
	}
	return strings.Join(names, " and ")
}

func verb(kind domain.ChangeKind) string {
	switch kind {
	case domain.ChangeAdded:
		return "Add"
	case domain.ChangeDeleted:
		return "Remove"
	default:
		return "Update"
	}
}
