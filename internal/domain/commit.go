package domain

import "strings"

// CommitDraft is the user-editable message for a pending commit
type CommitDraft struct {
	Description string
	Title       string
}

// IsEmpty reports whether neither title nor description has content
func (d CommitDraft) IsEmpty() bool {
	return d.Title == "" && d.Description == ""
}

// Message joins title and description the way git stores them
func (d CommitDraft) Message() string {
	title := strings.TrimSpace(d.Title)
	description := strings.TrimSpace(d.Description)
	if description == "" {
		return title
	}
	return title + "\n\n" + description
}

// CommitResult is returned by the commit/push service
type CommitResult struct {
	Hash    string
	Summary ChangeSummary
	Title   string
}

// ShortHash returns the first seven characters of the commit hash
func (r CommitResult) ShortHash() string {
	if len(r.Hash) <= 7 {
		return r.Hash
	}
	return r.Hash[:7]
}

// RecentCommit is an entry of the recent-activity list
type RecentCommit struct {
	Hash    string
	Message string
	When    string
}
