package domain

// ChangeKind classifies a dirty file
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeModified ChangeKind = "modified"
)

// FileChange is a file that differs from the connected repository
type FileChange struct {
	Kind ChangeKind
	Path string
}

// ChangeSummary counts dirty files by kind
type ChangeSummary struct {
	Added    int
	Deleted  int
	Modified int
}

// Total returns the number of files in the summary
func (s ChangeSummary) Total() int {
	return s.Added + s.Deleted + s.Modified
}

// Summarize counts changes by kind. Unknown kinds count as modified.
func Summarize(files []FileChange) ChangeSummary {
	var s ChangeSummary
	for _, f := range files {
		switch f.Kind {
		case ChangeAdded:
			s.Added++
		case ChangeDeleted:
			s.Deleted++
		default:
			s.Modified++
		}
	}
	return s
}

// WorkspaceStatus describes the local workspace relative to the connected repository
type WorkspaceStatus struct {
	Branch        string
	Files         []FileChange
	RecentCommits []RecentCommit
	RemoteAhead   bool // remote branch has changes not yet pulled
}

// Reference is the read-only data supplied by external collaborators
type Reference struct {
	Organizations []Organization
	Workspace     WorkspaceStatus
}

// Clone returns a copy that shares no slices with r
func (r Reference) Clone() Reference {
	out := Reference{
		Organizations: append([]Organization(nil), r.Organizations...),
		Workspace:     r.Workspace,
	}
	out.Workspace.Files = append([]FileChange(nil), r.Workspace.Files...)
	out.Workspace.RecentCommits = append([]RecentCommit(nil), r.Workspace.RecentCommits...)
	return out
}
