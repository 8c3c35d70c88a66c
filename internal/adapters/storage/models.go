package storage

import "time"

// OrganizationModel is the GORM model for the organization directory
type OrganizationModel struct {
	AvatarURI   string `gorm:"not null;default:''"`
	CreatedAt   time.Time
	DisplayName string `gorm:"not null"`
	ID          string `gorm:"primaryKey"`
	Position    int    `gorm:"not null;default:0;index:idx_org_position"`
}

// TableName specifies the table name for GORM
func (OrganizationModel) TableName() string { return "organizations" }

// AccountModel is the GORM model for the account returned by the fake identity provider
type AccountModel struct {
	AvatarURI string `gorm:"not null;default:''"`
	Login     string `gorm:"primaryKey"`
	Name      string `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (AccountModel) TableName() string { return "accounts" }

// RepositoryModel is a repository created on the simulated host
type RepositoryModel struct {
	CreatedAt      time.Time
	FullPath       string `gorm:"primaryKey"`
	Name           string `gorm:"not null"`
	OrganizationID string `gorm:"not null;index:idx_repo_org"`
}

// TableName specifies the table name for GORM
func (RepositoryModel) TableName() string { return "repositories" }

// WorkspaceModel holds the single workspace row
type WorkspaceModel struct {
	Branch      string `gorm:"not null;default:'main'"`
	ID          uint   `gorm:"primaryKey"`
	RemoteAhead bool   `gorm:"not null;default:false"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (WorkspaceModel) TableName() string { return "workspace" }

// FileChangeModel is a dirty file of the workspace
type FileChangeModel struct {
	Kind     string `gorm:"not null;default:'modified';check:kind IN ('added','deleted','modified')"`
	Path     string `gorm:"primaryKey"`
	Position int    `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (FileChangeModel) TableName() string { return "file_changes" }

// CommitModel is a commit known to the workspace, seeded or pushed
type CommitModel struct {
	CommittedAt time.Time `gorm:"not null;index:idx_committed_at"`
	Description string    `gorm:"not null;default:''"`
	Hash        string    `gorm:"primaryKey"`
	Repository  string    `gorm:"not null;default:''"`
	Title       string    `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (CommitModel) TableName() string { return "commits" }
