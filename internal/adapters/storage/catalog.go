package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/ports"
)

// MemoryPath opens a catalog that lives only as long as the process
const MemoryPath = ":memory:"

const workspaceRowID = 1

// Catalog is the simulated hosted service and workspace, backed by SQLite.
// It serves the organization directory, creates repositories, records pushed commits
// and reports the workspace status.
type Catalog struct {
	db  *gorm.DB
	now func() time.Time
}

// Verify interface compliance at compile time
var (
	_ ports.CommitPusher          = (*Catalog)(nil)
	_ ports.OrganizationDirectory = (*Catalog)(nil)
	_ ports.RepositoryHost        = (*Catalog)(nil)
	_ ports.WorkspaceInspector    = (*Catalog)(nil)
	_ ports.WorkspaceSync         = (*Catalog)(nil)
)

// gormLogger wraps the gitlink logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error", "error", err, "duration", elapsed, "sql", sql, "rows", rows)
		return
	}
	logging.Logger.Debug("gorm query", "duration", elapsed, "sql", sql, "rows", rows)
}

func newGormLogger() logger.Interface {
	if os.Getenv("GITLINK_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewCatalog opens the catalog database at dbPath, creating the schema if needed.
// Use MemoryPath for a throwaway catalog.
func NewCatalog(dbPath string) (*Catalog, error) {
	memory := dbPath == MemoryPath
	if !memory {
		if strings.HasPrefix(dbPath, "~") {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			dbPath = filepath.Join(homeDir, dbPath[1:])
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:  newGormLogger(),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	if !memory {
		db.Exec("PRAGMA journal_mode=WAL")
		db.Exec("PRAGMA busy_timeout=5000")
		db.Exec("PRAGMA synchronous=NORMAL")
	}

	if err := db.AutoMigrate(
		&AccountModel{},
		&CommitModel{},
		&FileChangeModel{},
		&OrganizationModel{},
		&RepositoryModel{},
		&WorkspaceModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if memory {
		// every connection to :memory: is a separate database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
	}

	return &Catalog{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the database connection
func (c *Catalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedIfEmpty loads fixtures unless the catalog already has organizations.
// It reports whether seeding happened.
func (c *Catalog) SeedIfEmpty(ctx context.Context, f Fixtures) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&OrganizationModel{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count organizations: %w", err)
	}
	if count > 0 {
		logging.Logger.Debug("Catalog already seeded", "organizations", count)
		return false, nil
	}
	if err := c.Seed(ctx, f); err != nil {
		return false, err
	}
	return true, nil
}

// Seed replaces the reference data with the fixtures. Created repositories are kept.
func (c *Catalog) Seed(ctx context.Context, f Fixtures) error {
	if err := f.validate(); err != nil {
		return err
	}
	now := c.now()

	err := withRetry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, model := range []any{&OrganizationModel{}, &AccountModel{}, &FileChangeModel{}, &CommitModel{}, &WorkspaceModel{}} {
				if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
					return err
				}
			}

			for i, org := range f.Organizations {
				if err := tx.Create(&OrganizationModel{
					AvatarURI:   org.AvatarURI,
					DisplayName: org.DisplayName,
					ID:          org.ID,
					Position:    i,
				}).Error; err != nil {
					return err
				}
			}

			if f.Account.Login != "" {
				if err := tx.Create(&AccountModel{
					AvatarURI: f.Account.AvatarURI,
					Login:     f.Account.Login,
					Name:      f.Account.Name,
				}).Error; err != nil {
					return err
				}
			}

			branch := f.Workspace.Branch
			if branch == "" {
				branch = "main"
			}
			if err := tx.Create(&WorkspaceModel{
				Branch:      branch,
				ID:          workspaceRowID,
				RemoteAhead: f.Workspace.RemoteAhead,
			}).Error; err != nil {
				return err
			}

			for i, file := range f.Workspace.Files {
				if err := tx.Create(&FileChangeModel{Kind: file.Kind, Path: file.Path, Position: i}).Error; err != nil {
					return err
				}
			}

			for _, commit := range f.Commits {
				age, _ := commit.age()
				if err := tx.Create(&CommitModel{
					CommittedAt: now.Add(-age),
					Description: commit.Description,
					Hash:        commit.Hash,
					Title:       commit.Title,
				}).Error; err != nil {
					return err
				}
			}
			return nil
		})
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	logging.Logger.Info("Catalog seeded",
		"organizations", len(f.Organizations),
		"files", len(f.Workspace.Files),
		"commits", len(f.Commits))
	return nil
}

// ListOrganizations implements ports.OrganizationDirectory
func (c *Catalog) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	var models []OrganizationModel
	err := withRetry(func() error {
		return c.db.WithContext(ctx).Order("position").Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	orgs := make([]domain.Organization, 0, len(models))
	for _, m := range models {
		orgs = append(orgs, organizationModelToDomain(m))
	}
	return orgs, nil
}

// Account returns the account the simulated identity provider signs in as
func (c *Catalog) Account(ctx context.Context) (domain.Account, error) {
	var m AccountModel
	err := withRetry(func() error {
		return c.db.WithContext(ctx).Order("login").First(&m).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, fmt.Errorf("no account configured: %w", domain.ErrAuthDenied)
		}
		return domain.Account{}, fmt.Errorf("failed to load account: %w", err)
	}
	return accountModelToDomain(m), nil
}

// CreateRepository implements ports.RepositoryHost
func (c *Catalog) CreateRepository(ctx context.Context, orgID, name string) (domain.ConnectedRepository, error) {
	var repo domain.ConnectedRepository

	err := withRetry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var org OrganizationModel
			if err := tx.Where("id = ?", orgID).First(&org).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("organization %s: %w", orgID, domain.ErrPermissionDenied)
				}
				return err
			}

			fullPath := domain.ConnectedPath(domain.RepositoryDraft{
				Name:         name,
				Organization: organizationModelToDomain(org),
			})

			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&RepositoryModel{
				FullPath:       fullPath,
				Name:           name,
				OrganizationID: orgID,
			})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%s: %w", fullPath, domain.ErrNameConflict)
			}

			repo = domain.ConnectedRepository{FullPath: fullPath}
			return nil
		})
	}, 3)
	if err != nil {
		return domain.ConnectedRepository{}, err
	}

	logging.Logger.Info("Repository created", "path", repo.FullPath)
	return repo, nil
}

// Status implements ports.WorkspaceInspector
func (c *Catalog) Status(ctx context.Context) (domain.WorkspaceStatus, error) {
	var ws WorkspaceModel
	var files []FileChangeModel

	err := withRetry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", workspaceRowID).First(&ws).Error; err != nil {
				return err
			}
			return tx.Order("position").Find(&files).Error
		})
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.WorkspaceStatus{}, errors.New("catalog is not seeded")
		}
		return domain.WorkspaceStatus{}, fmt.Errorf("failed to load workspace: %w", err)
	}

	status := domain.WorkspaceStatus{
		Branch:      ws.Branch,
		Files:       make([]domain.FileChange, 0, len(files)),
		RemoteAhead: ws.RemoteAhead,
	}
	for _, f := range files {
		status.Files = append(status.Files, fileChangeModelToDomain(f))
	}
	return status, nil
}

// RecentCommits implements ports.WorkspaceInspector
func (c *Catalog) RecentCommits(ctx context.Context, limit int) ([]domain.RecentCommit, error) {
	var models []CommitModel
	err := withRetry(func() error {
		q := c.db.WithContext(ctx).Order("committed_at DESC")
		if limit > 0 {
			q = q.Limit(limit)
		}
		return q.Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits: %w", err)
	}

	now := c.now()
	commits := make([]domain.RecentCommit, 0, len(models))
	for _, m := range models {
		commits = append(commits, commitModelToDomain(m, now))
	}
	return commits, nil
}

// CommitAndPush implements ports.CommitPusher. The commit is recorded as the newest
// entry of the recent-activity list. A clean workspace still gets a commit, the way
// `git commit --allow-empty` would.
func (c *Catalog) CommitAndPush(ctx context.Context, repository string, message domain.CommitDraft, files []domain.FileChange) (domain.CommitResult, error) {
	title := strings.TrimSpace(message.Title)
	if title == "" {
		title = defaultCommitTitle(len(files))
	}

	sum := sha1.Sum([]byte(repository + "\x00" + message.Message() + "\x00" + uuid.NewString()))
	commit := CommitModel{
		CommittedAt: c.now(),
		Description: strings.TrimSpace(message.Description),
		Hash:        hex.EncodeToString(sum[:]),
		Repository:  repository,
		Title:       title,
	}

	err := withRetry(func() error {
		return c.db.WithContext(ctx).Create(&commit).Error
	}, 3)
	if err != nil {
		return domain.CommitResult{}, fmt.Errorf("failed to record commit: %w", err)
	}

	logging.Logger.Info("Commit pushed", "repository", repository, "hash", commit.Hash, "files", len(files))
	return domain.CommitResult{
		Hash:    commit.Hash,
		Summary: domain.Summarize(files),
		Title:   title,
	}, nil
}

func defaultCommitTitle(files int) string {
	if files == 0 {
		return "Sync workspace"
	}
	return fmt.Sprintf("Update %d files", files)
}

// Pull implements ports.WorkspaceSync
func (c *Catalog) Pull(ctx context.Context, repository, branch string) error {
	err := withRetry(func() error {
		return c.db.WithContext(ctx).Model(&WorkspaceModel{}).
			Where("id = ?", workspaceRowID).
			Update("remote_ahead", false).Error
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to pull %s: %w", branch, err)
	}
	logging.Logger.Info("Pulled latest changes", "repository", repository, "branch", branch)
	return nil
}

// withRetry retries fn while SQLite reports the database as busy or locked
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
