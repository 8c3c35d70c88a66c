package storage

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/renato0307/gitlink/internal/domain"
)

func organizationModelToDomain(m OrganizationModel) domain.Organization {
	return domain.Organization{
		AvatarURI:   m.AvatarURI,
		DisplayName: m.DisplayName,
		ID:          m.ID,
	}
}

func accountModelToDomain(m AccountModel) domain.Account {
	return domain.Account{
		AvatarURI: m.AvatarURI,
		Login:     m.Login,
		Name:      m.Name,
	}
}

func fileChangeModelToDomain(m FileChangeModel) domain.FileChange {
	return domain.FileChange{
		Kind: domain.ChangeKind(m.Kind),
		Path: m.Path,
	}
}

// commitModelToDomain renders the commit time relative to now ("2 minutes ago")
func commitModelToDomain(m CommitModel, now time.Time) domain.RecentCommit {
	hash := m.Hash
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return domain.RecentCommit{
		Hash:    hash,
		Message: m.Title,
		When:    humanize.RelTime(m.CommittedAt, now, "ago", "from now"),
	}
}
