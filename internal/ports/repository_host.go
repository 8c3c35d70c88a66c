package ports

import (
	"context"

	"github.com/renato0307/gitlink/internal/domain"
)

// OrganizationDirectory lists the namespaces the signed-in account can create repositories in
type OrganizationDirectory interface {
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
}

// RepositoryHost creates repositories on the hosted service.
// Failures are *domain.RemoteError of kind NameConflict or PermissionDenied.
type RepositoryHost interface {
	CreateRepository(ctx context.Context, orgID, name string) (domain.ConnectedRepository, error)
}
