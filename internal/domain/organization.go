package domain

// Organization is an account namespace a repository can be created in
type Organization struct {
	AvatarURI   string
	DisplayName string
	ID          string
}

// FindOrganization returns the organization with the given ID, or nil if not found.
func FindOrganization(orgs []Organization, id string) *Organization {
	for i := range orgs {
		if orgs[i].ID == id {
			org := orgs[i]
			return &org
		}
	}
	return nil
}
