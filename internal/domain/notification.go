package domain

// Notification is the toast shown after a completed action
type Notification struct {
	Message string
	Visible bool
}

// Alert is a dismissible inline message for a failed collaborator call
type Alert struct {
	Kind    ErrorKind
	Message string
}
