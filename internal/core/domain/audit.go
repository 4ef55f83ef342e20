package domain

import "time"

// Audit actions recorded by the services.
const (
	AuditUserRegistered = "user.registered"
	AuditUserLoggedIn   = "user.logged_in"
	AuditClientCreated  = "client.created"
	AuditClientUpdated  = "client.updated"
	AuditClientDeleted  = "client.deleted"
)

// AuditEntry is an append-only record of a state-changing or security
// relevant operation, keyed by the acting user's email.
type AuditEntry struct {
	Actor    string
	Action   string
	Entity   string
	EntityID string
	At       time.Time
}
