package ports

import "context"

// LoginLimiter throttles authentication attempts per email address.
type LoginLimiter interface {
	// Allow reports whether another attempt is permitted for the email.
	Allow(ctx context.Context, email string) (bool, error)
	// RecordFailure counts a failed attempt against the email's window.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the email's counter after a successful login.
	Reset(ctx context.Context, email string) error
}
