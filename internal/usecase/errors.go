package usecase

import crerr "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrUnauthorized          = crerr.New("unauthorized")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
	// ErrTransientFetch marks a failed read from the scoreboard backend. The caller keeps its
	// last good data and tries again on the next cycle.
	ErrTransientFetch = crerr.New("transient fetch failure")
)

// MarkTransient tags err as a transient fetch failure while keeping its chain intact.
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	return crerr.Mark(err, ErrTransientFetch)
}

func IsTransient(err error) bool {
	return crerr.Is(err, ErrTransientFetch)
}
