package store

import (
	"fmt"
	"strings"

	"github.com/mintyhq/minty-api/internal/domain"
)

// Scope selects which records a query can see.
type Scope int

const (
	// ScopeActive sees only records that are not soft-deleted. It is the
	// default for every query.
	ScopeActive Scope = iota
	// ScopeAll sees active and soft-deleted records.
	ScopeAll
	// ScopeDeleted sees only soft-deleted records.
	ScopeDeleted
)

func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeDeleted:
		return "deleted"
	default:
		return "active"
	}
}

// ParseScope maps a caller-supplied token to a scope. The empty token is
// ScopeActive.
func ParseScope(token string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "active":
		return ScopeActive, nil
	case "all":
		return ScopeAll, nil
	case "deleted":
		return ScopeDeleted, nil
	default:
		return ScopeActive, domain.NewValidationError("scope",
			fmt.Sprintf("%q is not a valid choice", token), nil)
	}
}
