package executor

// Category classifies an operation failure and drives retry eligibility.
// Only repository and system failures are retried.
type Category int

const (
	// CategoryNone means the operation succeeded.
	CategoryNone Category = iota
	// CategoryValidation is bad input. Never retried.
	CategoryValidation
	// CategoryTimeout is a deadline exceeded. Not retried: the attempt
	// already consumed the budget.
	CategoryTimeout
	// CategoryRepository is a failed persistence call. Retried.
	CategoryRepository
	// CategoryBusinessRule is a violated domain invariant. Never retried.
	CategoryBusinessRule
	// CategoryNetwork is reserved for future network-backed sources.
	CategoryNetwork
	// CategoryResourceLocked is reserved for future lock-aware sources.
	CategoryResourceLocked
	// CategoryInsufficientPermissions is reserved for future ACL-aware
	// sources.
	CategoryInsufficientPermissions
	// CategorySystem is an unrecognized failure. Retried like a repository
	// failure, then escalated.
	CategorySystem
)

// String returns the human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryValidation:
		return "validation error"
	case CategoryTimeout:
		return "timeout error"
	case CategoryRepository:
		return "repository error"
	case CategoryBusinessRule:
		return "business rule error"
	case CategoryNetwork:
		return "network error"
	case CategoryResourceLocked:
		return "resource locked"
	case CategoryInsufficientPermissions:
		return "insufficient permissions"
	default:
		return "system error"
	}
}

// Retryable reports whether failures of this category may be retried.
func (c Category) Retryable() bool {
	return c == CategoryRepository || c == CategorySystem
}
