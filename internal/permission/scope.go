package permission

import (
	"sync"
)

// Scope is the navigation position a permission check defaults to when the
// caller does not name a workspace or project explicitly.
type Scope struct {
	WorkspaceSlug string
	ProjectID     string
}

// ScopeResolver is a read-only source of the current navigation scope.
type ScopeResolver interface {
	CurrentScope() Scope
}

// Navigator is the application-owned mutable ScopeResolver. Commands set it
// once from flags/config; the store only ever reads it.
type Navigator struct {
	mu    sync.RWMutex
	scope Scope
}

// NewNavigator creates a Navigator with an empty scope.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// SetScope replaces the current navigation scope.
func (n *Navigator) SetScope(scope Scope) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scope = scope
}

// CurrentScope implements ScopeResolver.
func (n *Navigator) CurrentScope() Scope {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.scope
}

// emptyScope is the fallback resolver when no Navigator is wired in.
type emptyScope struct{}

func (emptyScope) CurrentScope() Scope { return Scope{} }
