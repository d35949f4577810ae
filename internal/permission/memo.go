package permission

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"driftboard-client/internal/domain"
)

// memoSize bounds the lookup cache. Entries for superseded versions are
// never consulted again and age out under LRU pressure.
const memoSize = 1024

type lookupKind uint8

const (
	kindWorkspaceInfo lookupKind = iota + 1
	kindProjectRole
)

const (
	lookupWorkspaceInfo = "workspace_info"
	lookupProjectRole   = "project_role"
)

// memoKey is the exact argument tuple of a pure lookup plus the store
// version at evaluation time. Any write bumps the version, so a stale entry
// can never satisfy a later lookup.
type memoKey struct {
	version       uint64
	kind          lookupKind
	workspaceSlug string
	projectID     string
}

// memoValue caches one lookup result, including negative results:
// known=false records "no role at this scope" as distinct from unevaluated.
type memoValue struct {
	membership *domain.WorkspaceMembership
	role       domain.Role
	known      bool
}

// membershipCopy hands each caller its own record. The cached pointer is
// shared across hits; leaking it would let one caller's mutation corrupt
// every later lookup.
func (v memoValue) membershipCopy() *domain.WorkspaceMembership {
	if v.membership == nil {
		return nil
	}
	copied := *v.membership
	return &copied
}

func newMemo() *lru.Cache[memoKey, memoValue] {
	// lru.New only fails on a non-positive size
	cache, err := lru.New[memoKey, memoValue](memoSize)
	if err != nil {
		panic(err)
	}
	return cache
}
