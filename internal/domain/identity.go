package domain

type Role string

const (
	RoleGlobalAdmin Role = "global-admin"
	RoleStoreScoped Role = "store-scoped"
)

// Identity is supplied by the external session provider and treated as a
// read-only input. StoreID is meaningful only for store-scoped roles.
type Identity struct {
	Role    Role
	StoreID string
}

// CanSee applies the scope rule: global admins see everything; store-scoped
// callers see only orders assigned to their store. Orders with no store
// assignment are invisible to store-scoped callers.
func (id Identity) CanSee(o *Order) bool {
	if id.Role == RoleGlobalAdmin {
		return true
	}
	return o.StoreID != nil && *o.StoreID == id.StoreID
}
