package domain

const (
	RoleAdmin = "admin"

	// AuthorityAll is the wildcard granted when the data API supplies no
	// granular permission set. Display-level only: every proxied call is
	// still authorized upstream.
	AuthorityAll = "*"
)

// Session is the operator's login state: an opaque bearer token issued by
// the data API plus the tier it was cached in. Owned exclusively by the
// credential store.
type Session struct {
	Token    string `json:"token"`
	Remember bool   `json:"remember"`
}

// Identity describes the logged-in operator as resolved from the user-info
// endpoint, cached alongside the session and invalidated with it.
type Identity struct {
	DisplayName string   `json:"display_name"`
	UserID      int64    `json:"user_id"`
	TenantID    int64    `json:"tenant_id"`
	Email       string   `json:"email,omitempty"`
	Roles       []string `json:"roles"`
	Authorities []string `json:"authorities"`

	// HomePath is an optional server-suggested landing page.
	HomePath string `json:"home_path,omitempty"`
}

// PermissiveIdentity is the fallback used when the user-info fetch fails
// during materialization: navigation proceeds with a wildcard permission
// set rather than locking the operator out.
func PermissiveIdentity() *Identity {
	return &Identity{
		DisplayName: "Admin",
		Roles:       []string{RoleAdmin},
		Authorities: []string{AuthorityAll},
	}
}

// Normalize fills in the wildcard defaults for identities the data API
// returned without granular permissions.
func (id *Identity) Normalize() {
	if len(id.Roles) == 0 {
		id.Roles = []string{RoleAdmin}
	}
	if len(id.Authorities) == 0 {
		id.Authorities = []string{AuthorityAll}
	}
	if id.DisplayName == "" {
		if id.Email != "" {
			id.DisplayName = id.Email
		} else {
			id.DisplayName = "Admin"
		}
	}
}
