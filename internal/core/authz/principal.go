package authz

// Role names. Roles are reference data created once at bootstrap.
const (
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

// AllRoles returns the closed set of role names
func AllRoles() []string {
	return []string{RoleUser, RoleAdmin, RoleModerator}
}

// Principal is the authenticated identity resolved for a request.
// It is a request-scoped projection of the stored user: the role set is
// re-read from storage on every request, never taken from a token.
type Principal struct {
	ID       uint
	Username string
	Roles    []string
}

// HasRole reports whether the principal holds the given role
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the principal holds at least one of the given roles
func (p *Principal) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if p.HasRole(role) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal holds the ADMIN role
func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}
