package authz

import "trip-planner/internal/core/domain"

// RouteClass is the static access requirement attached to an operation.
type RouteClass struct {
	public bool
	roles  []string
}

// Public passes with or without a principal.
func Public() RouteClass {
	return RouteClass{public: true}
}

// Authenticated requires a principal, any role set.
func Authenticated() RouteClass {
	return RouteClass{}
}

// AnyRole requires a principal holding at least one of the given roles.
func AnyRole(roles ...string) RouteClass {
	return RouteClass{roles: roles}
}

// AdminOnly requires a principal holding the ADMIN role.
func AdminOnly() RouteClass {
	return AnyRole(RoleAdmin)
}

// Permit decides the static route-class layer. A nil principal means the
// request is unauthenticated. This layer runs before any resource lookup,
// so an unauthorized caller never learns whether a resource exists.
func Permit(p *Principal, class RouteClass) error {
	if class.public {
		return nil
	}
	if p == nil {
		return domain.ErrUnauthorized
	}
	if len(class.roles) == 0 {
		return nil
	}
	if !p.HasAnyRole(class.roles...) {
		return domain.ErrAccessDenied
	}
	return nil
}

// TripAccess is the ownership fact for a trip: exactly one owner plus zero
// or more collaborators. It is supplied fresh by the persistence layer and
// never cached across requests.
type TripAccess struct {
	OwnerID         uint
	CollaboratorIDs []uint
}

// CanAccessTrip decides the dynamic ownership layer: admin, owner, or a
// listed collaborator may act on the trip; everyone else is denied.
func CanAccessTrip(p *Principal, access TripAccess) error {
	if p == nil {
		return domain.ErrUnauthorized
	}
	if p.IsAdmin() || p.ID == access.OwnerID {
		return nil
	}
	for _, id := range access.CollaboratorIDs {
		if p.ID == id {
			return nil
		}
	}
	return domain.ErrAccessDenied
}
