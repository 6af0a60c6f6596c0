package auth

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// Status is the employment status. Retired employees are never deleted.
type Status string

const (
	StatusActive  Status = "active"
	StatusRetired Status = "retired"
)

// Principal is the authenticated caller, passed explicitly into every service call.
type Principal struct {
	EmployeeID string
	Role       Role
	Status     Status
}

// CanAccess fails closed: nil principals, retired employees and non-admins
// calling admin operations are all denied.
func CanAccess(p *Principal, required Role) error {
	if p == nil || p.EmployeeID == "" {
		return ErrUnauthenticated
	}
	if p.Status != StatusActive {
		return ErrRetiredEmployee
	}
	switch required {
	case RoleEmployee:
		if !p.Role.IsValid() {
			return ErrAccessDenied
		}
		return nil
	case RoleAdmin:
		if p.Role != RoleAdmin {
			return ErrAccessDenied
		}
		return nil
	default:
		return ErrAccessDenied
	}
}

// CanAccessOwn additionally requires the principal to own the resource unless it is an admin.
func CanAccessOwn(p *Principal, ownerID string) error {
	if err := CanAccess(p, RoleEmployee); err != nil {
		return err
	}
	if p.EmployeeID != ownerID && p.Role != RoleAdmin {
		return ErrAccessDenied
	}
	return nil
}
