package role

// Role defines the access level of a service account.
type Role int

const (
	Viewer   Role = iota // read-only access to analyses
	Operator             // may trigger runs and apply recommendations
	Admin                // full access including catalog management
)

func (r Role) String() string {
	switch r {
	case Viewer:
		return "viewer"
	case Operator:
		return "operator"
	case Admin:
		return "admin"
	}
	return "unknown"
}
