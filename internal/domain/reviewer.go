package domain

// Role is the closed set of roles issued by the identity provider.
// Anything outside this set carries no review capability.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleDeptLead Role = "dept_lead"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleEmployee, RoleDeptLead, RoleManager, RoleAdmin:
		return Role(s)
	default:
		return RoleEmployee
	}
}

// Capabilities is the review capability set resolved once per role,
// replacing scattered role string comparisons.
type Capabilities struct {
	ApproveOwn        bool
	ApproveDepartment bool
	ApproveAny        bool
	ApproveReports    bool
}

func (r Role) Capabilities() Capabilities {
	switch r {
	case RoleAdmin:
		return Capabilities{ApproveOwn: true, ApproveDepartment: true, ApproveAny: true, ApproveReports: true}
	case RoleManager:
		return Capabilities{ApproveReports: true}
	case RoleDeptLead:
		return Capabilities{ApproveDepartment: true}
	default:
		return Capabilities{}
	}
}

// Reviewer is the authenticated identity attached to each call by the
// auth middleware. Token issuance itself is out of scope.
type Reviewer struct {
	ID           string
	Role         Role
	DepartmentID string
}
