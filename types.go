package hub

const (
	// PrivilegeAssignToGroups lets an org admin place members into groups
	// directly, without an invitation round-trip.
	PrivilegeAssignToGroups = "portal:admin:assignToGroups"

	// RoleOrgAdmin is the portal's administrative role marker.
	RoleOrgAdmin = "org_admin"
)

// User is a portal community member. Username is the unique key; OrgID is
// the user's home organization and CommunityOrgID the paired public-facing
// organization, when one exists.
type User struct {
	Username       string   `json:"username"`
	FullName       string   `json:"fullName,omitempty"`
	Email          string   `json:"email,omitempty"`
	OrgID          string   `json:"orgId,omitempty"`
	CommunityOrgID string   `json:"communityOrgId,omitempty"`
	Privileges     []string `json:"privileges,omitempty"`
	Role           string   `json:"role,omitempty"`
	RoleID         string   `json:"roleId,omitempty"`
}

// HasPrivilege reports whether the user's privilege list contains p.
func (u User) HasPrivilege(p string) bool {
	for _, privilege := range u.Privileges {
		if privilege == p {
			return true
		}
	}
	return false
}

// IsOrgAdmin reports whether the user holds the default administrative
// role. A non-empty RoleID means a custom role overrides the role marker,
// so the user is not treated as an org admin even if Role matches.
func (u User) IsOrgAdmin() bool {
	return u.Role == RoleOrgAdmin && u.RoleID == ""
}

// EmailMessage is the notification payload sent to invited users.
// CopySender includes the requesting user in the recipient list.
type EmailMessage struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	CopySender bool   `json:"-"`
}

// Session bundles a portal URL, an authentication token, and the
// authenticated user's identity. The workflow treats it as opaque
// credentials beyond the User fields.
type Session struct {
	PortalURL string
	Token     string
	User      User
}
