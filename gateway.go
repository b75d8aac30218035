package hub

import "context"

// AddUsersResponse is the wire result of a direct membership grant. The
// portal reports which requested usernames it did NOT add; an empty list
// means every user was added. Errors may be reported independently of the
// notAdded list.
type AddUsersResponse struct {
	NotAdded []string `json:"notAdded"`
	Errors   []string `json:"errors,omitempty"`
}

// InviteResponse is the wire result of a group invitation call.
type InviteResponse struct {
	Success bool `json:"success"`
}

// EmailResponse is the wire result of an org notification call.
type EmailResponse struct {
	Success bool `json:"success"`
}

// MembershipGateway performs the remote group membership operations the
// workflow orchestrates. Implementations must not interpret partial
// failure; they surface the portal's result verbatim.
type MembershipGateway interface {
	AddUsersToGroup(ctx context.Context, groupID string, users []User, s *Session) (*AddUsersResponse, error)
	InviteUsersToGroup(ctx context.Context, groupID string, users []User, s *Session) (*InviteResponse, error)
}

// NotificationGateway sends org notification emails.
//
// Implementations must resolve to a nil response without a network call
// when users is empty, and when isOrgAdmin is false must batch to at most
// one recipient per call (the portal throttles non-admin senders).
type NotificationGateway interface {
	SendOrgEmail(ctx context.Context, users []User, email *EmailMessage, s *Session, isOrgAdmin bool) (*EmailResponse, error)
}
