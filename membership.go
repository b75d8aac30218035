package hub

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/esri/hub.go/pkg/constants"
	"github.com/esri/hub.go/pkg/logger"
)

// AutoAddResult is the auto-add stage's outcome. NotAdded lists the
// usernames the portal refused to add; those users are demoted into the
// invite set before the invite stage runs.
type AutoAddResult struct {
	Success  bool
	NotAdded []string
	Errors   []error
}

// MembershipResult is the consolidated outcome of AddUsersToGroup.
// A nil stage field means that stage did not execute; skipped stages never
// affect the overall Success verdict.
type MembershipResult struct {
	Success        bool
	AutoAdd        *AutoAddResult
	Invite         *InviteResponse
	Email          *EmailResponse
	CommunityEmail *EmailResponse
}

// MembershipWorkflow classifies candidate users into auto-add, invite and
// email treatment sets and runs the corresponding portal operations in
// dependency order. Partial failures are recorded in the result and do not
// stop later stages; a failed gateway call aborts the remaining pipeline.
type MembershipWorkflow struct {
	Membership    MembershipGateway
	Notifications NotificationGateway
	Logger        logger.Logger
}

// MembershipOption configures a single AddUsersToGroup invocation.
type MembershipOption func(*membershipContext)

// WithEmail supplies the notification payload. Without it the email stages
// are skipped.
func WithEmail(email *EmailMessage) MembershipOption {
	return func(m *membershipContext) {
		m.email = email
	}
}

// WithCommunitySession supplies credentials for the paired community
// organization so its invited members can be notified too.
func WithCommunitySession(s *Session) MembershipOption {
	return func(m *membershipContext) {
		m.community = s
	}
}

// membershipContext is threaded by value through the pipeline stages.
// Each stage returns an augmented copy; nothing else holds a reference.
type membershipContext struct {
	groupID   string
	requester User

	autoAddUsers []User
	inviteUsers  []User
	emailUsers   []User

	email     *EmailMessage
	primary   *Session
	community *Session

	autoAdd        *AutoAddResult
	invite         *InviteResponse
	primaryEmail   *EmailResponse
	communityEmail *EmailResponse
}

// AddUsersToGroup adds users to the group identified by groupID on behalf
// of the session user. Users in the requester's own or community org are
// added directly when the requester holds the assign-to-groups privilege;
// everyone else is invited. Users the portal refuses to auto-add fall back
// to an invitation. When an email payload is supplied and the invitations
// went out, same-org users are notified, and community org users as well
// if community credentials were supplied.
//
// The returned error is non-nil only when a portal call itself failed;
// per-user failures are reported through the result.
func (w *MembershipWorkflow) AddUsersToGroup(ctx context.Context, groupID string, users []User, primary *Session, opts ...MembershipOption) (*MembershipResult, error) {
	if groupID == "" {
		return nil, constants.ErrEmptyGroupID
	}
	if primary == nil {
		return nil, constants.ErrNoSession
	}

	m := membershipContext{
		groupID:   groupID,
		requester: primary.User,
		primary:   primary,
	}
	for _, opt := range opts {
		opt(&m)
	}

	copySender := m.email != nil && m.email.CopySender
	m.autoAddUsers = AutoAddCandidates(users, m.requester)
	m.inviteUsers = InviteCandidates(users, m.requester)
	// The email set is fixed before any stage runs; users demoted from
	// auto-add later are invited but not emailed.
	m.emailUsers = EmailCandidates(users, m.requester, copySender)

	stages := []func(context.Context, membershipContext) (membershipContext, error){
		w.runAutoAdd,
		w.runInvite,
		w.runPrimaryEmail,
		w.runCommunityEmail,
	}

	var err error
	for _, stage := range stages {
		if m, err = stage(ctx, m); err != nil {
			return nil, err
		}
	}

	return consolidate(m), nil
}

// runAutoAdd grants direct membership to the auto-add set. Users the
// portal reports as not added are moved into the invite set so the next
// stage picks them up.
func (w *MembershipWorkflow) runAutoAdd(ctx context.Context, m membershipContext) (membershipContext, error) {
	w.debug("auto add stage", "group", m.groupID, "users", len(m.autoAddUsers))

	res, err := w.Membership.AddUsersToGroup(ctx, m.groupID, m.autoAddUsers, m.primary)
	if err != nil {
		return m, fmt.Errorf("auto add users: %w", err)
	}

	result := &AutoAddResult{Success: true}
	if len(res.NotAdded) > 0 || len(res.Errors) > 0 {
		result.Success = false
		result.NotAdded = res.NotAdded
		for _, msg := range res.Errors {
			result.Errors = append(result.Errors, errors.New(msg))
		}
	}

	if len(res.NotAdded) > 0 {
		result.Errors = append(result.Errors,
			fmt.Errorf("users not auto-added: %s", strings.Join(res.NotAdded, ", ")))

		notAdded := map[string]struct{}{}
		for _, username := range res.NotAdded {
			notAdded[username] = struct{}{}
		}
		for _, u := range m.autoAddUsers {
			if _, ok := notAdded[u.Username]; ok {
				m.inviteUsers = append(m.inviteUsers, u)
			}
		}
		w.debug("demoted users to invite", "group", m.groupID, "count", len(res.NotAdded))
	}

	m.autoAdd = result
	return m, nil
}

// runInvite invites the invite set, including any users demoted by the
// auto-add stage. The portal's result is stored verbatim.
func (w *MembershipWorkflow) runInvite(ctx context.Context, m membershipContext) (membershipContext, error) {
	w.debug("invite stage", "group", m.groupID, "users", len(m.inviteUsers))

	res, err := w.Membership.InviteUsersToGroup(ctx, m.groupID, m.inviteUsers, m.primary)
	if err != nil {
		return m, fmt.Errorf("invite users: %w", err)
	}

	m.invite = res
	return m, nil
}

// runPrimaryEmail notifies invited users in the requester's org. The stage
// only runs when a payload was supplied and the invitations succeeded.
func (w *MembershipWorkflow) runPrimaryEmail(ctx context.Context, m membershipContext) (membershipContext, error) {
	if m.email == nil || m.invite == nil || !m.invite.Success {
		return m, nil
	}

	w.debug("email stage", "group", m.groupID, "users", len(m.emailUsers))

	res, err := w.Notifications.SendOrgEmail(ctx, m.emailUsers, m.email, m.primary, m.requester.IsOrgAdmin())
	if err != nil {
		return m, fmt.Errorf("send org email: %w", err)
	}

	m.primaryEmail = res
	return m, nil
}

// runCommunityEmail notifies invited users belonging to the community org,
// using the community credentials. Gated like the primary email stage plus
// the presence of a community session.
func (w *MembershipWorkflow) runCommunityEmail(ctx context.Context, m membershipContext) (membershipContext, error) {
	if m.email == nil || m.community == nil || m.invite == nil || !m.invite.Success {
		return m, nil
	}

	recipients := []User{}
	for _, u := range m.inviteUsers {
		if u.OrgID != "" && u.OrgID == m.community.User.OrgID {
			recipients = append(recipients, u)
		}
	}

	w.debug("community email stage", "group", m.groupID, "users", len(recipients))

	res, err := w.Notifications.SendOrgEmail(ctx, recipients, m.email, m.community, m.community.User.IsOrgAdmin())
	if err != nil {
		return m, fmt.Errorf("send community org email: %w", err)
	}

	m.communityEmail = res
	return m, nil
}

// consolidate folds the stage results into the final verdict: success
// unless an executed stage reported failure.
func consolidate(m membershipContext) *MembershipResult {
	result := &MembershipResult{
		Success:        true,
		AutoAdd:        m.autoAdd,
		Invite:         m.invite,
		Email:          m.primaryEmail,
		CommunityEmail: m.communityEmail,
	}

	if m.autoAdd != nil && !m.autoAdd.Success {
		result.Success = false
	}
	if m.invite != nil && !m.invite.Success {
		result.Success = false
	}
	if m.primaryEmail != nil && !m.primaryEmail.Success {
		result.Success = false
	}
	if m.communityEmail != nil && !m.communityEmail.Success {
		result.Success = false
	}

	return result
}

func (w *MembershipWorkflow) debug(msg string, args ...any) {
	if w.Logger != nil {
		w.Logger.Debug(msg, args...)
	}
}
