package hub_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hub "github.com/esri/hub.go"
	"github.com/esri/hub.go/pkg/constants"
)

type membershipStub struct {
	addResp   *hub.AddUsersResponse
	addErr    error
	inviteErr error

	addCalls    [][]hub.User
	inviteCalls [][]hub.User
	inviteResp  *hub.InviteResponse
}

func (s *membershipStub) AddUsersToGroup(_ context.Context, _ string, users []hub.User, _ *hub.Session) (*hub.AddUsersResponse, error) {
	s.addCalls = append(s.addCalls, users)
	if s.addErr != nil {
		return nil, s.addErr
	}
	if s.addResp != nil {
		return s.addResp, nil
	}
	return &hub.AddUsersResponse{NotAdded: []string{}}, nil
}

func (s *membershipStub) InviteUsersToGroup(_ context.Context, _ string, users []hub.User, _ *hub.Session) (*hub.InviteResponse, error) {
	s.inviteCalls = append(s.inviteCalls, users)
	if s.inviteErr != nil {
		return nil, s.inviteErr
	}
	if s.inviteResp != nil {
		return s.inviteResp, nil
	}
	return &hub.InviteResponse{Success: true}, nil
}

type emailCall struct {
	users      []hub.User
	session    *hub.Session
	isOrgAdmin bool
}

type notificationStub struct {
	resp  *hub.EmailResponse
	err   error
	calls []emailCall
}

func (s *notificationStub) SendOrgEmail(_ context.Context, users []hub.User, _ *hub.EmailMessage, session *hub.Session, isOrgAdmin bool) (*hub.EmailResponse, error) {
	s.calls = append(s.calls, emailCall{users: users, session: session, isOrgAdmin: isOrgAdmin})
	if s.err != nil {
		return nil, s.err
	}
	if len(users) == 0 {
		return nil, nil
	}
	if s.resp != nil {
		return s.resp, nil
	}
	return &hub.EmailResponse{Success: true}, nil
}

func newWorkflow(m *membershipStub, n *notificationStub) *hub.MembershipWorkflow {
	return &hub.MembershipWorkflow{Membership: m, Notifications: n}
}

func adminSession() *hub.Session {
	return &hub.Session{
		PortalURL: "https://org1.example.com/sharing/rest",
		Token:     "token1",
		User:      requesterFixture(),
	}
}

func names(users []hub.User) []string {
	out := []string{}
	for _, u := range users {
		out = append(out, u.Username)
	}
	return out
}

func TestAddUsersToGroupRequiresGroupID(t *testing.T) {
	w := newWorkflow(&membershipStub{}, &notificationStub{})

	_, err := w.AddUsersToGroup(context.Background(), "", candidateFixture(), adminSession())
	require.ErrorIs(t, err, constants.ErrEmptyGroupID)
}

func TestAddUsersToGroupRequiresSession(t *testing.T) {
	w := newWorkflow(&membershipStub{}, &notificationStub{})

	_, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), nil)
	require.ErrorIs(t, err, constants.ErrNoSession)
}

func TestAddUsersToGroupAllAutoAdded(t *testing.T) {
	m := &membershipStub{}
	w := newWorkflow(m, &notificationStub{})

	result, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), adminSession())
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.NotNil(t, result.AutoAdd)
	assert.True(t, result.AutoAdd.Success)
	assert.Empty(t, result.AutoAdd.Errors)

	require.Len(t, m.addCalls, 1)
	assert.Equal(t, []string{"alice", "bob", "dave"}, names(m.addCalls[0]))
	require.Len(t, m.inviteCalls, 1)
	assert.Equal(t, []string{"carla", "erin"}, names(m.inviteCalls[0]))
}

func TestAddUsersToGroupDemotesRefusedUsers(t *testing.T) {
	m := &membershipStub{addResp: &hub.AddUsersResponse{NotAdded: []string{"dave"}}}
	w := newWorkflow(m, &notificationStub{})

	result, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), adminSession())
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.NotNil(t, result.AutoAdd)
	assert.False(t, result.AutoAdd.Success)
	assert.Equal(t, []string{"dave"}, result.AutoAdd.NotAdded)
	require.NotEmpty(t, result.AutoAdd.Errors)
	assert.Contains(t, result.AutoAdd.Errors[0].Error(), "dave")

	// the refused user is invited instead, after the original invite set
	require.Len(t, m.inviteCalls, 1)
	assert.Equal(t, []string{"carla", "erin", "dave"}, names(m.inviteCalls[0]))
}

func TestAddUsersToGroupReportsGatewayErrors(t *testing.T) {
	m := &membershipStub{addResp: &hub.AddUsersResponse{
		NotAdded: []string{},
		Errors:   []string{"group at member capacity"},
	}}
	w := newWorkflow(m, &notificationStub{})

	result, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), adminSession())
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.NotNil(t, result.AutoAdd)
	assert.False(t, result.AutoAdd.Success)
	require.Len(t, result.AutoAdd.Errors, 1)
	assert.EqualError(t, result.AutoAdd.Errors[0], "group at member capacity")

	// nothing was refused, so nobody is demoted
	require.Len(t, m.inviteCalls, 1)
	assert.Equal(t, []string{"carla", "erin"}, names(m.inviteCalls[0]))
}

func TestAddUsersToGroupEmailsInvitedOrgMembers(t *testing.T) {
	// requester without the assign privilege: everyone is invited
	session := adminSession()
	session.User.Privileges = nil
	session.User.Role = hub.RoleOrgAdmin

	m := &membershipStub{}
	n := &notificationStub{}
	w := newWorkflow(m, n)

	email := &hub.EmailMessage{Subject: "Welcome", Body: "You are invited"}
	result, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), session, hub.WithEmail(email))
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, m.inviteCalls, 1)
	assert.Len(t, m.inviteCalls[0], 5)

	require.Len(t, n.calls, 1)
	assert.Equal(t, []string{"alice", "bob"}, names(n.calls[0].users))
	assert.True(t, n.calls[0].isOrgAdmin)
	require.NotNil(t, result.Email)
	assert.True(t, result.Email.Success)
	assert.Nil(t, result.CommunityEmail)
}

func TestAddUsersToGroupSkipsEmailWithoutPayload(t *testing.T) {
	n := &notificationStub{}
	w := newWorkflow(&membershipStub{}, n)

	result, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), adminSession())
	require.NoError(t, err)

	assert.Empty(t, n.calls)
	assert.Nil(t, result.Email)
	assert.Nil(t, result.CommunityEmail)
}

func TestAddUsersToGroupSkipsEmailWhenInviteFails(t *testing.T) {
	m := &membershipStub{inviteResp: &hub.InviteResponse{Success: false}}
	n := &notificationStub{}
	w := newWorkflow(m, n)

	email := &hub.EmailMessage{Subject: "Welcome", Body: "You are invited"}
	community := &hub.Session{Token: "token2", User: hub.User{Username: "cadmin", OrgID: "community1"}}

	result, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), adminSession(),
		hub.WithEmail(email), hub.WithCommunitySession(community))
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Empty(t, n.calls)
	assert.Nil(t, result.Email)
	assert.Nil(t, result.CommunityEmail)
}

func TestAddUsersToGroupCommunityEmail(t *testing.T) {
	session := adminSession()
	session.User.Privileges = nil // everyone invited, including community org users

	m := &membershipStub{}
	n := &notificationStub{}
	w := newWorkflow(m, n)

	email := &hub.EmailMessage{Subject: "Welcome", Body: "You are invited"}
	community := &hub.Session{Token: "token2", User: hub.User{Username: "cadmin", OrgID: "community1", Role: hub.RoleOrgAdmin}}

	result, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), session,
		hub.WithEmail(email), hub.WithCommunitySession(community))
	require.NoError(t, err)

	require.Len(t, n.calls, 2)
	assert.Equal(t, []string{"alice", "bob"}, names(n.calls[0].users))
	assert.Equal(t, []string{"dave"}, names(n.calls[1].users))
	assert.Same(t, community, n.calls[1].session)
	assert.True(t, n.calls[1].isOrgAdmin)

	require.NotNil(t, result.CommunityEmail)
	assert.True(t, result.CommunityEmail.Success)
	assert.True(t, result.Success)
}

func TestAddUsersToGroupSkipsCommunityEmailWithoutSession(t *testing.T) {
	session := adminSession()
	session.User.Privileges = nil

	n := &notificationStub{}
	w := newWorkflow(&membershipStub{}, n)

	email := &hub.EmailMessage{Subject: "Welcome", Body: "You are invited"}
	result, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), session, hub.WithEmail(email))
	require.NoError(t, err)

	require.Len(t, n.calls, 1) // primary email only
	assert.Nil(t, result.CommunityEmail)
}

func TestAddUsersToGroupDemotedUsersNotEmailed(t *testing.T) {
	// bob is refused by auto-add and demoted into the invite set. The
	// email recipient set was computed before the demotion and is not
	// recomputed, so bob must not appear in any notification call.
	m := &membershipStub{addResp: &hub.AddUsersResponse{NotAdded: []string{"bob"}}}
	n := &notificationStub{}
	w := newWorkflow(m, n)

	email := &hub.EmailMessage{Subject: "Welcome", Body: "You are invited"}
	result, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), adminSession(), hub.WithEmail(email))
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, m.inviteCalls, 1)
	assert.Contains(t, names(m.inviteCalls[0]), "bob")

	for _, call := range n.calls {
		assert.NotContains(t, names(call.users), "bob")
	}
}

func TestAddUsersToGroupEmailFailureFailsOverall(t *testing.T) {
	session := adminSession()
	session.User.Privileges = nil

	n := &notificationStub{resp: &hub.EmailResponse{Success: false}}
	w := newWorkflow(&membershipStub{}, n)

	email := &hub.EmailMessage{Subject: "Welcome", Body: "You are invited"}
	result, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), session, hub.WithEmail(email))
	require.NoError(t, err)

	require.NotNil(t, result.Email)
	assert.False(t, result.Email.Success)
	assert.False(t, result.Success)
}

func TestAddUsersToGroupEmptyUsers(t *testing.T) {
	m := &membershipStub{}
	n := &notificationStub{}
	w := newWorkflow(m, n)

	email := &hub.EmailMessage{Subject: "Welcome", Body: "You are invited"}
	result, err := w.AddUsersToGroup(context.Background(), "g1", []hub.User{}, adminSession(), hub.WithEmail(email))
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, m.addCalls, 1)
	assert.Empty(t, m.addCalls[0])
	require.Len(t, m.inviteCalls, 1)
	assert.Empty(t, m.inviteCalls[0])

	// the notification gateway resolves empty recipient lists to no result
	require.Len(t, n.calls, 1)
	assert.Nil(t, result.Email)
}

func TestAddUsersToGroupGatewayFailureAborts(t *testing.T) {
	boom := errors.New("connection reset")
	m := &membershipStub{inviteErr: boom}
	n := &notificationStub{}
	w := newWorkflow(m, n)

	email := &hub.EmailMessage{Subject: "Welcome", Body: "You are invited"}
	result, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), adminSession(), hub.WithEmail(email))

	require.ErrorIs(t, err, boom)
	assert.Nil(t, result)
	assert.Empty(t, n.calls)
}

func TestAddUsersToGroupCopySender(t *testing.T) {
	session := adminSession()
	session.User.Privileges = nil

	n := &notificationStub{}
	w := newWorkflow(&membershipStub{}, n)

	email := &hub.EmailMessage{Subject: "Welcome", Body: "You are invited", CopySender: true}
	_, err := w.AddUsersToGroup(context.Background(), "g1", candidateFixture(), session, hub.WithEmail(email))
	require.NoError(t, err)

	require.Len(t, n.calls, 1)
	assert.Contains(t, names(n.calls[0].users), session.User.Username)
}
