package hub

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/esri/hub.go/pkg/request"
)

// Invitations expire after a day if not acted on.
const inviteExpirationMinutes = 1440

// RESTMembershipGateway implements MembershipGateway against the portal
// sharing API.
type RESTMembershipGateway struct {
	client *request.Client
}

func NewRESTMembershipGateway(client *request.Client) *RESTMembershipGateway {
	return &RESTMembershipGateway{client: client}
}

// AddUsersToGroup calls POST /community/groups/{id}/addUsers. The portal
// answers with the usernames it did not add; a missing notAdded field is
// normalized to an empty list so callers can rely on it.
func (g *RESTMembershipGateway) AddUsersToGroup(ctx context.Context, groupID string, users []User, s *Session) (*AddUsersResponse, error) {
	form := url.Values{}
	form.Set("users", strings.Join(usernames(users), ","))

	var res AddUsersResponse
	if err := g.clientFor(s).PostForm(ctx, "/community/groups/"+groupID+"/addUsers", form, &res); err != nil {
		return nil, err
	}

	if res.NotAdded == nil {
		res.NotAdded = []string{}
	}
	return &res, nil
}

// InviteUsersToGroup calls POST /community/groups/{id}/invite.
func (g *RESTMembershipGateway) InviteUsersToGroup(ctx context.Context, groupID string, users []User, s *Session) (*InviteResponse, error) {
	form := url.Values{}
	form.Set("users", strings.Join(usernames(users), ","))
	form.Set("role", "group_member")
	form.Set("expiration", strconv.Itoa(inviteExpirationMinutes))

	var res InviteResponse
	if err := g.clientFor(s).PostForm(ctx, "/community/groups/"+groupID+"/invite", form, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func (g *RESTMembershipGateway) clientFor(s *Session) *request.Client {
	if s != nil && s.Token != "" {
		return g.client.WithToken(s.Token)
	}
	return g.client
}

func usernames(users []User) []string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names
}
