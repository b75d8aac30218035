package hub

import (
	"context"
	"net/url"
	"strings"

	"github.com/esri/hub.go/pkg/request"
)

// RESTNotificationGateway implements NotificationGateway against the
// portal's createNotification endpoint.
type RESTNotificationGateway struct {
	client *request.Client
}

func NewRESTNotificationGateway(client *request.Client) *RESTNotificationGateway {
	return &RESTNotificationGateway{client: client}
}

// SendOrgEmail calls POST /portals/self/createNotification. An empty
// recipient list resolves to a nil response without touching the network.
// Org admins may address all recipients in one call; the portal rejects
// multi-recipient notifications from anyone else, so non-admin sends go
// out one recipient at a time and the success flags are combined.
func (g *RESTNotificationGateway) SendOrgEmail(ctx context.Context, users []User, email *EmailMessage, s *Session, isOrgAdmin bool) (*EmailResponse, error) {
	if len(users) == 0 {
		return nil, nil
	}

	batches := [][]User{users}
	if !isOrgAdmin {
		batches = make([][]User, 0, len(users))
		for _, u := range users {
			batches = append(batches, []User{u})
		}
	}

	client := g.client
	if s != nil && s.Token != "" {
		client = client.WithToken(s.Token)
	}

	success := true
	for _, batch := range batches {
		form := url.Values{}
		form.Set("users", strings.Join(usernames(batch), ","))
		form.Set("subject", email.Subject)
		form.Set("message", email.Body)
		form.Set("notificationChannelType", "email")

		var res EmailResponse
		if err := client.PostForm(ctx, "/portals/self/createNotification", form, &res); err != nil {
			return nil, err
		}
		if !res.Success {
			success = false
		}
	}

	return &EmailResponse{Success: success}, nil
}
