package hub

import (
	"context"
	"net/http"

	"github.com/esri/hub.go/internal/codec"
	"github.com/esri/hub.go/pkg/config"
	"github.com/esri/hub.go/pkg/constants"
	"github.com/esri/hub.go/pkg/logger"
	"github.com/esri/hub.go/pkg/request"
)

// Client is the entry point to the SDK. It binds a session to the portal
// transport and wires the REST gateways into the membership workflow.
type Client struct {
	session *Session
	request *request.Client
	logger  logger.Logger

	httpClient    *http.Client
	membership    MembershipGateway
	notifications NotificationGateway
	workflow      *MembershipWorkflow
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithLogger routes SDK debug logging to l.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithHTTPClient replaces the default HTTP client, e.g. to tune timeouts
// or inject a test transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithMembershipGateway replaces the REST membership gateway.
func WithMembershipGateway(g MembershipGateway) Option {
	return func(c *Client) {
		c.membership = g
	}
}

// WithNotificationGateway replaces the REST notification gateway.
func WithNotificationGateway(g NotificationGateway) Option {
	return func(c *Client) {
		c.notifications = g
	}
}

// NewClient builds a Client for the given session.
func NewClient(session *Session, opts ...Option) (*Client, error) {
	if session == nil {
		return nil, constants.ErrNoSession
	}
	if session.PortalURL == "" {
		return nil, constants.ErrNoBaseURL
	}

	c := &Client{session: session}
	for _, opt := range opts {
		opt(c)
	}

	c.request = request.NewClient(request.NewClientParams{
		BaseURL:     session.PortalURL,
		Token:       session.Token,
		Unmarshaler: codec.JSON{},
		Logger:      c.logger,
		HTTPClient:  c.httpClient,
	})

	if c.membership == nil {
		c.membership = NewRESTMembershipGateway(c.request)
	}
	if c.notifications == nil {
		c.notifications = NewRESTNotificationGateway(c.request)
	}

	c.workflow = &MembershipWorkflow{
		Membership:    c.membership,
		Notifications: c.notifications,
		Logger:        c.logger,
	}

	return c, nil
}

// FromProfile builds a Client from a resolved configuration profile.
// The session user is left empty; call PortalSelf to populate it.
func FromProfile(p config.Profile, opts ...Option) (*Client, error) {
	c, err := NewClient(&Session{PortalURL: p.URL, Token: p.Token}, opts...)
	if err != nil {
		return nil, err
	}
	if p.Timeout > 0 {
		c.request.SetTimeout(p.Timeout)
	}
	return c, nil
}

// Session returns the session the client was built with.
func (c *Client) Session() *Session {
	return c.session
}

// AddUsersToGroup runs the membership workflow on behalf of the client's
// session. See MembershipWorkflow.AddUsersToGroup.
func (c *Client) AddUsersToGroup(ctx context.Context, groupID string, users []User, opts ...MembershipOption) (*MembershipResult, error) {
	return c.workflow.AddUsersToGroup(ctx, groupID, users, c.session, opts...)
}
