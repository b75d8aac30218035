package hub

import (
	"context"
)

// Portal is the subset of the portals/self response the SDK uses.
type Portal struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	URLKey           string            `json:"urlKey,omitempty"`
	User             *User             `json:"user,omitempty"`
	PortalProperties *PortalProperties `json:"portalProperties,omitempty"`
}

type PortalProperties struct {
	Hub *HubProperties `json:"hub,omitempty"`
}

type HubProperties struct {
	Enabled  bool         `json:"enabled"`
	Settings *HubSettings `json:"settings,omitempty"`
}

type HubSettings struct {
	CommunityOrg *CommunityOrg `json:"communityOrg,omitempty"`
}

// CommunityOrg identifies the paired public-facing organization.
type CommunityOrg struct {
	OrgID          string `json:"orgId"`
	PortalHostname string `json:"portalHostname,omitempty"`
}

// CommunityOrgID returns the paired community org id, or an empty string
// when the portal has none configured.
func (p *Portal) CommunityOrgID() string {
	if p.PortalProperties == nil || p.PortalProperties.Hub == nil ||
		p.PortalProperties.Hub.Settings == nil || p.PortalProperties.Hub.Settings.CommunityOrg == nil {
		return ""
	}
	return p.PortalProperties.Hub.Settings.CommunityOrg.OrgID
}

// PortalSelf fetches the portal and user information bound to the client's
// session via GET /portals/self.
func (c *Client) PortalSelf(ctx context.Context) (*Portal, error) {
	var portal Portal
	if err := c.request.Get(ctx, "/portals/self", nil, &portal); err != nil {
		return nil, err
	}
	return &portal, nil
}
