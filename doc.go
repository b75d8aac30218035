// The [hub] package is a Go client for the ArcGIS Hub portal sharing API.
//
// # Sessions and clients
//
// All operations run on behalf of a [Session], which bundles the portal
// URL, an authentication token, and the authenticated [User]. Build a
// [Client] with [NewClient], or from a configuration profile with
// [FromProfile] (see [github.com/esri/hub.go/pkg/config] for profile files
// and HUB_* environment variables).
//
// # Group membership
//
// The central operation is [Client.AddUsersToGroup]: candidate users are
// partitioned into an auto-add set (same-org users, when the requester
// holds the assign-to-groups privilege) and an invite set, the portal
// operations run in dependency order, and users the portal refuses to
// auto-add fall back to an invitation. With [WithEmail] the invited
// same-org users are notified afterwards, and with [WithCommunitySession]
// the paired community organization's invitees as well.
//
// Per-user failures never abort the run; they are reported through
// [MembershipResult], whose Success flag is false when any executed stage
// failed. Only a failed portal call itself returns an error.
//
// # Testing
//
// The workflow depends on the [MembershipGateway] and
// [NotificationGateway] interfaces; inject doubles with
// [WithMembershipGateway] and [WithNotificationGateway], or point the
// client at the fake portal in internal/fakehub.
package hub
