package hub

// AutoAddCandidates returns the users the requester may place into a group
// directly: members of the requester's own or community organization, and
// only when the requester holds the assign-to-groups privilege. Without
// the privilege no user qualifies. Input order is preserved.
func AutoAddCandidates(users []User, requester User) []User {
	if !requester.HasPrivilege(PrivilegeAssignToGroups) {
		return []User{}
	}

	subset := []User{}
	for _, u := range users {
		if u.OrgID != "" && (u.OrgID == requester.OrgID || u.OrgID == requester.CommunityOrgID) {
			subset = append(subset, u)
		}
	}
	return subset
}

// InviteCandidates returns the users that must be invited instead of
// auto-added: everyone not selected by AutoAddCandidates, matched by
// username.
func InviteCandidates(users []User, requester User) []User {
	autoAdd := map[string]struct{}{}
	for _, u := range AutoAddCandidates(users, requester) {
		autoAdd[u.Username] = struct{}{}
	}

	subset := []User{}
	for _, u := range users {
		if _, ok := autoAdd[u.Username]; !ok {
			subset = append(subset, u)
		}
	}
	return subset
}

// EmailCandidates returns the invited users that share the requester's
// organization, the only ones an org notification can reach. When
// includeSelf is set the requester is appended so they receive a copy.
func EmailCandidates(users []User, requester User, includeSelf bool) []User {
	subset := []User{}
	for _, u := range InviteCandidates(users, requester) {
		if u.OrgID != "" && u.OrgID == requester.OrgID {
			subset = append(subset, u)
		}
	}
	if includeSelf {
		subset = append(subset, requester)
	}
	return subset
}
