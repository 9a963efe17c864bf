package permissions

// OwnedResource is implemented by entities with an owning member.
type OwnedResource interface {
	OwnerMemberID() int
}

// UserOwnedResource is implemented by entities with an owning platform user.
type UserOwnedResource interface {
	OwnerUserID() int
}

// IsAuthenticated allows any non-anonymous actor.
func IsAuthenticated(a Actor) bool {
	switch a.(type) {
	case PlainUser, MemberActor:
		return true
	default:
		return false
	}
}

// IsStaff allows pastors, admins and superusers.
func IsStaff(a Actor) bool {
	if isSuperuser(a) {
		return true
	}
	m, ok := a.(MemberActor)
	return ok && StaffRoles[m.Role]
}

// CanManageFinances allows treasurers, pastors, admins and superusers.
func CanManageFinances(a Actor) bool {
	if isSuperuser(a) {
		return true
	}
	m, ok := a.(MemberActor)
	return ok && FinanceRoles[m.Role]
}

// CanManageMembers gates onboarding review decisions, interview scheduling
// and member administration.
func CanManageMembers(a Actor) bool {
	return IsStaff(a)
}

// CanRunReports gates pipeline and giving aggregations.
func CanRunReports(a Actor) bool {
	return IsStaff(a)
}

// CanLeadGroup allows group leaders and up.
func CanLeadGroup(a Actor) bool {
	if isSuperuser(a) {
		return true
	}
	m, ok := a.(MemberActor)
	return ok && AtLeast(m.Role, RoleGroupLeader)
}

// CanAccessOwned allows the owning member, staff, and superusers. An actor
// without a member profile is denied unless superuser.
func CanAccessOwned(a Actor, res OwnedResource) bool {
	if isSuperuser(a) || IsStaff(a) {
		return true
	}
	m, ok := a.(MemberActor)
	return ok && res != nil && m.MemberID == res.OwnerMemberID()
}

// CanAccessUserOwned mirrors CanAccessOwned for user-owned resources.
func CanAccessUserOwned(a Actor, res UserOwnedResource) bool {
	if isSuperuser(a) || IsStaff(a) {
		return true
	}
	switch v := a.(type) {
	case PlainUser:
		return res != nil && v.UserID == res.OwnerUserID()
	case MemberActor:
		return res != nil && v.MemberID == res.OwnerUserID()
	default:
		return false
	}
}

// CanAssistCare allows deacons and up to work help requests and pastoral care.
func CanAssistCare(a Actor) bool {
	if isSuperuser(a) {
		return true
	}
	m, ok := a.(MemberActor)
	return ok && AtLeast(m.Role, RoleDeacon)
}
