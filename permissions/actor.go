package permissions

// Actor is the explicit caller identity passed into every permission check.
// It is a closed sum: Anonymous (no session), PlainUser (authenticated but no
// member profile), or MemberActor (profile with a church role). No predicate
// ever reaches for request-scoped globals.
type Actor interface {
	isActor()
}

// Anonymous is an unauthenticated caller.
type Anonymous struct{}

func (Anonymous) isActor() {}

// PlainUser is an authenticated account with no member profile. Superuser is
// the platform-level flag, independent of any church role.
type PlainUser struct {
	UserID    int
	Superuser bool
}

func (PlainUser) isActor() {}

// MemberActor is an authenticated member profile.
type MemberActor struct {
	MemberID  int
	Role      Role
	Superuser bool
}

func (MemberActor) isActor() {}

// isSuperuser reports whether the actor carries the platform flag.
func isSuperuser(a Actor) bool {
	switch v := a.(type) {
	case PlainUser:
		return v.Superuser
	case MemberActor:
		return v.Superuser
	default:
		return false
	}
}
