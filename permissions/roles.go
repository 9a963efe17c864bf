package permissions

// Role is the closed set of church roles a member profile can hold.
type Role string

const (
	RoleMember      Role = "MEMBER"
	RoleVolunteer   Role = "VOLUNTEER"
	RoleGroupLeader Role = "GROUP_LEADER"
	RoleDeacon      Role = "DEACON"
	RolePastor      Role = "PASTOR"
	RoleTreasurer   Role = "TREASURER"
	RoleAdmin       Role = "ADMIN"
)

// roleRanks orders roles by increasing privilege. Volunteer, group leader and
// deacon share a tier, as do pastor and treasurer.
var roleRanks = map[Role]int{
	RoleMember:      0,
	RoleVolunteer:   1,
	RoleGroupLeader: 1,
	RoleDeacon:      1,
	RolePastor:      2,
	RoleTreasurer:   2,
	RoleAdmin:       3,
}

// StaffRoles have elevated access across nearly all resources.
var StaffRoles = map[Role]bool{
	RolePastor: true,
	RoleAdmin:  true,
}

// FinanceRoles are authorized for monetary operations.
var FinanceRoles = map[Role]bool{
	RoleTreasurer: true,
	RolePastor:    true,
	RoleAdmin:     true,
}

// IsValidRole reports whether r is one of the enumerated roles.
func IsValidRole(r Role) bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the privilege tier of r, or -1 for an unknown role.
func Rank(r Role) int {
	rank, ok := roleRanks[r]
	if !ok {
		return -1
	}
	return rank
}

// AtLeast reports whether r holds at least the privilege tier of min.
func AtLeast(r, min Role) bool {
	return Rank(r) >= Rank(min) && Rank(r) >= 0
}
