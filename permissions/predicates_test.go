package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ownedRes struct{ owner int }

func (r ownedRes) OwnerMemberID() int { return r.owner }

func TestCanManageFinances(t *testing.T) {
	tests := []struct {
		name     string
		actor    Actor
		expected bool
	}{
		{"treasurer allowed", MemberActor{MemberID: 1, Role: RoleTreasurer}, true},
		{"pastor allowed", MemberActor{MemberID: 2, Role: RolePastor}, true},
		{"admin allowed", MemberActor{MemberID: 3, Role: RoleAdmin}, true},
		{"superuser allowed regardless of role", MemberActor{MemberID: 4, Role: RoleMember, Superuser: true}, true},
		{"plain superuser allowed", PlainUser{UserID: 5, Superuser: true}, true},
		{"member denied", MemberActor{MemberID: 6, Role: RoleMember}, false},
		{"deacon denied", MemberActor{MemberID: 7, Role: RoleDeacon}, false},
		{"plain user denied", PlainUser{UserID: 8}, false},
		{"anonymous denied", Anonymous{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanManageFinances(tt.actor))
		})
	}
}

func TestIsStaff(t *testing.T) {
	assert.True(t, IsStaff(MemberActor{Role: RolePastor}))
	assert.True(t, IsStaff(MemberActor{Role: RoleAdmin}))
	assert.True(t, IsStaff(PlainUser{Superuser: true}))
	assert.False(t, IsStaff(MemberActor{Role: RoleTreasurer}))
	assert.False(t, IsStaff(MemberActor{Role: RoleGroupLeader}))
	assert.False(t, IsStaff(Anonymous{}))
}

func TestRoleOrdering(t *testing.T) {
	assert.True(t, AtLeast(RoleAdmin, RolePastor))
	assert.True(t, AtLeast(RoleTreasurer, RolePastor))
	assert.True(t, AtLeast(RoleDeacon, RoleVolunteer))
	assert.True(t, AtLeast(RoleGroupLeader, RoleDeacon))
	assert.False(t, AtLeast(RoleMember, RoleVolunteer))
	assert.False(t, AtLeast(RoleDeacon, RolePastor))
	assert.Equal(t, -1, Rank(Role("BISHOP")))
	assert.False(t, AtLeast(Role("BISHOP"), RoleMember))
}

func TestCanAccessOwned(t *testing.T) {
	res := ownedRes{owner: 42}

	tests := []struct {
		name     string
		actor    Actor
		expected bool
	}{
		{"owner allowed", MemberActor{MemberID: 42, Role: RoleMember}, true},
		{"other member denied", MemberActor{MemberID: 7, Role: RoleMember}, false},
		{"deacon without ownership denied", MemberActor{MemberID: 7, Role: RoleDeacon}, false},
		{"pastor allowed", MemberActor{MemberID: 7, Role: RolePastor}, true},
		{"superuser allowed", PlainUser{UserID: 9, Superuser: true}, true},
		{"plain user denied", PlainUser{UserID: 42}, false},
		{"anonymous denied", Anonymous{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanAccessOwned(tt.actor, res))
		})
	}
}

func TestIsAuthenticated(t *testing.T) {
	assert.False(t, IsAuthenticated(Anonymous{}))
	assert.True(t, IsAuthenticated(PlainUser{UserID: 1}))
	assert.True(t, IsAuthenticated(MemberActor{MemberID: 1, Role: RoleMember}))
}
