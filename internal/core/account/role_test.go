package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goLibra/internal/core/protocol"
)

func TestRoleSpecifierIds(t *testing.T) {
	// Wire ids; renumbering any of these corrupts serialized accounts.
	tests := []struct {
		role RoleSpecifier
		id   uint64
	}{
		{RoleAssocRoot, 0},
		{RoleTreasuryCompliance, 1},
		{RoleDesignatedDealer, 2},
		{RoleValidator, 3},
		{RoleValidatorOperator, 4},
		{RoleParentVASP, 5},
		{RoleChildVASP, 6},
		{RoleUnhosted, 7},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.id, tt.role.Id())
		})
	}
}

func TestRoleSpecifierStringRoundTrip(t *testing.T) {
	for r := RoleAssocRoot; r <= RoleUnhosted; r++ {
		parsed, err := ParseRoleSpecifier(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
}

func TestParseRoleSpecifier(t *testing.T) {
	tests := []struct {
		in   string
		want RoleSpecifier
	}{
		{"empty", RoleAssocRoot},
		{"assoc_root", RoleAssocRoot},
		{"vasp", RoleParentVASP},
		{"parent_vasp", RoleParentVASP},
		{"child_vasp", RoleChildVASP},
		{"unhosted", RoleUnhosted},
		{"treasury_compliance", RoleTreasuryCompliance},
		{"designated_dealer", RoleDesignatedDealer},
		{"validator", RoleValidator},
		{"validator_operator", RoleValidatorOperator},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRoleSpecifier(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, in := range []string{"", "root", "VASP", "parentvasp", "8"} {
		t.Run("reject "+in, func(t *testing.T) {
			_, err := ParseRoleSpecifier(in)
			assert.ErrorIs(t, err, ErrUnknownRoleSpecifier)
		})
	}
}

func TestAccountRole(t *testing.T) {
	role := NewAccountRole(protocol.AssociationAddress, RoleAssocRoot)
	assert.Equal(t, protocol.AssociationAddress, role.Address())
	assert.Equal(t, RoleAssocRoot, role.Specifier())
}
