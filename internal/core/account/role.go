package account

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goLibra/internal/core/types"
)

// ErrUnknownRoleSpecifier is returned when a role string cannot be
// parsed.
var ErrUnknownRoleSpecifier = errors.New("unknown account role specifier")

// RoleSpecifier identifies an account's functional category. The
// numeric ids appear verbatim in the serialized account resource and
// are part of the wire contract; never renumber them.
type RoleSpecifier uint64

const (
	RoleAssocRoot          RoleSpecifier = 0
	RoleTreasuryCompliance RoleSpecifier = 1
	RoleDesignatedDealer   RoleSpecifier = 2
	RoleValidator          RoleSpecifier = 3
	RoleValidatorOperator  RoleSpecifier = 4
	RoleParentVASP         RoleSpecifier = 5
	RoleChildVASP          RoleSpecifier = 6
	RoleUnhosted           RoleSpecifier = 7
)

// Id returns the stable wire id of the role.
func (r RoleSpecifier) Id() uint64 {
	return uint64(r)
}

// String returns the canonical name of the role. The output parses
// back through ParseRoleSpecifier.
func (r RoleSpecifier) String() string {
	switch r {
	case RoleAssocRoot:
		return "assoc_root"
	case RoleTreasuryCompliance:
		return "treasury_compliance"
	case RoleDesignatedDealer:
		return "designated_dealer"
	case RoleValidator:
		return "validator"
	case RoleValidatorOperator:
		return "validator_operator"
	case RoleParentVASP:
		return "parent_vasp"
	case RoleChildVASP:
		return "child_vasp"
	case RoleUnhosted:
		return "unhosted"
	default:
		return fmt.Sprintf("RoleSpecifier(%d)", uint64(r))
	}
}

// ParseRoleSpecifier resolves a role name. Beside the canonical names
// it accepts the short forms used by fixture profiles: "empty" for the
// association root and "vasp" for a parent VASP.
func ParseRoleSpecifier(s string) (RoleSpecifier, error) {
	switch s {
	case "empty", "assoc_root":
		return RoleAssocRoot, nil
	case "treasury_compliance":
		return RoleTreasuryCompliance, nil
	case "designated_dealer":
		return RoleDesignatedDealer, nil
	case "validator":
		return RoleValidator, nil
	case "validator_operator":
		return RoleValidatorOperator, nil
	case "vasp", "parent_vasp":
		return RoleParentVASP, nil
	case "child_vasp":
		return RoleChildVASP, nil
	case "unhosted":
		return RoleUnhosted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRoleSpecifier, s)
	}
}

// AccountRole ties a role specifier to the account that holds it. Only
// the numeric id reaches the serialized resource; the address is kept
// so fixtures can assert role ownership.
type AccountRole struct {
	address   types.AccountAddress
	specifier RoleSpecifier
}

// NewAccountRole builds a role record for the given account.
func NewAccountRole(addr types.AccountAddress, specifier RoleSpecifier) AccountRole {
	return AccountRole{address: addr, specifier: specifier}
}

// Address returns the account the role belongs to.
func (r AccountRole) Address() types.AccountAddress {
	return r.address
}

// Specifier returns the role specifier.
func (r AccountRole) Specifier() RoleSpecifier {
	return r.specifier
}
