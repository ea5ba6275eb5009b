package access

import "strings"

// Tier is the access level the platform grants an identity on an experience.
type Tier string

const (
	TierAdmin    Tier = "admin"
	TierCustomer Tier = "customer"
	TierNoAccess Tier = "no_access"
)

// ParseTier maps a platform access level onto a Tier; unknown values deny access.
func ParseTier(raw string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(raw))) {
	case TierAdmin:
		return TierAdmin
	case TierCustomer:
		return TierCustomer
	default:
		return TierNoAccess
	}
}

func (t Tier) IsAdmin() bool { return t == TierAdmin }

// Identity is a verified caller.
type Identity struct {
	UserID string `json:"userId"`
}

func (i Identity) IsZero() bool { return strings.TrimSpace(i.UserID) == "" }
