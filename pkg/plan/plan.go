package plan

import "time"

type Tier string

const (
	TierFree          Tier = "free"
	TierGold          Tier = "gold"
	TierDiamond       Tier = "diamond"
	TierDiamondAnnual Tier = "diamond_annual"
)

// Capabilities is the fixed feature record a tier maps to. The table is
// consulted before gated writes and before including premium-only
// content in a response.
type Capabilities struct {
	CanMessage           bool
	CanCreatePoll        bool
	CanCreateEvent       bool
	CanCreateCommunity   bool
	CanSeePremiumContent bool
	MaxCommunities       int
	MaxMonthlyEvents     int
	MaxUploadSizeMB      int
	MaxVideoSizeMB       int
}

var capabilityTable = map[Tier]Capabilities{
	TierFree: {
		CanMessage:           false,
		CanCreatePoll:        false,
		CanCreateEvent:       false,
		CanCreateCommunity:   false,
		CanSeePremiumContent: false,
		MaxCommunities:       0,
		MaxMonthlyEvents:     0,
		MaxUploadSizeMB:      10,
		MaxVideoSizeMB:       0,
	},
	TierGold: {
		CanMessage:           true,
		CanCreatePoll:        true,
		CanCreateEvent:       true,
		CanCreateCommunity:   true,
		CanSeePremiumContent: true,
		MaxCommunities:       1,
		MaxMonthlyEvents:     2,
		MaxUploadSizeMB:      50,
		MaxVideoSizeMB:       100,
	},
	TierDiamond: {
		CanMessage:           true,
		CanCreatePoll:        true,
		CanCreateEvent:       true,
		CanCreateCommunity:   true,
		CanSeePremiumContent: true,
		MaxCommunities:       5,
		MaxMonthlyEvents:     10,
		MaxUploadSizeMB:      200,
		MaxVideoSizeMB:       500,
	},
}

func init() {
	// The annual tier buys duration, not extra features.
	capabilityTable[TierDiamondAnnual] = capabilityTable[TierDiamond]
}

// ForTier returns the capability record for a tier. Unknown tiers fall
// back to free.
func ForTier(tier Tier) Capabilities {
	if caps, ok := capabilityTable[tier]; ok {
		return caps
	}
	return capabilityTable[TierFree]
}

// Resolve returns the effective tier for a stored tier and expiry. A
// paid tier whose expiry has passed degrades to free at lookup time;
// there is no background sweep.
func Resolve(stored Tier, expiresAt *time.Time, now time.Time) Tier {
	if stored == TierFree || stored == "" {
		return TierFree
	}
	if expiresAt != nil && expiresAt.Before(now) {
		return TierFree
	}
	return stored
}

// IsPremium reports whether the tier is a paid one.
func IsPremium(tier Tier) bool {
	return tier == TierGold || tier == TierDiamond || tier == TierDiamondAnnual
}

// MonthlyPriceCents is the checkout price table, in cents (BRL).
var MonthlyPriceCents = map[Tier]int64{
	TierGold:          2990,
	TierDiamond:       4590,
	TierDiamondAnnual: 45900,
}

// Duration returns how long a successful payment extends the
// subscription.
func Duration(tier Tier) time.Duration {
	if tier == TierDiamondAnnual {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

// Valid reports whether the tier is one of the known plan identifiers.
func Valid(tier Tier) bool {
	switch tier {
	case TierFree, TierGold, TierDiamond, TierDiamondAnnual:
		return true
	}
	return false
}
