package domain

// Referral code constants
const (
	ReferralCodeLength   = 6
	ReferralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// ReferralCodePrefix is accepted in front of a code in deep links (ref_AB12CD)
	ReferralCodePrefix = "ref_"
	// MaxCodeAttempts bounds the uniqueness resolver
	MaxCodeAttempts = 10
)

// Economy constants
const (
	DefaultReferralBonus = 5000
)

// Level curve constants
const (
	// LevelStep is the lifetime coins needed per level
	LevelStep = 10000
	MinLevel  = 1
	MaxLevel  = 100
)

// Field limits
const (
	MaxExternalIDLength = 64
	MaxNameLength       = 256
)
