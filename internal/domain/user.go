package domain

import "time"

// User represents a registered user and their referral state
type User struct {
	ExternalID   string    `json:"external_id"`
	Username     string    `json:"username,omitempty"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Coins        int64     `json:"coins"`
	TotalCoins   int64     `json:"total_coins"`
	ReferralCode string    `json:"referral_code"`
	ReferredBy   *string   `json:"referred_by,omitempty"`
	Referrals    []string  `json:"referrals"`
	Level        int       `json:"level"`
	CreatedAt    time.Time `json:"created_at"`
	LastActive   time.Time `json:"last_active"`
}

// Profile carries the optional display fields sent on every contact.
// A nil field leaves the stored value untouched.
type Profile struct {
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// Balance is the result of a ledger credit
type Balance struct {
	ExternalID string `json:"external_id"`
	Coins      int64  `json:"coins"`
	TotalCoins int64  `json:"total_coins"`
	Level      int    `json:"level"`
}

// ReferralResult is returned after a successful link
type ReferralResult struct {
	ReferrerID string `json:"referrer_id"`
	ReferredID string `json:"referred_id"`
	Bonus      int64  `json:"bonus"`
}

// Friend is a referred user as shown to their referrer
type Friend struct {
	ExternalID string `json:"external_id"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Coins      int64  `json:"coins"`
	TotalCoins int64  `json:"total_coins"`
	Level      int    `json:"level"`
}

// UserView is the read model served to clients
type UserView struct {
	User
	ReferralLink string   `json:"referral_link"`
	Friends      []Friend `json:"friends"`
}

// ApplyProfile copies the non-nil profile fields onto u.
func (u *User) ApplyProfile(p Profile) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
}
