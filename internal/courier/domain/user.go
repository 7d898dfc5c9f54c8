package domain

import "time"

// User is the full stored user record. PasswordHash never leaves the
// directory layer; API responses use the Profile and Detail projections.
type User struct {
	Username     string // unique, immutable once registered
	PasswordHash string // argon2id PHC encoded
	FirstName    string
	LastName     string
	Phone        string
	JoinAt       time.Time
	LastLoginAt  *time.Time // nil until first login
}

// Profile is the public projection of a user, used in listings and as the
// counterpart info attached to inbox/outbox entries.
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Detail is the user detail projection, Profile plus timestamps.
type Detail struct {
	Profile

	JoinAt      time.Time  `json:"join_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func (u User) Profile() Profile {
	return Profile{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}

func (u User) Detail() Detail {
	return Detail{
		Profile:     u.Profile(),
		JoinAt:      u.JoinAt,
		LastLoginAt: u.LastLoginAt,
	}
}
