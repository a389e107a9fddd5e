package domain

// User is an account record as stored. The password at rest is always a
// salted Argon2id hash, never plaintext.
type User struct {
	Email        Email
	PasswordHash string
	Requires2FA  bool
}
