// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

/*
Package auth provides accounts, sessions, and token utilities.

# Accounts

Accounts are stored as one user collection. Passwords are bcrypt hashes:

	accounts := auth.NewAccounts(store, lock.NewLocal())
	user, err := accounts.Register(ctx, "alice", "secret", models.RoleUser)
	user, err = accounts.Authenticate(ctx, "alice", "secret")

Usernames are 2-50 characters and unique. Register returns ErrUsernameTaken
for an existing name. Authenticate returns ErrInvalidCredentials for an
unknown user or a wrong password, without saying which.

Provision is the operator variant used by the create-user command: with
overwrite set it resets the password and role of an existing account.

# Sessions

Session tokens are random 24-byte (192-bit) secrets. The cookie value is the
token followed by its HMAC-SHA256 signature:

	value, session, err := sessions.Create(user)
	session, err = sessions.Lookup(value)
	sessions.Destroy(value)

Sessions live in memory for 24 hours. Restarting the server logs everyone out.

# ID Generation

User IDs are UUIDv7 strings from NewUserID. GenerateID returns random hex IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Failed logins are logged with a salted IP hash instead of the address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
