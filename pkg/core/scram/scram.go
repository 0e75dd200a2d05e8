// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the expected interface for Salted Challenge
// Response Authentication Mechanism (SCRAM) hashing. For the
// corresponding implementation, check the adapter layer.
//
// Only hash string generation is needed here: when the `dmweb db
// init` command provisions the unprivileged service role, it must set
// that role's password without embedding the plaintext in the ALTER
// ROLE statement (which could end up in the DBMS logs). Computing the
// SCRAM-SHA-256 hash locally and sending the hash string instead
// avoids that. The challenge/response sides of the protocol are
// handled by the PostgreSQL server and its driver, so no conversation
// interfaces are required in this layer.
package scram

// Hasher represents the expectations from a SCRAM hasher
// implementation which for a specific underlying hash function (e.g.,
// SHA1 or SHA256) computes the storedKey and serverKey values
// whenever its Hash method is called with the relevant pass, salt,
// and iters arguments. Note that although username and authorization
// identifier are required in a SCRAM protocol, they do not affect the
// storedKey and serverKey and so are not asked by this interface.
type Hasher interface {
	// Hash computes a hash string following the standard scram hash
	// format, so it can be stored and used later for authentication.
	//
	// The pass argument must be non-empty. The given password will be
	// normalized according to the SASLprep profile (defined by RFC
	// 4013) of the stringprep algorithm and any failure in that
	// normalization returns an error.
	//
	// The salt must contain a base64 encoding of the desired salt
	// bytes, otherwise, if an empty value is passed, a random salt
	// will be generated and used instead. The iters must be at least
	// equal to 4096; RFC 7677 recommends 15000 or more.
	//
	// In absence of errors, a hashed string will be returned which
	// conforms to the following format.
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	//
	// This string (consisting only of ASCII printable letters) can be
	// safely passed to an ALTER or CREATE ROLE query as accepted by
	// the PostgreSQL DBMS.
	Hash(pass, salt string, iters int) (string, error)
}
