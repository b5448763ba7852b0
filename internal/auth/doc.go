// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

// Package auth provides JWT-based authentication for the API.
//
// Tokens are HS256-signed and carry the user's ID and username. They are
// accepted either as a Bearer token in the Authorization header or in a
// "token" cookie, which lets browser clients authenticate without storing
// the token in JavaScript-accessible state.
//
// Password hashing uses bcrypt. Login attempts are rate limited per client
// IP to slow down credential stuffing.
package auth
