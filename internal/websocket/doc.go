// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

// Package websocket pushes live discovery events to connected clients.
//
// A single Hub owns the client set and fans broadcasts out over buffered
// per-client channels. Sends never block: a slow client whose channel is
// full is disconnected rather than allowed to stall the hub, and a full
// broadcast channel drops the message and counts the drop. The hub runs
// under supervision via RunWithContext and closes every client on
// shutdown.
//
// Clients receive discovery and badge events; the only inbound message
// the hub interprets is an application-level ping, answered with a pong.
package websocket
