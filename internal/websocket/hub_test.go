// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package websocket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atelierhq/atelier/internal/models"
)

// newHubClient creates a client without a live connection; only the send
// channel matters for hub tests.
func newHubClient(hub *Hub) *Client {
	return &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		send: make(chan Message, 256),
	}
}

func startHub(t *testing.T) (*Hub, context.CancelFunc, chan error) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()
	return hub, cancel, done
}

func waitForClientCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.GetClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", hub.GetClientCount(), want)
}

func TestHubRegisterUnregister(t *testing.T) {
	hub, cancel, done := startHub(t)
	defer func() { cancel(); <-done }()

	client := newHubClient(hub)
	hub.Register <- client
	waitForClientCount(t, hub, 1)

	hub.Unregister <- client
	waitForClientCount(t, hub, 0)

	// The hub closes the send channel on unregister.
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("send channel delivered a message after unregister")
		}
	case <-time.After(time.Second):
		t.Error("send channel not closed after unregister")
	}
}

func TestBroadcastDiscoveryReachesAllClients(t *testing.T) {
	hub, cancel, done := startHub(t)
	defer func() { cancel(); <-done }()

	first := newHubClient(hub)
	second := newHubClient(hub)
	hub.Register <- first
	hub.Register <- second
	waitForClientCount(t, hub, 2)

	artwork := &models.Artwork{ID: "art-1", Title: "Water Lilies", Artist: "Claude Monet"}
	hub.BroadcastDiscovery("monet_fan", artwork, true)

	for _, client := range []*Client{first, second} {
		select {
		case msg := <-client.send:
			if msg.Type != MessageTypeDiscovery {
				t.Errorf("message type = %q, want %q", msg.Type, MessageTypeDiscovery)
			}
			data, ok := msg.Data.(DiscoveryData)
			if !ok {
				t.Fatalf("message data has type %T", msg.Data)
			}
			if data.Username != "monet_fan" || data.Artwork.Title != "Water Lilies" || !data.NewEntry {
				t.Errorf("discovery data = %+v", data)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("client did not receive the broadcast")
		}
	}
}

func TestBroadcastDisconnectsSlowClient(t *testing.T) {
	hub, cancel, done := startHub(t)
	defer func() { cancel(); <-done }()

	slow := newHubClient(hub)
	slow.send = make(chan Message) // unbuffered and never drained
	hub.Register <- slow
	waitForClientCount(t, hub, 1)

	hub.BroadcastBadgeEarned("monet_fan", "first_discovery")
	waitForClientCount(t, hub, 0)
}

func TestShutdownClosesClients(t *testing.T) {
	hub, cancel, done := startHub(t)

	client := newHubClient(hub)
	hub.Register <- client
	waitForClientCount(t, hub, 1)

	cancel()
	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RunWithContext() = %v, want context.Canceled", err)
	}
	if hub.GetClientCount() != 0 {
		t.Errorf("client count after shutdown = %d, want 0", hub.GetClientCount())
	}
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("send channel delivered a message after shutdown")
		}
	default:
		t.Error("send channel not closed after shutdown")
	}
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	// No run loop: the broadcast channel fills up and further messages drop
	// without blocking.
	hub := NewHub()
	for i := 0; i < 300; i++ {
		hub.BroadcastBadgeEarned("someone", "first_discovery")
	}
	if len(hub.broadcast) != cap(hub.broadcast) {
		t.Errorf("broadcast queue length = %d, want %d", len(hub.broadcast), cap(hub.broadcast))
	}
}
