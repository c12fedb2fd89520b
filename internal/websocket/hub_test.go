package websocket

import (
	"testing"
	"time"
)

func recv(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func TestHubBroadcastsOnlyToMatchWatchers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	watcherA := &Client{MatchID: "match-a", Send: make(chan []byte, 4)}
	watcherB := &Client{MatchID: "match-b", Send: make(chan []byte, 4)}
	hub.Register(watcherA)
	hub.Register(watcherB)

	hub.BroadcastToMatch("match-a", []byte("update"))

	if got := recv(t, watcherA.Send); string(got) != "update" {
		t.Errorf("watcher A received %q, want %q", got, "update")
	}
	select {
	case msg := <-watcherB.Send:
		t.Errorf("watcher B should not receive match-a updates, got %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{MatchID: "match-a", Send: make(chan []byte, 1)}
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, open := <-client.Send:
		if open {
			t.Error("Send should be closed after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("Send was not closed")
	}
}

func TestHubDropsStalledClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Zero-capacity Send with nobody draining: the first broadcast can't be
	// delivered, so the hub must drop the client instead of blocking.
	stalled := &Client{MatchID: "match-a", Send: make(chan []byte)}
	healthy := &Client{MatchID: "match-a", Send: make(chan []byte, 4)}
	hub.Register(stalled)
	hub.Register(healthy)

	hub.BroadcastToMatch("match-a", []byte("first"))
	recv(t, healthy.Send)

	// The stalled client's channel is closed once the hub evicts it.
	select {
	case _, open := <-stalled.Send:
		if open {
			t.Error("stalled client should have been evicted")
		}
	case <-time.After(time.Second):
		t.Fatal("stalled client was never evicted")
	}

	// Subsequent broadcasts still reach the healthy watcher.
	hub.BroadcastToMatch("match-a", []byte("second"))
	if got := recv(t, healthy.Send); string(got) != "second" {
		t.Errorf("healthy watcher received %q after eviction, want %q", got, "second")
	}
}
