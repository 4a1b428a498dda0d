package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDraft(t *testing.T) {
	m := Message{}
	if !m.Draft() {
		t.Error("Expected a message without an identifier to be a draft")
	}
	m.ID = "abc"
	if m.Draft() {
		t.Error("Expected a persisted message not to be a draft")
	}
}

func TestLockedAt(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

	m := Message{}
	if m.LockedAt(now) {
		t.Error("Expected no unlock instant to mean unlocked")
	}

	future := now.Add(time.Hour)
	m.UnlockAt = &future
	if !m.LockedAt(now) {
		t.Error("Expected a future unlock instant to lock the message")
	}
	if m.LockedAt(now.Add(2 * time.Hour)) {
		t.Error("Expected a passed unlock instant to unlock the message")
	}
}

func TestMessageJSONRoundTrip(t *testing.T) {
	unlock := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	m := Message{
		ID:            "abc",
		SenderName:    "Riley",
		RecipientName: "Sam",
		Relationship:  RelPartner,
		Body:          "merry everything",
		Theme:         "YULE",
		Public:        true,
		UnlockAt:      &unlock,
		Coupon:        &Coupon{Title: "a long walk", Style: "mint"},
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var got Message
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.Relationship != RelPartner || got.Coupon == nil || got.Coupon.Style != "mint" {
		t.Errorf("Expected the message to round-trip, got %+v", got)
	}
	if got.UnlockAt == nil || !got.UnlockAt.Equal(unlock) {
		t.Errorf("Expected the unlock instant to round-trip, got %v", got.UnlockAt)
	}
}

func TestCouponOmittedWhenAbsent(t *testing.T) {
	data, err := json.Marshal(Message{RecipientName: "Sam", Body: "hi"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := raw["coupon"]; ok {
		t.Error("Expected an absent coupon to be omitted from the payload")
	}
}
