package device

import "testing"

func TestOpenMintsStableID(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.DeviceID() == "" {
		t.Fatal("Expected a minted device identifier")
	}

	again, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if again.DeviceID() != s.DeviceID() {
		t.Errorf("Expected the identifier to be stable, got %s then %s",
			s.DeviceID(), again.DeviceID())
	}
}

func TestLikedSetPersists(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Liked("card-1") {
		t.Error("Expected a fresh store to have no likes")
	}
	if err := s.SetLiked("card-1", true); err != nil {
		t.Fatalf("SetLiked failed: %v", err)
	}

	again, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if !again.Liked("card-1") {
		t.Error("Expected the liked set to persist across opens")
	}

	if err := again.SetLiked("card-1", false); err != nil {
		t.Fatalf("SetLiked failed: %v", err)
	}
	final, _ := Open(dir)
	if final.Liked("card-1") {
		t.Error("Expected the unlike to persist")
	}
}
