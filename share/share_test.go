package share

import (
	"os"
	"strings"
	"testing"

	"github.com/lixenwraith/keepsake/model"
)

func TestBuildLink(t *testing.T) {
	if got := BuildLink("https://keepsake.example/", "abc123"); got != "https://keepsake.example/c/abc123" {
		t.Errorf("Expected trailing slash to collapse, got %q", got)
	}
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"bare id", "abc123", "abc123"},
		{"share link", "https://keepsake.example/c/abc123", "abc123"},
		{"link with query", "https://keepsake.example/c/abc123?utm=x", "abc123"},
		{"surrounding space", "  abc123 ", "abc123"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, inline, err := ParseRef(tc.ref)
			if err != nil {
				t.Fatalf("ParseRef failed: %v", err)
			}
			if inline != nil {
				t.Fatal("Expected no inline payload")
			}
			if id != tc.want {
				t.Errorf("Expected id %q, got %q", tc.want, id)
			}
		})
	}
}

func TestParseRefErrors(t *testing.T) {
	for _, ref := range []string{"", "   ", "https://keepsake.example/c/", "x#view?data=%%%"} {
		if _, _, err := ParseRef(ref); err == nil {
			t.Errorf("Expected ParseRef(%q) to fail", ref)
		}
	}
}

func TestLegacyFragmentRoundTrip(t *testing.T) {
	m := model.Message{
		SenderName:    "Riley",
		RecipientName: "Sam",
		Body:          "carried inline, no backend",
		Theme:         "BERRY",
	}
	link := EncodeLegacy("https://keepsake.example", m)
	if !strings.Contains(link, "#view?data=") {
		t.Fatalf("Expected a fragment-encoded link, got %q", link)
	}

	id, inline, err := ParseRef(link)
	if err != nil {
		t.Fatalf("ParseRef failed: %v", err)
	}
	if id != "" || inline == nil {
		t.Fatal("Expected an inline payload with no identifier")
	}
	if inline.RecipientName != "Sam" || inline.Theme != "BERRY" || inline.Body != m.Body {
		t.Errorf("Expected the encoded message back, got %+v", inline)
	}
}

func TestMessagingURL(t *testing.T) {
	tests := []struct {
		contact string
		want    string
	}{
		{"+1 (555) 010-2333", "https://wa.me/15550102333?text=hi"},
		{"", "https://wa.me/?text=hi"},
		{"no digits here", "https://wa.me/?text=hi"},
	}
	for _, tc := range tests {
		if got := MessagingURL(tc.contact, "hi"); got != tc.want {
			t.Errorf("Expected MessagingURL(%q) to be %q, got %q", tc.contact, tc.want, got)
		}
	}
}

func TestExportCouponSnapshot(t *testing.T) {
	dir := t.TempDir()
	m := &model.Message{
		ID:         "abc123",
		SenderName: "Riley",
		Coupon: &model.Coupon{
			Title: "one movie night",
			Code:  "MOVIE-1",
		},
	}
	path, err := ExportCouponSnapshot(dir, m)
	if err != nil {
		t.Fatalf("ExportCouponSnapshot failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot failed: %v", err)
	}
	for _, want := range []string{"one movie night", "MOVIE-1", "Riley"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Expected snapshot to contain %q", want)
		}
	}
}

func TestExportCouponSnapshotWithoutCoupon(t *testing.T) {
	if _, err := ExportCouponSnapshot(t.TempDir(), &model.Message{ID: "x"}); err == nil {
		t.Error("Expected an error for a message without a coupon")
	}
}
