// Package share builds shareable links, performs clipboard and external
// hand-offs, and exports coupon snapshots. Everything here is best-effort:
// a failed hand-off is logged, never fatal.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keepsake/logger"
	"github.com/lixenwraith/keepsake/model"
)

// BuildLink returns the shareable URL for a stored card.
func BuildLink(base, id string) string {
	return strings.TrimRight(base, "/") + "/c/" + id
}

// ParseRef resolves user input to a card reference: a bare identifier, a
// share link, or the legacy fragment-encoded payload. A legacy payload
// carries the whole message inline; it is decoded client-side only and
// never validated.
func ParseRef(ref string) (id string, inline *model.Message, err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil, fmt.Errorf("empty card reference")
	}

	if idx := strings.Index(ref, "#view?data="); idx >= 0 {
		raw := ref[idx+len("#view?data="):]
		data, derr := base64.RawURLEncoding.DecodeString(raw)
		if derr != nil {
			// tolerate padded encodings from older exports
			data, derr = base64.URLEncoding.DecodeString(raw)
		}
		if derr != nil {
			return "", nil, fmt.Errorf("malformed legacy payload: %w", derr)
		}
		var m model.Message
		if jerr := json.Unmarshal(data, &m); jerr != nil {
			return "", nil, fmt.Errorf("malformed legacy payload: %w", jerr)
		}
		return "", &m, nil
	}

	if idx := strings.Index(ref, "/c/"); idx >= 0 {
		ref = ref[idx+len("/c/"):]
		if q := strings.IndexAny(ref, "?#"); q >= 0 {
			ref = ref[:q]
		}
	}
	if ref == "" {
		return "", nil, fmt.Errorf("no card identifier in reference")
	}
	return ref, nil, nil
}

// EncodeLegacy builds the fragment-encoded form of a message, for offline
// sharing without a store.
func EncodeLegacy(base string, m model.Message) string {
	data, _ := json.Marshal(m)
	return strings.TrimRight(base, "/") + "/#view?data=" + base64.RawURLEncoding.EncodeToString(data)
}

// CopyToClipboard writes text to the system clipboard over OSC 52.
func CopyToClipboard(s tcell.Screen, text string) {
	if s == nil {
		return
	}
	s.SetClipboard([]byte(text))
}

// MessagingURL builds the outbound hand-off target, preferring the sender's
// contact handle and falling back to a generic share target.
func MessagingURL(contact, text string) string {
	handle := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, contact)
	if handle != "" {
		return "https://wa.me/" + handle + "?text=" + url.QueryEscape(text)
	}
	return "https://wa.me/?text=" + url.QueryEscape(text)
}

// OpenExternal hands a URL to the desktop, best-effort.
func OpenExternal(target string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		logger.Log.Warn("external hand-off failed", "target", target, "err", err)
	}
}

// ExportCouponSnapshot renders the coupon to a text card in dir and returns
// the written path. The caller logs failure and continues; the share flow
// never blocks on this.
func ExportCouponSnapshot(dir string, m *model.Message) (string, error) {
	if m.Coupon == nil {
		return "", fmt.Errorf("message has no coupon")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	c := m.Coupon
	var b strings.Builder
	line := strings.Repeat("═", 42)
	b.WriteString("╔" + line + "╗\n")
	writeRow := func(s string) {
		if len(s) > 40 {
			s = s[:40]
		}
		fmt.Fprintf(&b, "║ %-40s ║\n", s)
	}
	writeRow("KEEPSAKE COUPON")
	writeRow("")
	writeRow(c.Title)
	if c.Code != "" {
		writeRow("code: " + c.Code)
	}
	if c.RedeemURL != "" {
		writeRow(c.RedeemURL)
	}
	writeRow("")
	writeRow(fmt.Sprintf("from %s, with love", m.SenderName))
	b.WriteString("╚" + line + "╝\n")

	name := fmt.Sprintf("coupon-%s-%d.txt", m.ID, time.Now().Unix())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
