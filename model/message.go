// Package model defines the persisted record types shared by the stores,
// the server, and the views.
package model

import "time"

// Relationship categorizes sender and recipient.
type Relationship string

const (
	RelPartner Relationship = "partner"
	RelSpouse  Relationship = "spouse"
	RelCrush   Relationship = "crush"
	RelFriend  Relationship = "friend"
	RelSibling Relationship = "sibling"
	RelParent  Relationship = "parent"
	RelSelf    Relationship = "self"
	RelOther   Relationship = "other"
)

// Relationships lists every valid value, in display order.
var Relationships = []Relationship{
	RelPartner, RelSpouse, RelCrush, RelFriend,
	RelSibling, RelParent, RelSelf, RelOther,
}

// Coupon is an optional redeemable attachment on a message. The torn state
// is client-local and never persisted.
type Coupon struct {
	Title     string `json:"title"`
	Style     string `json:"style"`
	Code      string `json:"code,omitempty"`
	RedeemURL string `json:"redeem_url,omitempty"`
	Contact   string `json:"contact,omitempty"`
}

// CouponStyles is the fixed palette set a coupon's Style is drawn from.
var CouponStyles = []string{"gold", "rose", "mint", "midnight", "candy"}

// Message is the shared unit: written once, read by ID or paged listing,
// never deleted. Only the counters change after the first write, and those
// are incremented out of band by the counter service.
type Message struct {
	ID            string       `json:"id,omitempty"` // empty for local drafts
	SenderName    string       `json:"sender_name"`
	RecipientName string       `json:"recipient_name"`
	Relationship  Relationship `json:"relationship"`
	Body          string       `json:"body"`
	Theme         string       `json:"theme"`
	CreatedAt     time.Time    `json:"created_at"`
	Public        bool         `json:"public"`
	Views         int          `json:"views"`
	Likes         int          `json:"likes"`
	TrackURL      string       `json:"track_url,omitempty"`
	UnlockAt      *time.Time   `json:"unlock_at,omitempty"`
	Coupon        *Coupon      `json:"coupon,omitempty"`
}

// Draft reports whether the message has not been persisted yet.
func (m *Message) Draft() bool { return m.ID == "" }

// LockedAt reports whether the message is still time-capsuled at now.
func (m *Message) LockedAt(now time.Time) bool {
	return m.UnlockAt != nil && m.UnlockAt.After(now)
}
