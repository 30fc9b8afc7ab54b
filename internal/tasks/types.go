package tasks

import "time"

// LocalListID marks items that exist only in this client. They have no
// remote counterpart and are never sent upstream.
const LocalListID = "default"

// wellKnownFlagged tags the flagged-email list, which is never surfaced
// or fetched.
const wellKnownFlagged = "flaggedEmails"

type List struct {
	ID          string
	DisplayName string
	WellKnown   string
}

// Flagged reports whether the list is the flagged-email one.
func (l List) Flagged() bool {
	return l.WellKnown == wellKnownFlagged
}

// Item is one to-do entry. ID and ListID together address the remote
// resource. CreatedAt and DueAt drive the today-relevance filter; DueAt is
// zero when the task has no due date.
type Item struct {
	ID        string
	ListID    string
	ListName  string
	WellKnown string
	Title     string
	Done      bool
	CreatedAt time.Time
	DueAt     time.Time
}

// Local reports whether the item lives only in this client.
func (i Item) Local() bool {
	return i.ListID == LocalListID
}
