// FILE: prospects/models.go

package prospects

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultName is used when a prospect is created without a name.
const DefaultName = "Anonymous"

// Filter selects a subset of prospects by contacted status.
type Filter string

const (
	FilterAll         Filter = "ALL"
	FilterContacted   Filter = "CONTACTED"
	FilterUncontacted Filter = "UNCONTACTED"
)

// Title is the heading a list view shows for this filter.
func (f Filter) Title() string {
	switch f {
	case FilterContacted:
		return "Contacted People"
	case FilterUncontacted:
		return "Uncontacted People"
	default:
		return "Everyone"
	}
}

// ParseFilter accepts the tab names used by the CLI ("everyone", "contacted",
// "uncontacted") as well as the Filter constants themselves.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "everyone", "none":
		return FilterAll, nil
	case "contacted":
		return FilterContacted, nil
	case "uncontacted":
		return FilterUncontacted, nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

// SortOrder selects the ordering of a list view.
type SortOrder string

const (
	SortByName  SortOrder = "NAME"
	SortByEmail SortOrder = "EMAIL"
)

// ParseSortOrder maps a user-facing label onto a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return SortByName, nil
	case "email", "emailaddress":
		return SortByEmail, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// Prospect is a single tracked contact.
//
// Values handed out by the Service are copies; changing IsContacted on a copy
// has no effect on the stored record. Use Service.Toggle instead.
type Prospect struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	EmailAddress string    `json:"emailAddress"`
	IsContacted  bool      `json:"isContacted"`
}

// NewProspect creates an uncontacted prospect with a fresh ID.
func NewProspect(name, emailAddress string) Prospect {
	return Prospect{
		ID:           uuid.New(),
		Name:         name,
		EmailAddress: emailAddress,
	}.normalized()
}

// normalized returns p with invalid UTF-8 in its text fields replaced by
// U+FFFD and a blank name replaced by DefaultName. Every backend stores the
// result unchanged.
func (p Prospect) normalized() Prospect {
	p.Name = strings.ToValidUTF8(p.Name, "\uFFFD")
	p.EmailAddress = strings.ToValidUTF8(p.EmailAddress, "\uFFFD")
	if strings.TrimSpace(p.Name) == "" {
		p.Name = DefaultName
	}
	return p
}

// Equal reports whether two prospects describe the same person.
// The ID is deliberately not compared.
func (p Prospect) Equal(other Prospect) bool {
	return p.Name == other.Name && p.EmailAddress == other.EmailAddress
}

// Less is the default ordering: lexicographic by name.
func (p Prospect) Less(other Prospect) bool {
	return p.Name < other.Name
}
