package booking

import (
	"errors"
	"sort"
	"strings"
)

// MaxSlotNumber is the number of fixed daily time blocks a site exposes.
const MaxSlotNumber = 24

var (
	ErrEmptySlots     = errors.New("time slots must not be empty")
	ErrDuplicateSlot  = errors.New("time slots must not contain duplicates")
	ErrSlotOutOfRange = errors.New("time slot out of range")
)

// SlotSet is a non-empty, duplicate-free set of daily time block numbers.
// The backing slice is kept sorted so comparisons and rendering are stable.
type SlotSet struct {
	slots []int
}

func NewSlotSet(slots []int) (SlotSet, error) {
	if len(slots) == 0 {
		return SlotSet{}, ErrEmptySlots
	}

	seen := make(map[int]struct{}, len(slots))
	sorted := make([]int, 0, len(slots))
	for _, s := range slots {
		if s < 1 || s > MaxSlotNumber {
			return SlotSet{}, ErrSlotOutOfRange
		}
		if _, dup := seen[s]; dup {
			return SlotSet{}, ErrDuplicateSlot
		}
		seen[s] = struct{}{}
		sorted = append(sorted, s)
	}
	sort.Ints(sorted)

	return SlotSet{slots: sorted}, nil
}

func (s SlotSet) Values() []int {
	out := make([]int, len(s.slots))
	copy(out, s.slots)
	return out
}

func (s SlotSet) Len() int {
	return len(s.slots)
}

func (s SlotSet) Contains(slot int) bool {
	for _, v := range s.slots {
		if v == slot {
			return true
		}
	}
	return false
}

// Intersects reports whether any slot is shared with other. Both sets are
// sorted, so a single merge pass suffices.
func (s SlotSet) Intersects(other SlotSet) bool {
	i, j := 0, 0
	for i < len(s.slots) && j < len(other.slots) {
		switch {
		case s.slots[i] == other.slots[j]:
			return true
		case s.slots[i] < other.slots[j]:
			i++
		default:
			j++
		}
	}
	return false
}

type GuestContact struct {
	name  string
	phone string
	email string
}

var ErrGuestContactIncomplete = errors.New("guest contact requires name and phone")

func NewGuestContact(name, phone, email string) (GuestContact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)
	if name == "" || phone == "" {
		return GuestContact{}, ErrGuestContactIncomplete
	}
	return GuestContact{name: name, phone: phone, email: email}, nil
}

func (g GuestContact) Name() string  { return g.name }
func (g GuestContact) Phone() string { return g.phone }
func (g GuestContact) Email() string { return g.email }

func (g GuestContact) IsZero() bool {
	return g.name == "" && g.phone == "" && g.email == ""
}

type Amount struct {
	value int64
}

var ErrNegativeAmount = errors.New("amount cannot be negative")

func NewAmount(value int64) (Amount, error) {
	if value < 0 {
		return Amount{}, ErrNegativeAmount
	}
	return Amount{value: value}, nil
}

func (a Amount) Value() int64 {
	return a.value
}
