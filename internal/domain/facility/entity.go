package facility

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidName = errors.New("facility name is required")

// Facility and Site are read-only reference entities owned by the catalog
// collaborator; this service consumes them for validation and analytics only.
type Facility struct {
	id           uuid.UUID
	name         string
	facilityType string
	capacity     int
	weekdayPrice int64
	weekendPrice int64
	isActive     bool
}

func NewFacility(id uuid.UUID, name, facilityType string, capacity int, weekdayPrice, weekendPrice int64, isActive bool) (*Facility, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Facility{
		id:           id,
		name:         name,
		facilityType: facilityType,
		capacity:     capacity,
		weekdayPrice: weekdayPrice,
		weekendPrice: weekendPrice,
		isActive:     isActive,
	}, nil
}

func (f *Facility) ID() uuid.UUID       { return f.id }
func (f *Facility) Name() string        { return f.name }
func (f *Facility) Type() string        { return f.facilityType }
func (f *Facility) Capacity() int       { return f.capacity }
func (f *Facility) WeekdayPrice() int64 { return f.weekdayPrice }
func (f *Facility) WeekendPrice() int64 { return f.weekendPrice }
func (f *Facility) IsActive() bool      { return f.isActive }

type Site struct {
	id         uuid.UUID
	facilityID uuid.UUID
	name       string
	capacity   int
	isActive   bool
}

func NewSite(id, facilityID uuid.UUID, name string, capacity int, isActive bool) (*Site, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Site{
		id:         id,
		facilityID: facilityID,
		name:       name,
		capacity:   capacity,
		isActive:   isActive,
	}, nil
}

func (s *Site) ID() uuid.UUID         { return s.id }
func (s *Site) FacilityID() uuid.UUID { return s.facilityID }
func (s *Site) Name() string          { return s.name }
func (s *Site) Capacity() int         { return s.capacity }
func (s *Site) IsActive() bool        { return s.isActive }
