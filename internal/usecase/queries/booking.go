package queries

import (
	"context"

	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*BookingListItem, int64, error)
}

type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*UserRecord, error)
}

type FacilityReadStore interface {
	ListFacilities(ctx context.Context, onlyActive bool) ([]*FacilityView, error)
	ListSites(ctx context.Context, facilityID uuid.UUID) ([]*SiteView, error)
}

type BookingQueries interface {
	// GetByID enforces ownership: customers only see their own bookings.
	GetByID(ctx context.Context, actorID uuid.UUID, isStaff bool, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses ownership for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter, page, limit int) (*BookingPage, error)
}

var (
	ErrBookingNotFound     = errs.New("booking not found")
	ErrBookingAccessDenied = errs.New("booking belongs to another customer")
)

type bookingQueriesImpl struct {
	repo BookingReadStore
}

func NewBookingQueries(repo BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, isStaff bool, id uuid.UUID) (*BookingView, error) {
	view, err := q.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isStaff {
		if view.CustomerID == nil || *view.CustomerID != actorID {
			return nil, ErrBookingAccessDenied
		}
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.findByID(ctx, id)
}

func (q *bookingQueriesImpl) findByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, filter BookingFilter, page, limit int) (*BookingPage, error) {
	page = ValidatePage(page)
	limit = ValidateLimit(limit)
	offset := (page - 1) * limit

	items, total, err := q.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	pageCount := int((total + int64(limit) - 1) / int64(limit))
	return &BookingPage{
		Items:      items,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		PageCount:  pageCount,
	}, nil
}

type facilityQueriesImpl struct {
	repo FacilityReadStore
}

type FacilityQueries interface {
	ListFacilities(ctx context.Context, onlyActive bool) ([]*FacilityView, error)
	ListSites(ctx context.Context, facilityID uuid.UUID) ([]*SiteView, error)
}

func NewFacilityQueries(repo FacilityReadStore) FacilityQueries {
	return &facilityQueriesImpl{repo: repo}
}

func (q *facilityQueriesImpl) ListFacilities(ctx context.Context, onlyActive bool) ([]*FacilityView, error) {
	return q.repo.ListFacilities(ctx, onlyActive)
}

func (q *facilityQueriesImpl) ListSites(ctx context.Context, facilityID uuid.UUID) ([]*SiteView, error) {
	return q.repo.ListSites(ctx, facilityID)
}
