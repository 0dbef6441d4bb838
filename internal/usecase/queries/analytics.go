package queries

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type AnalyticsSummary struct {
	Period           string               `json:"period"`
	RangeFrom        time.Time            `json:"range_from"`
	RangeTo          time.Time            `json:"range_to"`
	Revenue          int64                `json:"revenue"`
	ReservationCount int64                `json:"reservation_count"`
	OccupancyRate    float64              `json:"occupancy_rate"`
	ConversionRate   float64              `json:"conversion_rate"`
	Facilities       []*FacilityBreakdown `json:"facilities"`
}

type FacilityBreakdown struct {
	FacilityID       uuid.UUID `json:"facility_id"`
	FacilityName     string    `json:"facility_name"`
	SiteCount        int       `json:"site_count"`
	ReservationCount int64     `json:"reservation_count"`
	Revenue          int64     `json:"revenue"`
}

// LedgerEntry is one reservation row projected down to what aggregation needs.
type LedgerEntry struct {
	FacilityID uuid.UUID
	Status     string
	Amount     int64
}

type AnalyticsReadStore interface {
	ListLedger(ctx context.Context, from, to time.Time) ([]LedgerEntry, error)
	CountActiveSites(ctx context.Context) (int64, error)
	// CountOccupiedSites counts distinct sites holding at least one active
	// (pending/confirmed) booking on the given date.
	CountOccupiedSites(ctx context.Context, date time.Time) (int64, error)
	ListActiveFacilities(ctx context.Context) ([]*FacilityView, error)
}

// SnapshotCache is an optional short-TTL cache in front of Summarize.
// Implementations must tolerate concurrent writers; a nil cache disables it.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type AnalyticsQueries interface {
	Summarize(ctx context.Context, period string) (*AnalyticsSummary, error)
}

type analyticsQueriesImpl struct {
	store    AnalyticsReadStore
	cache    SnapshotCache
	cacheTTL time.Duration
	clock    clock.Clock
}

func NewAnalyticsQueries(store AnalyticsReadStore, cache SnapshotCache, cacheTTL time.Duration, clock clock.Clock) AnalyticsQueries {
	return &analyticsQueriesImpl{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		clock:    clock,
	}
}

func (a *analyticsQueriesImpl) Summarize(ctx context.Context, rawPeriod string) (*AnalyticsSummary, error) {
	period := NormalizePeriod(rawPeriod)

	if cached := a.fromCache(ctx, period); cached != nil {
		return cached, nil
	}

	now := a.clock.Now()
	from, to := period.DateRange(now)

	ledger, err := a.store.ListLedger(ctx, from, to)
	if err != nil {
		return nil, err
	}
	activeSites, err := a.store.CountActiveSites(ctx)
	if err != nil {
		return nil, err
	}
	occupiedSites, err := a.store.CountOccupiedSites(ctx, now)
	if err != nil {
		return nil, err
	}
	facilities, err := a.store.ListActiveFacilities(ctx)
	if err != nil {
		return nil, err
	}

	summary := Aggregate(period, from, to, ledger, activeSites, occupiedSites, facilities)
	a.toCache(ctx, period, summary)
	return summary, nil
}

// Aggregate derives the summary figures from raw ledger rows. Pure; the
// occupancy inputs are today-bound regardless of the requested period.
func Aggregate(
	period Period,
	from, to time.Time,
	ledger []LedgerEntry,
	activeSites, occupiedSites int64,
	facilities []*FacilityView,
) *AnalyticsSummary {
	var revenue int64
	var confirmed int64
	perFacilityCount := make(map[uuid.UUID]int64)
	perFacilityRevenue := make(map[uuid.UUID]int64)

	for _, entry := range ledger {
		if entry.Status != booking.StatusCancelled.String() {
			revenue += entry.Amount
			perFacilityCount[entry.FacilityID]++
			perFacilityRevenue[entry.FacilityID] += entry.Amount
		}
		if entry.Status == booking.StatusConfirmed.String() {
			confirmed++
		}
	}

	total := int64(len(ledger))

	breakdown := make([]*FacilityBreakdown, 0, len(facilities))
	for _, f := range facilities {
		breakdown = append(breakdown, &FacilityBreakdown{
			FacilityID:       f.ID,
			FacilityName:     f.Name,
			SiteCount:        f.SiteCount,
			ReservationCount: perFacilityCount[f.ID],
			Revenue:          perFacilityRevenue[f.ID],
		})
	}

	return &AnalyticsSummary{
		Period:           period.String(),
		RangeFrom:        from,
		RangeTo:          to,
		Revenue:          revenue,
		ReservationCount: total,
		OccupancyRate:    Rate(occupiedSites, activeSites),
		ConversionRate:   Rate(confirmed, total),
		Facilities:       breakdown,
	}
}

// Rate returns part/whole as a percentage rounded to one decimal place,
// guarding the zero denominator.
func Rate(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}

func (a *analyticsQueriesImpl) fromCache(ctx context.Context, period Period) *AnalyticsSummary {
	if a.cache == nil {
		return nil
	}
	raw, ok := a.cache.Get(ctx, cacheKey(period))
	if !ok {
		return nil
	}
	var summary AnalyticsSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		slog.Warn("failed to decode cached analytics snapshot", "error", err.Error())
		return nil
	}
	return &summary
}

func (a *analyticsQueriesImpl) toCache(ctx context.Context, period Period, summary *AnalyticsSummary) {
	if a.cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	a.cache.Set(ctx, cacheKey(period), raw, a.cacheTTL)
}

func cacheKey(period Period) string {
	return "analytics:summary:" + period.String()
}
