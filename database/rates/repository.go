// Package rates aggregates daily average freight prices between endpoints.
//
// An endpoint is either a literal port code or a region resolved to a set of
// slugs. The four origin/destination combinations each get their own fixed
// SQL statement; only values (codes, slugs, dates) are ever parameterized,
// never identifiers.
package rates

import (
	"math"
	"time"

	"gorm.io/gorm"

	"freight-rates-api/database"
)

// minSamplesPerDay is the significance-suppression threshold: a daily
// average backed by fewer samples than this is reported as null.
const minSamplesPerDay = 3

// DailyAverage is one day of the result series. AveragePrice is nil when
// the day's mean was suppressed for statistical insignificance.
type DailyAverage struct {
	Day          string   `json:"day"`
	AveragePrice *float64 `json:"average_price"`
}

// One query shape per (origin kind, destination kind) combination.
const (
	queryPortToPort = `
		SELECT day, AVG(price) AS average_price, COUNT(price) AS sample_count
		FROM prices
		WHERE orig_code = ? AND dest_code = ?
		AND day BETWEEN ? AND ?
		GROUP BY day
		ORDER BY day`

	queryPortToRegion = `
		SELECT day, AVG(price) AS average_price, COUNT(price) AS sample_count
		FROM prices
		JOIN ports ON prices.dest_code = ports.code
		WHERE orig_code = ? AND ports.parent_slug IN ?
		AND day BETWEEN ? AND ?
		GROUP BY day
		ORDER BY day`

	queryRegionToPort = `
		SELECT day, AVG(price) AS average_price, COUNT(price) AS sample_count
		FROM prices
		JOIN ports ON prices.orig_code = ports.code
		WHERE dest_code = ? AND ports.parent_slug IN ?
		AND day BETWEEN ? AND ?
		GROUP BY day
		ORDER BY day`

	queryRegionToRegion = `
		SELECT day, AVG(price) AS average_price, COUNT(price) AS sample_count
		FROM prices
		JOIN ports p1 ON prices.orig_code = p1.code
		JOIN ports p2 ON prices.dest_code = p2.code
		WHERE p1.parent_slug IN ? AND p2.parent_slug IN ?
		AND day BETWEEN ? AND ?
		GROUP BY day
		ORDER BY day`
)

// priceRow is the raw aggregation row before suppression post-processing
type priceRow struct {
	Day          time.Time
	AveragePrice *float64
	SampleCount  int64
}

// Repository handles database operations for price aggregation
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new rates repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AveragePrices returns the per-day average price series for the given
// endpoints and inclusive date range. An empty slug set means the endpoint
// is a literal port code; a non-empty set means it is a region resolved to
// that set of slugs. Days with no samples are absent from the series.
//
// Data-access faults are returned to the caller, which decides whether to
// degrade or propagate.
func (r *Repository) AveragePrices(dateFrom, dateTo, origin, destination string, originSlugs, destSlugs []string) ([]DailyAverage, error) {
	var rows []priceRow
	var err error

	switch {
	case len(originSlugs) == 0 && len(destSlugs) == 0:
		err = r.db.Raw(queryPortToPort, origin, destination, dateFrom, dateTo).Scan(&rows).Error
	case len(originSlugs) == 0:
		err = r.db.Raw(queryPortToRegion, origin, destSlugs, dateFrom, dateTo).Scan(&rows).Error
	case len(destSlugs) == 0:
		err = r.db.Raw(queryRegionToPort, destination, originSlugs, dateFrom, dateTo).Scan(&rows).Error
	default:
		err = r.db.Raw(queryRegionToRegion, originSlugs, destSlugs, dateFrom, dateTo).Scan(&rows).Error
	}

	if err != nil {
		return nil, database.WrapDBError("AveragePrices", err)
	}

	return buildSeries(rows), nil
}

// buildSeries applies significance suppression and rounding to the raw
// aggregation rows.
func buildSeries(rows []priceRow) []DailyAverage {
	series := make([]DailyAverage, 0, len(rows))
	for _, row := range rows {
		entry := DailyAverage{Day: row.Day.Format("2006-01-02")}
		// A null average should not occur under GROUP BY, but guard anyway.
		if row.AveragePrice != nil && row.SampleCount >= minSamplesPerDay {
			rounded := math.Round(*row.AveragePrice*100) / 100
			entry.AveragePrice = &rounded
		}
		series = append(series, entry)
	}
	return series
}
