package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"freight-rates-api/database/rates"
)

// requiredParams in the order they are reported when missing
var requiredParams = []string{"date_from", "date_to", "origin", "destination"}

// handleGetRates serves GET /rates: the per-day average price series between
// an origin and a destination over an inclusive date range.
//
// Validation order: parameter presence, date format, origin existence,
// destination existence. The first failure short-circuits with a 400.
func (s *Server) handleGetRates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var missing []string
	for _, param := range requiredParams {
		if query.Get(param) == "" {
			missing = append(missing, param)
		}
	}
	if len(missing) > 0 {
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Required parameter(s) missing: %s", strings.Join(missing, ", ")))
		return
	}

	dateFrom := query.Get("date_from")
	dateTo := query.Get("date_to")
	origin := query.Get("origin")
	destination := query.Get("destination")

	if !isValidDate(dateFrom) || !isValidDate(dateTo) {
		respondWithError(w, http.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD format.")
		return
	}

	// Data-access faults read as "does not exist": availability of a
	// response over error transparency.
	for _, endpoint := range []string{origin, destination} {
		if isPortCode(endpoint) {
			exists, err := s.ports.CodeExists(endpoint)
			if err != nil {
				log.Printf("⚠️  rates: %v", err)
			}
			if !exists {
				respondWithError(w, http.StatusBadRequest,
					fmt.Sprintf("Port %s does not exist.", endpoint))
				return
			}
		} else {
			exists, err := s.regions.SlugExists(endpoint)
			if err != nil {
				log.Printf("⚠️  rates: %v", err)
			}
			if !exists {
				respondWithError(w, http.StatusBadRequest,
					fmt.Sprintf("Region %s does not exist.", endpoint))
				return
			}
		}
	}

	cacheKey := fmt.Sprintf("rates:%s:%s:%s:%s", dateFrom, dateTo, origin, destination)
	if s.cache != nil {
		var cached []rates.DailyAverage
		if err := s.cache.Get(r.Context(), cacheKey, &cached); err == nil {
			respondWithJSON(w, http.StatusOK, cached)
			return
		}
	}

	// Region endpoints expand to their descendant slug sets; a literal port
	// code resolves to an empty set, which selects the port-filter shape.
	// Resolution and aggregation faults degrade to an empty result rather
	// than a 500; a degraded response must not be cached, or one transient
	// fault would be served as "no data" for the full TTL.
	degraded := false

	originSlugs, _, err := s.regions.ResolveDescendants(origin)
	if err != nil {
		log.Printf("⚠️  rates: %v", err)
		originSlugs, degraded = nil, true
	}
	destSlugs, _, err := s.regions.ResolveDescendants(destination)
	if err != nil {
		log.Printf("⚠️  rates: %v", err)
		destSlugs, degraded = nil, true
	}

	series, err := s.rates.AveragePrices(dateFrom, dateTo, origin, destination, originSlugs, destSlugs)
	if err != nil {
		log.Printf("⚠️  rates: %v", err)
		series, degraded = []rates.DailyAverage{}, true
	}

	// Cache writes are best-effort
	if s.cache != nil && !degraded {
		if err := s.cache.Set(r.Context(), cacheKey, series, s.cacheTTL); err != nil {
			log.Printf("⚠️  rates cache: storing %s failed: %v", cacheKey, err)
		}
	}

	respondWithJSON(w, http.StatusOK, series)
}
