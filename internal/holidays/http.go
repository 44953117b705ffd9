package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/logger"
	"github.com/julianstephens/roster/internal/models"
)

// apiEntry is one holiday in the feiertage-api.de response, keyed by name
type apiEntry struct {
	Date string `json:"datum"`
	Note string `json:"hinweis"`
}

type cacheKey struct {
	region string
	year   int
}

// HTTPProvider fetches holidays from a feiertage-api.de compatible endpoint.
// Years are requested in parallel, throttled, and cached per region and year.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter

	mu    sync.Mutex
	cache map[cacheKey][]models.Holiday
}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: constants.HolidayAPITimeout},
		limiter: rate.NewLimiter(rate.Limit(constants.HolidayAPIRatePerSec), 1),
		cache:   make(map[cacheKey][]models.Holiday),
	}
}

func (p *HTTPProvider) Holidays(ctx context.Context, region string, years []int) ([]models.Holiday, error) {
	if !IsRegion(region) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}

	years = uniqueYears(years)
	results := make([][]models.Holiday, len(years))

	g, gctx := errgroup.WithContext(ctx)
	for i, year := range years {
		g.Go(func() error {
			list, err := p.year(gctx, region, year)
			if err != nil {
				return err
			}
			results[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []models.Holiday
	for _, list := range results {
		out = append(out, list...)
	}
	sortHolidays(out)
	return out, nil
}

func (p *HTTPProvider) year(ctx context.Context, region string, year int) ([]models.Holiday, error) {
	key := cacheKey{region: region, year: year}
	p.mu.Lock()
	cached, ok := p.cache[key]
	p.mu.Unlock()
	if ok {
		return append([]models.Holiday(nil), cached...), nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	list, err := p.fetch(ctx, region, year)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[key] = list
	p.mu.Unlock()
	return append([]models.Holiday(nil), list...), nil
}

func (p *HTTPProvider) fetch(ctx context.Context, region string, year int) ([]models.Holiday, error) {
	land := region
	if region == "DE" {
		land = "NATIONAL"
	}
	query := url.Values{}
	query.Set("jahr", strconv.Itoa(year))
	query.Set("nur_land", land)
	endpoint := p.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holiday request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday request failed: %s", resp.Status)
	}

	var payload map[string]apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode holiday response: %w", err)
	}
	logger.Debug("Fetched holidays", "region", region, "year", year, "count", len(payload), "elapsed", time.Since(start))

	list := make([]models.Holiday, 0, len(payload))
	for name, entry := range payload {
		if entry.Date == "" {
			continue
		}
		list = append(list, models.Holiday{Date: entry.Date, Name: name, Region: region})
	}
	sortHolidays(list)
	return list, nil
}
