// Package holidays supplies public holiday data and derives holiday locks.
package holidays

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/models"
)

// ErrUnknownRegion is returned for region codes a provider cannot serve
var ErrUnknownRegion = errors.New("unknown region")

// Provider returns the public holidays of a region for a set of calendar years.
// Every returned holiday carries the requested region.
type Provider interface {
	Holidays(ctx context.Context, region string, years []int) ([]models.Holiday, error)
}

// NewProvider resolves a holiday source: "builtin", "http" or a path to a YAML file.
func NewProvider(source string) (Provider, error) {
	switch strings.TrimSpace(source) {
	case "", constants.HolidaySourceBuiltin:
		return NewGermanProvider(), nil
	case constants.HolidaySourceHTTP:
		return NewHTTPProvider(constants.HolidayAPIBaseURL), nil
	default:
		p, err := NewFileProvider(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open holiday file: %w", err)
		}
		return p, nil
	}
}

func sortHolidays(list []models.Holiday) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date < list[j].Date
		}
		return list[i].Name < list[j].Name
	})
}

func uniqueYears(years []int) []int {
	seen := make(map[int]struct{}, len(years))
	out := make([]int, 0, len(years))
	for _, y := range years {
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}
