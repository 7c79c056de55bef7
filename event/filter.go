package event

import (
	"errors"
	"fmt"
	"strings"

	"eventers-marketplace-client/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// PriceBuckets are the ranges offered by the event browser. Both ends of a
// bucket are inclusive, so a boundary price belongs to two buckets.
var PriceBuckets = []string{"0-5000", "5000-10000", "10000-50000", "50000+"}

var errBadPriceRange = errors.New("must look like 0-5000 or 50000+")

type Filter struct {
	Search     string `json:"searchQuery,omitempty"`
	Location   string `json:"selectedLocation,omitempty"`
	PriceRange string `json:"priceRange,omitempty"`
	Category   string `json:"selectedCategory,omitempty"`
}

func (f Filter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.PriceRange, validation.By(func(value interface{}) error {
			s, _ := value.(string)
			if s == "" {
				return nil
			}
			_, err := ParsePriceRange(s)
			return err
		})),
	)
}

func (f Filter) Empty() bool {
	return f.Search == "" && f.Location == "" && f.PriceRange == "" && f.Category == ""
}

// PriceBucket is a closed price interval; a nil Max is unbounded.
type PriceBucket struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

func (b PriceBucket) Contains(p decimal.Decimal) bool {
	if p.LessThan(b.Min) {
		return false
	}
	return b.Max == nil || p.LessThanOrEqual(*b.Max)
}

// ParsePriceRange reads "lo-hi", "lo+" or a bare "lo" (open ended).
func ParsePriceRange(s string) (PriceBucket, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "+")
	lo, hi, bounded := strings.Cut(s, "-")

	floor, err := decimal.NewFromString(strings.TrimSpace(lo))
	if err != nil || floor.IsNegative() {
		return PriceBucket{}, errBadPriceRange
	}
	b := PriceBucket{Min: floor}
	if !bounded {
		return b, nil
	}

	ceil, err := decimal.NewFromString(strings.TrimSpace(hi))
	if err != nil || ceil.LessThan(floor) {
		return PriceBucket{}, errBadPriceRange
	}
	b.Max = &ceil
	return b, nil
}

// Matches ANDs the four filter dimensions; an empty dimension matches all.
func Matches(e model.Event, f Filter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Name), q) && !strings.Contains(strings.ToLower(e.Location), q) {
			return false
		}
	}
	if f.Location != "" && !strings.Contains(e.Location, f.Location) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(e.Category, f.Category) {
		return false
	}
	if f.PriceRange != "" {
		bucket, err := ParsePriceRange(f.PriceRange)
		if err != nil {
			return false
		}
		for _, tc := range e.TicketCategories {
			if bucket.Contains(tc.Price) {
				return true
			}
		}
		return false
	}
	return true
}

func Apply(events []model.Event, f Filter) []model.Event {
	if f.Empty() {
		return events
	}
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if Matches(e, f) {
			out = append(out, e)
		}
	}
	return out
}

// Locations lists the distinct event locations in first-seen order, for
// populating a location picker.
func Locations(events []model.Event) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range events {
		if e.Location == "" || seen[e.Location] {
			continue
		}
		seen[e.Location] = true
		out = append(out, e.Location)
	}
	return out
}

func (b PriceBucket) String() string {
	if b.Max == nil {
		return fmt.Sprintf("%s+", b.Min)
	}
	return fmt.Sprintf("%s-%s", b.Min, *b.Max)
}
