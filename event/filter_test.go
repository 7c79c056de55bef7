package event

import (
	"testing"

	"eventers-marketplace-client/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func jazzNight() model.Event {
	return model.Event{
		ID:       "e1",
		Name:     "Jazz Night",
		Location: "Lagos, Nigeria",
		Category: "Music",
		TicketCategories: []model.TicketCategory{
			{ID: "reg", Price: price(3000), MaxTickets: 100},
			{ID: "vip", Price: price(12000), MaxTickets: 20},
		},
	}
}

func TestMatchesJazzNightPriceBuckets(t *testing.T) {
	e := jazzNight()
	assert.True(t, Matches(e, Filter{PriceRange: "0-5000"}))
	assert.True(t, Matches(e, Filter{PriceRange: "10000-50000"}))
	assert.False(t, Matches(e, Filter{PriceRange: "5000-10000"}))
	assert.False(t, Matches(e, Filter{PriceRange: "50000"}))
	assert.False(t, Matches(e, Filter{PriceRange: "50000+"}))
}

func TestEmptyFilterMatchesEveryEvent(t *testing.T) {
	events := []model.Event{jazzNight(), {}, {Name: "Art Fair", Location: "Abuja"}}
	for _, e := range events {
		assert.True(t, Matches(e, Filter{}))
	}
	assert.Len(t, Apply(events, Filter{}), len(events))
}

func TestSearchIsCaseInsensitiveOnNameOrLocation(t *testing.T) {
	e := jazzNight()
	assert.True(t, Matches(e, Filter{Search: "jazz"}))
	assert.True(t, Matches(e, Filter{Search: "LAGOS"}))
	assert.False(t, Matches(e, Filter{Search: "music"}))
}

func TestLocationIsSubstringContainment(t *testing.T) {
	e := jazzNight()
	assert.True(t, Matches(e, Filter{Location: "Lagos"}))
	assert.True(t, Matches(e, Filter{Location: "Nigeria"}))
	assert.False(t, Matches(e, Filter{Location: "lagos"}))
	assert.False(t, Matches(e, Filter{Location: "Abuja"}))
}

func TestCategoryIsCaseInsensitiveEquality(t *testing.T) {
	e := jazzNight()
	assert.True(t, Matches(e, Filter{Category: "music"}))
	assert.False(t, Matches(e, Filter{Category: "Mus"}))
}

func TestFiltersAreAnded(t *testing.T) {
	e := jazzNight()
	assert.True(t, Matches(e, Filter{Search: "jazz", Location: "Lagos", Category: "Music", PriceRange: "0-5000"}))
	assert.False(t, Matches(e, Filter{Search: "jazz", Location: "Lagos", Category: "Sports", PriceRange: "0-5000"}))
}

func TestBoundaryPriceMatchesAdjacentBuckets(t *testing.T) {
	e := model.Event{TicketCategories: []model.TicketCategory{{Price: price(5000)}}}
	assert.True(t, Matches(e, Filter{PriceRange: "0-5000"}))
	assert.True(t, Matches(e, Filter{PriceRange: "5000-10000"}))
}

func TestEventWithoutCategoriesNeverMatchesPrice(t *testing.T) {
	assert.False(t, Matches(model.Event{}, Filter{PriceRange: "0-5000"}))
}

func TestUnparseablePriceRange(t *testing.T) {
	e := jazzNight()
	assert.False(t, Matches(e, Filter{PriceRange: "cheap"}))
	assert.Error(t, Filter{PriceRange: "cheap"}.Validate())
	assert.Error(t, Filter{PriceRange: "10-5"}.Validate())
	assert.NoError(t, Filter{PriceRange: "50000+"}.Validate())
	assert.NoError(t, Filter{}.Validate())
}

func TestParsePriceRange(t *testing.T) {
	b, err := ParsePriceRange("5000-10000")
	require.NoError(t, err)
	assert.True(t, price(5000).Equal(b.Min))
	require.NotNil(t, b.Max)
	assert.True(t, price(10000).Equal(*b.Max))
	assert.Equal(t, "5000-10000", b.String())

	b, err = ParsePriceRange("50000+")
	require.NoError(t, err)
	assert.Nil(t, b.Max)
	assert.True(t, b.Contains(price(1000000)))
	assert.False(t, b.Contains(price(49999)))
	assert.Equal(t, "50000+", b.String())

	for _, bucket := range PriceBuckets {
		_, err := ParsePriceRange(bucket)
		assert.NoError(t, err, bucket)
	}
}

func TestApplyAndLocations(t *testing.T) {
	events := []model.Event{
		jazzNight(),
		{ID: "e2", Name: "Tech Summit", Location: "Abuja", Category: "Tech"},
		{ID: "e3", Name: "Lagos Food Fest", Location: "Lagos, Nigeria", Category: "Food"},
	}
	got := Apply(events, Filter{Search: "lagos"})
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e3", got[1].ID)

	assert.Equal(t, []string{"Lagos, Nigeria", "Abuja"}, Locations(events))
}
