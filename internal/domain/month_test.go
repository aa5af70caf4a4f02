package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentdesk/internal/domain"
)

func TestParseMonth_Valid(t *testing.T) {
	m, err := domain.ParseMonth("2025-06")
	assert.NoError(t, err)
	assert.Equal(t, 2025, m.Year)
	assert.Equal(t, time.June, m.Month)
	assert.Equal(t, "2025-06", m.String())
}

func TestParseMonth_Invalid(t *testing.T) {
	cases := []string{"", "2025", "2025-13", "2025-00", "06-2025", "2025-6", "2025/06"}
	for _, raw := range cases {
		_, err := domain.ParseMonth(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidMonth, "input %q", raw)
	}
}

func TestMonth_Next_DecemberRollsOver(t *testing.T) {
	m := domain.Month{Year: 2025, Month: time.December}
	next := m.Next()
	assert.Equal(t, 2026, next.Year)
	assert.Equal(t, time.January, next.Month)
}

func TestMonth_LastDay(t *testing.T) {
	leap := domain.Month{Year: 2024, Month: time.February}
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), leap.LastDay())

	nonLeap := domain.Month{Year: 2025, Month: time.February}
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), nonLeap.LastDay())

	june := domain.Month{Year: 2025, Month: time.June}
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), june.LastDay())
}

func TestMonthOf_UsesUTC(t *testing.T) {
	// 23:30 on May 31 in UTC+5 is still May 31 local but June 1 does not
	// begin yet; in UTC it is 18:30 May 31.
	loc := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2025, 6, 1, 2, 0, 0, 0, loc) // 21:00 May 31 UTC
	m := domain.MonthOf(local)
	assert.Equal(t, time.May, m.Month)
	assert.Equal(t, 2025, m.Year)
}

func TestMonth_Before(t *testing.T) {
	a := domain.Month{Year: 2025, Month: time.June}
	b := domain.Month{Year: 2025, Month: time.July}
	c := domain.Month{Year: 2026, Month: time.January}

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}

func TestMonth_SQLRoundTrip(t *testing.T) {
	m := domain.Month{Year: 2025, Month: time.March}

	v, err := m.Value()
	assert.NoError(t, err)
	assert.Equal(t, "2025-03", v)

	var scanned domain.Month
	assert.NoError(t, scanned.Scan("2025-03"))
	assert.Equal(t, m, scanned)

	assert.NoError(t, scanned.Scan([]byte("2024-12")))
	assert.Equal(t, domain.Month{Year: 2024, Month: time.December}, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestMonth_JSONRoundTrip(t *testing.T) {
	m := domain.Month{Year: 2025, Month: time.June}

	data, err := json.Marshal(m)
	assert.NoError(t, err)
	assert.Equal(t, `"2025-06"`, string(data))

	var decoded domain.Month
	assert.NoError(t, json.Unmarshal([]byte(`"2025-06"`), &decoded))
	assert.Equal(t, m, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"2025-6"`), &decoded))
}

func TestTenancy_EffectiveAmounts(t *testing.T) {
	rent := dec(1500)
	zero := dec(0)
	charges := dec(50)

	base := domain.Tenancy{PropertyRent: dec(1200)}
	assert.True(t, base.EffectiveRent().Equal(dec(1200)))
	assert.True(t, base.EffectiveCharges().Equal(dec(0)))

	override := domain.Tenancy{PropertyRent: dec(1200), RentAmount: &rent, ChargesAmount: &charges}
	assert.True(t, override.EffectiveRent().Equal(dec(1500)))
	assert.True(t, override.EffectiveCharges().Equal(dec(50)))

	// A zero override falls back to the property rent.
	zeroOverride := domain.Tenancy{PropertyRent: dec(1200), RentAmount: &zero}
	assert.True(t, zeroOverride.EffectiveRent().Equal(dec(1200)))
}
