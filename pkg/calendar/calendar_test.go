package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// 2024-01-01 is a Monday.
func day(offset int) time.Time {
	return time.Date(2024, time.January, 1+offset, 12, 0, 0, 0, time.UTC)
}

func TestFromTime(t *testing.T) {
	for offset, want := range []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday} {
		assert.Equal(t, want, FromTime(day(offset)), day(offset).Weekday().String())
	}
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Friday", Friday.String())
	assert.Equal(t, "Sunday", Sunday.String())
	assert.Equal(t, "Weekday(9)", Weekday(9).String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []Weekday
		wantErr bool
	}{{
		name: "empty",
		raw:  "",
		want: []Weekday{},
	}, {
		name: "friday",
		raw:  "4",
		want: []Weekday{Friday},
	}, {
		name: "several with spaces and duplicates",
		raw:  " 6, 4,5 ,4",
		want: []Weekday{Friday, Saturday, Sunday},
	}, {
		name:    "out of range",
		raw:     "9",
		wantErr: true,
	}, {
		name:    "negative",
		raw:     "-1",
		wantErr: true,
	}, {
		name:    "not a number",
		raw:     "friday",
		wantErr: true,
	}, {
		name:    "empty entry",
		raw:     "4,,5",
		wantErr: true,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, c)
				var cfgErr *ConfigurationError
				assert.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Days())
		})
	}
}

func TestParseReportsEveryBadEntry(t *testing.T) {
	_, err := Parse("9,x,4,7")
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestIsExcluded(t *testing.T) {
	c, err := Parse("4")
	require.NoError(t, err)
	c, err = New(c.Days(), WithLocation(time.UTC))
	require.NoError(t, err)

	excluded, label := c.IsExcluded(day(4))
	assert.True(t, excluded)
	assert.Equal(t, "Friday", label)

	excluded, label = c.IsExcluded(day(1))
	assert.False(t, excluded)
	assert.Equal(t, "Tuesday", label)
}

func TestIsExcludedUsesCalendarLocation(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	c, err := New([]Weekday{Saturday}, WithLocation(tokyo))
	require.NoError(t, err)
	// Friday 20:00 UTC is already Saturday in UTC+9.
	friday := time.Date(2024, time.January, 5, 20, 0, 0, 0, time.UTC)
	excluded, label := c.IsExcluded(friday)
	assert.True(t, excluded)
	assert.Equal(t, "Saturday", label)
}

func TestFreezeWindow(t *testing.T) {
	c, err := New(nil, WithLocation(time.UTC), WithFreezeWindow("* 16-23 * * 4"))
	require.NoError(t, err)
	assert.Equal(t, "* 16-23 * * 4", c.FreezeWindow())

	thursdayEvening := time.Date(2024, time.January, 4, 18, 0, 0, 0, time.UTC)
	excluded, label := c.IsExcluded(thursdayEvening)
	assert.True(t, excluded)
	assert.Equal(t, "Thursday", label)

	thursdayMorning := time.Date(2024, time.January, 4, 9, 0, 0, 0, time.UTC)
	excluded, _ = c.IsExcluded(thursdayMorning)
	assert.False(t, excluded)
}

func TestFreezeWindowInvalid(t *testing.T) {
	_, err := New(nil, WithFreezeWindow("not a cron"))
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestDefaultLocationIsLocal(t *testing.T) {
	c, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, c.Location())
}
