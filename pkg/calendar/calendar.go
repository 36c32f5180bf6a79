package calendar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sarslanhan/cronmask"
	"go.uber.org/multierr"
)

// Weekday is a Monday-origin day index, 0 is Monday and 6 is Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// FromTime returns the Monday-origin weekday of t in its own location.
func FromTime(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return "Weekday(" + strconv.Itoa(int(w)) + ")"
	}
	return time.Weekday((int(w) + 1) % 7).String()
}

// Calendar holds the days on which parentless objects are rejected.
// It is immutable once built and safe for concurrent use.
type Calendar struct {
	days     map[Weekday]struct{}
	location *time.Location
	window   *cronmask.CronMask
	schedule string
}

type Option func(*Calendar) error

// WithLocation evaluates weekdays in loc instead of the server local time.
func WithLocation(loc *time.Location) Option {
	return func(c *Calendar) error {
		if loc != nil {
			c.location = loc
		}
		return nil
	}
}

// WithFreezeWindow adds a cron mask, any time matching it is excluded too.
func WithFreezeWindow(expr string) Option {
	return func(c *Calendar) error {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			return nil
		}
		mask, err := cronmask.New(expr)
		if err != nil {
			return &ConfigurationError{Entry: expr, Reason: err.Error()}
		}
		c.window = mask
		c.schedule = expr
		return nil
	}
}

// New builds a calendar from already typed weekdays.
func New(days []Weekday, options ...Option) (*Calendar, error) {
	c := &Calendar{
		days:     make(map[Weekday]struct{}, len(days)),
		location: time.Local,
	}
	var errs error
	for _, day := range days {
		if !day.Valid() {
			errs = multierr.Append(errs, &ConfigurationError{Entry: strconv.Itoa(int(day)), Reason: "weekday must be between 0 (Monday) and 6 (Sunday)"})
			continue
		}
		c.days[day] = struct{}{}
	}
	for _, option := range options {
		errs = multierr.Append(errs, option(c))
	}
	if errs != nil {
		return nil, errs
	}
	return c, nil
}

// Parse builds a calendar from a comma separated list of weekday indexes,
// for example "4" or "4,5,6". An empty string yields an empty calendar.
func Parse(raw string, options ...Option) (*Calendar, error) {
	var days []Weekday
	var errs error
	if strings.TrimSpace(raw) != "" {
		for _, entry := range strings.Split(raw, ",") {
			entry = strings.TrimSpace(entry)
			value, err := strconv.Atoi(entry)
			if err != nil {
				errs = multierr.Append(errs, &ConfigurationError{Entry: entry, Reason: "not an integer"})
				continue
			}
			days = append(days, Weekday(value))
		}
	}
	c, err := New(days, options...)
	if err := multierr.Append(errs, err); err != nil {
		return nil, err
	}
	return c, nil
}

// IsExcluded reports whether now falls on an excluded day, along with the
// weekday label used in messages.
func (c *Calendar) IsExcluded(now time.Time) (bool, string) {
	now = now.In(c.location)
	day := FromTime(now)
	if _, ok := c.days[day]; ok {
		return true, day.String()
	}
	if c.window != nil && c.window.Match(now) {
		return true, day.String()
	}
	return false, day.String()
}

// Days returns the excluded weekdays in ascending order.
func (c *Calendar) Days() []Weekday {
	days := make([]Weekday, 0, len(c.days))
	for day := range c.days {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

func (c *Calendar) Location() *time.Location {
	return c.location
}

func (c *Calendar) FreezeWindow() string {
	return c.schedule
}

func (c *Calendar) String() string {
	days := c.Days()
	labels := make([]string, 0, len(days))
	for _, day := range days {
		labels = append(labels, day.String())
	}
	out := fmt.Sprintf("[%s] in %s", strings.Join(labels, ","), c.location)
	if c.schedule != "" {
		out += fmt.Sprintf(", freeze window %q", c.schedule)
	}
	return out
}
