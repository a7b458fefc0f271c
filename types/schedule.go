package types

import (
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// KST is the zone used when a client sends full timestamps instead of bare
// clock or calendar values.
var KST = time.FixedZone("KST", 9*60*60)

// TimeOfDay is a wall-clock value with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts "15:04", "15:04:05" or an RFC3339 timestamp.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.In(KST)
		return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

// Clock returns a TimeOfDay pointer, mostly for literals in tests and defaults.
func Clock(hour, minute int) *TimeOfDay {
	return &TimeOfDay{Hour: hour, Minute: minute}
}

// Minutes is the offset from midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Date is a calendar date without a zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// ParseDate accepts "2006-01-02" or an RFC3339 timestamp (read in KST).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t.In(KST)), nil
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// DateOf takes the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate returns a Date pointer, mostly for literals in tests and defaults.
func NewDate(year int, month time.Month, day int) *Date {
	d := DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	return &d
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddMonths moves by whole months, clamping to the last day of the target
// month (Jan 31 + 1 month = Feb 28/29).
func (d Date) AddMonths(n int) Date {
	first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	day := d.Day
	if day > last {
		day = last
	}
	return Date{Year: first.Year(), Month: first.Month(), Day: day}
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }
func (d Date) After(o Date) bool  { return d.Time().After(o.Time()) }

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Weekday is one of the tokens Mon..Sun.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

var weekdayLabels = map[Weekday]string{
	Monday:    "월",
	Tuesday:   "화",
	Wednesday: "수",
	Thursday:  "목",
	Friday:    "금",
	Saturday:  "토",
	Sunday:    "일",
}

func (w Weekday) Valid() bool {
	_, ok := weekdayLabels[w]
	return ok
}

// Korean returns the one-syllable Korean day name.
func (w Weekday) Korean() string {
	return weekdayLabels[w]
}

func (w *Weekday) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*w = ""
		return nil
	}
	v := Weekday(s)
	if !v.Valid() {
		return fmt.Errorf("unknown weekday %q", s)
	}
	*w = v
	return nil
}

// WeekdaySet holds unique weekday tokens; order carries no meaning.
type WeekdaySet []Weekday

func (s WeekdaySet) Contains(w Weekday) bool {
	for _, d := range s {
		if d == w {
			return true
		}
	}
	return false
}

func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var raw []Weekday
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	set := make(WeekdaySet, 0, len(raw))
	for _, d := range raw {
		if d == "" || set.Contains(d) {
			continue
		}
		set = append(set, d)
	}
	*s = set
	return nil
}
