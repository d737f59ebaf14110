package xbrlmodel

import (
	"fmt"
	"strings"
	"time"
)

// Period is an XBRL context period: either a single instant or a duration
// spanning [Start, End].
type Period struct {
	Instant time.Time
	Start   time.Time
	End     time.Time
}

// IsInstant reports whether this period is a point in time.
func (p Period) IsInstant() bool {
	return !p.Instant.IsZero()
}

// IsDuration reports whether this period spans a range.
func (p Period) IsDuration() bool {
	return p.Instant.IsZero() && !p.Start.IsZero() && !p.End.IsZero()
}

// EndDate returns the date that governs ordering: End for durations,
// Instant for instants.
func (p Period) EndDate() time.Time {
	if p.IsInstant() {
		return p.Instant
	}
	return p.End
}

// DurationDays returns the whole-day length of a duration period, or 0 for
// an instant.
func (p Period) DurationDays() int {
	if !p.IsDuration() {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours() / 24)
}

const dateLayout = "2006-01-02"

// PeriodKey is the stable identifier for a reporting period used to key
// columns in rendered and stitched statements. Two facts belong to the same
// period iff their PeriodKeys are equal (§3).
type PeriodKey string

// NewPeriodKey builds the canonical key for a period: "instant:YYYY-MM-DD"
// or "duration:YYYY-MM-DD/YYYY-MM-DD".
func NewPeriodKey(p Period) PeriodKey {
	if p.IsInstant() {
		return PeriodKey(fmt.Sprintf("instant:%s", p.Instant.Format(dateLayout)))
	}
	return PeriodKey(fmt.Sprintf("duration:%s/%s", p.Start.Format(dateLayout), p.End.Format(dateLayout)))
}

// EndDateUnix parses the trailing date out of a canonical PeriodKey and
// returns its unix-seconds value, for sorting keys without needing the
// original Period struct around. Returns 0 if the key is malformed.
func (k PeriodKey) EndDateUnix() int64 {
	s := string(k)
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return 0
	}
	rest := s[i+1:]
	if j := strings.LastIndex(rest, "/"); j >= 0 {
		rest = rest[j+1:]
	}
	t, err := time.Parse(dateLayout, rest)
	if err != nil {
		return 0
	}
	return t.Unix()
}

// Classification of a duration's length, used by the facts pipeline. Label
// text is never consulted (§8 property 9).
type DurationClass int

const (
	DurationClassOther DurationClass = iota
	DurationClassQuarterly
	DurationClassAnnual
)

// ClassifyDuration buckets a duration's day-length per §8 property 9:
// annual iff length >= 300 days, quarterly iff 80 <= length <= 100 days.
func ClassifyDuration(days int) DurationClass {
	switch {
	case days >= 300:
		return DurationClassAnnual
	case days >= 80 && days <= 100:
		return DurationClassQuarterly
	default:
		return DurationClassOther
	}
}
