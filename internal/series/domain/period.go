package series

import (
	"strconv"
	"time"
)

// Encoding selects how a period code token maps to a calendar month.
type Encoding string

const (
	// EncodingMonthYear is a strict six-digit MMYYYY token, e.g. "012023".
	EncodingMonthYear Encoding = "month-year"
	// EncodingFlexYear disambiguates by token length: five digits are a
	// one-digit month plus a four-digit year, six digits are MMYYYY.
	EncodingFlexYear Encoding = "flex-year"
	// EncodingShort is a four-digit mmyy token with a 2000-based year.
	EncodingShort Encoding = "short"
)

// IsValid checks the encoding is one of the supported values.
func (e Encoding) IsValid() bool {
	switch e {
	case EncodingMonthYear, EncodingFlexYear, EncodingShort:
		return true
	default:
		return false
	}
}

// Horizon bounds the months a period code may resolve to. A zero End means
// the horizon runs through "today".
type Horizon struct {
	Start time.Time
	End   time.Time
}

// NewHorizon validates a horizon. Start is required; End, when set, must
// not precede Start.
func NewHorizon(start, end time.Time) (Horizon, error) {
	if start.IsZero() {
		return Horizon{}, ErrInvalidHorizon
	}
	if !end.IsZero() && end.Before(start) {
		return Horizon{}, ErrInvalidHorizon
	}
	return Horizon{Start: start, End: end}, nil
}

func (h Horizon) contains(date, now time.Time) bool {
	if date.Before(h.Start) {
		return false
	}
	end := h.End
	if end.IsZero() {
		end = now
	}
	return !date.After(end)
}

// PeriodParser resolves column-header period codes to first-of-month dates.
type PeriodParser struct {
	encoding Encoding
	horizon  Horizon
	now      func() time.Time
}

// ParserOption customizes a PeriodParser.
type ParserOption func(*PeriodParser)

// WithNow overrides the clock used for open-ended horizons.
func WithNow(now func() time.Time) ParserOption {
	return func(p *PeriodParser) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPeriodParser constructs a parser for one encoding and horizon.
func NewPeriodParser(encoding Encoding, horizon Horizon, opts ...ParserOption) (*PeriodParser, error) {
	if !encoding.IsValid() {
		return nil, ErrInvalidEncoding
	}
	if horizon.Start.IsZero() {
		return nil, ErrInvalidHorizon
	}
	p := &PeriodParser{encoding: encoding, horizon: horizon, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Parse converts a period code token to the first day of its month.
// ok is false for non-numeric tokens, unrecognized lengths, months outside
// 1..12, and dates outside the horizon; none of these are errors.
// ambiguous is true when the five-digit length heuristic decided the
// month/year split, so callers can flag the token to the data provider.
func (p *PeriodParser) Parse(token string) (date time.Time, ambiguous, ok bool) {
	if !allDigits(token) {
		return time.Time{}, false, false
	}

	var month, year int
	switch p.encoding {
	case EncodingMonthYear:
		if len(token) != 6 {
			return time.Time{}, false, false
		}
		month, year = atoi(token[:2]), atoi(token[2:])
	case EncodingFlexYear:
		switch len(token) {
		case 5:
			month, year = atoi(token[:1]), atoi(token[1:])
			ambiguous = true
		case 6:
			month, year = atoi(token[:2]), atoi(token[2:])
		default:
			return time.Time{}, false, false
		}
	case EncodingShort:
		if len(token) != 4 {
			return time.Time{}, false, false
		}
		month, year = atoi(token[:2]), 2000+atoi(token[2:])
	default:
		return time.Time{}, false, false
	}

	if month < 1 || month > 12 {
		return time.Time{}, false, false
	}
	date = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	if !p.horizon.contains(date, p.now()) {
		return time.Time{}, false, false
	}
	return date, ambiguous, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
