package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// isoLayout matches the naive ISO-8601 strings the validator writes.
const isoLayout = "2006-01-02T15:04:05.999999"

// timestampLayouts are tried in order when a timestamp arrives as text.
var timestampLayouts = []string{
	time.RFC3339Nano,
	isoLayout,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp is a nullable point in time read from either a TEXT or a
// DATETIME column. SQLite drivers hand back whichever one the producer
// declared, so both are accepted.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// ParseTimestamp parses an ISO-8601 timestamp with or without a zone offset.
// Zone-less values are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("models: unrecognised timestamp %q", s)
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*t = Timestamp{}
		return nil
	case time.Time:
		*t = Timestamp{Time: v, Valid: true}
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("models: cannot scan %T into Timestamp", value)
	}
}

func (t *Timestamp) scanString(s string) error {
	if strings.TrimSpace(s) == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = Timestamp{Time: parsed, Valid: true}
	return nil
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time.Format(isoLayout), nil
}

// GormDataType tells gorm how to treat the column.
func (Timestamp) GormDataType() string {
	return "datetime"
}

// Ptr returns the time, or nil when the column was NULL.
func (t Timestamp) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	tt := t.Time
	return &tt
}

// isoFormat renders a timestamp the way the producer stores it; nil stays nil.
func isoFormat(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(isoLayout)
}
