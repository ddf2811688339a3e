package json_types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

func parseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	// Если не удалось пробуем дату со временем, но без таймзоны
	if err != nil {
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, time.UTC)
		if err != nil {
			// Если не удалось, пробуем как дату без времени
			parsedDate, err = time.ParseInLocation(DateLayout, str, time.UTC)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
			}
		}
	}

	return parsedDate, nil
}

// Date - календарная дата записи. Бэкенд присылает её то как
// "2024-05-01", то как ISO-таймстемп; в JSON мы всегда отдаем "2024-05-01".
type Date struct {
	Date time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(str string) (Date, error) {
	parsed, err := parseDate(strings.TrimSpace(str))
	if err != nil {
		return Date{}, err
	}
	return NewDate(parsed.Year(), parsed.Month(), parsed.Day()), nil
}

func (t *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Date{}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse date: %v", err)
	}
	if str == "" {
		*t = Date{}
		return nil
	}

	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	if t.Date.IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(t.String())
}

func (t Date) String() string {
	if t.Date.IsZero() {
		return ""
	}
	return t.Date.Format(DateLayout)
}

func (t Date) IsZero() bool {
	return t.Date.IsZero()
}

// Compare сравнивает только календарные дни
func (t Date) Compare(other Date) int {
	return strings.Compare(t.String(), other.String())
}

func (t Date) AddDays(days int) Date {
	next := t.Date.AddDate(0, 0, days)
	return NewDate(next.Year(), next.Month(), next.Day())
}
