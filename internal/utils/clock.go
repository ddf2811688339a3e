package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Period string

const (
	PeriodAM Period = "AM"
	PeriodPM Period = "PM"
)

const minutesPerDay = 24 * 60

var ErrInvalidClock = errors.New("invalid clock time")

// ParseClock переводит "h:mm AM" / "hh:mm PM" в минуты от полуночи.
// Часы 1..12, минуты 0..59, период AM или PM (регистр не важен).
// Хвост после периода (например " - 05:00 PM") игнорируется, чтобы
// на вход можно было подать строку диапазона целиком.
func ParseClock(str string) (int, error) {
	fields := strings.Fields(str)
	if len(fields) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, str)
	}

	parts := strings.Split(fields[0], ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, str)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 1 || hours > 12 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, str)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, str)
	}

	hour24, err := To24Hour(hours, Period(strings.ToUpper(fields[1])))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, str)
	}

	return hour24*60 + minutes, nil
}

// ParseClockRange разбирает "09:00 AM - 05:00 PM"
func ParseClockRange(str string) (int, int, error) {
	bounds := strings.Split(str, " - ")
	if len(bounds) != 2 {
		return 0, 0, fmt.Errorf("%w: range %q", ErrInvalidClock, str)
	}

	start, err := ParseClock(bounds[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(bounds[1])
	if err != nil {
		return 0, 0, err
	}

	return start, end, nil
}

// To24Hour: 12 AM -> 0, 12 PM -> 12, 1 PM -> 13
func To24Hour(hour12 int, period Period) (int, error) {
	if hour12 < 1 || hour12 > 12 {
		return 0, fmt.Errorf("%w: hour %d", ErrInvalidClock, hour12)
	}

	switch period {
	case PeriodAM:
		if hour12 == 12 {
			return 0, nil
		}
		return hour12, nil
	case PeriodPM:
		if hour12 == 12 {
			return 12, nil
		}
		return hour12 + 12, nil
	}

	return 0, fmt.Errorf("%w: period %q", ErrInvalidClock, period)
}

// FormatClock24 форматирует минуты от полуночи как "HH:MM"
func FormatClock24(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatClock12 форматирует минуты от полуночи как "hh:mm AM"
func FormatClock12(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	hour := minutes / 60
	period := PeriodAM
	if hour >= 12 {
		period = PeriodPM
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", hour12, minutes%60, period)
}

// FormatHourMinute собирает "HH:MM" из 24-часового часа и минуты
func FormatHourMinute(hour24, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour24, minute)
}
