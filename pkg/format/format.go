// Package format renders money and dates for Indonesian shoppers.
package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// InvalidDate is what Date and DateTime return for input they cannot parse.
const InvalidDate = "Invalid Date"

var printer = message.NewPrinter(language.Indonesian)

// Rupiah formats a whole-Rupiah amount, e.g. 20000 -> "Rp 20.000".
func Rupiah(amount int64) string {
	if amount < 0 {
		// uint64 negation stays exact for math.MinInt64.
		return "-Rp " + printer.Sprintf("%d", -uint64(amount))
	}
	return "Rp " + printer.Sprintf("%d", amount)
}

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Jakarta is the zone dates are displayed in.
var Jakarta = loadJakarta()

func loadJakarta() *time.Location {
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return loc
	}
	return time.FixedZone("WIB", 7*60*60)
}

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse reads the timestamp shapes the Remote Service emits. Zone-less values
// are taken as Jakarta time.
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, Jakarta); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("format: unrecognised date %q", value)
}

// Date renders a long Indonesian date, e.g. "16 Oktober 2026".
func Date(value string) string {
	t, err := Parse(value)
	if err != nil {
		return InvalidDate
	}
	return LongDate(t)
}

// DateTime renders a long date with the time, e.g. "16 Oktober 2026 14.05".
func DateTime(value string) string {
	t, err := Parse(value)
	if err != nil {
		return InvalidDate
	}
	return LongDateTime(t)
}

func LongDate(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	t = t.In(Jakarta)
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

func LongDateTime(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	t = t.In(Jakarta)
	return fmt.Sprintf("%s %02d.%02d", LongDate(t), t.Hour(), t.Minute())
}
