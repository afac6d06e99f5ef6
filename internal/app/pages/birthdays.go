package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

const noDate = "no date"

type BirthdayRow struct {
	ID       int
	FullName string
	Birthday string
}

type BirthdaysView struct {
	Month int
	Rows  []BirthdayRow
}

type Birthdays struct {
	api Caller
	now Clock
}

func NewBirthdays(c Caller, now Clock) *Birthdays {
	if now == nil {
		now = time.Now
	}
	return &Birthdays{api: c, now: now}
}

// Load lists birthdays in month (1-12). Zero selects the current month.
func (b *Birthdays) Load(ctx context.Context, month int) (*BirthdaysView, error) {
	if month == 0 {
		month = int(b.now().Month())
	}
	if month < 1 || month > 12 {
		return nil, invalid("month must be between 1 and 12")
	}

	var entries []hr.BirthdayEntry
	if err := loadAll(ctx, get(b.api, api.BirthdaysPath(month), &entries)); err != nil {
		return nil, err
	}

	now := b.now()
	rows := make([]BirthdayRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, BirthdayRow{
			ID:       e.ID,
			FullName: e.FullName,
			Birthday: FormatBirthday(e.Birthday, now),
		})
	}

	return &BirthdaysView{Month: month, Rows: rows}, nil
}

// FormatBirthday renders "DD.MM.YYYY (N years)" with the age as of now.
// A missing value renders "no date"; an unparsable one is returned as is.
func FormatBirthday(value *string, now time.Time) string {
	raw := deref(value)
	if raw == "" {
		return noDate
	}

	date, err := time.Parse(hr.DateLayout, raw)
	if err != nil {
		date, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return raw
		}
	}

	age := now.Year() - date.Year()
	if now.Month() < date.Month() || (now.Month() == date.Month() && now.Day() < date.Day()) {
		age--
	}

	return fmt.Sprintf("%s (%d years)", date.Format("02.01.2006"), age)
}
