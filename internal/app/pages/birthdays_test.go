package pages_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astro-web3/hrdesk-console/internal/app/pages"
	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

func fixedClock(t time.Time) pages.Clock {
	return func() time.Time { return t }
}

func TestFormatBirthday(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value *string
		want  string
	}{
		{name: "missing", value: nil, want: "no date"},
		{name: "empty", value: ptr(""), want: "no date"},
		{name: "already had birthday", value: ptr("1990-03-15"), want: "15.03.1990 (36 years)"},
		{name: "birthday later this month", value: ptr("1990-03-16"), want: "16.03.1990 (35 years)"},
		{name: "birthday earlier this year", value: ptr("2000-01-01"), want: "01.01.2000 (26 years)"},
		{name: "unparsable kept raw", value: ptr("15/03/1990"), want: "15/03/1990"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pages.FormatBirthday(tt.value, now))
		})
	}
}

func TestBirthdays_DefaultsToCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	fake := newFakeAPI().reply(http.MethodGet, api.BirthdaysPath(7), []hr.BirthdayEntry{
		{ID: 1, FullName: "Kim", Birthday: ptr("1985-07-20")},
		{ID: 2, FullName: "Lee"},
	})

	view, err := pages.NewBirthdays(fake, fixedClock(now)).Load(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 7, view.Month)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "20.07.1985 (40 years)", view.Rows[0].Birthday)
	assert.Equal(t, "no date", view.Rows[1].Birthday)
}

func TestBirthdays_RejectsOutOfRangeMonth(t *testing.T) {
	fake := newFakeAPI()

	_, err := pages.NewBirthdays(fake, nil).Load(context.Background(), 13)

	var vErr *pages.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, fake.recorded())
}
