package pages

import (
	"context"
	"time"

	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

type AuditRow struct {
	ID      int
	When    string
	User    string
	Action  string
	Entity  string
	Details string
}

type Audit struct {
	api Caller
}

func NewAudit(c Caller) *Audit {
	return &Audit{api: c}
}

func (a *Audit) Load(ctx context.Context) ([]AuditRow, error) {
	var entries []hr.AuditEntry
	if err := loadAll(ctx, get(a.api, api.AuditPath, &entries)); err != nil {
		return nil, err
	}

	rows := make([]AuditRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, AuditRow{
			ID:      e.ID,
			When:    formatTimestamp(e.Timestamp),
			User:    e.User,
			Action:  e.Action,
			Entity:  e.Entity,
			Details: orPlaceholder(e.Details),
		})
	}
	return rows, nil
}

// formatTimestamp shortens an API timestamp to "DD.MM.YYYY HH:MM", keeping
// values it cannot parse.
func formatTimestamp(raw string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02.01.2006 15:04")
		}
	}
	return raw
}
