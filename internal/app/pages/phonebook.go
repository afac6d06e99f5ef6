package pages

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

type PhonebookRow struct {
	ID            int
	FullName      string
	Department    string
	Position      string
	InternalPhone string
	ExternalPhone string
	Email         string
}

type PhonebookView struct {
	Query string
	Rows  []PhonebookRow
}

type Phonebook struct {
	api Caller
}

func NewPhonebook(c Caller) *Phonebook {
	return &Phonebook{api: c}
}

// Load searches the phonebook and resolves department and position names.
// Rows are ordered by department name using Russian collation; entries
// without a known department sort first and ties keep API order.
func (p *Phonebook) Load(ctx context.Context, query string) (*PhonebookView, error) {
	query = strings.TrimSpace(query)

	var (
		entries     []hr.PhonebookEntry
		departments []hr.Department
		positions   []hr.Position
	)
	err := loadAll(ctx,
		get(p.api, api.PhonebookPath(query), &entries),
		get(p.api, api.DepartmentsPath, &departments),
		get(p.api, api.PositionsPath, &positions),
	)
	if err != nil {
		return nil, err
	}

	deptNames := departmentNames(departments)
	posNames := positionNames(positions)

	sortKey := func(e hr.PhonebookEntry) string {
		if e.DepartmentID == nil {
			return ""
		}
		return deptNames[*e.DepartmentID]
	}
	col := collate.New(language.Russian)
	slices.SortStableFunc(entries, func(a, b hr.PhonebookEntry) int {
		return col.CompareString(sortKey(a), sortKey(b))
	})

	rows := make([]PhonebookRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, PhonebookRow{
			ID:            e.ID,
			FullName:      e.FullName,
			Department:    nameOf(deptNames, e.DepartmentID),
			Position:      nameOf(posNames, e.PositionID),
			InternalPhone: orPlaceholder(e.InternalPhone),
			ExternalPhone: orPlaceholder(e.ExternalPhone),
			Email:         orPlaceholder(e.Email),
		})
	}

	return &PhonebookView{Query: query, Rows: rows}, nil
}
