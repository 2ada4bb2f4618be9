package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/report"
	"github.com/shopspring/decimal"
)

type jsonReport struct {
	ExportedAt   string          `json:"exported_at"`
	Quarter      string          `json:"quarter"`
	Year         int             `json:"year"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Compensation decimal.Decimal `json:"total_compensation"`
	Hours        decimal.Decimal `json:"total_hours"`
	Count        int             `json:"total_operations"`
	Members      []jsonMember    `json:"members"`
	Types        []jsonType      `json:"types"`
	Operations   []jsonOperation `json:"operations"`
}

type jsonMember struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Rank       string          `json:"rank"`
	Operations int             `json:"operations"`
	Hours      decimal.Decimal `json:"hours"`
	Total      decimal.Decimal `json:"total"`
}

type jsonType struct {
	Type  string          `json:"type"`
	Count int             `json:"count"`
	Hours decimal.Decimal `json:"hours"`
	Total decimal.Decimal `json:"total"`
}

type jsonOperation struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	MemberID string          `json:"member_id"`
	Member   string          `json:"member"`
	TypeKey  string          `json:"type_key"`
	Type     string          `json:"type"`
	Hours    decimal.Decimal `json:"hours"`
	Rate     decimal.Decimal `json:"rate"`
	Total    decimal.Decimal `json:"total"`
}

// ToJSON writes the quarterly report with its three views and detail list.
func ToJSON(r *report.QuarterlyReport, path string) error {
	out := jsonReport{
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		Quarter:      r.Range.Quarter.String(),
		Year:         r.Range.Year,
		From:         r.Range.Start.Format(brigade.DateLayout),
		To:           r.Range.End.Format(brigade.DateLayout),
		Compensation: r.Compensation,
		Hours:        r.Hours,
		Count:        r.Totals.Operations,
		Members:      []jsonMember{},
		Types:        []jsonType{},
		Operations:   []jsonOperation{},
	}

	for _, m := range r.Members {
		out.Members = append(out.Members, jsonMember{
			ID:         m.ID,
			Name:       m.Name,
			Rank:       m.Rank,
			Operations: m.Operations,
			Hours:      m.Hours,
			Total:      m.Total,
		})
	}
	for _, t := range r.Types {
		out.Types = append(out.Types, jsonType(t))
	}
	for _, op := range r.Operations {
		out.Operations = append(out.Operations, jsonOperation{
			ID:       op.ID,
			Date:     op.Date.Format(brigade.DateLayout),
			MemberID: op.MemberID,
			Member:   op.MemberName,
			TypeKey:  op.TypeKey,
			Type:     op.Type,
			Hours:    op.Hours,
			Rate:     op.Rate,
			Total:    op.Total,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
