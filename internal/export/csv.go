package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/ekwiwalent/internal/brigade"
)

var csvHeader = []string{"ID", "Data", "Strażak", "Typ", "Godziny", "Stawka (zł/h)", "Kwota (zł)"}

// ToCSV writes one row per operation, in the given order.
func ToCSV(ops []brigade.Operation, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, op := range ops {
		row := []string{
			op.ID,
			op.Date.Format(brigade.DateLayout),
			op.MemberName,
			op.Type,
			op.Hours.String(),
			op.Rate.String(),
			op.Total.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
