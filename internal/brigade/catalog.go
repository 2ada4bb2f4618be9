package brigade

import "github.com/shopspring/decimal"

// OperationType is a catalog entry: a category of service event and its hourly rate.
type OperationType struct {
	Key   string
	Label string
	Rate  decimal.Decimal // zł per hour
}

// Catalog is the read-only list of operation types offered when logging an event.
type Catalog []OperationType

// DefaultCatalog returns the reference rates used when no catalog is configured.
func DefaultCatalog() Catalog {
	return Catalog{
		{Key: "fire", Label: "Akcja ratownicza", Rate: decimal.NewFromInt(25)},
		{Key: "training", Label: "Szkolenie/ćwiczenie", Rate: decimal.NewFromInt(8)},
		{Key: "other", Label: "Zadania zlecone", Rate: decimal.NewFromInt(5)},
		{Key: "course", Label: "Kurs podstawowy", Rate: decimal.NewFromInt(5)},
	}
}

// Lookup finds the type with the given key.
func (c Catalog) Lookup(key string) (OperationType, bool) {
	for _, t := range c {
		if t.Key == key {
			return t, true
		}
	}
	return OperationType{}, false
}
