package plants

import (
	"sort"

	"github.com/dayti/agribot/internal/domain"
)

// Spec holds the growth characteristics of one plant.
// Times are in-game growth durations in minutes. FruitCount is 1 for
// single-yield plants (FruitMinutes is then 0 or the single fruit's time).
type Spec struct {
	StemMinutes  int
	FruitMinutes int
	FruitCount   int
}

// table maps plant names to their growth data. Per-fruit times were derived
// from total fruit cycle time divided by fruit count.
var table = map[string]Spec{
	"Concombre":            {StemMinutes: 80, FruitMinutes: 0, FruitCount: 1},
	"Oignons":              {StemMinutes: 40, FruitMinutes: 0, FruitCount: 1},
	"Laitue":               {StemMinutes: 10, FruitMinutes: 0, FruitCount: 1},
	"Pois":                 {StemMinutes: 480, FruitMinutes: 80, FruitCount: 3},
	"Tomates":              {StemMinutes: 60, FruitMinutes: 20, FruitCount: 2},
	"Poivron":              {StemMinutes: 120, FruitMinutes: 120, FruitCount: 4},
	"Zucchini":             {StemMinutes: 320, FruitMinutes: 0, FruitCount: 1},
	"Ail":                  {StemMinutes: 120, FruitMinutes: 0, FruitCount: 1},
	"Glycine glacée":       {StemMinutes: 20, FruitMinutes: 0, FruitCount: 1},
	"Wazabi":               {StemMinutes: 600, FruitMinutes: 0, FruitCount: 1},
	"Courgette":            {StemMinutes: 1200, FruitMinutes: 0, FruitCount: 1},
	"Piment de cayenne":    {StemMinutes: 240, FruitMinutes: 0, FruitCount: 1},
	"Vixen":                {StemMinutes: 60, FruitMinutes: 0, FruitCount: 1},
	"Lune Akari":           {StemMinutes: 40, FruitMinutes: 45, FruitCount: 1},
	"Nénuphar":             {StemMinutes: 300, FruitMinutes: 120, FruitCount: 3},
	"Chou":                 {StemMinutes: 240, FruitMinutes: 160, FruitCount: 3},
	"Plume de lave":        {StemMinutes: 120, FruitMinutes: 240, FruitCount: 4},
	"Fleur du brasier":     {StemMinutes: 40, FruitMinutes: 0, FruitCount: 1},
	"Brocoli":              {StemMinutes: 120, FruitMinutes: 80, FruitCount: 3},
	"Iris Pyrobrase":       {StemMinutes: 1440, FruitMinutes: 0, FruitCount: 1},
	"Vénus attrape-mouche": {StemMinutes: 300, FruitMinutes: 60, FruitCount: 1},
	"Graine de l'enfer":    {StemMinutes: 190, FruitMinutes: 0, FruitCount: 1},
	"Âme gelée":            {StemMinutes: 80, FruitMinutes: 180, FruitCount: 5},
	"Pommes des ténèbres":  {StemMinutes: 360, FruitMinutes: 180, FruitCount: 4},
	"Cœur du vide":         {StemMinutes: 960, FruitMinutes: 0, FruitCount: 1},
	"Orchidée Abyssale":    {StemMinutes: 360, FruitMinutes: 100, FruitCount: 3},
}

// Lookup returns the growth data for a plant name.
func Lookup(name string) (Spec, error) {
	spec, ok := table[name]
	if !ok {
		return Spec{}, domain.ErrUnknownPlant
	}
	return spec, nil
}

// Names returns the sorted list of known plant names.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
