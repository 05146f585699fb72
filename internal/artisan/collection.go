package artisan

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AverageRating returns the note shown for an artisan.
// Comments carry no rating of their own, so with comments present this is
// the stored note averaged over itself, rounded to one decimal.
func AverageRating(a *Artisan) float64 {
	n := len(a.Commentaires)
	if n == 0 {
		return a.Note
	}

	total := 0.0
	for range a.Commentaires {
		total += a.Note
	}
	return math.Round(total/float64(n)*10) / 10
}

// HasWhatsApp reports whether the artisan can be reached on WhatsApp.
func HasWhatsApp(a *Artisan) bool {
	return a.Whatsapp
}

// SortByRating returns a copy sorted by descending note.
func SortByRating(list []*Artisan) []*Artisan {
	out := append([]*Artisan(nil), list...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Note > out[j].Note })
	return out
}

// SortByName returns a copy sorted by name using French collation, so
// accented names sort next to their unaccented neighbours.
func SortByName(list []*Artisan) []*Artisan {
	out := append([]*Artisan(nil), list...)
	c := collate.New(language.French)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Nom, out[j].Nom) < 0
	})
	return out
}

// FilterByMetier keeps the artisans of one trade. An empty trade keeps all.
func FilterByMetier(list []*Artisan, metier string) []*Artisan {
	if metier == "" {
		return list
	}
	out := []*Artisan{}
	for _, a := range list {
		if a.Metier == metier {
			out = append(out, a)
		}
	}
	return out
}

// FilterByVille keeps the artisans whose city contains ville, ignoring case.
// An empty city keeps all.
func FilterByVille(list []*Artisan, ville string) []*Artisan {
	if ville == "" {
		return list
	}
	needle := strings.ToLower(ville)
	out := []*Artisan{}
	for _, a := range list {
		if strings.Contains(strings.ToLower(a.Ville), needle) {
			out = append(out, a)
		}
	}
	return out
}

// FilterBySearch keeps the artisans whose name, trade, city or district
// contains term, ignoring case. A blank term keeps all.
func FilterBySearch(list []*Artisan, term string) []*Artisan {
	if strings.TrimSpace(term) == "" {
		return list
	}
	return matching(list, term)
}

func matching(list []*Artisan, term string) []*Artisan {
	needle := strings.ToLower(term)
	out := []*Artisan{}
	for _, a := range list {
		if strings.Contains(strings.ToLower(a.Nom), needle) ||
			strings.Contains(strings.ToLower(a.Metier), needle) ||
			strings.Contains(strings.ToLower(a.Ville), needle) ||
			strings.Contains(strings.ToLower(a.Quartier), needle) {
			out = append(out, a)
		}
	}
	return out
}
