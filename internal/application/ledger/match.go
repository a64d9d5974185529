package ledger

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// foldTransformer décompose en NFD, retire les marques diacritiques et
// recompose : "Café" et "cafe" deviennent équivalents.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldName(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// MatchProduct résout un nom de produit dicté vers un produit du catalogue.
// Stratégie de désambiguïsation : correspondance exacte (insensible à la
// casse et aux accents) d'abord, puis sous-chaîne si elle désigne un produit
// unique. Retourne nil si aucun produit ne correspond ou si la sous-chaîne
// est ambiguë, jamais "le premier qui matche".
func MatchProduct(products []*entity.Product, query string) *entity.Product {
	q := foldName(query)
	if q == "" {
		return nil
	}
	for _, p := range products {
		if foldName(p.Name) == q {
			return p
		}
	}
	var found *entity.Product
	for _, p := range products {
		if strings.Contains(foldName(p.Name), q) {
			if found != nil {
				return nil // ambigu : plusieurs produits contiennent la sous-chaîne
			}
			found = p
		}
	}
	return found
}
