package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cosmolab/akompta-api/internal/application/ledger"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

func catalogue(names ...string) []*entity.Product {
	out := make([]*entity.Product, 0, len(names))
	for i, name := range names {
		out = append(out, &entity.Product{ID: string(rune('a' + i)), Name: name})
	}
	return out
}

func TestMatchProduct_ExactInsensibleALaCasse(t *testing.T) {
	products := catalogue("Savon", "Riz")
	p := ledger.MatchProduct(products, "SAVON")
	assert.NotNil(t, p)
	assert.Equal(t, "Savon", p.Name)
}

func TestMatchProduct_IgnoreLesAccents(t *testing.T) {
	products := catalogue("Riz parfumé", "Savon")
	p := ledger.MatchProduct(products, "riz parfume")
	assert.NotNil(t, p)
	assert.Equal(t, "Riz parfumé", p.Name)
}

func TestMatchProduct_SousChaineUnique(t *testing.T) {
	products := catalogue("Savon de Marseille", "Riz")
	p := ledger.MatchProduct(products, "marseille")
	assert.NotNil(t, p)
	assert.Equal(t, "Savon de Marseille", p.Name)
}

func TestMatchProduct_SousChaineAmbigueRetourneNil(t *testing.T) {
	products := catalogue("Savon noir", "Savon blanc")
	assert.Nil(t, ledger.MatchProduct(products, "savon"),
		"deux candidats en sous-chaîne doivent rester ambigus")
}

func TestMatchProduct_ExactPrioritaireSurSousChaine(t *testing.T) {
	products := catalogue("Savon", "Savon noir")
	p := ledger.MatchProduct(products, "savon")
	assert.NotNil(t, p, "une correspondance exacte lève l'ambiguïté")
	assert.Equal(t, "Savon", p.Name)
}

func TestMatchProduct_AucuneCorrespondance(t *testing.T) {
	products := catalogue("Savon", "Riz")
	assert.Nil(t, ledger.MatchProduct(products, "huile"))
}

func TestMatchProduct_CatalogueVide(t *testing.T) {
	assert.Nil(t, ledger.MatchProduct(nil, "savon"))
}
