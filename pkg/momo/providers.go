// Package momo contient le catalogue des fournisseurs Mobile Money supportés
// pour les transactions d'épargne (dépôts et retraits).
package momo

import "github.com/shopspring/decimal"

// Identifiants des fournisseurs Mobile Money.
const (
	ProviderMTN    = "mtn_momo"
	ProviderOrange = "orange_money"
	ProviderMoov   = "moov_money"
)

// Fees taux de frais appliqués par le fournisseur.
// Informatif uniquement : jamais appliqué aux montants enregistrés.
type Fees struct {
	Deposit    decimal.Decimal `json:"deposit"`
	Withdrawal decimal.Decimal `json:"withdrawal"`
}

// Provider fournisseur Mobile Money (catalogue statique).
type Provider struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Color     string `json:"color"`
	Fees      Fees   `json:"fees"`
}

// Taux standards observés sur le marché : 1,0 % dépôt / 1,5 % retrait.
var (
	standardDepositFee    = decimal.NewFromFloat(0.01)
	standardWithdrawalFee = decimal.NewFromFloat(0.015)
)

// Providers liste ordonnée des fournisseurs supportés.
var Providers = []Provider{
	{
		ID:        ProviderMTN,
		Name:      "MTN Mobile Money",
		ShortName: "MTN MoMo",
		Color:     "#FFCC00",
		Fees:      Fees{Deposit: standardDepositFee, Withdrawal: standardWithdrawalFee},
	},
	{
		ID:        ProviderOrange,
		Name:      "Orange Money",
		ShortName: "Orange Money",
		Color:     "#FF6600",
		Fees:      Fees{Deposit: standardDepositFee, Withdrawal: standardWithdrawalFee},
	},
	{
		ID:        ProviderMoov,
		Name:      "Moov Money",
		ShortName: "Moov Money",
		Color:     "#0066CC",
		Fees:      Fees{Deposit: standardDepositFee, Withdrawal: standardWithdrawalFee},
	},
}

// ByID retourne le fournisseur correspondant à l'identifiant, ou nil s'il est inconnu.
func ByID(id string) *Provider {
	for i := range Providers {
		if Providers[i].ID == id {
			return &Providers[i]
		}
	}
	return nil
}

// IsValid indique si l'identifiant correspond à un fournisseur supporté.
func IsValid(id string) bool {
	return ByID(id) != nil
}
