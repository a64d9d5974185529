package entity

import "time"

// Rôles valides pour User.
const (
	RoleMerchant = "merchant"
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Langues préférées supportées par l'interface vocale.
const (
	LangFrench = "fr"
	LangFon    = "fon"
	LangYoruba = "yoruba"
)

// User représente un commerçant. Il possède exclusivement ses produits,
// ventes, dépenses, épargnes, mouvements de stock et rapports.
type User struct {
	ID                string
	Username          string
	Email             string
	PhoneNumber       string
	PasswordHash      string // hash bcrypt, jamais en clair après persistance
	Role              string // merchant, admin, operator
	BusinessName      string
	BusinessAddress   string
	PreferredLanguage string // fr, fon, yoruba
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
