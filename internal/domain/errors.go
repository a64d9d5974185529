package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound          = errors.New("ressource introuvable")
	ErrUserNotFound      = errors.New("utilisateur introuvable")
	ErrDuplicate         = errors.New("ressource dupliquée")
	ErrInvalidInput      = errors.New("entrée invalide")
	ErrUnauthorized      = errors.New("non autorisé")
	ErrForbidden         = errors.New("accès refusé")
	ErrInsufficientStock = errors.New("stock insuffisant")
	ErrInvalidState      = errors.New("état incompatible avec l'opération")
	ErrUpstream          = errors.New("service externe indisponible")
)
