package dto

// PageRequest pagination des listages.
type PageRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// DefaultPage applique les valeurs par défaut si Page/PerPage sont nuls.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = 20
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// Offset calcule l'offset SQL correspondant.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageResponse métadonnées de page dans les réponses.
type PageResponse struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"current_page"`
}

// NewPageResponse calcule le nombre de pages à partir du total.
func NewPageResponse(total, perPage, currentPage int) PageResponse {
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return PageResponse{Total: total, Pages: pages, CurrentPage: currentPage}
}

// ErrorResponse corps d'erreur HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse corps de confirmation simple.
type MessageResponse struct {
	Message string `json:"message"`
}
