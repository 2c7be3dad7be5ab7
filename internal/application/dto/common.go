package dto

// DefaultPageSize tamaño de página del listado de patrimonios.
const DefaultPageSize = 15

// PageRequest paginación 1-based para listados.
type PageRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// Normalize aplica valores por defecto y devuelve limit/offset.
func (p *PageRequest) Normalize() (limit, offset int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	return p.PageSize, (p.Page - 1) * p.PageSize
}

// TotalPages cantidad de páginas para total elementos.
func (p PageRequest) TotalPages(total int) int {
	if p.PageSize <= 0 || total == 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
