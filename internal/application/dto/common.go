package dto

// ErrorResponse cuerpo de error HTTP de la consola.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope forma común de respuesta del backend: el payload viaja en data (o en un campo
// con nombre propio según el endpoint) y los errores en message.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// PageView metadatos de paginación tal como los consume la vista.
type PageView struct {
	Page      int  `json:"page"`
	Limit     int  `json:"limit"`
	Total     int  `json:"total"`
	PageCount int  `json:"page_count"`
	HasPrev   bool `json:"has_prev"`
	HasNext   bool `json:"has_next"`
}

// CategoryRequest alta o renombrado de una categoría.
type CategoryRequest struct {
	Nombre string `json:"nombre"`
}
