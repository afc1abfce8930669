package entity

// Page respuesta paginada del backend: page es 1-based y limit el tamaño de página.
type Page[T any] struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Data  []T `json:"data"`
}

// EmptyPage página vacía en la posición 1.
func EmptyPage[T any](limit int) Page[T] {
	return Page[T]{Page: 1, Limit: limit, Data: []T{}}
}

// PageCount ceil(total/limit); nunca menor que 1.
func (p Page[T]) PageCount() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}
