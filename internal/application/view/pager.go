// Package view estado de las vistas de lista de la consola: página actual, búsqueda,
// columnas visibles, grupos expandidos y preferencias del operador. Lee de las stores
// y dispara las acciones de los casos de uso.
package view

import (
	"github.com/jhoicas/consola-negocios/internal/application/dto"
	"github.com/jhoicas/consola-negocios/internal/domain/entity"
)

// Pagination metadatos de la página cacheada: "anterior" se deshabilita en la página 1 y
// "siguiente" cuando page*limit >= total. La página queda en [1, PageCount].
func Pagination[T any](p entity.Page[T], limit int) dto.PageView {
	if p.Limit <= 0 {
		p.Limit = limit
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if n := p.PageCount(); p.Page > n {
		p.Page = n
	}
	return dto.PageView{
		Page:      p.Page,
		Limit:     p.Limit,
		Total:     p.Total,
		PageCount: p.PageCount(),
		HasPrev:   p.Page > 1,
		HasNext:   p.Page*p.Limit < p.Total,
	}
}
