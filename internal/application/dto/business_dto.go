package dto

import "github.com/jhoicas/consola-negocios/internal/domain/entity"

// BusinessRow fila de la tabla de negocios con la categoría resuelta.
type BusinessRow struct {
	entity.Business
	Categoria string `json:"categoria"`
}

// BusinessesViewResponse vista de negocios (filtro por categoría del lado cliente).
type BusinessesViewResponse struct {
	CategoriaSeleccionada int                       `json:"categoria_seleccionada,omitempty"`
	Pagination            PageView                  `json:"pagination"`
	Rows                  []BusinessRow             `json:"rows"`
	Categories            []entity.BusinessCategory `json:"categories"`
	Loading               bool                      `json:"loading"`
	Error                 string                    `json:"error,omitempty"`
}
