package entity

// Business negocio (tenant) dueño de productos, categorías de producto y usuarios.
type Business struct {
	ID          int    `json:"id_negocio,omitempty"`
	Nombre      string `json:"nombre"`
	Propietario string `json:"propietario"`
	Direccion   string `json:"direccion"`
	Telefono    string `json:"telefono"` // 9 dígitos
	Estatus     bool   `json:"estatus"`
	CategoriaID int    `json:"id_categoria_negocio"`
}

// BusinessCategory categoría global de negocios (lista plana).
type BusinessCategory struct {
	ID     int    `json:"id_categoria_negocio"`
	Nombre string `json:"nombre"`
}
