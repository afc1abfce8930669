package ports

// KeyValueStore almacenamiento local durable (equivalente al localStorage del navegador).
// Sobrevive reinicios de la consola y es independiente de la sesión.
type KeyValueStore interface {
	// Get devuelve ok=false si la clave no existe.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(keys ...string) error
}

// Claves persistidas.
const (
	KeyToken          = "token"
	KeyRole           = "role"
	KeyProductColumns = "productsTableColumns"
	KeyTheme          = "theme"
)

// Notifier avisos transitorios al operador (toasts).
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
