package ports

import "context"

// ObjectStorage almacenamiento de archivos generados (reportes).
type ObjectStorage interface {
	// Put guarda el objeto y devuelve la llave con la que quedó almacenado.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	// URL devuelve un enlace de descarga para la llave.
	URL(ctx context.Context, key string) (string, error)
}
