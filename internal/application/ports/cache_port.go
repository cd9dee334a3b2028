package ports

import (
	"context"

	"github.com/jhoicas/gridaura-api/internal/domain/entity"
)

// MaterialCache caché de lectura del catálogo. Un fallo de caché nunca debe romper la lectura:
// los adaptadores registran el error y se comportan como miss.
type MaterialCache interface {
	// Get devuelve (nil, false) en miss.
	Get(ctx context.Context, id string) (*entity.Material, bool)
	Set(ctx context.Context, material *entity.Material)
	Invalidate(ctx context.Context, id string)
}
