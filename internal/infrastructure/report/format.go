package report

import (
	"strings"

	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount redondea a places decimales e inserta separadores de miles.
// Ej: 1234567.5 -> "1,234,567.50"
func formatAmount(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + frac
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}

// estimatedCost suma requerido * costo unitario de cada asignación con material conocido.
func estimatedCost(materials []*entity.ProjectMaterial) decimal.Decimal {
	total := decimal.Zero
	for _, pm := range materials {
		if pm.Material == nil {
			continue
		}
		total = total.Add(pm.RequiredQty.Mul(pm.Material.CostPerUnit))
	}
	return total
}
