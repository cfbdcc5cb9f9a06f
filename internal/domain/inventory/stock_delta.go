package inventory

import (
	"sort"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// Deltas cambio neto de stock por repuesto: positivo devuelve al stock, negativo consume.
type Deltas map[string]int

// Consume deltas de una venta: -cantidad por cada línea (líneas repetidas se suman).
func Consume(items []entity.InvoiceItem) Deltas {
	d := Deltas{}
	for _, it := range items {
		d[it.PartID] -= it.Quantity
	}
	return d
}

// Reconcile delta neto entre el conjunto original de líneas y el nuevo.
// Para cada repuesto: cantidadOriginal - cantidadNueva; los que no estaban en el original dan -cantidadNueva.
func Reconcile(original, updated []entity.InvoiceItem) Deltas {
	d := Deltas{}
	for _, it := range original {
		d[it.PartID] += it.Quantity
	}
	for _, it := range updated {
		d[it.PartID] -= it.Quantity
	}
	return d
}

// Merge suma otros deltas sobre d.
func (d Deltas) Merge(other Deltas) Deltas {
	for id, q := range other {
		d[id] += q
	}
	return d
}

// PartIDs IDs afectados en orden estable (incluye los de delta cero: también se leen).
func (d Deltas) PartIDs() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NonZero copia sin las entradas de delta cero.
func (d Deltas) NonZero() Deltas {
	out := Deltas{}
	for id, q := range d {
		if q != 0 {
			out[id] = q
		}
	}
	return out
}

// Validate comprueba que stock + delta >= 0 para cada repuesto, todo o nada.
// parts debe contener cada ID de d; un faltante es NotFound. Devuelve el primer error en orden de ID.
func Validate(parts map[string]*entity.Part, d Deltas) error {
	for _, id := range d.PartIDs() {
		p, ok := parts[id]
		if !ok || p == nil {
			return domain.NewNotFoundError("part", id)
		}
		delta := d[id]
		if p.Stock+delta < 0 {
			return &domain.InsufficientStockError{
				PartID:    p.ID,
				PartName:  p.Name,
				Available: p.Stock,
				Requested: -delta,
			}
		}
	}
	return nil
}
