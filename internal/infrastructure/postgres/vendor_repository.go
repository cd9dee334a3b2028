package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

const vendorColumns = `id, name, location, gst_number, contact_person, contact_email, contact_phone,
		materials_supplied, created_at, updated_at`

// VendorRepo implementación sobre PostgreSQL.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// Create persiste un proveedor.
func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	query := `INSERT INTO vendors (` + vendorColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.Name, v.Location, v.GSTNumber, v.ContactPerson, v.ContactEmail, v.ContactPhone,
		nonNil(v.MaterialsSupplied), v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor; (nil, nil) si no existe.
func (r *VendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	v, err := scanVendor(r.q.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

// List lista proveedores por nombre.
func (r *VendorRepo) List(ctx context.Context) ([]*entity.Vendor, error) {
	rows, err := r.q.Query(ctx, `SELECT `+vendorColumns+` FROM vendors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Update reemplaza todos los campos, incluida la lista de materiales.
func (r *VendorRepo) Update(ctx context.Context, v *entity.Vendor) error {
	query := `
		UPDATE vendors SET name = $2, location = $3, gst_number = $4, contact_person = $5,
			contact_email = $6, contact_phone = $7, materials_supplied = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		v.ID, v.Name, v.Location, v.GSTNumber, v.ContactPerson, v.ContactEmail, v.ContactPhone,
		nonNil(v.MaterialsSupplied), v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un proveedor; con órdenes asociadas -> domain.ErrReferenced.
func (r *VendorRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrReferenced
		}
		return false, fmt.Errorf("delete vendor: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanVendor(row pgx.Row) (*entity.Vendor, error) {
	var v entity.Vendor
	err := row.Scan(
		&v.ID, &v.Name, &v.Location, &v.GSTNumber, &v.ContactPerson, &v.ContactEmail, &v.ContactPhone,
		&v.MaterialsSupplied, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
