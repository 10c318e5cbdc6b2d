package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"lumicms/internal/model"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

// Save upserts a product keyed by item code.
func (r *ProductRepository) Save(ctx context.Context, p model.Product, actor string) error {
	specs, err := json.Marshal(p.TechnicalSpecs)
	if err != nil {
		return fmt.Errorf("encoding specs: %w", err)
	}

	var exists bool
	err = r.DB.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM products WHERE item_code = $1)", p.ItemCode).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = r.DB.Exec(ctx, `
			UPDATE products
			SET name = $1, brand = $2, description = $3, import_source = $4,
			    main_image_url = $5, dimension_drawing_url = $6, mounting_height_url = $7,
			    technical_specs = $8, updated_at = $9, updated_by = $10
			WHERE item_code = $11
		`, p.Name, p.Brand, p.Description, p.ImportSource,
			p.MainImageURL, p.DimensionDrawingURL, p.MountingHeightURL,
			specs, time.Now(), actor, p.ItemCode)
	} else {
		_, err = r.DB.Exec(ctx, `
			INSERT INTO products
			(id, item_code, name, brand, description, import_source,
			 main_image_url, dimension_drawing_url, mounting_height_url,
			 technical_specs, updated_at, updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, uuid.New().String(), p.ItemCode, p.Name, p.Brand, p.Description, p.ImportSource,
			p.MainImageURL, p.DimensionDrawingURL, p.MountingHeightURL,
			specs, time.Now(), actor)
	}

	return err
}

func (r *ProductRepository) GetByItemCode(ctx context.Context, itemCode string) (model.Product, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT id, item_code, name, brand, description, import_source,
		       main_image_url, dimension_drawing_url, mounting_height_url,
		       technical_specs, updated_at, updated_by
		FROM products
		WHERE item_code = $1
	`, itemCode)
	return scanProduct(row)
}

func (r *ProductRepository) ListByImportSource(ctx context.Context, source string) ([]model.Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, item_code, name, brand, description, import_source,
		       main_image_url, dimension_drawing_url, mounting_height_url,
		       technical_specs, updated_at, updated_by
		FROM products
		WHERE import_source = $1
		ORDER BY item_code
	`, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ReplaceTechnicalSpecs overwrites the stored spec groups entirely. The
// extractor batch relies on the overwrite being total for idempotence.
func (r *ProductRepository) ReplaceTechnicalSpecs(ctx context.Context, id string, specs []model.SpecGroup, actor string) error {
	b, err := json.Marshal(specs)
	if err != nil {
		return fmt.Errorf("encoding specs: %w", err)
	}
	_, err = r.DB.Exec(ctx, `
		UPDATE products
		SET technical_specs = $1, updated_at = $2, updated_by = $3
		WHERE id = $4
	`, b, time.Now(), actor, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	var specs []byte
	err := row.Scan(&p.ID, &p.ItemCode, &p.Name, &p.Brand, &p.Description, &p.ImportSource,
		&p.MainImageURL, &p.DimensionDrawingURL, &p.MountingHeightURL,
		&specs, &p.UpdatedAt, &p.UpdatedBy)
	if err != nil {
		return model.Product{}, err
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &p.TechnicalSpecs); err != nil {
			return model.Product{}, fmt.Errorf("decoding specs for %s: %w", p.ItemCode, err)
		}
	}
	return p, nil
}
