package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"lumicms/internal/model"
)

type TaxonomyRepository struct {
	DB *pgxpool.Pool
}

// ListGroups returns the active taxonomy groups the extractor classifies
// against.
func (r *TaxonomyRepository) ListGroups(ctx context.Context) ([]model.TaxonomyGroup, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, items, is_active
		FROM spec_taxonomy_groups
		WHERE is_active = true
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []model.TaxonomyGroup
	for rows.Next() {
		var g model.TaxonomyGroup
		var items []byte
		if err := rows.Scan(&g.ID, &g.Name, &items, &g.IsActive); err != nil {
			return nil, err
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &g.Items); err != nil {
				return nil, fmt.Errorf("decoding items for group %s: %w", g.Name, err)
			}
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// SaveGroup upserts one taxonomy group, keyed by name. Used by the
// maintenance screen.
func (r *TaxonomyRepository) SaveGroup(ctx context.Context, g model.TaxonomyGroup) error {
	items, err := json.Marshal(g.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	var exists bool
	err = r.DB.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM spec_taxonomy_groups WHERE name = $1)", g.Name).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = r.DB.Exec(ctx, `
			UPDATE spec_taxonomy_groups
			SET items = $1, is_active = $2
			WHERE name = $3
		`, items, g.IsActive, g.Name)
	} else {
		_, err = r.DB.Exec(ctx, `
			INSERT INTO spec_taxonomy_groups (id, name, items, is_active)
			VALUES ($1, $2, $3, $4)
		`, uuid.New().String(), g.Name, items, g.IsActive)
	}
	return err
}

func (r *TaxonomyRepository) DeleteGroup(ctx context.Context, name string) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM spec_taxonomy_groups WHERE name = $1", name)
	return err
}

func (r *TaxonomyRepository) ListStandaloneLabels(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, "SELECT label FROM standalone_labels ORDER BY label")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// RegisterStandaloneLabel inserts a label once; re-registering an existing
// label is a no-op so batch re-runs stay idempotent.
func (r *TaxonomyRepository) RegisterStandaloneLabel(ctx context.Context, label string) error {
	var exists bool
	err := r.DB.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM standalone_labels WHERE label = $1)", label).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = r.DB.Exec(ctx,
		"INSERT INTO standalone_labels (id, label) VALUES ($1, $2)",
		uuid.New().String(), label)
	return err
}
