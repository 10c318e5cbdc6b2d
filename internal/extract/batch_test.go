package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lumicms/internal/model"
)

type fakeProductStore struct {
	products []model.Product
	replaced map[string][]model.SpecGroup
	failIDs  map[string]bool
}

func (f *fakeProductStore) ListByImportSource(_ context.Context, source string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.ImportSource == source {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) ReplaceTechnicalSpecs(_ context.Context, id string, specs []model.SpecGroup, _ string) error {
	if f.failIDs[id] {
		return errors.New("write refused")
	}
	if f.replaced == nil {
		f.replaced = map[string][]model.SpecGroup{}
	}
	f.replaced[id] = specs
	return nil
}

type fakeTaxonomyStore struct {
	groups     []model.TaxonomyGroup
	standalone []string
	registered map[string]int
}

func (f *fakeTaxonomyStore) ListGroups(context.Context) ([]model.TaxonomyGroup, error) {
	return f.groups, nil
}

func (f *fakeTaxonomyStore) ListStandaloneLabels(context.Context) ([]string, error) {
	return f.standalone, nil
}

func (f *fakeTaxonomyStore) RegisterStandaloneLabel(_ context.Context, label string) error {
	if f.registered == nil {
		f.registered = map[string]int{}
	}
	f.registered[label]++
	return nil
}

func newBatch(products *fakeProductStore, taxonomy *fakeTaxonomyStore) *Batch {
	return &Batch{
		Products: products,
		Taxonomy: taxonomy,
		Source:   "shopify",
		Actor:    "batch@lumicms",
		Log:      zap.NewNop(),
	}
}

func TestBatchRun(t *testing.T) {
	t.Run("overwrites specs for minable records and skips the rest", func(t *testing.T) {
		products := &fakeProductStore{products: []model.Product{
			{ID: "p1", ItemCode: "FL-01", ImportSource: "shopify",
				Description: "<p>40W LED COB 3000K-4000K with bracket</p>"},
			{ID: "p2", ItemCode: "FL-02", ImportSource: "shopify",
				Description: "Specification table already present"},
			{ID: "p3", ItemCode: "FL-03", ImportSource: "excel",
				Description: "60W LED"},
		}}
		taxonomy := &fakeTaxonomyStore{groups: testTaxonomy()}

		sum, err := newBatch(products, taxonomy).Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, sum.Processed)
		assert.Equal(t, 1, sum.Updated)
		assert.Equal(t, 1, sum.Skipped)
		assert.Empty(t, sum.Failed)

		specs := products.replaced["p1"]
		require.NotEmpty(t, specs)
		assert.Equal(t, "ELECTRICAL", specs[0].SpecGroup)
		_, touched := products.replaced["p2"]
		assert.False(t, touched, "skipped record must not be overwritten")
	})

	t.Run("one failing record does not stop the run", func(t *testing.T) {
		products := &fakeProductStore{
			products: []model.Product{
				{ID: "p1", ItemCode: "FL-01", ImportSource: "shopify", Description: "40W LED"},
				{ID: "p2", ItemCode: "FL-02", ImportSource: "shopify", Description: "60W LED"},
			},
			failIDs: map[string]bool{"p1": true},
		}
		taxonomy := &fakeTaxonomyStore{groups: testTaxonomy()}

		sum, err := newBatch(products, taxonomy).Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{"FL-01"}, sum.Failed)
		assert.Equal(t, 1, sum.Updated)
		assert.Contains(t, products.replaced, "p2")
	})

	t.Run("rerunning registers each new label exactly once", func(t *testing.T) {
		products := &fakeProductStore{products: []model.Product{
			{ID: "p1", ItemCode: "FL-01", ImportSource: "shopify",
				Description: "aluminum housing, 40W LED"},
		}}
		taxonomy := &fakeTaxonomyStore{groups: testTaxonomy()}

		_, err := newBatch(products, taxonomy).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, taxonomy.registered[AttrMaterial])

		// Second run: the registry now reports the label as known.
		taxonomy.standalone = []string{AttrMaterial}
		_, err = newBatch(products, taxonomy).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, taxonomy.registered[AttrMaterial])
	})
}
