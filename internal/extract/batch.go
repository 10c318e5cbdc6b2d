package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lumicms/internal/model"
	"lumicms/internal/observability"
)

// ProductStore is the slice of the product repository the batch needs.
type ProductStore interface {
	ListByImportSource(ctx context.Context, source string) ([]model.Product, error)
	ReplaceTechnicalSpecs(ctx context.Context, id string, specs []model.SpecGroup, actor string) error
}

// TaxonomyStore provides the canonical labels and the standalone registry.
type TaxonomyStore interface {
	ListGroups(ctx context.Context) ([]model.TaxonomyGroup, error)
	ListStandaloneLabels(ctx context.Context) ([]string, error)
	RegisterStandaloneLabel(ctx context.Context, label string) error
}

// Summary is the end-of-run report printed to the operator console.
type Summary struct {
	Processed int
	Updated   int
	Skipped   int
	Failed    []string
}

// Batch mines stored product descriptions for structured specs and
// overwrites each product's technicalSpecs with the result. Safe to re-run:
// the overwrite is total and label registration deduplicates.
type Batch struct {
	Products ProductStore
	Taxonomy TaxonomyStore
	Source   string
	Actor    string
	Log      *zap.Logger
}

// Run processes every matching product sequentially. A single record's
// failure is logged and counted, never fatal to the run.
func (b *Batch) Run(ctx context.Context) (Summary, error) {
	groups, err := b.Taxonomy.ListGroups(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("loading taxonomy groups: %w", err)
	}
	labels, err := b.Taxonomy.ListStandaloneLabels(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("loading standalone labels: %w", err)
	}
	classifier := NewClassifier(groups, labels)

	products, err := b.Products.ListByImportSource(ctx, b.Source)
	if err != nil {
		return Summary{}, fmt.Errorf("listing products: %w", err)
	}
	b.Log.Info("extractor batch starting",
		zap.String("source", b.Source),
		zap.Int("products", len(products)))

	var sum Summary
	for _, p := range products {
		sum.Processed++
		observability.ExtractRecordsTotal.Inc()

		updated, err := b.processRecord(ctx, classifier, p)
		switch {
		case err != nil:
			sum.Failed = append(sum.Failed, p.ItemCode)
			observability.ExtractFailuresTotal.Inc()
			b.Log.Warn("record failed",
				zap.String("itemCode", p.ItemCode),
				zap.Error(err))
		case updated:
			sum.Updated++
		default:
			sum.Skipped++
		}
	}

	b.Log.Info("extractor batch finished",
		zap.Int("processed", sum.Processed),
		zap.Int("updated", sum.Updated),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", len(sum.Failed)))
	return sum, nil
}

func (b *Batch) processRecord(ctx context.Context, classifier *Classifier, p model.Product) (bool, error) {
	text := DescriptionText(p.Description)
	if ShouldSkip(text) {
		return false, nil
	}

	attrs := ExtractSpecs(text)
	specs, newLabels := classifier.Classify(attrs)

	for _, label := range newLabels {
		if err := b.Taxonomy.RegisterStandaloneLabel(ctx, label); err != nil {
			return false, fmt.Errorf("registering label %q: %w", label, err)
		}
	}

	if err := b.Products.ReplaceTechnicalSpecs(ctx, p.ID, specs, b.Actor); err != nil {
		return false, fmt.Errorf("replacing specs: %w", err)
	}
	return true, nil
}
