package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProductsParsedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_products_parsed_total",
			Help: "Product rows extracted from imported workbooks",
		},
	)
	SheetsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_sheets_skipped_total",
			Help: "Worksheets skipped during workbook import",
		},
	)
	TdsRenderedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tds_rendered_total",
			Help: "Technical data sheets rendered and uploaded",
		},
	)
	TdsRenderFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tds_render_failures_total",
			Help: "Technical data sheet renders that failed",
		},
	)
	ExtractRecordsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "extract_records_total",
			Help: "Products processed by the description extractor",
		},
	)
	ExtractFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "extract_failures_total",
			Help: "Products the description extractor failed to update",
		},
	)
	ShopifyProductsSyncedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shopify_products_synced_total",
			Help: "Products fetched from the Shopify storefront",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(
		ProductsParsedTotal,
		SheetsSkippedTotal,
		TdsRenderedTotal,
		TdsRenderFailuresTotal,
		ExtractRecordsTotal,
		ExtractFailuresTotal,
		ShopifyProductsSyncedTotal,
	)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
