package tds

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pdf/fpdf"

	"lumicms/internal/model"
	"lumicms/internal/observability"
)

// Page geometry in millimeters (A4 portrait).
const (
	pageWidth  = 210
	pageHeight = 297
	margin     = 12

	headerHeight = 28
	footerHeight = 14

	photoBoxSize  = 55
	diagramHeight = 50

	labelColWidth = 60
	rowHeight     = 6
)

type DynamicSpec struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// RenderRequest carries everything one render needs. It exists only for the
// duration of the call.
type RenderRequest struct {
	ItemDescription     string
	LitItemCode         string
	EcoItemCode         string
	Brand               string
	TechnicalSpecs      []model.SpecGroup
	DynamicSpecs        []DynamicSpec
	MainImageURL        string
	DimensionDrawingURL string
	MountingHeightURL   string
}

func (r RenderRequest) itemCode() string {
	if r.EcoItemCode != "" {
		return r.EcoItemCode
	}
	return r.LitItemCode
}

// Uploader turns a rendered file into a durable public URL. The generator
// has no opinion on the storage backend.
type Uploader func(filename string, data []byte) (string, error)

var defaultHTTPClient = &http.Client{Timeout: 60 * time.Second}

// Generator renders single-page technical data sheets. Only Upload is
// required; Logos and HTTP default to no cache and a shared 60s client.
type Generator struct {
	Upload  Uploader
	Logos   *LogoCache
	HTTP    *http.Client
	SiteURL string
}

func (g *Generator) httpClient() *http.Client {
	if g.HTTP != nil {
		return g.HTTP
	}
	return defaultHTTPClient
}

// Generate renders the sheet for one product and returns the uploaded URL.
// Missing images degrade the output; layout and upload errors are fatal.
func (g *Generator) Generate(ctx context.Context, req RenderRequest) (string, error) {
	theme := themeFor(req.Brand)
	images := g.prefetch(ctx, req, theme)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()

	l := &layout{
		pdf:     pdf,
		theme:   theme,
		siteURL: g.SiteURL,
		// Core fonts are cp1252; spec values carry ° and the footer a bullet.
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	l.header(images)
	l.productSummary(req, images)
	l.specTable(req)
	l.diagrams(images)
	l.footer()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		observability.TdsRenderFailuresTotal.Inc()
		return "", fmt.Errorf("serializing data sheet: %w", err)
	}

	url, err := g.Upload(Filename(req.ItemDescription), buf.Bytes())
	if err != nil {
		observability.TdsRenderFailuresTotal.Inc()
		return "", fmt.Errorf("uploading data sheet: %w", err)
	}
	observability.TdsRenderedTotal.Inc()
	return url, nil
}

// layout owns the drawing surface and its positional cursor. Strictly
// sequential: all images were fetched before it is constructed.
type layout struct {
	pdf      *fpdf.Fpdf
	theme    Theme
	siteURL  string
	tr       func(string) string
	imageSeq int
}

func (l *layout) header(images imageSet) {
	l.pdf.LinearGradient(0, 0, pageWidth, headerHeight,
		255, 255, 255,
		l.theme.GradientEnd.R, l.theme.GradientEnd.G, l.theme.GradientEnd.B,
		0, 0, 1, 0)
	l.placeImage(images.siteLogo, margin, 6, 50, 16)
	l.placeImage(images.brandLogo, pageWidth-margin-40, 6, 40, 16)
}

func (l *layout) productSummary(req RenderRequest, images imageSet) {
	top := float64(headerHeight + 6)

	l.pdf.SetDrawColor(200, 200, 200)
	l.pdf.Rect(margin, top, photoBoxSize, photoBoxSize, "D")
	l.placeImage(images.photo, margin+2, top+2, photoBoxSize-4, photoBoxSize-4)

	titleX := float64(margin + photoBoxSize + 6)
	l.pdf.SetFont("Helvetica", "B", 14)
	l.pdf.SetTextColor(40, 40, 40)
	l.pdf.SetXY(titleX, top)
	l.pdf.MultiCell(pageWidth-margin-titleX, 7, l.tr(req.ItemDescription), "", "L", false)

	bottom := top + photoBoxSize
	if y := l.pdf.GetY(); y > bottom {
		bottom = y
	}
	l.pdf.SetY(bottom + 6)
}

func (l *layout) specTable(req RenderRequest) {
	l.entryRow("BRAND", req.Brand)
	l.entryRow("ITEM CODE", req.itemCode())

	for _, group := range req.TechnicalSpecs {
		l.groupRows(group)
	}
	for _, group := range groupDynamicSpecs(req.DynamicSpecs) {
		l.groupRows(group)
	}
}

func (l *layout) groupRows(group model.SpecGroup) {
	l.groupHeaderRow(group.SpecGroup)
	for _, s := range group.Specs {
		l.entryRow(s.Name, s.Value)
	}
}

func (l *layout) groupHeaderRow(name string) {
	l.pdf.SetFont("Helvetica", "B", 9)
	l.pdf.SetFillColor(l.theme.GradientEnd.R, l.theme.GradientEnd.G, l.theme.GradientEnd.B)
	l.pdf.SetTextColor(40, 40, 40)
	l.pdf.SetX(margin)
	l.pdf.CellFormat(pageWidth-2*margin, rowHeight, l.tr(name), "1", 1, "L", true, 0, "")
}

func (l *layout) entryRow(name, value string) {
	l.pdf.SetX(margin)
	l.pdf.SetFont("Helvetica", "B", 9)
	l.pdf.SetTextColor(60, 60, 60)
	l.pdf.CellFormat(labelColWidth, rowHeight, l.tr(name), "1", 0, "L", false, 0, "")
	l.pdf.SetFont("Helvetica", "", 9)
	l.pdf.CellFormat(pageWidth-2*margin-labelColWidth, rowHeight, l.tr(value), "1", 1, "L", false, 0, "")
}

func (l *layout) diagrams(images imageSet) {
	top := l.pdf.GetY() + 8
	boxWidth := float64(pageWidth-2*margin-6) / 2

	l.diagramBox("DIMENSION DRAWING (MM)", images.dimension, margin, top, boxWidth)
	l.diagramBox("MOUNTING HEIGHT", images.mounting, margin+boxWidth+6, top, boxWidth)
}

func (l *layout) diagramBox(label string, img *compressedImage, x, y, w float64) {
	l.pdf.SetFont("Helvetica", "B", 9)
	l.pdf.SetTextColor(60, 60, 60)
	l.pdf.SetXY(x, y)
	l.pdf.CellFormat(w, 5, l.tr(label), "", 0, "C", false, 0, "")

	boxTop := y + 6
	l.pdf.SetDrawColor(200, 200, 200)
	l.pdf.Rect(x, boxTop, w, diagramHeight, "D")
	l.placeImage(img, x+2, boxTop+2, w-4, diagramHeight-4)
}

func (l *layout) footer() {
	l.pdf.SetFillColor(l.theme.Footer.R, l.theme.Footer.G, l.theme.Footer.B)
	l.pdf.Rect(0, pageHeight-footerHeight, pageWidth, footerHeight, "F")
	l.pdf.SetFont("Helvetica", "B", 10)
	l.pdf.SetTextColor(255, 255, 255)
	l.pdf.SetXY(0, pageHeight-footerHeight)
	l.pdf.CellFormat(pageWidth, footerHeight, l.tr("• "+l.siteURL), "", 0, "C", false, 0, "")
}

// placeImage centers an image inside a box, preserving aspect ratio. A nil
// image leaves the region empty.
func (l *layout) placeImage(img *compressedImage, x, y, boxW, boxH float64) {
	if img == nil || img.W == 0 || img.H == 0 {
		return
	}
	l.imageSeq++
	name := fmt.Sprintf("img%d", l.imageSeq)

	opts := fpdf.ImageOptions{ImageType: img.Format}
	l.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))

	scale := boxW / float64(img.W)
	if s := boxH / float64(img.H); s < scale {
		scale = s
	}
	w := float64(img.W) * scale
	h := float64(img.H) * scale
	l.pdf.ImageOptions(name, x+(boxW-w)/2, y+(boxH-h)/2, w, h, false, opts, 0, "")
}

// groupDynamicSpecs folds per-variant extras into spec groups keyed by
// title, preserving first-appearance order.
func groupDynamicSpecs(specs []DynamicSpec) []model.SpecGroup {
	var groups []model.SpecGroup
	index := map[string]int{}
	for _, s := range specs {
		i, ok := index[s.Title]
		if !ok {
			groups = append(groups, model.SpecGroup{SpecGroup: s.Title})
			i = len(groups) - 1
			index[s.Title] = i
		}
		groups[i].Specs = append(groups[i].Specs, model.SpecEntry{Name: s.Title, Value: s.Value})
	}
	return groups
}
