package tds

import (
	"bytes"
	"context"
	"image/color"
	"io"
	"net/http"
	"sync"

	"github.com/disintegration/imaging"
)

// Longest-edge pixel budgets. Keeping sources small caps the PDF size.
const (
	photoMaxEdge   = 600
	diagramMaxEdge = 700
	logoMaxEdge    = 400
)

const jpegQuality = 85

// compressedImage is a fetched, downscaled, re-encoded bitmap ready to be
// embedded. Format is an fpdf image type ("JPG" or "PNG").
type compressedImage struct {
	Data   []byte `json:"data"`
	Format string `json:"format"`
	W      int    `json:"w"`
	H      int    `json:"h"`
}

// imageSet holds the pre-pass results consumed by the layout pass. Any slot
// may be nil; the corresponding region renders empty.
type imageSet struct {
	photo     *compressedImage
	dimension *compressedImage
	mounting  *compressedImage
	brandLogo *compressedImage
	siteLogo  *compressedImage
}

// prefetch fetches and compresses all referenced images concurrently. Each
// goroutine writes its own slot, so no locking is needed; the layout pass
// only starts after the join.
func (g *Generator) prefetch(ctx context.Context, req RenderRequest, theme Theme) imageSet {
	var set imageSet
	var wg sync.WaitGroup

	run := func(dst **compressedImage, fetch func() *compressedImage) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			*dst = fetch()
		}()
	}

	run(&set.photo, func() *compressedImage {
		return g.fetchImage(ctx, req.MainImageURL, photoMaxEdge, false)
	})
	run(&set.dimension, func() *compressedImage {
		return g.fetchImage(ctx, req.DimensionDrawingURL, diagramMaxEdge, false)
	})
	run(&set.mounting, func() *compressedImage {
		return g.fetchImage(ctx, req.MountingHeightURL, diagramMaxEdge, false)
	})
	run(&set.brandLogo, func() *compressedImage {
		return g.fetchLogo(ctx, theme.BrandLogoURL)
	})
	run(&set.siteLogo, func() *compressedImage {
		return g.fetchLogo(ctx, siteLogoURL)
	})

	wg.Wait()
	return set
}

// fetchLogo is fetchImage plus the redis cache. Logos are static assets and
// identical across renders, so a hit skips the fetch and re-encode.
func (g *Generator) fetchLogo(ctx context.Context, url string) *compressedImage {
	if img := g.Logos.get(ctx, url); img != nil {
		return img
	}
	img := g.fetchImage(ctx, url, logoMaxEdge, true)
	if img != nil {
		g.Logos.put(ctx, url, img)
	}
	return img
}

// fetchImage downloads and re-encodes one image. Every failure mode returns
// nil: a missing image degrades the sheet, it never fails the render.
func (g *Generator) fetchImage(ctx context.Context, url string, maxEdge int, keepAlpha bool) *compressedImage {
	if url == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.httpClient().Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	src, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxEdge || bounds.Dy() > maxEdge {
		src = imaging.Fit(src, maxEdge, maxEdge, imaging.Lanczos)
		bounds = src.Bounds()
	}

	var buf bytes.Buffer
	if keepAlpha {
		if err := imaging.Encode(&buf, src, imaging.PNG); err != nil {
			return nil
		}
		return &compressedImage{Data: buf.Bytes(), Format: "PNG", W: bounds.Dx(), H: bounds.Dy()}
	}

	// Flatten transparency onto white before the lossy encode.
	flat := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flat = imaging.OverlayCenter(flat, src, 1.0)
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil
	}
	return &compressedImage{Data: buf.Bytes(), Format: "JPG", W: bounds.Dx(), H: bounds.Dy()}
}
