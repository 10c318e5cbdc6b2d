package tds

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/small.png", func(w http.ResponseWriter, _ *http.Request) {
		w.Write(pngBytes(t, 100, 50, color.NRGBA{R: 10, G: 20, B: 30, A: 255}))
	})
	mux.HandleFunc("/big.png", func(w http.ResponseWriter, _ *http.Request) {
		w.Write(pngBytes(t, 1200, 900, color.NRGBA{R: 10, G: 20, B: 30, A: 255}))
	})
	mux.HandleFunc("/garbage", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("this is not an image"))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchImage(t *testing.T) {
	srv := imageServer(t)
	g := &Generator{HTTP: srv.Client()}
	ctx := context.Background()

	t.Run("small image is re-encoded without resizing", func(t *testing.T) {
		img := g.fetchImage(ctx, srv.URL+"/small.png", 600, false)
		require.NotNil(t, img)
		assert.Equal(t, "JPG", img.Format)
		assert.Equal(t, 100, img.W)
		assert.Equal(t, 50, img.H)
	})

	t.Run("oversized image is scaled to the edge budget", func(t *testing.T) {
		img := g.fetchImage(ctx, srv.URL+"/big.png", 600, false)
		require.NotNil(t, img)
		assert.Equal(t, 600, img.W)
		assert.Equal(t, 450, img.H)
	})

	t.Run("logo keeps a lossless format", func(t *testing.T) {
		img := g.fetchImage(ctx, srv.URL+"/small.png", 400, true)
		require.NotNil(t, img)
		assert.Equal(t, "PNG", img.Format)
	})

	t.Run("absent url is nil", func(t *testing.T) {
		assert.Nil(t, g.fetchImage(ctx, "", 600, false))
	})

	t.Run("404 is nil, not an error", func(t *testing.T) {
		assert.Nil(t, g.fetchImage(ctx, srv.URL+"/missing", 600, false))
	})

	t.Run("undecodable body is nil", func(t *testing.T) {
		assert.Nil(t, g.fetchImage(ctx, srv.URL+"/garbage", 600, false))
	})

	t.Run("unreachable host is nil", func(t *testing.T) {
		assert.Nil(t, g.fetchImage(ctx, "http://127.0.0.1:1/nope.png", 600, false))
	})
}
