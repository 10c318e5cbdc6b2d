package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const pageSize = 250

var httpClient = &http.Client{
	Timeout: 60 * time.Second,
}

// Client reads the public products.json feed of one storefront.
type Client struct {
	StoreURL string
	HTTP     *http.Client
}

// FetchProducts walks every product page in order and invokes handler per
// product. Pagination stops at the first empty page.
func (c *Client) FetchProducts(ctx context.Context, handler func(Product)) error {
	base := strings.TrimRight(c.StoreURL, "/")

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/products.json?limit=%d&page=%d", base, pageSize, page)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request for %s: %w", url, err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0")
		req.Header.Set("Accept", "application/json")

		resp, err := c.client().Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", url, err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("storefront status %d for %s", resp.StatusCode, url)
		}

		var result ProductsResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			resp.Body.Close()
			return fmt.Errorf("failed to decode response from %s: %w", url, err)
		}
		resp.Body.Close()

		if len(result.Products) == 0 {
			return nil
		}
		for _, p := range result.Products {
			handler(p)
		}
	}
}

func (c *Client) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return httpClient
}
