package shopify

type ProductsResponse struct {
	Products []Product `json:"products"`
}

type Product struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	BodyHTML string    `json:"body_html"`
	Vendor   string    `json:"vendor"`
	Handle   string    `json:"handle"`
	Variants []Variant `json:"variants"`
	Images   []Image   `json:"images"`
}

type Variant struct {
	ID    int64  `json:"id"`
	SKU   string `json:"sku"`
	Title string `json:"title"`
	Price string `json:"price"`
}

type Image struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

// ItemCode is the variant SKU when present, else the product handle.
func (p Product) ItemCode() string {
	for _, v := range p.Variants {
		if v.SKU != "" {
			return v.SKU
		}
	}
	return p.Handle
}

// MainImageSrc returns the first image, the one the storefront features.
func (p Product) MainImageSrc() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Src
}
