package models

// Size is a garment size label offered on a product.
type Size string

// AvailableSizes is the fixed set of sizes a product can carry.
var AvailableSizes = []Size{"M", "L", "XL", "2XL", "3XL"}

// ValidSize reports whether s is one of the offered size labels.
func ValidSize(s Size) bool {
	for _, v := range AvailableSizes {
		if v == s {
			return true
		}
	}
	return false
}

// Color is a palette entry. Products embed value copies of palette
// colors (matched by ID), not references.
type Color struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// ProductImage references a binary image held in the blob store by ID.
// Src is a transient data URI filled in during hydration for rendering;
// it is never persisted.
type ProductImage struct {
	ID      string `json:"id"`
	Src     string `json:"-"`
	Alt     string `json:"alt"`
	IsCover bool   `json:"isCover"`
}

// SizeChartEntry is one column of a product's size chart: a size label
// and the garment width for that size.
type SizeChartEntry struct {
	ID    string `json:"id"`
	Size  string `json:"size"`
	Width string `json:"width"`
}

// Product is a single catalog entry.
type Product struct {
	ID        string           `json:"id"`
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	Price     float64          `json:"price"`
	Quantity  int              `json:"quantity"`
	Sizes     []Size           `json:"sizes"`
	Colors    []Color          `json:"colors"`
	Images    []ProductImage   `json:"images"`
	Notes     string           `json:"notes,omitempty"`
	SizeChart []SizeChartEntry `json:"sizeChart,omitempty"`
}

// CoverImage returns the image flagged as cover, falling back to the
// first image. Returns nil when the product has no images.
func (p *Product) CoverImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsCover {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// ImageIDs returns the blob ids owned by the product, in order.
func (p *Product) ImageIDs() []string {
	ids := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		ids = append(ids, img.ID)
	}
	return ids
}

// ProjectData is the whole persisted catalog state: the product list
// plus the global color palette. It is stored and loaded as one unit.
type ProjectData struct {
	ProjectName string    `json:"projectName"`
	CreatedAt   string    `json:"createdAt"`
	Products    []Product `json:"products"`
	Colors      []Color   `json:"colors"`
}

// FindProduct returns the product with the given id, or nil.
func (d *ProjectData) FindProduct(id string) *Product {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return &d.Products[i]
		}
	}
	return nil
}

// FindColor returns the palette color with the given id, or nil.
func (d *ProjectData) FindColor(id string) *Color {
	for i := range d.Colors {
		if d.Colors[i].ID == id {
			return &d.Colors[i]
		}
	}
	return nil
}
