package models

// SaveProductRequest is the request body for creating or updating a
// product. The image entries must already be uploaded to the blob
// store; only their ids travel here.
type SaveProductRequest struct {
	ID        string           `json:"id"`
	Code      string           `json:"code" validate:"required"`
	Name      string           `json:"name"`
	Price     float64          `json:"price" validate:"gte=0"`
	Quantity  int              `json:"quantity" validate:"gte=0"`
	Sizes     []Size           `json:"sizes"`
	Colors    []Color          `json:"colors"`
	Images    []ProductImage   `json:"images" validate:"min=1"`
	Notes     string           `json:"notes"`
	SizeChart []SizeChartEntry `json:"sizeChart"`
}

// Product converts the request into a catalog product.
func (r *SaveProductRequest) Product() Product {
	return Product{
		ID:        r.ID,
		Code:      r.Code,
		Name:      r.Name,
		Price:     r.Price,
		Quantity:  r.Quantity,
		Sizes:     r.Sizes,
		Colors:    r.Colors,
		Images:    r.Images,
		Notes:     r.Notes,
		SizeChart: r.SizeChart,
	}
}

// ColorRequest is the request body for adding or updating a palette
// color.
type ColorRequest struct {
	Name string `json:"name" validate:"required"`
	Hex  string `json:"hex" validate:"required,hexcolor"`
}

// RenameProjectRequest is the request body for renaming the project.
type RenameProjectRequest struct {
	ProjectName string `json:"projectName" validate:"required"`
}

// UploadImageResponse is returned after an image blob is stored.
type UploadImageResponse struct {
	ID          string `json:"id"`
	ContentType string `json:"contentType"`
	SizeBytes   int    `json:"sizeBytes"`
}
