// Package catalog holds the pure state transitions of the project
// document. Every function returns a new ProjectData and leaves its
// input untouched; persistence and blob-store side effects are the
// caller's job.
package catalog

import (
	"catalog-studio/models"
)

// CopySuffix is appended to a duplicated product's code to mark its
// derivation.
const CopySuffix = "-copy"

// UpsertProduct replaces the product with the same id in place, or
// appends it when no such product exists. The order of existing
// products is preserved; new products go to the end. The cover
// invariant is normalized on the way in.
func UpsertProduct(data models.ProjectData, product models.Product) models.ProjectData {
	product = CloneProduct(product)
	product.Images = NormalizeCovers(product.Images)

	next := cloneData(data)
	for i := range next.Products {
		if next.Products[i].ID == product.ID {
			next.Products[i] = product
			return next
		}
	}
	next.Products = append(next.Products, product)
	return next
}

// RemoveProduct removes exactly the product with the given id. Unknown
// ids leave the document unchanged.
func RemoveProduct(data models.ProjectData, id string) models.ProjectData {
	next := cloneData(data)
	kept := make([]models.Product, 0, len(next.Products))
	for _, p := range next.Products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	next.Products = kept
	return next
}

// DuplicateOf deep-copies a product under a new id with a derived code.
// imageIDs maps each original image id to the id its blob copy was
// stored under; images whose blob could not be copied are dropped.
// Colors stay shared value copies with their original ids.
func DuplicateOf(product models.Product, newID string, imageIDs map[string]string) models.Product {
	dup := CloneProduct(product)
	dup.ID = newID
	dup.Code = product.Code + CopySuffix

	images := make([]models.ProductImage, 0, len(dup.Images))
	for _, img := range dup.Images {
		copyID, ok := imageIDs[img.ID]
		if !ok {
			continue
		}
		img.ID = copyID
		img.Src = ""
		images = append(images, img)
	}
	dup.Images = NormalizeCovers(images)
	return dup
}

// AddColor appends a color to the global palette. Existing products are
// not touched.
func AddColor(data models.ProjectData, color models.Color) models.ProjectData {
	next := cloneData(data)
	next.Colors = append(next.Colors, color)
	return next
}

// UpdateColor replaces the palette entry with the matching id and
// rewrites every product's embedded copy of that color by structural
// replacement. Products not referencing the id are left as they are.
func UpdateColor(data models.ProjectData, color models.Color) models.ProjectData {
	next := cloneData(data)
	for i := range next.Colors {
		if next.Colors[i].ID == color.ID {
			next.Colors[i] = color
		}
	}
	for i := range next.Products {
		for j := range next.Products[i].Colors {
			if next.Products[i].Colors[j].ID == color.ID {
				next.Products[i].Colors[j] = color
			}
		}
	}
	return next
}

// RenameProject sets the project name.
func RenameProject(data models.ProjectData, name string) models.ProjectData {
	next := cloneData(data)
	next.ProjectName = name
	return next
}

// NormalizeCovers enforces the cover invariant on an image sequence:
// when images exist, exactly one carries the cover flag. The first
// flagged image wins; when none is flagged the first image becomes
// cover.
func NormalizeCovers(images []models.ProductImage) []models.ProductImage {
	if len(images) == 0 {
		return images
	}
	out := make([]models.ProductImage, len(images))
	copy(out, images)

	coverAt := -1
	for i := range out {
		if out[i].IsCover && coverAt < 0 {
			coverAt = i
		}
	}
	if coverAt < 0 {
		coverAt = 0
	}
	for i := range out {
		out[i].IsCover = i == coverAt
	}
	return out
}

// CloneProduct deep-copies a product, including all owned slices.
func CloneProduct(p models.Product) models.Product {
	out := p
	out.Sizes = append([]models.Size(nil), p.Sizes...)
	out.Colors = append([]models.Color(nil), p.Colors...)
	out.Images = append([]models.ProductImage(nil), p.Images...)
	if p.SizeChart != nil {
		out.SizeChart = append([]models.SizeChartEntry(nil), p.SizeChart...)
	}
	return out
}

func cloneData(data models.ProjectData) models.ProjectData {
	next := data
	next.Colors = append([]models.Color(nil), data.Colors...)
	next.Products = make([]models.Product, len(data.Products))
	for i, p := range data.Products {
		next.Products[i] = CloneProduct(p)
	}
	return next
}
