// Package projection shapes stored catalog rows into the JSON views served
// to the storefront and the admin panel.
package projection

import (
	"time"

	"furniture-catalog/models"

	"github.com/google/uuid"
)

// Specs holds the optional product dimensions. Only stored values appear.
type Specs struct {
	WidthCm   *float64 `json:"widthCm,omitempty"`
	HeightCm  *float64 `json:"heightCm,omitempty"`
	DepthCm   *float64 `json:"depthCm,omitempty"`
	WeightKg  *float64 `json:"weightKg,omitempty"`
	Material  *string  `json:"material,omitempty"`
	MaxLoadKg *float64 `json:"maxLoadKg,omitempty"`
}

type CategoryRef struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type VariantView struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"productId"`
	Name       string    `json:"name"`
	ColorHex   string    `json:"colorHex"`
	TextureURL *string   `json:"textureUrl"`
	IsDefault  bool      `json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ProductView struct {
	ID                   uuid.UUID    `json:"id"`
	Name                 string       `json:"name"`
	Slug                 string       `json:"slug"`
	Description          string       `json:"description"`
	CategoryID           uuid.UUID    `json:"categoryId"`
	Category             *CategoryRef `json:"category,omitempty"`
	ModelURL             string       `json:"modelUrl"`
	ThumbnailURL         string       `json:"thumbnailUrl"`
	BaseColor            *string      `json:"baseColor"`
	UseOriginalColor     bool         `json:"useOriginalColor"`
	OriginalColorName    *string      `json:"originalColorName"`
	OriginalColorPreview *string      `json:"originalColorPreview"`
	IsFeatured           bool         `json:"isFeatured"`
	Specs                *Specs       `json:"specs,omitempty"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

// ProductListItem is the storefront list entry. DefaultVariant is null when
// the product has no default.
type ProductListItem struct {
	ProductView
	DefaultVariant *VariantView `json:"defaultVariant"`
}

// ProductDetail carries every variant, default first.
type ProductDetail struct {
	ProductView
	Variants []VariantView `json:"variants"`
}

type ProductSummary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	IsFeatured   bool      `json:"isFeatured"`
}

type CategoryView struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Slug      string           `json:"slug"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Products  []ProductSummary `json:"products"`
}

// SpecsOf collects the non-null specification columns. It returns nil when
// none is set so the key is left out entirely.
func SpecsOf(p *models.Product) *Specs {
	if p.WidthCm == nil && p.HeightCm == nil && p.DepthCm == nil &&
		p.WeightKg == nil && p.Material == nil && p.MaxLoadKg == nil {
		return nil
	}
	return &Specs{
		WidthCm:   p.WidthCm,
		HeightCm:  p.HeightCm,
		DepthCm:   p.DepthCm,
		WeightKg:  p.WeightKg,
		Material:  p.Material,
		MaxLoadKg: p.MaxLoadKg,
	}
}

func Variant(v *models.Variant) VariantView {
	return VariantView{
		ID:         v.ID,
		ProductID:  v.ProductID,
		Name:       v.Name,
		ColorHex:   v.ColorHex,
		TextureURL: v.TextureURL,
		IsDefault:  v.IsDefault,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func productView(p *models.Product) ProductView {
	view := ProductView{
		ID:                   p.ID,
		Name:                 p.Name,
		Slug:                 p.Slug,
		Description:          p.Description,
		CategoryID:           p.CategoryID,
		ModelURL:             p.ModelURL,
		ThumbnailURL:         p.ThumbnailURL,
		BaseColor:            p.BaseColor,
		UseOriginalColor:     p.UseOriginalColor,
		OriginalColorName:    p.OriginalColorName,
		OriginalColorPreview: p.OriginalColorPreview,
		IsFeatured:           p.IsFeatured,
		Specs:                SpecsOf(p),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
	if p.Category.ID != uuid.Nil {
		view.Category = &CategoryRef{
			ID:        p.Category.ID,
			Name:      p.Category.Name,
			Slug:      p.Category.Slug,
			CreatedAt: p.Category.CreatedAt,
			UpdatedAt: p.Category.UpdatedAt,
		}
	}
	return view
}

// ListItem projects a product loaded with at most its default variant.
// A non-default variant is never promoted into DefaultVariant.
func ListItem(p *models.Product) ProductListItem {
	item := ProductListItem{ProductView: productView(p)}
	for i := range p.Variants {
		if p.Variants[i].IsDefault {
			v := Variant(&p.Variants[i])
			item.DefaultVariant = &v
			break
		}
	}
	return item
}

func ListItems(products []models.Product) []ProductListItem {
	items := make([]ProductListItem, 0, len(products))
	for i := range products {
		items = append(items, ListItem(&products[i]))
	}
	return items
}

// Detail projects a product with all of its variants in stored order.
func Detail(p *models.Product) ProductDetail {
	detail := ProductDetail{
		ProductView: productView(p),
		Variants:    make([]VariantView, 0, len(p.Variants)),
	}
	for i := range p.Variants {
		detail.Variants = append(detail.Variants, Variant(&p.Variants[i]))
	}
	return detail
}

func Details(products []models.Product) []ProductDetail {
	details := make([]ProductDetail, 0, len(products))
	for i := range products {
		details = append(details, Detail(&products[i]))
	}
	return details
}

func Category(c *models.Category) CategoryView {
	view := CategoryView{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Products:  make([]ProductSummary, 0, len(c.Products)),
	}
	for _, p := range c.Products {
		view.Products = append(view.Products, ProductSummary{
			ID:           p.ID,
			Name:         p.Name,
			Slug:         p.Slug,
			ThumbnailURL: p.ThumbnailURL,
			IsFeatured:   p.IsFeatured,
		})
	}
	return view
}

func Categories(categories []models.Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, Category(&categories[i]))
	}
	return views
}
