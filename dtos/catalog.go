package dtos

// ==================== Categories ====================

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

func (in CreateCategoryInput) Validate() error {
	var c checker
	c.structTags(in)
	c.slug(&in.Slug)
	return c.err()
}

type UpdateCategoryInput struct {
	Name *string `json:"name" binding:"omitempty,min=1"`
	Slug *string `json:"slug" binding:"omitempty,min=1"`
}

func (in UpdateCategoryInput) Empty() bool {
	return in.Name == nil && in.Slug == nil
}

func (in UpdateCategoryInput) Validate() error {
	if in.Empty() {
		return &ValidationError{Message: NoFieldsMessage}
	}
	var c checker
	c.structTags(in)
	c.slug(in.Slug)
	return c.err()
}

// ==================== Products ====================

// ProductSpecs is the optional dimension block accepted on create.
type ProductSpecs struct {
	WidthCm   *float64 `json:"widthCm" binding:"omitempty,gt=0"`
	HeightCm  *float64 `json:"heightCm" binding:"omitempty,gt=0"`
	DepthCm   *float64 `json:"depthCm" binding:"omitempty,gt=0"`
	WeightKg  *float64 `json:"weightKg" binding:"omitempty,gt=0"`
	Material  *string  `json:"material"`
	MaxLoadKg *float64 `json:"maxLoadKg" binding:"omitempty,gt=0"`
}

type CreateProductInput struct {
	Name                 string  `json:"name" binding:"required"`
	Slug                 string  `json:"slug" binding:"required"`
	Description          string  `json:"description" binding:"required"`
	CategoryID           string  `json:"categoryId" binding:"required"`
	ModelURL             string  `json:"modelUrl" binding:"required"`
	ThumbnailURL         string  `json:"thumbnailUrl" binding:"required"`
	BaseColor            *string `json:"baseColor" binding:"omitempty,hexcolor"`
	UseOriginalColor     bool    `json:"useOriginalColor"`
	OriginalColorName    *string `json:"originalColorName"`
	OriginalColorPreview *string `json:"originalColorPreview"`
	IsFeatured           bool    `json:"isFeatured"`
	ProductSpecs
}

// Validate checks required fields. baseColor may only be left out when the
// asset's own material color is used.
func (in CreateProductInput) Validate() error {
	var c checker
	c.structTags(in)
	if !in.UseOriginalColor {
		c.require("baseColor", in.BaseColor != nil && *in.BaseColor != "")
	}
	c.slug(&in.Slug)
	return c.err()
}

// UpdateProductInput carries a partial update. Nil pointers and unset Fields
// leave the stored value untouched; Fields sent as null clear it.
type UpdateProductInput struct {
	Name                 *string       `json:"name" binding:"omitempty,min=1"`
	Slug                 *string       `json:"slug" binding:"omitempty,min=1"`
	Description          *string       `json:"description" binding:"omitempty,min=1"`
	CategoryID           *string       `json:"categoryId" binding:"omitempty,min=1"`
	ModelURL             *string       `json:"modelUrl" binding:"omitempty,min=1"`
	ThumbnailURL         *string       `json:"thumbnailUrl" binding:"omitempty,min=1"`
	BaseColor            Field[string] `json:"baseColor"`
	UseOriginalColor     *bool         `json:"useOriginalColor"`
	OriginalColorName    Field[string] `json:"originalColorName"`
	OriginalColorPreview Field[string] `json:"originalColorPreview"`
	IsFeatured           *bool         `json:"isFeatured"`

	WidthCm   Field[float64] `json:"widthCm"`
	HeightCm  Field[float64] `json:"heightCm"`
	DepthCm   Field[float64] `json:"depthCm"`
	WeightKg  Field[float64] `json:"weightKg"`
	Material  Field[string]  `json:"material"`
	MaxLoadKg Field[float64] `json:"maxLoadKg"`
}

func (in UpdateProductInput) Empty() bool {
	return in.Name == nil && in.Slug == nil && in.Description == nil &&
		in.CategoryID == nil && in.ModelURL == nil && in.ThumbnailURL == nil &&
		!in.BaseColor.Set && in.UseOriginalColor == nil &&
		!in.OriginalColorName.Set && !in.OriginalColorPreview.Set &&
		in.IsFeatured == nil &&
		!in.WidthCm.Set && !in.HeightCm.Set && !in.DepthCm.Set &&
		!in.WeightKg.Set && !in.Material.Set && !in.MaxLoadKg.Set
}

func (in UpdateProductInput) Validate() error {
	if in.Empty() {
		return &ValidationError{Message: NoFieldsMessage}
	}
	var c checker
	c.structTags(in)
	c.slug(in.Slug)
	c.hexColor("baseColor", in.BaseColor)
	c.positive("widthCm", in.WidthCm)
	c.positive("heightCm", in.HeightCm)
	c.positive("depthCm", in.DepthCm)
	c.positive("weightKg", in.WeightKg)
	c.positive("maxLoadKg", in.MaxLoadKg)
	return c.err()
}

// ==================== Variants ====================

type CreateVariantInput struct {
	Name       string  `json:"name" binding:"required"`
	ColorHex   string  `json:"colorHex" binding:"required,hexcolor"`
	TextureURL *string `json:"textureUrl"`
	IsDefault  bool    `json:"isDefault"`
}

func (in CreateVariantInput) Validate() error {
	var c checker
	c.structTags(in)
	return c.err()
}

type UpdateVariantInput struct {
	Name       *string       `json:"name" binding:"omitempty,min=1"`
	ColorHex   *string       `json:"colorHex" binding:"omitempty,hexcolor"`
	TextureURL Field[string] `json:"textureUrl"`
	IsDefault  *bool         `json:"isDefault"`
}

func (in UpdateVariantInput) Empty() bool {
	return in.Name == nil && in.ColorHex == nil && !in.TextureURL.Set && in.IsDefault == nil
}

func (in UpdateVariantInput) Validate() error {
	if in.Empty() {
		return &ValidationError{Message: NoFieldsMessage}
	}
	var c checker
	c.structTags(in)
	return c.err()
}
