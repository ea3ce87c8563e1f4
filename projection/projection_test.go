package projection

import (
	"encoding/json"
	"testing"
	"time"

	"furniture-catalog/models"

	"github.com/google/uuid"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func sampleProduct() models.Product {
	catID := uuid.New()
	return models.Product{
		ID:           uuid.New(),
		Name:         "Modern Dining Chair",
		Slug:         "modern-dining-chair",
		Description:  "Elegant dining chair",
		CategoryID:   catID,
		Category:     models.Category{ID: catID, Name: "Chairs", Slug: "chairs"},
		ModelURL:     "/models/dining-chair.glb",
		ThumbnailURL: "/thumbnails/dining-chair.webp",
		BaseColor:    strPtr("#8B4513"),
		CreatedAt:    time.Now(),
	}
}

func toMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestSpecsOnlyIncludeStoredFields(t *testing.T) {
	p := sampleProduct()
	p.WidthCm = floatPtr(45)
	p.HeightCm = floatPtr(92)
	p.Material = strPtr("Solid oak wood")

	body := toMap(t, Detail(&p))
	specs, ok := body["specs"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected specs object, got %v", body["specs"])
	}
	if len(specs) != 3 {
		t.Errorf("expected exactly 3 spec fields, got %v", specs)
	}
	if specs["widthCm"] != 45.0 || specs["heightCm"] != 92.0 {
		t.Errorf("unexpected dimensions: %v", specs)
	}
	if specs["material"] != "Solid oak wood" {
		t.Errorf("unexpected material: %v", specs["material"])
	}
	for _, absent := range []string{"depthCm", "weightKg", "maxLoadKg"} {
		if _, present := specs[absent]; present {
			t.Errorf("%s should be absent from specs", absent)
		}
	}
	for _, flat := range []string{"widthCm", "heightCm", "material"} {
		if _, present := body[flat]; present {
			t.Errorf("%s should only appear inside specs", flat)
		}
	}
}

func TestNoSpecsKeyWhenNothingStored(t *testing.T) {
	p := sampleProduct()
	if SpecsOf(&p) != nil {
		t.Error("SpecsOf should be nil without spec fields")
	}
	for name, view := range map[string]interface{}{"list": ListItem(&p), "detail": Detail(&p)} {
		if _, present := toMap(t, view)["specs"]; present {
			t.Errorf("%s view should not carry a specs key", name)
		}
	}
}

func TestListItemDefaultVariant(t *testing.T) {
	p := sampleProduct()
	p.Variants = []models.Variant{
		{ID: uuid.New(), ProductID: p.ID, Name: "Natural Oak", ColorHex: "#D4A574", IsDefault: true},
	}

	body := toMap(t, ListItem(&p))
	dv, ok := body["defaultVariant"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected defaultVariant object, got %v", body["defaultVariant"])
	}
	if dv["name"] != "Natural Oak" || dv["isDefault"] != true {
		t.Errorf("unexpected default variant: %v", dv)
	}
	if _, present := body["variants"]; present {
		t.Error("list item should not carry a variants array")
	}
}

func TestListItemNullWithoutDefault(t *testing.T) {
	p := sampleProduct()
	p.Variants = []models.Variant{{ID: uuid.New(), Name: "Walnut", ColorHex: "#5C4033"}}

	body := toMap(t, ListItem(&p))
	v, present := body["defaultVariant"]
	if !present {
		t.Fatal("defaultVariant key should always be present")
	}
	if v != nil {
		t.Errorf("expected null defaultVariant, got %v", v)
	}
}

func TestDetailKeepsVariantOrder(t *testing.T) {
	p := sampleProduct()
	p.Variants = []models.Variant{
		{ID: uuid.New(), Name: "Natural Oak", ColorHex: "#D4A574", IsDefault: true},
		{ID: uuid.New(), Name: "Walnut Brown", ColorHex: "#5C4033"},
	}

	detail := Detail(&p)
	if len(detail.Variants) != 2 || detail.Variants[0].Name != "Natural Oak" {
		t.Errorf("unexpected variants: %+v", detail.Variants)
	}

	p.Variants = nil
	body := toMap(t, Detail(&p))
	if arr, ok := body["variants"].([]interface{}); !ok || len(arr) != 0 {
		t.Errorf("expected empty variants array, got %v", body["variants"])
	}
}

func TestProductViewFields(t *testing.T) {
	p := sampleProduct()
	body := toMap(t, ListItem(&p))

	if body["baseColor"] != "#8B4513" {
		t.Errorf("unexpected baseColor: %v", body["baseColor"])
	}
	if body["categoryId"] != p.CategoryID.String() {
		t.Errorf("unexpected categoryId: %v", body["categoryId"])
	}
	cat, ok := body["category"].(map[string]interface{})
	if !ok || cat["slug"] != "chairs" {
		t.Errorf("unexpected category: %v", body["category"])
	}

	p.BaseColor = nil
	p.UseOriginalColor = true
	body = toMap(t, ListItem(&p))
	if v, present := body["baseColor"]; !present || v != nil {
		t.Errorf("expected null baseColor, got %v", v)
	}
}

func TestCategoryProjection(t *testing.T) {
	c := models.Category{
		ID:   uuid.New(),
		Name: "Chairs",
		Slug: "chairs",
		Products: []models.Product{
			{ID: uuid.New(), Name: "A", Slug: "a", ThumbnailURL: "/a.webp", IsFeatured: true, Description: "hidden"},
		},
	}
	body := toMap(t, Category(&c))
	products := body["products"].([]interface{})
	if len(products) != 1 {
		t.Fatalf("expected 1 product summary, got %d", len(products))
	}
	summary := products[0].(map[string]interface{})
	if _, present := summary["description"]; present {
		t.Error("summary should only carry minimal product fields")
	}
	if summary["isFeatured"] != true || summary["thumbnailUrl"] != "/a.webp" {
		t.Errorf("unexpected summary: %v", summary)
	}

	empty := toMap(t, Category(&models.Category{ID: uuid.New(), Name: "Empty", Slug: "empty"}))
	if arr, ok := empty["products"].([]interface{}); !ok || len(arr) != 0 {
		t.Errorf("expected empty products array, got %v", empty["products"])
	}
}
