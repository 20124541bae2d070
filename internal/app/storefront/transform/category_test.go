package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_FullPayload(t *testing.T) {
	// Arrange
	raw := map[string]any{
		"id":                    "11",
		"name":                  []any{map[string]any{"id": "1", "value": "Fertilizantes"}},
		"link_rewrite":          []any{map[string]any{"id": "1", "value": "fertilizantes"}},
		"description":           "Abonos y nutrientes",
		"id_parent":             "2",
		"level_depth":           "2",
		"nleft":                 "10",
		"nright":                "21",
		"nb_products_recursive": "134",
		"active":                "1",
	}

	// Act
	c := Category(raw)

	// Assert
	assert.Equal(t, 11, c.ID)
	assert.Equal(t, "Fertilizantes", c.Name)
	assert.Equal(t, "fertilizantes", c.Slug)
	assert.Equal(t, 134, c.ProductsCount)
	assert.Equal(t, 2, c.LevelDepth)
	assert.True(t, c.Active)

	require.NotNil(t, c.ParentID)
	assert.Equal(t, 2, *c.ParentID)

	assert.Equal(t, "/api/images/categories/11-category_default.jpg", c.Image)
}

func TestCategory_MinimalAssociationForm(t *testing.T) {
	// В ассоциациях товара категория приходит как {"id": "5"}
	c := Category(map[string]any{"id": "5"})

	assert.Equal(t, 5, c.ID)
	assert.Equal(t, "", c.Name)
	assert.Nil(t, c.ParentID)
	assert.Equal(t, "", c.Image)
}

func TestCategory_SlugFallsBackToName(t *testing.T) {
	c := Category(map[string]any{"id": "3", "name": "Iluminación LED"})

	assert.Equal(t, "iluminacion-led", c.Slug)
}

func TestCategory_RootHasNoParent(t *testing.T) {
	c := Category(map[string]any{"id": "1", "name": "Inicio", "id_parent": "0"})

	assert.Nil(t, c.ParentID)
}

func TestManufacturer_Payload(t *testing.T) {
	m := Manufacturer(map[string]any{
		"id":     "5",
		"name":   "BioGrow",
		"active": "1",
	})

	assert.Equal(t, 5, m.ID)
	assert.Equal(t, "BioGrow", m.Name)
	assert.Equal(t, "biogrow", m.Slug)
	assert.Equal(t, "/api/images/manufacturers/5.jpg", m.Image)
	assert.True(t, m.Active)
}

func TestInt_CoercionVariants(t *testing.T) {
	assert.Equal(t, 42, Int("42"))
	assert.Equal(t, 42, Int(42.0))
	assert.Equal(t, 42, Int(42))
	assert.Equal(t, 12, Int("12.00"))
	assert.Equal(t, 0, Int("abc"))
	assert.Equal(t, 0, Int(nil))
}

func TestFloat_CoercionVariants(t *testing.T) {
	assert.Equal(t, 12.5, Float("12.50"))
	assert.Equal(t, 12.5, Float(12.5))
	assert.Equal(t, 0.0, Float("abc"))
	assert.Equal(t, 0.0, Float(nil))
}

func TestBool_CoercionVariants(t *testing.T) {
	assert.True(t, Bool("1"))
	assert.True(t, Bool("true"))
	assert.True(t, Bool(true))
	assert.True(t, Bool(1.0))
	assert.False(t, Bool("0"))
	assert.False(t, Bool(""))
	assert.False(t, Bool(nil))
}
