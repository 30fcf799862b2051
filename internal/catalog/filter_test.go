package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Parallel()

	products := DemoProducts()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no criteria keeps everything", Criteria{}, []string{"gid://shopify/Product/1", "gid://shopify/Product/2", "gid://shopify/Product/3"}},
		{"title match is case-insensitive", Criteria{Query: "WATCH"}, []string{"gid://shopify/Product/2"}},
		{"description match", Criteria{Query: "noise cancellation"}, []string{"gid://shopify/Product/1"}},
		{"tag substring match", Criteria{Query: "wear"}, []string{"gid://shopify/Product/2"}},
		{"selected tags intersect", Criteria{Tags: []string{"office", "wireless"}}, []string{"gid://shopify/Product/1", "gid://shopify/Product/3"}},
		{"selected tags are exact", Criteria{Tags: []string{"Office"}}, []string{}},
		{"query and tags both apply", Criteria{Query: "lamp", Tags: []string{"wireless"}}, []string{}},
		{"no match", Criteria{Query: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ids(Filter(products, tt.criteria)))
		})
	}
}

func TestFilter_IsIdempotent(t *testing.T) {
	t.Parallel()

	products := DemoProducts()
	criteria := Criteria{Query: "e", Tags: []string{"fitness", "home"}}

	once := Filter(products, criteria)
	twice := Filter(once, criteria)
	assert.Equal(t, ids(once), ids(twice))
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	products := DemoProducts()
	before := ids(products)
	_ = Filter(products, Criteria{Query: "lamp"})
	assert.Equal(t, before, ids(products))
}

func TestTags_SortedAndUnique(t *testing.T) {
	t.Parallel()

	products := []Product{
		{Tags: []string{"b", "a"}},
		{Tags: []string{"c", "a"}},
	}
	assert.Equal(t, []string{"a", "b", "c"}, Tags(products))
	assert.Empty(t, Tags(nil))
}

func TestToggleTag(t *testing.T) {
	t.Parallel()

	selected := []string{"a", "b"}
	assert.Equal(t, []string{"a", "b", "c"}, ToggleTag(selected, "c"))
	assert.Equal(t, []string{"b"}, ToggleTag(selected, "a"))
	assert.Equal(t, []string{"a", "b"}, selected, "input must not be modified")
}

func TestProduct_VariantAndImage(t *testing.T) {
	t.Parallel()

	p := DemoProducts()[0]
	v, ok := p.Variant("gid://shopify/ProductVariant/1")
	require.True(t, ok)
	assert.Equal(t, "Black", v.Title)
	assert.Equal(t, "24999.99", v.Price.Amount.StringFixed(2))

	_, ok = p.Variant("missing")
	assert.False(t, ok)

	v.Image = nil
	assert.Equal(t, p.Images[0].URL, p.ImageURL(v))
	assert.Equal(t, "", Product{}.ImageURL(Variant{}))
}

func TestNewMoney_InvalidAmountIsZero(t *testing.T) {
	t.Parallel()

	m := NewMoney("not-a-number", "USD")
	assert.True(t, m.Amount.IsZero())
	assert.Equal(t, "USD", m.CurrencyCode)
}
