package usecase

import (
	"reflect"
	"testing"

	"github.com/daniel-soulful/giftly-new/internal/domain"
)

func TestParsePriceString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain integer", "299", 299, true},
		{"with currency suffix", "299 kr", 299, true},
		{"norwegian dash style", "299,-", 299, true},
		{"decimal comma", "299,50", 299.5, true},
		{"decimal point", "299.50", 299.5, true},
		{"thousands dot with decimal comma", "1.299,50", 1299.5, true},
		{"thousands dots", "1.299.000,00", 1299000, true},
		{"leading text", "fra 450 kr", 450, true},
		{"no digits", "gratis", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parsePriceString(tt.input)
			if ok != tt.ok {
				t.Fatalf("parsePriceString(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("parsePriceString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolvePrice(t *testing.T) {
	t.Run("prefers numeric extracted price", func(t *testing.T) {
		raw := domain.RawRecord{"extracted_price": 450.0, "price": "999 kr"}
		if got := resolvePrice(raw); got != 450 {
			t.Errorf("resolvePrice = %d, want 450", got)
		}
	})

	t.Run("rounds to nearest whole unit", func(t *testing.T) {
		raw := domain.RawRecord{"price": "1.299,50 kr"}
		if got := resolvePrice(raw); got != 1300 {
			t.Errorf("resolvePrice = %d, want 1300", got)
		}
	})

	t.Run("falls back to nested prices list", func(t *testing.T) {
		raw := domain.RawRecord{
			"prices": []any{map[string]any{"extracted_price": 120.0}},
		}
		if got := resolvePrice(raw); got != 120 {
			t.Errorf("resolvePrice = %d, want 120", got)
		}
	})

	t.Run("unparseable resolves to zero", func(t *testing.T) {
		raw := domain.RawRecord{"price": "ring for pris"}
		if got := resolvePrice(raw); got != 0 {
			t.Errorf("resolvePrice = %d, want 0", got)
		}
	})
}

func TestResolveImages(t *testing.T) {
	t.Run("primary singular fields win over arrays", func(t *testing.T) {
		raw := domain.RawRecord{
			"image_url":      "https://img.example/a.jpg",
			"product_images": []any{map[string]any{"link": "https://img.example/b.jpg"}},
			"thumbnail":      "https://img.example/c.jpg",
		}
		images := resolveImages(raw)
		if len(images) != 3 {
			t.Fatalf("len(images) = %d, want 3", len(images))
		}
		if images[0] != "https://img.example/a.jpg" {
			t.Errorf("images[0] = %q, want primary field first", images[0])
		}
		if images[2] != "https://img.example/c.jpg" {
			t.Errorf("images[2] = %q, want thumbnail last", images[2])
		}
	})

	t.Run("strips size hints before dedup", func(t *testing.T) {
		raw := domain.RawRecord{
			"image_url": "https://img.example/a.jpg=w200-h200-p",
			"images":    []any{"https://img.example/a.jpg=w800-h800"},
		}
		images := resolveImages(raw)
		want := []string{"https://img.example/a.jpg"}
		if !reflect.DeepEqual(images, want) {
			t.Errorf("images = %v, want %v", images, want)
		}
	})

	t.Run("strips size query params", func(t *testing.T) {
		raw := domain.RawRecord{"image_url": "https://img.example/a.jpg?w=120&q=60"}
		images := resolveImages(raw)
		if len(images) != 1 || images[0] != "https://img.example/a.jpg" {
			t.Errorf("images = %v, want size params stripped", images)
		}
	})

	t.Run("caps at six entries", func(t *testing.T) {
		var arr []any
		for i := 0; i < 10; i++ {
			arr = append(arr, "https://img.example/"+string(rune('a'+i))+".jpg")
		}
		raw := domain.RawRecord{"images": arr}
		if images := resolveImages(raw); len(images) != 6 {
			t.Errorf("len(images) = %d, want 6", len(images))
		}
	})
}

func TestNormalize(t *testing.T) {
	t.Run("maps a serpapi shopping record", func(t *testing.T) {
		raw := domain.RawRecord{
			"product_id":      "p-123",
			"title":           "Moccamaster KBG",
			"snippet":         "Filter coffee machine",
			"extracted_price": 2199.0,
			"thumbnail":       "https://img.example/moccamaster.jpg",
			"source":          "Elkjøp",
			"category":        "Coffee, Kitchen",
			"product_link":    "https://example.no/moccamaster",
		}
		c := Normalize(raw, domain.SourceLive)

		if c.ID != "p-123" {
			t.Errorf("ID = %q, want p-123", c.ID)
		}
		if c.Name != "Moccamaster KBG" {
			t.Errorf("Name = %q", c.Name)
		}
		if c.Description != "Filter coffee machine" {
			t.Errorf("Description = %q", c.Description)
		}
		if c.Price != 2199 {
			t.Errorf("Price = %d, want 2199", c.Price)
		}
		if c.MerchantName != "Elkjøp" {
			t.Errorf("MerchantName = %q", c.MerchantName)
		}
		if want := []string{"coffee", "kitchen"}; !reflect.DeepEqual(c.Tags, want) {
			t.Errorf("Tags = %v, want %v", c.Tags, want)
		}
		if c.ExternalURL != "https://example.no/moccamaster" {
			t.Errorf("ExternalURL = %q", c.ExternalURL)
		}
		if c.Source != domain.SourceLive {
			t.Errorf("Source = %q, want live", c.Source)
		}
		if !Eligible(c) {
			t.Error("expected candidate to be eligible")
		}
	})

	t.Run("maps a catalog row", func(t *testing.T) {
		raw := domain.RawRecord{
			"id":            "catalog-7",
			"name":          "Wool Beanie",
			"price_nok":     int64(299),
			"image_url":     "https://img.example/beanie.jpg",
			"merchant_name": "XXL",
			"tags":          "outdoor,winter",
		}
		c := Normalize(raw, domain.SourceCatalog)

		if c.ID != "catalog-7" {
			t.Errorf("ID = %q, want catalog-7", c.ID)
		}
		if c.Price != 299 {
			t.Errorf("Price = %d, want 299", c.Price)
		}
		if c.Source != domain.SourceCatalog {
			t.Errorf("Source = %q, want catalog", c.Source)
		}
	})

	t.Run("defaults name and derives id from it", func(t *testing.T) {
		raw := domain.RawRecord{
			"title":     "Fancy Mug",
			"price":     "150",
			"thumbnail": "https://img.example/mug.jpg",
		}
		c := Normalize(raw, domain.SourceLive)
		if c.ID != "fancy mug" {
			t.Errorf("ID = %q, want lowercased name fallback", c.ID)
		}

		empty := Normalize(domain.RawRecord{}, domain.SourceLive)
		if empty.Name != "Product" {
			t.Errorf("Name = %q, want generic default", empty.Name)
		}
	})

	t.Run("retains at most eight specs", func(t *testing.T) {
		var specs []any
		for i := 0; i < 12; i++ {
			specs = append(specs, map[string]any{"key": "k", "value": "v"})
		}
		raw := domain.RawRecord{"title": "Gadget", "specs": specs}
		c := Normalize(raw, domain.SourceLive)
		if len(c.Specs) != 8 {
			t.Errorf("len(Specs) = %d, want 8", len(c.Specs))
		}
	})
}

func TestNormalizeAllEligibilityGate(t *testing.T) {
	raws := []domain.RawRecord{
		{"title": "Priced and imaged", "price": "100", "thumbnail": "https://img.example/1.jpg"},
		{"title": "No image", "price": "100"},
		{"title": "No price", "thumbnail": "https://img.example/2.jpg"},
		{"title": "Free item", "price": "0", "thumbnail": "https://img.example/3.jpg"},
	}

	out := NormalizeAll(raws, domain.SourceLive)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].Name != "Priced and imaged" {
		t.Errorf("survivor = %q", out[0].Name)
	}
}
