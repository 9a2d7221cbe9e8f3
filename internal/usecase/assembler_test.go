package usecase

import (
	"reflect"
	"testing"

	"github.com/daniel-soulful/giftly-new/internal/domain"
)

func TestAssemble(t *testing.T) {
	a := NewAssembler("NOK")
	req := &domain.SelectionRequest{Budget: 500}

	t.Run("primary fills before secondary, duplicates skipped", func(t *testing.T) {
		primary := []domain.Candidate{
			{ID: "a", Name: "A", Price: 480, Description: "d"},
			{ID: "b", Name: "B", Price: 450, Description: "d"},
		}
		secondary := []domain.Candidate{
			{ID: "b", Name: "B again", Price: 450, Description: "d"},
			{ID: "c", Name: "C", Price: 300, Description: "d"},
			{ID: "d", Name: "D", Price: 200, Description: "d"},
		}
		out := a.Assemble(primary, secondary, req, 3)
		if got, want := ids(out), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
			t.Errorf("ids = %v, want %v", got, want)
		}
	})

	t.Run("never exceeds budget", func(t *testing.T) {
		primary := []domain.Candidate{
			{ID: "over", Price: 600, Description: "d"},
			{ID: "ok", Price: 400, Description: "d"},
		}
		out := a.Assemble(primary, nil, req, 3)
		if got, want := ids(out), []string{"ok"}; !reflect.DeepEqual(got, want) {
			t.Errorf("ids = %v, want %v", got, want)
		}
	})

	t.Run("synthesizes missing descriptions", func(t *testing.T) {
		primary := []domain.Candidate{
			{ID: "a", Name: "Wool Beanie", Price: 299, MerchantName: "XXL"},
		}
		out := a.Assemble(primary, nil, &domain.SelectionRequest{Budget: 500, Notes: "outdoor"}, 3)
		if len(out) != 1 {
			t.Fatalf("len(out) = %d, want 1", len(out))
		}
		want := "Wool Beanie. from XXL. around 299 NOK. Relevant for: outdoor"
		if out[0].Description != want {
			t.Errorf("Description = %q, want %q", out[0].Description, want)
		}
	})

	t.Run("does not mutate upstream candidates", func(t *testing.T) {
		primary := []domain.Candidate{{ID: "a", Name: "Mug", Price: 100}}
		a.Assemble(primary, nil, req, 3)
		if primary[0].Description != "" {
			t.Error("Assemble mutated its input")
		}
	})

	t.Run("truncates to need", func(t *testing.T) {
		primary := []domain.Candidate{
			{ID: "a", Price: 100, Description: "d"},
			{ID: "b", Price: 100, Description: "d"},
			{ID: "c", Price: 100, Description: "d"},
			{ID: "d", Price: 100, Description: "d"},
		}
		if out := a.Assemble(primary, nil, req, 3); len(out) != 3 {
			t.Errorf("len(out) = %d, want 3", len(out))
		}
	})

	t.Run("empty inputs yield empty output", func(t *testing.T) {
		if out := a.Assemble(nil, nil, req, 3); len(out) != 0 {
			t.Errorf("len(out) = %d, want 0", len(out))
		}
	})
}

func TestFallbackDescription(t *testing.T) {
	a := NewAssembler("")

	t.Run("defaults currency to NOK", func(t *testing.T) {
		c := domain.Candidate{Name: "Mug", Price: 150}
		got := a.FallbackDescription(c, &domain.SelectionRequest{})
		if got != "Mug. around 150 NOK" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("handles fully empty candidate", func(t *testing.T) {
		got := a.FallbackDescription(domain.Candidate{}, &domain.SelectionRequest{})
		if got != "Gift item" {
			t.Errorf("got %q", got)
		}
	})
}
