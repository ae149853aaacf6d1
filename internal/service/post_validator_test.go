package service

import (
	"errors"
	"testing"

	"github.com/brandsite-api/internal/models"
)

func TestValidateForSaveRequiresOnlyTitle(t *testing.T) {
	err := ValidateForSave(&models.BlogPost{Title: "  "})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || !validationErr.HasField("title") {
		t.Fatalf("expected title violation, got %v", err)
	}
	if err := ValidateForSave(&models.BlogPost{Title: "Draft", Content: ""}); err != nil {
		t.Fatalf("draft without content should save: %v", err)
	}
}

func TestValidateForPublish(t *testing.T) {
	image := "/relative.png"
	violations := ValidateForPublish(&models.BlogPost{Title: "T", Slug: "t", Content: "", ImageURL: &image})
	fields := map[string]bool{}
	for _, v := range violations {
		fields[v.Field] = true
	}
	if !fields["content"] || !fields["image_url"] {
		t.Fatalf("expected content and image_url violations, got %+v", violations)
	}

	if got := ValidateForPublish(&models.BlogPost{Title: "!!!", Slug: "", Content: "body"}); len(got) != 1 || got[0].Field != "slug" {
		t.Fatalf("expected single slug violation, got %+v", got)
	}

	valid := "https://cdn.example.com/a.png"
	if got := ValidateForPublish(&models.BlogPost{Title: "T", Slug: "t", Content: "body", ImageURL: &valid}); len(got) != 0 {
		t.Fatalf("expected no violations, got %+v", got)
	}
}
