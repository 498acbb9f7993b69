package validation_test

import (
	"errors"
	"testing"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-wasteops/internal/validation"
)

func containerSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":         map[string]any{"type": "string"},
			"fill_level": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		},
		"required":             []any{"id"},
		"additionalProperties": true,
	}
}

func TestValidatePayloadAcceptsValid(t *testing.T) {
	err := validation.ValidatePayload(containerSchema(), map[string]any{
		"id":         "Cen-001",
		"fill_level": 40,
	})
	if err != nil {
		t.Fatalf("expected valid payload got %v", err)
	}
}

func TestValidatePayloadCollectsIssues(t *testing.T) {
	err := validation.ValidatePayload(containerSchema(), map[string]any{
		"fill_level": 140,
	})
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation got %v", err)
	}

	issues := validation.Issues(err)
	if len(issues) == 0 {
		t.Fatal("expected at least one issue")
	}
}

func TestIssuesCollectsFieldErrors(t *testing.T) {
	err := ozzo.Errors{
		"Lon": errors.New("must be no greater than 180"),
		"Lat": errors.New("must be no greater than 90"),
	}

	issues := validation.Issues(err)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues got %d", len(issues))
	}
	if issues[0].Location != "Lat" || issues[1].Location != "Lon" {
		t.Fatalf("expected issues sorted by field got %+v", issues)
	}
	if issues[0].Message == "" {
		t.Fatal("expected field message to carry through")
	}
}

func TestValidateSchemaRejectsBroken(t *testing.T) {
	err := validation.ValidateSchema(map[string]any{
		"type": "nonsense",
	})
	if !errors.Is(err, validation.ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid got %v", err)
	}
}
