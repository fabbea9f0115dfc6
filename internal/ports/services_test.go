package ports

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/tasksphere/core/internal/domain/entities"
)

func TestCreateTaskRequestTitleBound(t *testing.T) {
	validate := validator.New()

	req := CreateTaskRequest{
		Title:    strings.Repeat("a", 200),
		Priority: entities.PriorityMedium,
	}
	if err := validate.Struct(&req); err != nil {
		t.Fatalf("200-char title rejected: %v", err)
	}

	// The title column is VARCHAR(200); anything longer must fail validation
	// instead of reaching the database.
	req.Title = strings.Repeat("a", 201)
	if err := validate.Struct(&req); err == nil {
		t.Fatal("201-char title passed validation")
	}
}

func TestCreateTaskRequestRequiredFields(t *testing.T) {
	validate := validator.New()

	if err := validate.Struct(&CreateTaskRequest{Priority: entities.PriorityLow}); err == nil {
		t.Fatal("missing title passed validation")
	}
	if err := validate.Struct(&CreateTaskRequest{Title: "x"}); err == nil {
		t.Fatal("missing priority passed validation")
	}
}
