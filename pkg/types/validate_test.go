package types

import (
	"errors"
	"testing"
)

func TestValidateReviewInput(t *testing.T) {
	tests := []struct {
		name    string
		input   ReviewInput
		wantErr bool
	}{
		{"rating 3 is valid", ReviewInput{Rating: 3}, false},
		{"rating 1 is valid", ReviewInput{Rating: 1}, false},
		{"rating 5 is valid", ReviewInput{Rating: 5}, false},
		{"rating 0 rejected", ReviewInput{Rating: 0}, true},
		{"rating 6 rejected", ReviewInput{Rating: 6}, true},
		{"negative rating rejected", ReviewInput{Rating: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestValidateUserProfile(t *testing.T) {
	if err := Validate(UserProfile{Username: "chef"}); err != nil {
		t.Fatalf("expected valid profile, got %v", err)
	}
	err := Validate(UserProfile{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
}

func TestValidateRecipe(t *testing.T) {
	valid := Recipe{Name: "Tea", Category: CategoryDrink, Difficulty: DifficultyEasy, Servings: 1}
	if err := Validate(valid); err != nil {
		t.Fatalf("expected valid recipe, got %v", err)
	}

	missing := Recipe{Servings: 2}
	if err := Validate(missing); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}

	badCategory := Recipe{Name: "x", Category: "dessert", Servings: 2}
	if err := Validate(badCategory); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown category, got %v", err)
	}
}
