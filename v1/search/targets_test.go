package search

import (
	"reflect"
	"testing"

	"github.com/Aleph-Alpha/weaviate/v1/vector"
)

func TestTargets_SingleName(t *testing.T) {
	tv, err := Targets("title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tv.Method() != vector.CombinationNone {
		t.Errorf("expected no combination method, got %v", tv.Method())
	}
	if got := tv.Names(); !reflect.DeepEqual(got, []string{"title"}) {
		t.Errorf("expected [title], got %v", got)
	}
}

func TestTargets_MultipleNamesWithoutMethodRejected(t *testing.T) {
	_, err := Targets("title", "body")
	if !IsInvalidInput(err) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTargets_EmptyRejected(t *testing.T) {
	_, err := Targets()
	if !IsInvalidInput(err) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTargetCombinations(t *testing.T) {
	tests := []struct {
		name  string
		build func(...string) (TargetVectors, error)
		want  vector.CombinationMethod
	}{
		{"sum", TargetSum, vector.CombinationSum},
		{"average", TargetAverage, vector.CombinationAverage},
		{"minimum", TargetMinimum, vector.CombinationMinimum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv, err := tt.build("title", "body")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tv.Method() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tv.Method())
			}
			if tv.Len() != 2 {
				t.Errorf("expected 2 entries, got %d", tv.Len())
			}
		})
	}
}

func TestTargetManualWeights(t *testing.T) {
	tv, err := TargetManualWeights(Weight("title", 1.2), Weight("desc", 0.8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tv.Method() != vector.CombinationManualWeights {
		t.Errorf("expected manual weights, got %v", tv.Method())
	}
	entries := tv.Entries()
	if entries[0].Name() != "title" || entries[1].Name() != "desc" {
		t.Errorf("names not preserved: %v", tv.Names())
	}
	if w, ok := entries[0].Weight(); !ok || w != 1.2 {
		t.Errorf("expected weight 1.2 on title, got %v (%v)", w, ok)
	}
	if w, ok := entries[1].Weight(); !ok || w != 0.8 {
		t.Errorf("expected weight 0.8 on desc, got %v (%v)", w, ok)
	}
}

func TestTargets_DuplicateNamesRejected(t *testing.T) {
	_, err := TargetSum("title", "title")
	if !IsInvalidInput(err) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTargets_EmptyNameRejected(t *testing.T) {
	_, err := TargetSum("title", "")
	if !IsInvalidInput(err) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTargetsFrom(t *testing.T) {
	fromString, err := TargetsFrom("title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fromString.Names(); !reflect.DeepEqual(got, []string{"title"}) {
		t.Errorf("expected [title], got %v", got)
	}

	if _, err := TargetsFrom([]string{"title", "body"}); !IsInvalidInput(err) {
		t.Errorf("expected rejection of method-less name list, got %v", err)
	}

	fromCallback, err := TargetsFrom(func(b *TargetsBuilder) (TargetVectors, error) {
		return b.RelativeScore(Weight("title", 2), Weight("body", 1))
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fromCallback.Method() != vector.CombinationRelativeScore {
		t.Errorf("expected relative score, got %v", fromCallback.Method())
	}

	if _, err := TargetsFrom(TargetVectors{}); !IsInvalidInput(err) {
		t.Errorf("expected rejection of zero TargetVectors, got %v", err)
	}
	if _, err := TargetsFrom(42); !IsInvalidInput(err) {
		t.Errorf("expected rejection of unsupported shape, got %v", err)
	}
}

func TestTargetVectors_EntriesAreCopies(t *testing.T) {
	tv, err := TargetSum("title", "body")
	if err != nil {
		t.Fatal(err)
	}
	entries := tv.Entries()
	entries[0] = TargetEntry{}
	if tv.Entries()[0].Name() != "title" {
		t.Error("mutating the returned entries leaked into the value")
	}
}
