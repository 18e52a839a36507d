package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidatePreferences(t *testing.T) {
	names := []string{"Science Fiction", "History", "Poetry"}

	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "all known",
			raw:  []string{"History", "Poetry"},
			want: []string{"History", "Poetry"},
		},
		{
			name: "unknowns dropped, order kept",
			raw:  []string{"Gardening", "Poetry", "Cooking", "History"},
			want: []string{"Poetry", "History"},
		},
		{
			name: "case sensitive",
			raw:  []string{"history"},
			want: []string{"Science Fiction"},
		},
		{
			name: "all unknown falls back to first category",
			raw:  []string{"Gardening"},
			want: []string{"Science Fiction"},
		},
		{
			name: "empty input falls back to first category",
			raw:  nil,
			want: []string{"Science Fiction"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePreferences(tt.raw, names)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidatePreferences_NoCategories(t *testing.T) {
	got := ValidatePreferences([]string{"Gardening"}, nil)
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestNewContentLimit(t *testing.T) {
	err := NewContentLimit(1500)
	if !errors.Is(err, ErrContentLimitExceeded) {
		t.Fatalf("expected ErrContentLimitExceeded, got %v", err)
	}

	var limitErr *ContentLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected *ContentLimitError, got %T", err)
	}
	if limitErr.Requested != 1500 {
		t.Errorf("Requested = %d, want 1500", limitErr.Requested)
	}
}

func TestCategoryNames(t *testing.T) {
	got := CategoryNames([]Category{
		{ID: 1, Name: "Science Fiction"},
		{ID: 2, Name: "History"},
	})
	if !reflect.DeepEqual(got, []string{"Science Fiction", "History"}) {
		t.Errorf("got %v", got)
	}
}
