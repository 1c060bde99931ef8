package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/leadscout/internal/domain"
)

var santos = Location{Latitude: -23.9608, Longitude: -46.3336}

func TestNew_Defaults(t *testing.T) {
	r, err := New("  padaria  ", santos, Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "padaria" {
		t.Errorf("Query() = %q, want trimmed", r.Query())
	}
	if r.TargetCount() != DefaultTargetCount {
		t.Errorf("TargetCount() = %d, want %d", r.TargetCount(), DefaultTargetCount)
	}
	if r.Location() != santos {
		t.Errorf("Location() = %+v", r.Location())
	}
}

func TestNew_BlankQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := New(q, santos, Filters{})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("New(%q) error = %v, want ErrInvalidRequest", q, err)
		}
	}
}

func TestNew_QueryTooLong(t *testing.T) {
	_, err := New(strings.Repeat("a", MaxQueryLength+1), santos, Filters{})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_InvalidCoordinates(t *testing.T) {
	_, err := New("padaria", Location{Latitude: 91}, Filters{})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_NegativeRadius(t *testing.T) {
	_, err := New("padaria", santos, Filters{RadiusKm: -1})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_StateNormalized(t *testing.T) {
	r, err := New("padaria", santos, Filters{City: " Santos ", State: " sp "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := r.Filters()
	if f.City != "Santos" {
		t.Errorf("City = %q", f.City)
	}
	if f.State != "SP" {
		t.Errorf("State = %q, want SP", f.State)
	}
}

func TestNew_StateTooLong(t *testing.T) {
	_, err := New("padaria", santos, Filters{State: "São Paulo"})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_TargetCountClamped(t *testing.T) {
	r, err := New("padaria", santos, Filters{TargetCount: MaxTargetCount * 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TargetCount() != MaxTargetCount {
		t.Errorf("TargetCount() = %d, want %d", r.TargetCount(), MaxTargetCount)
	}

	r, err = New("padaria", santos, Filters{TargetCount: -5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TargetCount() != DefaultTargetCount {
		t.Errorf("TargetCount() = %d, want %d", r.TargetCount(), DefaultTargetCount)
	}
}

func TestScope(t *testing.T) {
	tests := []struct {
		name string
		f    Filters
		want Scope
	}{
		{"city and state beat radius", Filters{City: "Santos", State: "SP", RadiusKm: 25}, ScopePlace},
		{"radius without place", Filters{RadiusKm: 10}, ScopeRadius},
		{"nothing set", Filters{}, ScopeProximity},
		{"city alone falls through to radius", Filters{City: "Santos", RadiusKm: 5}, ScopeRadius},
		{"state alone falls through to proximity", Filters{State: "SP"}, ScopeProximity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := New("padaria", santos, tc.f)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := r.Scope(); got != tc.want {
				t.Errorf("Scope() = %q, want %q", got, tc.want)
			}
		})
	}
}
