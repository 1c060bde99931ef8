package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/leadscout/internal/domain/lead"
)

func rec(name, phone string) lead.Record {
	return lead.New(name, lead.Contacts{Phone: phone})
}

func TestDeduplicate_LastWinsAtFirstPosition(t *testing.T) {
	in := []lead.Record{
		rec("Padaria Sol", "1"),
		rec("Mercado Lua", "2"),
		rec(" PADARIA SOL ", "3"),
	}
	got := Deduplicate(in)
	want := []lead.Record{rec(" PADARIA SOL ", "3"), rec("Mercado Lua", "2")}

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(lead.Record{})); diff != "" {
		t.Errorf("Deduplicate mismatch (-want +got):\n%s", diff)
	}
}

func TestDeduplicate_KeySetIndependentOfOrder(t *testing.T) {
	base := []lead.Record{
		rec("A", "1"), rec("b", "2"), rec("B ", "3"), rec("c", "4"), rec(" a", "5"),
	}
	permutations := [][]int{
		{0, 1, 2, 3, 4},
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{3, 4, 0, 2, 1},
	}

	wantKeys := map[string]bool{"a": true, "b": true, "c": true}
	for _, perm := range permutations {
		in := make([]lead.Record, len(perm))
		for i, p := range perm {
			in[i] = base[p]
		}
		got := Deduplicate(in)
		if len(got) != len(wantKeys) {
			t.Fatalf("perm %v: expected %d records, got %d", perm, len(wantKeys), len(got))
		}
		for _, r := range got {
			if !wantKeys[r.Key()] {
				t.Errorf("perm %v: unexpected key %q", perm, r.Key())
			}
		}
	}
}

func TestDeduplicate_Deterministic(t *testing.T) {
	in := []lead.Record{rec("x", "1"), rec("X", "2"), rec("y", "3")}
	first := Deduplicate(in)
	second := Deduplicate(in)
	if diff := cmp.Diff(first, second, cmp.AllowUnexported(lead.Record{})); diff != "" {
		t.Errorf("non-deterministic merge:\n%s", diff)
	}
	if first[0].Phone() != "2" {
		t.Errorf("expected last-seen phone 2, got %q", first[0].Phone())
	}
}

func TestDeduplicate_BlankNamesCollapse(t *testing.T) {
	got := Deduplicate([]lead.Record{rec("", "1"), rec("   ", "2"), rec("z", "3")})
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Phone() != "2" {
		t.Errorf("expected blank-name record with phone 2, got %q", got[0].Phone())
	}
}

func TestDeduplicate_Empty(t *testing.T) {
	got := Deduplicate(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}
