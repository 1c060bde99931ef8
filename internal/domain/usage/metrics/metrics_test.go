package metrics

import "testing"

func TestNew(t *testing.T) {
	m := New(100, 50000)
	if m.Requests() != 100 {
		t.Errorf("Requests() = %d", m.Requests())
	}
	if m.Tokens() != 50000 {
		t.Errorf("Tokens() = %d", m.Tokens())
	}
}
