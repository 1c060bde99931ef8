package batch

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/leadscout/internal/domain/lead"
)

func TestNewOK(t *testing.T) {
	recs := []lead.Record{lead.New("Padaria", lead.Contacts{})}
	o := NewOK(2, "a-d", recs)
	if o.Index() != 2 {
		t.Errorf("Index() = %d", o.Index())
	}
	if o.Strategy() != "a-d" {
		t.Errorf("Strategy() = %q", o.Strategy())
	}
	if !o.OK() || o.Status() != StatusOK {
		t.Errorf("Status() = %q, want %q", o.Status(), StatusOK)
	}
	if len(o.Records()) != 1 {
		t.Errorf("Records() len = %d", len(o.Records()))
	}
	if o.Err() != nil {
		t.Errorf("Err() = %v, want nil", o.Err())
	}
}

func TestNewOK_EmptyIsSuccess(t *testing.T) {
	o := NewOK(0, "a-d", nil)
	if !o.OK() {
		t.Error("empty result must still be a success")
	}
}

func TestNewFailed(t *testing.T) {
	err := errors.New("timeout")
	o := NewFailed(1, "e-h", err)
	if o.OK() || o.Status() != StatusFailed {
		t.Errorf("Status() = %q, want %q", o.Status(), StatusFailed)
	}
	if o.Records() != nil {
		t.Errorf("failed outcome carries records: %v", o.Records())
	}
	if !errors.Is(o.Err(), err) {
		t.Errorf("Err() = %v, want %v", o.Err(), err)
	}
}

func TestStatusConstants(t *testing.T) {
	if StatusOK != "ok" {
		t.Errorf("StatusOK = %q", StatusOK)
	}
	if StatusFailed != "failed" {
		t.Errorf("StatusFailed = %q", StatusFailed)
	}
}
