package metrics

import (
	"testing"

	coremetrics "github.com/ecarion/voltroute/core/metrics"
)

type recordSink struct {
	plans    int
	catalogs int
}

func (r *recordSink) RecordPlan(coremetrics.PlanRecord) error {
	r.plans++
	return nil
}

func (r *recordSink) RecordCatalogSize(int) error {
	r.catalogs++
	return nil
}

type planOnlySink struct {
	plans int
}

func (r *planOnlySink) RecordPlan(coremetrics.PlanRecord) error {
	r.plans++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordPlan(coremetrics.PlanRecord{}); err != nil {
		t.Fatalf("record plan: %v", err)
	}
	if err := m.RecordCatalogSize(10); err != nil {
		t.Fatalf("record catalog: %v", err)
	}
	if s1.plans != 1 || s2.plans != 1 || s1.catalogs != 1 || s2.catalogs != 1 {
		t.Fatalf("records not forwarded: %+v %+v", s1, s2)
	}
}

func TestMultiSinkSkipsUnsupported(t *testing.T) {
	s := &planOnlySink{}
	m := NewMultiSink(s)
	if err := m.RecordCatalogSize(5); err != nil {
		t.Fatalf("record catalog: %v", err)
	}
	if err := m.RecordPlan(coremetrics.PlanRecord{}); err != nil {
		t.Fatalf("record plan: %v", err)
	}
	if s.plans != 1 {
		t.Fatalf("plan not forwarded")
	}
}
