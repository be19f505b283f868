// Package summary compares normalized test result sets against a baseline
// run, computing metric deltas, identity differences and status transitions.
package summary

import (
	"sort"

	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/junit"
)

// MetricDelta is one metric rendered on both sides of a comparison.
type MetricDelta struct {
	Name  string
	Base  float64
	Other float64
	Delta float64

	// Integer reports the metric as a count rather than a real value.
	Integer bool
}

// StatusTransition records an identity present on both sides whose status
// changed between the runs.
type StatusTransition struct {
	ID         string
	BaseStatus string
	NewStatus  string
}

// ComparisonReport is derived on demand from two result sets and never
// persisted.
type ComparisonReport struct {
	Label       string
	Base        *junit.ResultSet
	Other       *junit.ResultSet
	Metrics     []MetricDelta
	OnlyInBase  []string
	OnlyInOther []string
	Transitions []StatusTransition
}

// Compare computes the delta of other against base. It is pure: inputs are
// never mutated. Callers must ensure both sides are present; comparing
// against an absent run is skipped upstream, not handled here.
func Compare(base, other *junit.ResultSet, label string) *ComparisonReport {
	cr := &ComparisonReport{
		Label: label,
		Base:  base,
		Other: other,
		Metrics: []MetricDelta{
			metric("Total", float64(base.Total), float64(other.Total), true),
			metric("Passed", float64(base.Passed), float64(other.Passed), true),
			metric("Failed", float64(base.Failed), float64(other.Failed), true),
			metric("Skipped", float64(base.Skipped), float64(other.Skipped), true),
			metric("Pass rate (%)", base.PassRate(), other.PassRate(), false),
			metric("Time (s)", base.Time, other.Time, false),
		},
	}

	baseIdx := base.CaseIndex()
	otherIdx := other.CaseIndex()

	for id := range baseIdx {
		if _, ok := otherIdx[id]; !ok {
			cr.OnlyInBase = append(cr.OnlyInBase, id)
		}
	}
	for id, tc := range otherIdx {
		btc, ok := baseIdx[id]
		if !ok {
			cr.OnlyInOther = append(cr.OnlyInOther, id)
			continue
		}
		if btc.Status != tc.Status {
			cr.Transitions = append(cr.Transitions, StatusTransition{
				ID:         id,
				BaseStatus: btc.Status,
				NewStatus:  tc.Status,
			})
		}
	}

	// Map iteration order is not deterministic, sort everything for output.
	sort.Strings(cr.OnlyInBase)
	sort.Strings(cr.OnlyInOther)
	sort.Slice(cr.Transitions, func(i, j int) bool {
		return cr.Transitions[i].ID < cr.Transitions[j].ID
	})
	return cr
}

func metric(name string, base, other float64, integer bool) MetricDelta {
	return MetricDelta{Name: name, Base: base, Other: other, Delta: other - base, Integer: integer}
}
