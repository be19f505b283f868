package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/junit"
)

func resultSet(label string, cases ...junit.TestCase) *junit.ResultSet {
	rs := &junit.ResultSet{Label: label, Cases: cases}
	for _, tc := range cases {
		rs.Total++
		switch tc.Status {
		case junit.StatusFailed:
			rs.Failed++
		case junit.StatusSkipped:
			rs.Skipped++
		default:
			rs.Passed++
		}
		rs.Time += tc.Time
	}
	return rs
}

func TestCompareIdentical(t *testing.T) {
	a := resultSet("a",
		junit.TestCase{Classname: "C", Name: "t1", Status: junit.StatusPassed},
		junit.TestCase{Classname: "C", Name: "t2", Status: junit.StatusFailed},
	)

	cr := Compare(a, a, "a vs a")
	for _, m := range cr.Metrics {
		assert.Equal(t, float64(0), m.Delta, "metric %s", m.Name)
	}
	assert.Empty(t, cr.OnlyInBase)
	assert.Empty(t, cr.OnlyInOther)
	assert.Empty(t, cr.Transitions)
}

func TestCompareDeltasAndTransitions(t *testing.T) {
	base := resultSet("original",
		junit.TestCase{Classname: "C", Name: "t1", Status: junit.StatusPassed},
		junit.TestCase{Classname: "C", Name: "t2", Status: junit.StatusPassed},
		junit.TestCase{Classname: "C", Name: "t3", Status: junit.StatusPassed},
		junit.TestCase{Classname: "C", Name: "t4", Status: junit.StatusPassed},
		junit.TestCase{Classname: "C", Name: "t5", Status: junit.StatusFailed},
	)
	other := resultSet("names",
		junit.TestCase{Classname: "C", Name: "t1", Status: junit.StatusPassed},
		junit.TestCase{Classname: "C", Name: "t2", Status: junit.StatusPassed},
		junit.TestCase{Classname: "C", Name: "t3", Status: junit.StatusPassed},
		junit.TestCase{Classname: "C", Name: "t4", Status: junit.StatusPassed},
		junit.TestCase{Classname: "C", Name: "t5", Status: junit.StatusPassed},
	)

	cr := Compare(base, other, "original vs names")

	deltas := map[string]float64{}
	for _, m := range cr.Metrics {
		deltas[m.Name] = m.Delta
	}
	assert.Equal(t, float64(0), deltas["Total"])
	assert.Equal(t, float64(1), deltas["Passed"])
	assert.Equal(t, float64(-1), deltas["Failed"])

	assert.Len(t, cr.Transitions, 1)
	assert.Equal(t, "C::t5", cr.Transitions[0].ID)
	assert.Equal(t, junit.StatusFailed, cr.Transitions[0].BaseStatus)
	assert.Equal(t, junit.StatusPassed, cr.Transitions[0].NewStatus)
}

func TestCompareIdentityDifferences(t *testing.T) {
	base := resultSet("a",
		junit.TestCase{Classname: "C", Name: "both", Status: junit.StatusPassed},
		junit.TestCase{Classname: "C", Name: "zOnlyBase", Status: junit.StatusPassed},
		junit.TestCase{Classname: "C", Name: "aOnlyBase", Status: junit.StatusPassed},
	)
	other := resultSet("b",
		junit.TestCase{Classname: "C", Name: "both", Status: junit.StatusPassed},
		junit.TestCase{Classname: "C", Name: "onlyOther", Status: junit.StatusFailed},
	)

	cr := Compare(base, other, "a vs b")
	// sorted for deterministic output
	assert.Equal(t, []string{"C::aOnlyBase", "C::zOnlyBase"}, cr.OnlyInBase)
	assert.Equal(t, []string{"C::onlyOther"}, cr.OnlyInOther)
	assert.Empty(t, cr.Transitions)
}

func TestCompareDoesNotMutateInputs(t *testing.T) {
	base := resultSet("a", junit.TestCase{Classname: "C", Name: "t1", Status: junit.StatusFailed})
	other := resultSet("b", junit.TestCase{Classname: "C", Name: "t1", Status: junit.StatusPassed})

	baseCopy := *base
	otherCopy := *other
	_ = Compare(base, other, "a vs b")

	assert.Equal(t, baseCopy.Total, base.Total)
	assert.Equal(t, baseCopy.Failed, base.Failed)
	assert.Equal(t, otherCopy.Passed, other.Passed)
	assert.Len(t, base.Cases, 1)
	assert.Len(t, other.Cases, 1)
}

func TestComparePassRateZeroTotal(t *testing.T) {
	empty := &junit.ResultSet{Label: "empty"}
	full := resultSet("full", junit.TestCase{Classname: "C", Name: "t1", Status: junit.StatusPassed})

	// must not panic on division by zero
	cr := Compare(empty, full, "empty vs full")
	for _, m := range cr.Metrics {
		if m.Name == "Pass rate (%)" {
			assert.Equal(t, float64(0), m.Base)
			assert.Equal(t, float64(100), m.Other)
		}
	}
}
