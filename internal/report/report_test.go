package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/junit"
	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/summary"
)

func TestShowSummaryAbsent(t *testing.T) {
	var buf bytes.Buffer
	ShowSummary(&buf, nil)
	assert.Contains(t, buf.String(), "<no results available>")
}

func TestShowSummaryZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	ShowSummary(&buf, &junit.ResultSet{Label: "empty"})
	out := buf.String()
	assert.Contains(t, out, "N/A")
	assert.NotContains(t, out, "NaN")
}

func TestShowSummaryTableOrder(t *testing.T) {
	rs := &junit.ResultSet{
		Label: "original", Total: 4, Passed: 2, Failed: 1, Skipped: 1, Time: 1.0,
		Cases: []junit.TestCase{
			{Classname: "C", Name: "slowPass", Status: junit.StatusPassed, Time: 0.9},
			{Classname: "C", Name: "skip", Status: junit.StatusSkipped, Time: 0.0},
			{Classname: "C", Name: "fail", Status: junit.StatusFailed, Time: 0.1,
				FailureType: "AssertionError", FailureMessage: "boom"},
			{Classname: "C", Name: "fastPass", Status: junit.StatusPassed, Time: 0.0},
		},
	}

	var buf bytes.Buffer
	ShowSummary(&buf, rs)
	out := buf.String()

	// failed first, then skipped, passed by descending time
	iFail := strings.Index(out, "C::fail")
	iSkip := strings.Index(out, "C::skip")
	iSlow := strings.Index(out, "C::slowPass")
	iFast := strings.Index(out, "C::fastPass")
	assert.True(t, iFail >= 0 && iFail < iSkip, "failed before skipped")
	assert.True(t, iSkip < iSlow, "skipped before passed")
	assert.True(t, iSlow < iFast, "slower passed before faster")

	assert.Contains(t, out, "AssertionError: boom")
	assert.Contains(t, out, "50.00%")
}

func TestShowComparison(t *testing.T) {
	base := &junit.ResultSet{Label: "original", Total: 2, Passed: 1, Failed: 1,
		Cases: []junit.TestCase{
			{Classname: "C", Name: "t1", Status: junit.StatusPassed},
			{Classname: "C", Name: "t2", Status: junit.StatusFailed},
		}}
	other := &junit.ResultSet{Label: "names", Total: 2, Passed: 2,
		Cases: []junit.TestCase{
			{Classname: "C", Name: "t1", Status: junit.StatusPassed},
			{Classname: "C", Name: "t2", Status: junit.StatusPassed},
		}}

	var buf bytes.Buffer
	ShowComparison(&buf, summary.Compare(base, other, "original vs names"))
	out := buf.String()

	assert.Contains(t, out, "original vs names")
	assert.Contains(t, out, "+1")
	assert.Contains(t, out, "-1")
	assert.Contains(t, out, "C::t2")
	assert.Contains(t, out, "failed -> passed")
	assert.Contains(t, out, "<empty>")
}

func TestShowMultiComparison(t *testing.T) {
	base := &junit.ResultSet{Label: "original", Total: 2, Passed: 2}
	bodies := &junit.ResultSet{Label: "bodies", Total: 2, Passed: 1, Failed: 1}

	var buf bytes.Buffer
	ShowMultiComparison(&buf, base, []*junit.ResultSet{bodies, nil})
	out := buf.String()

	assert.Contains(t, out, "original")
	assert.Contains(t, out, "bodies")
	assert.Contains(t, out, "<absent>")
	assert.Contains(t, out, "N/A")
}

func TestShowMultiComparisonNoBaseline(t *testing.T) {
	var buf bytes.Buffer
	ShowMultiComparison(&buf, nil, []*junit.ResultSet{{Label: "bodies"}})
	assert.Contains(t, buf.String(), "<no baseline results available>")
}
