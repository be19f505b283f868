package junit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const doc1 = `<?xml version="1.0" encoding="UTF-8"?>
<testsuite name="ClassA" tests="3" failures="1" errors="0" skipped="0" time="1.2">
  <testcase name="t1" classname="ClassA" time="0.4"/>
  <testcase name="t2" classname="ClassA" time="0.5">
    <failure message="expected 1" type="AssertionError">stack</failure>
  </testcase>
  <testcase name="t3" classname="ClassA" time="0.3"/>
</testsuite>
`

const doc2 = `<?xml version="1.0" encoding="UTF-8"?>
<testsuite name="ClassB" tests="2" failures="0" errors="0" skipped="1" time="0.7">
  <testcase name="t1" classname="ClassB" time="0.5"/>
  <testcase name="t2" classname="ClassB" time="0.2">
    <skipped/>
  </testcase>
</testsuite>
`

func writeReports(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestParseDirAggregation(t *testing.T) {
	dir := writeReports(t, map[string]string{"TEST-ClassA.xml": doc1, "TEST-ClassB.xml": doc2})

	rs, err := ParseDir(dir, "original")
	assert.NoError(t, err)
	assert.NotNil(t, rs)

	assert.Equal(t, 5, rs.Total)
	assert.Equal(t, 3, rs.Passed)
	assert.Equal(t, 1, rs.Failed)
	assert.Equal(t, 1, rs.Skipped)
	assert.InDelta(t, 1.9, rs.Time, 1e-9)
	assert.Len(t, rs.Cases, 5)

	// counts always reconcile after aggregation
	assert.Equal(t, rs.Total, rs.Passed+rs.Failed+rs.Skipped)

	idx := rs.CaseIndex()
	failed := idx["ClassA::t2"]
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, "AssertionError", failed.FailureType)
	assert.Equal(t, "expected 1", failed.FailureMessage)
	assert.Equal(t, StatusSkipped, idx["ClassB::t2"].Status)
	assert.Equal(t, StatusPassed, idx["ClassB::t1"].Status)
}

func TestParseDirCommutative(t *testing.T) {
	// folding the same documents under any naming (and so any glob order)
	// yields identical totals
	forward := writeReports(t, map[string]string{"a.xml": doc1, "b.xml": doc2})
	reversed := writeReports(t, map[string]string{"a.xml": doc2, "b.xml": doc1})

	rs1, err := ParseDir(forward, "x")
	assert.NoError(t, err)
	rs2, err := ParseDir(reversed, "x")
	assert.NoError(t, err)

	assert.Equal(t, rs1.Total, rs2.Total)
	assert.Equal(t, rs1.Passed, rs2.Passed)
	assert.Equal(t, rs1.Failed, rs2.Failed)
	assert.Equal(t, rs1.Skipped, rs2.Skipped)
	assert.InDelta(t, rs1.Time, rs2.Time, 1e-9)
}

func TestParseDirMissingInput(t *testing.T) {
	rs, err := ParseDir(filepath.Join(t.TempDir(), "does-not-exist"), "x")
	assert.NoError(t, err)
	assert.Nil(t, rs)

	// empty directory is also "no results available"
	rs, err = ParseDir(t.TempDir(), "x")
	assert.NoError(t, err)
	assert.Nil(t, rs)
}

func TestParseDirSkipsMalformedDocument(t *testing.T) {
	dir := writeReports(t, map[string]string{
		"TEST-ClassA.xml": doc1,
		"broken.xml":      "<testsuite tests=\"1\"><testcase",
	})

	rs, err := ParseDir(dir, "x")
	assert.NoError(t, err)
	assert.NotNil(t, rs)
	assert.Equal(t, 3, rs.Total)
	assert.Equal(t, 1, rs.Failed)
}

func TestParseCaseFailureBeatsSkipped(t *testing.T) {
	doc := `<testsuite name="C" tests="1" failures="1" errors="0" skipped="0" time="0.1">
  <testcase name="t" classname="C" time="0.1">
    <failure message="boom" type="AssertionError"/>
    <skipped/>
  </testcase>
</testsuite>`
	dir := writeReports(t, map[string]string{"TEST-C.xml": doc})

	rs, err := ParseDir(dir, "x")
	assert.NoError(t, err)
	assert.Equal(t, StatusFailed, rs.Cases[0].Status)
}

func TestParseCaseDefaults(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantStatus  string
		wantType    string
		wantMessage string
	}{
		{
			name: "failure without attributes",
			doc: `<testsuite name="C" tests="1" failures="1" errors="0" skipped="0" time="0.1">
  <testcase name="t" classname="C" time="0.1"><failure/></testcase>
</testsuite>`,
			wantStatus:  StatusFailed,
			wantType:    "Unknown",
			wantMessage: "No message",
		},
		{
			name: "error counts as failed",
			doc: `<testsuite name="C" tests="1" failures="0" errors="1" skipped="0" time="0.1">
  <testcase name="t" classname="C" time="0.1"><error message="np" type="NullPointerException"/></testcase>
</testsuite>`,
			wantStatus:  StatusFailed,
			wantType:    "NullPointerException",
			wantMessage: "np",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeReports(t, map[string]string{"TEST-C.xml": tc.doc})
			rs, err := ParseDir(dir, "x")
			assert.NoError(t, err)
			assert.Equal(t, 1, rs.Failed)
			assert.Equal(t, tc.wantStatus, rs.Cases[0].Status)
			assert.Equal(t, tc.wantType, rs.Cases[0].FailureType)
			assert.Equal(t, tc.wantMessage, rs.Cases[0].FailureMessage)
		})
	}
}

func TestMerge(t *testing.T) {
	a := &ResultSet{Label: "a", Total: 3, Passed: 2, Failed: 1, Time: 1.2,
		Cases: []TestCase{{Classname: "A", Name: "t1", Status: StatusPassed}}}
	b := &ResultSet{Label: "b", Total: 2, Passed: 1, Skipped: 1, Time: 0.7,
		Cases: []TestCase{{Classname: "B", Name: "t1", Status: StatusSkipped}}}

	Merge(a, b)
	assert.Equal(t, 5, a.Total)
	assert.Equal(t, 4, a.Passed)
	assert.Equal(t, 1, a.Failed)
	assert.Equal(t, 1, a.Skipped)
	assert.InDelta(t, 1.9, a.Time, 1e-9)
	assert.Len(t, a.Cases, 2)

	// merging an absent set is a no-op
	Merge(a, nil)
	assert.Equal(t, 5, a.Total)
}

func TestPassRateEmptySet(t *testing.T) {
	rs := &ResultSet{}
	assert.Equal(t, float64(0), rs.PassRate())
}
