package junit

import "encoding/xml"

// JUnit XML schema as produced by the Gradle test task, one document per
// suite. Reference: https://llg.cubic.org/docs/junit/

type TestSuite struct {
	XMLName  xml.Name    `xml:"testsuite"`
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Errors   int         `xml:"errors,attr"`
	Skipped  int         `xml:"skipped,attr"`
	Time     float64     `xml:"time,attr"`
	Cases    []SuiteCase `xml:"testcase"`
}

type SuiteCase struct {
	Name      string       `xml:"name,attr"`
	Classname string       `xml:"classname,attr"`
	Time      float64      `xml:"time,attr"`
	Failure   *CaseFailure `xml:"failure"`
	Error     *CaseFailure `xml:"error"`
	Skipped   *CaseSkipped `xml:"skipped"`
}

type CaseFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

type CaseSkipped struct {
	Message string `xml:"message,attr"`
}

const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// TestCase is one executed test method, immutable after parsing.
type TestCase struct {
	Classname      string
	Name           string
	Time           float64
	Status         string
	FailureType    string
	FailureMessage string
}

// ID returns the identity of the case within a ResultSet.
func (tc TestCase) ID() string {
	return tc.Classname + "::" + tc.Name
}

// ResultSet is the normalized outcome of one test run.
type ResultSet struct {
	Label   string
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Time    float64

	// Cases keeps document discovery order. Display only, no semantic weight.
	Cases []TestCase
}

// PassRate returns passed/total as a percentage, 0 when the set is empty.
func (rs *ResultSet) PassRate() float64 {
	if rs.Total == 0 {
		return 0
	}
	return float64(rs.Passed) / float64(rs.Total) * 100
}

// CaseIndex indexes cases by identity for set operations.
func (rs *ResultSet) CaseIndex() map[string]TestCase {
	idx := make(map[string]TestCase, len(rs.Cases))
	for _, tc := range rs.Cases {
		idx[tc.ID()] = tc
	}
	return idx
}
