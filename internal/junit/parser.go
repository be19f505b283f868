package junit

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	defaultFailureType    = "Unknown"
	defaultFailureMessage = "No message"
)

// ParseDir locates all JUnit XML documents under dir and folds them into a
// single ResultSet labeled with label. A missing directory or a directory
// without reports yields (nil, nil): "no results available" is not an error
// for the caller, worst case is an absent report. A document that fails to
// decode is skipped with a warning and does not abort the remaining ones.
func ParseDir(dir, label string) (*ResultSet, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			log.Warnf("results directory %s does not exist, no results available for %q", dir, label)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "unable to read results directory %s", dir)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list report documents in %s", dir)
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Warnf("no report documents found in %s, no results available for %q", dir, label)
		return nil, nil
	}

	rs := &ResultSet{Label: label}
	for _, file := range files {
		suite, err := parseDocument(file)
		if err != nil {
			log.Warnf("skipping malformed report document %s: %v", file, err)
			continue
		}
		accumulate(rs, suite)
	}
	finalize(rs)
	return rs, nil
}

// Merge folds the counts and cases of other into rs. Accumulation is
// commutative over whole documents, so merging aggregated sets in any
// order yields the same totals.
func Merge(rs, other *ResultSet) {
	if other == nil {
		return
	}
	rs.Total += other.Total
	rs.Failed += other.Failed
	rs.Skipped += other.Skipped
	rs.Time += other.Time
	rs.Cases = append(rs.Cases, other.Cases...)
	rs.Passed = rs.Total - rs.Failed - rs.Skipped
}

func parseDocument(file string) (*TestSuite, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	suite := &TestSuite{}
	if err := xml.Unmarshal(data, suite); err != nil {
		return nil, err
	}
	return suite, nil
}

func accumulate(rs *ResultSet, suite *TestSuite) {
	rs.Total += suite.Tests
	rs.Failed += suite.Failures + suite.Errors
	rs.Skipped += suite.Skipped
	rs.Time += suite.Time

	for _, c := range suite.Cases {
		tc := TestCase{
			Classname: c.Classname,
			Name:      c.Name,
			Time:      c.Time,
			Status:    StatusPassed,
		}
		// Failure/error checked before skipped: when a document anomalously
		// carries both markers the failure classification wins.
		marker := c.Failure
		if marker == nil {
			marker = c.Error
		}
		switch {
		case marker != nil:
			tc.Status = StatusFailed
			tc.FailureType = marker.Type
			tc.FailureMessage = marker.Message
			if tc.FailureType == "" {
				tc.FailureType = defaultFailureType
			}
			if tc.FailureMessage == "" {
				tc.FailureMessage = defaultFailureMessage
			}
		case c.Skipped != nil:
			tc.Status = StatusSkipped
		}
		rs.Cases = append(rs.Cases, tc)
	}
}

// finalize derives the passed count once after all documents are folded in
// and reconciles the declared totals against the per-case detail.
func finalize(rs *ResultSet) {
	rs.Passed = rs.Total - rs.Failed - rs.Skipped
	if rs.Passed < 0 {
		log.Warnf("results %q declare more failures/skips than tests (%d/%d), clamping passed count to 0",
			rs.Label, rs.Failed+rs.Skipped, rs.Total)
		rs.Passed = 0
	}
	if rs.Total != len(rs.Cases) {
		log.Warnf("results %q declare %d tests but carry %d test case entries", rs.Label, rs.Total, len(rs.Cases))
	}
}
