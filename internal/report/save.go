package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/obfuscation-bench/obfuscation-eval-tool/internal/junit"
)

// SaveResults dumps the per-variant failure lists, a failures workbook and a
// duration chart to path, to be used on the review process. Absent variants
// are skipped.
func SaveResults(path string, sets []*junit.ResultSet) error {
	if err := createDir(path); err != nil {
		return err
	}

	for _, rs := range sets {
		if rs == nil {
			continue
		}
		if err := saveFailureList(path, rs); err != nil {
			return err
		}
	}

	if err := saveFailuresWorkbook(path, sets); err != nil {
		return err
	}
	if err := saveDurationChart(path, sets); err != nil {
		return err
	}

	fmt.Printf("\n Data Saved to directory '%s/'\n", path)
	return nil
}

// saveFailureList writes the failed test identities of one variant to a
// text file, one per line.
func saveFailureList(path string, rs *junit.ResultSet) error {
	filename := filepath.Join(path, fmt.Sprintf("failures-%s.txt", rs.Label))
	fd, err := os.OpenFile(filename, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed creating file %s", filename)
	}
	defer fd.Close()

	writer := bufio.NewWriter(fd)
	defer writer.Flush()

	for _, tc := range rs.Cases {
		if tc.Status != junit.StatusFailed {
			continue
		}
		if _, err := writer.WriteString(tc.ID() + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// saveFailuresWorkbook writes one sheet per variant indexing its failures.
func saveFailuresWorkbook(path string, sets []*junit.ResultSet) error {
	sheet := excelize.NewFile()
	sheetFile := filepath.Join(path, "failures-index.xlsx")
	defer saveSheet(sheet, sheetFile)

	for _, rs := range sets {
		if rs == nil {
			continue
		}
		sheetName := fmt.Sprintf("failures-%s", rs.Label)
		idx, err := sheet.NewSheet(sheetName)
		if err != nil {
			log.Error(err)
			continue
		}
		sheet.SetActiveSheet(idx)
		createSheetHeader(sheet, sheetName)

		rowN := 2
		for _, tc := range rs.Cases {
			if tc.Status != junit.StatusFailed {
				continue
			}
			_ = sheet.SetCellValue(sheetName, fmt.Sprintf("A%d", rowN), rs.Label)
			_ = sheet.SetCellValue(sheetName, fmt.Sprintf("B%d", rowN), rowN-1)
			_ = sheet.SetCellValue(sheetName, fmt.Sprintf("C%d", rowN), tc.ID())
			_ = sheet.SetCellValue(sheetName, fmt.Sprintf("D%d", rowN), tc.FailureType)
			_ = sheet.SetCellValue(sheetName, fmt.Sprintf("E%d", rowN), tc.FailureMessage)
			rowN++
		}
	}
	return nil
}

// createSheetHeader creates the spreadsheet headers.
func createSheetHeader(sheet *excelize.File, sheetName string) {
	header := map[string]string{
		"A1": "Variant", "B1": "Index", "C1": "Test_Name",
		"D1": "Failure_Type", "E1": "Failure_Message"}

	for k, v := range header {
		_ = sheet.SetCellValue(sheetName, k, v)
	}
}

// saveSheet saves the excel sheet to the disk.
func saveSheet(sheet *excelize.File, sheetFileName string) {
	if err := sheet.SaveAs(sheetFileName); err != nil {
		log.Error(err)
	}
}

// saveDurationChart renders one bar chart per variant with per-test elapsed
// times, all on a single HTML page.
func saveDurationChart(path string, sets []*junit.ResultSet) error {
	page := components.NewPage()
	page.PageTitle = "Test durations by variant"

	for _, rs := range sets {
		if rs == nil || len(rs.Cases) == 0 {
			continue
		}
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{
				Title:    fmt.Sprintf("Test durations: %s", rs.Label),
				Subtitle: fmt.Sprintf("%d tests, %.3fs total", rs.Total, rs.Time),
			}),
			charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		)

		names := []string{}
		points := make([]opts.BarData, 0, len(rs.Cases))
		for _, tc := range sortedCases(rs) {
			names = append(names, tc.ID())
			points = append(points, opts.BarData{Value: tc.Time})
		}
		bar.SetXAxis(names).AddSeries("seconds", points)
		page.AddCharts(bar)
	}

	chartFile := filepath.Join(path, "durations.html")
	f, err := os.Create(chartFile)
	if err != nil {
		return errors.Wrapf(err, "unable to create chart file %s", chartFile)
	}
	defer f.Close()
	return page.Render(f)
}

// createDir creates the save directory unless it already exists.
func createDir(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		log.Errorf("ERROR: Unable to create directory [%s]: %v", path, err)
		return err
	}
	return nil
}
