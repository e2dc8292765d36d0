package reports

import (
	"strings"
)

// reportResponse mirrors the upstream report envelope: a header, column
// titles and a tree of nested row groups.
type reportResponse struct {
	Header struct {
		ReportName  string `json:"ReportName"`
		DateMacro   string `json:"DateMacro,omitempty"`
		StartPeriod string `json:"StartPeriod,omitempty"`
		EndPeriod   string `json:"EndPeriod,omitempty"`
		Currency    string `json:"Currency"`
	} `json:"Header"`
	Columns struct {
		Column []struct {
			ColTitle string `json:"ColTitle"`
			ColType  string `json:"ColType"`
		} `json:"Column"`
	} `json:"Columns"`
	Rows reportRows `json:"Rows"`
}

type reportRows struct {
	Row []reportRow `json:"Row,omitempty"`
}

type reportRow struct {
	Header  *colData    `json:"Header,omitempty"`
	Rows    *reportRows `json:"Rows,omitempty"`
	Summary *colData    `json:"Summary,omitempty"`
	ColData []colValue  `json:"ColData,omitempty"`
	Type    string      `json:"type,omitempty"`
}

type colData struct {
	ColData []colValue `json:"ColData"`
}

type colValue struct {
	Value string `json:"value"`
}

// Row is one flattened report line. Nested groups are rendered with two
// spaces of indentation per level; summary lines carry IsTotal.
type Row struct {
	Label   string   `json:"label"`
	Values  []string `json:"values"`
	IsTotal bool     `json:"isTotal,omitempty"`
}

// Report is the flattened, tool-facing report shape.
type Report struct {
	Name    string   `json:"name"`
	Period  string   `json:"period"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// flatten walks the nested row tree depth first, producing indented labels.
func flatten(resp *reportResponse) *Report {
	columns := make([]string, 0, len(resp.Columns.Column))
	for _, col := range resp.Columns.Column {
		columns = append(columns, col.ColTitle)
	}

	report := &Report{
		Name:    resp.Header.ReportName,
		Period:  period(resp),
		Columns: columns,
		Rows:    []Row{},
	}
	walkRows(report, resp.Rows.Row, 0)
	return report
}

func period(resp *reportResponse) string {
	if resp.Header.StartPeriod != "" {
		return resp.Header.StartPeriod + " to " + resp.Header.EndPeriod
	}
	if resp.Header.DateMacro != "" {
		return resp.Header.DateMacro
	}
	return "Current"
}

func walkRows(report *Report, rows []reportRow, indent int) {
	prefix := strings.Repeat("  ", indent)

	for _, row := range rows {
		if row.Header != nil && len(row.Header.ColData) > 0 {
			report.Rows = append(report.Rows, Row{
				Label:  prefix + row.Header.ColData[0].Value,
				Values: values(row.Header.ColData[1:]),
			})
		}

		if len(row.ColData) > 0 {
			report.Rows = append(report.Rows, Row{
				Label:  prefix + row.ColData[0].Value,
				Values: values(row.ColData[1:]),
			})
		}

		if row.Rows != nil {
			walkRows(report, row.Rows.Row, indent+1)
		}

		if row.Summary != nil && len(row.Summary.ColData) > 0 {
			report.Rows = append(report.Rows, Row{
				Label:   prefix + row.Summary.ColData[0].Value,
				Values:  values(row.Summary.ColData[1:]),
				IsTotal: true,
			})
		}
	}
}

func values(cols []colValue) []string {
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		out = append(out, col.Value)
	}
	return out
}
