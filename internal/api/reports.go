package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/workdesk/workdesk-client/internal/types"
)

// ReportKind names one of the backend report endpoints.
type ReportKind string

const (
	ReportDashboard            ReportKind = "dashboard"
	ReportTasks                ReportKind = "tasks"
	ReportUsers                ReportKind = "users"
	ReportPerformance          ReportKind = "performance"
	ReportManagerEfficiency    ReportKind = "manager-efficiency"
	ReportEmployeeContribution ReportKind = "employee-contribution"
	ReportGanttChart           ReportKind = "gantt-chart"
	ReportFlexibleSummary      ReportKind = "flexible-summary"
)

// ReportKinds lists every kind accepted by GetReport.
var ReportKinds = []ReportKind{
	ReportDashboard, ReportTasks, ReportUsers, ReportPerformance,
	ReportManagerEfficiency, ReportEmployeeContribution, ReportGanttChart,
	ReportFlexibleSummary,
}

// Valid reports whether k is a known report kind.
func (k ReportKind) Valid() bool {
	for _, known := range ReportKinds {
		if k == known {
			return true
		}
	}
	return false
}

// GetReport fetches a report. The payload is backend-defined and returned
// unparsed; params are passed through as query parameters.
func GetReport(ctx context.Context, rc *resty.Client, kind ReportKind, params map[string]string) (types.Report, error) {
	if !kind.Valid() {
		return nil, errUnknownReport(kind)
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	for k, v := range params {
		if v != "" {
			req.SetQueryParam(k, v)
		}
	}
	var out types.Report
	if err := execute(req, "get "+string(kind)+" report", http.MethodGet, "/reports/"+string(kind), &out); err != nil {
		return nil, err
	}
	return out, nil
}
