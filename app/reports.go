package app

import (
	"context"
	"fmt"
	"strconv"

	client "github.com/workdesk/workdesk-client"
)

// ReportsPage shows the analytics reports to managers and admins.
type ReportsPage struct{ a *App }

// Reports returns the reports controller.
func (a *App) Reports() ReportsPage { return ReportsPage{a} }

// Get reads one report. Reports are opaque JSON.
func (p ReportsPage) Get(ctx context.Context, kind client.ReportKind, params map[string]string) (client.Report, error) {
	if err := p.a.requireRole(client.RoleAdmin, client.RoleManager); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown report %q", kind)
	}
	return read(ctx, p.a, reportKey(kind, params), func(ctx context.Context) (client.Report, error) {
		return p.a.client.GetReport(ctx, kind, params)
	})
}

// Performance reads the performance report over the last days.
func (p ReportsPage) Performance(ctx context.Context, days int) (client.Report, error) {
	return p.Get(ctx, client.ReportPerformance, daysParam(days))
}

// EmployeeContribution reads per-employee contribution over the last days.
func (p ReportsPage) EmployeeContribution(ctx context.Context, days int) (client.Report, error) {
	return p.Get(ctx, client.ReportEmployeeContribution, daysParam(days))
}

// Gantt reads the gantt chart of one board, or all boards when boardID is 0.
func (p ReportsPage) Gantt(ctx context.Context, boardID int) (client.Report, error) {
	var params map[string]string
	if boardID > 0 {
		params = map[string]string{"board_id": strconv.Itoa(boardID)}
	}
	return p.Get(ctx, client.ReportGanttChart, params)
}

func daysParam(days int) map[string]string {
	if days <= 0 {
		return nil
	}
	return map[string]string{"days": strconv.Itoa(days)}
}
