package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
)

type exportService struct {
	allocations AllocationService
	conflicts   ConflictService
	timeline    TimelineService
}

func NewExportService(
	allocations AllocationService,
	conflicts ConflictService,
	timeline TimelineService,
) ExportService {
	return &exportService{
		allocations: allocations,
		conflicts:   conflicts,
		timeline:    timeline,
	}
}

func (s *exportService) ExportAssignmentsCSV(ctx context.Context, w io.Writer, projectID string, weekStart *time.Time) error {
	views, err := s.allocations.ListAssignmentsByProject(ctx, projectID, weekStart)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"project", "employee", "week_start", "hours", "notes"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, v := range views {
		record := []string{
			v.ProjectName,
			v.EmployeeName,
			v.WeekStart.Format(domain.DateLayout),
			formatHours(v.AssignedHours),
			v.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing assignment row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *exportService) ExportConflictsCSV(ctx context.Context, w io.Writer, opts contract.ConflictOptions) error {
	conflicts, err := s.conflicts.GetConflicts(ctx, opts)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"type", "priority", "week_start", "subject", "projects", "assigned_hours", "limit_hours", "variance", "percent"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, c := range conflicts {
		subject := c.EmployeeName
		limit := c.CapacityHours
		pct := c.UtilizationPct
		projects := strings.Join(c.ProjectNames, "; ")
		if c.Type == domain.ConflictUnderstaffedProject {
			subject = c.DepartmentName
			limit = c.RequiredHours
			pct = c.StaffingPct
			projects = c.ProjectName
		}
		record := []string{
			string(c.Type),
			string(c.Priority),
			c.WeekStart.Format(domain.DateLayout),
			subject,
			projects,
			formatHours(c.AssignedHours),
			formatHours(limit),
			formatHours(c.Variance),
			formatHours(pct),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing conflict row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *exportService) ExportTimelineCSV(ctx context.Context, w io.Writer, req contract.TimelineRequest) error {
	entries, err := s.timeline.GetResourceTimeline(ctx, req)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"department", "week_index", "week_start", "capacity_hours", "assigned_hours", "utilization_pct", "load_level"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.DepartmentName,
			strconv.Itoa(e.WeekIndex),
			e.WeekStart.Format(domain.DateLayout),
			formatHours(e.CapacityHours),
			formatHours(e.AssignedHours),
			formatHours(e.UtilizationPct),
			string(e.LoadLevel),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing timeline row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
