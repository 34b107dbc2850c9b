package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/catalog"
	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/store"
	"github.com/dentware/clinicdesk/internal/views"
)

// ReportService exposes the dashboard's derived, read-only views. It never
// mutates the store; every method snapshots the collections and hands them
// to the pure view functions with one consistent "now".
type ReportService struct {
	store *store.DataStore
	log   *zap.Logger
	now   func() time.Time
}

func NewReportService(st *store.DataStore, log *zap.Logger) *ReportService {
	return &ReportService{
		store: st,
		log:   log,
		now:   time.Now,
	}
}

func (s *ReportService) Summary() views.Summary {
	return views.DashboardSummary(s.store.Patients(), s.store.Incidents(), s.now())
}

func (s *ReportService) RevenueSeries(r views.RevenueRange) []views.RevenueBucket {
	if !r.IsValid() {
		r = views.RangeWeek
	}
	return views.RevenueSeries(s.store.Incidents(), r, s.now())
}

func (s *ReportService) RevenueByMonth() []views.RevenueBucket {
	return views.RevenueByMonth(s.store.Incidents(), s.now())
}

// AppointmentRow is an incident decorated for the dashboard lists.
type AppointmentRow struct {
	incident.Incident
	PatientName     string          `json:"patientName"`
	EffectiveStatus incident.Status `json:"effectiveStatus"`
}

func (s *ReportService) decorate(incidents []incident.Incident, now time.Time) []AppointmentRow {
	patients := s.store.Patients()
	rows := make([]AppointmentRow, 0, len(incidents))
	for _, inc := range incidents {
		rows = append(rows, AppointmentRow{
			Incident:        inc,
			PatientName:     views.PatientName(patients, inc.PatientID),
			EffectiveStatus: views.EffectiveStatus(inc, now),
		})
	}
	return rows
}

// NextAppointments lists upcoming appointments, soonest first, capped at
// limit (0 means no cap).
func (s *ReportService) NextAppointments(limit int) []AppointmentRow {
	now := s.now()
	return s.decorate(views.NextAppointments(s.store.Incidents(), now, limit), now)
}

func (s *ReportService) TodaysAppointments() []AppointmentRow {
	now := s.now()
	return s.decorate(views.TodaysAppointments(s.store.Incidents(), now), now)
}

func (s *ReportService) UpcomingByMonth(month *time.Month) []AppointmentRow {
	now := s.now()
	return s.decorate(views.UpcomingByMonth(s.store.Incidents(), month, now), now)
}

func (s *ReportService) CompletedByMonth(month *time.Month) []AppointmentRow {
	now := s.now()
	return s.decorate(views.CompletedByMonth(s.store.Incidents(), month, now), now)
}

func (s *ReportService) TopPatients(n int) []views.PatientVisits {
	if n <= 0 {
		n = views.DefaultTopN
	}
	return views.TopPatients(s.store.Patients(), s.store.Incidents(), n)
}

func (s *ReportService) TopServices(n int) []views.ServiceCount {
	if n <= 0 {
		n = views.DefaultTopN
	}
	return views.TopServices(s.store.Incidents(), n)
}

// CalendarDay is one cell of the month grid. Date is empty for padding
// cells outside the month.
type CalendarDay struct {
	Date         string           `json:"date,omitempty"`
	Appointments []AppointmentRow `json:"appointments,omitempty"`
}

// MonthCalendar returns the Sunday-first grid for the given month with each
// day's appointments attached. Zero year/month default to the current
// month.
func (s *ReportService) MonthCalendar(year int, month time.Month) [][]CalendarDay {
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}

	incidents := s.store.Incidents()
	matrix := views.MonthMatrix(year, month)

	grid := make([][]CalendarDay, 0, len(matrix))
	for _, week := range matrix {
		row := make([]CalendarDay, 0, 7)
		for _, day := range week {
			if day == nil {
				row = append(row, CalendarDay{})
				continue
			}
			var dayRows []AppointmentRow
			for _, inc := range incidents {
				if sameCalendarDay(inc.AppointmentDate.Time, *day) {
					dayRows = append(dayRows, s.decorate([]incident.Incident{inc}, now)...)
				}
			}
			row = append(row, CalendarDay{
				Date:         day.Format("2006-01-02"),
				Appointments: dayRows,
			})
		}
		grid = append(grid, row)
	}
	return grid
}

// WeekCalendar returns the 7 days of the week containing anchor (zero
// anchor means now) with each day's appointments attached.
func (s *ReportService) WeekCalendar(anchor time.Time) []CalendarDay {
	now := s.now()
	if anchor.IsZero() {
		anchor = now
	}

	incidents := s.store.Incidents()
	days := views.WeekDates(anchor)

	out := make([]CalendarDay, 0, 7)
	for _, day := range days {
		var dayRows []AppointmentRow
		for _, inc := range incidents {
			if sameCalendarDay(inc.AppointmentDate.Time, day) {
				dayRows = append(dayRows, s.decorate([]incident.Incident{inc}, now)...)
			}
		}
		out = append(out, CalendarDay{
			Date:         day.Format("2006-01-02"),
			Appointments: dayRows,
		})
	}
	return out
}

// CatalogView backs the new-appointment form: the treatment list with
// default prices, plus the suggested follow-up date.
type CatalogView struct {
	Services          []catalog.Service `json:"services"`
	SuggestedNextDate domain.Date       `json:"suggestedNextDate"`
}

func (s *ReportService) Catalog() CatalogView {
	return CatalogView{
		Services:          catalog.Services(),
		SuggestedNextDate: views.DefaultNextDate(s.now()),
	}
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
