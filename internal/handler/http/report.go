package http

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hadirin/absensi-backend-go/internal/domain/report"
	"github.com/hadirin/absensi-backend-go/internal/domain/user"
	"github.com/hadirin/absensi-backend-go/internal/handler/http/response"
	"github.com/hadirin/absensi-backend-go/internal/pkg/jwt"
)

type ReportHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	timezone      *time.Location
}

func NewReportHandler(reportService report.ReportService, timezone *time.Location) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		timezone:      timezone,
	}
}

func parseCriteria(r *http.Request) report.Criteria {
	q := r.URL.Query()
	return report.Criteria{
		EmployeeID: q.Get("employee_id"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		Type:       q.Get("type"),
		Status:     q.Get("status"),
	}
}

// Get implements ReportHandler. Kepala/admin view across all users.
func (h *reportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Generate(r.Context(), parseCriteria(r), report.AudienceAll)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMy implements ReportHandler. Scoped to the authenticated user; any
// employee_id query parameter is overridden.
func (h *reportHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	userID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	criteria := parseCriteria(r)
	criteria.EmployeeID = userID

	result, err := h.reportService.Generate(r.Context(), criteria, report.AudienceSelf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCSV implements ReportHandler. Streams the same header and rows the
// table view renders; the filename carries the export date. The audience
// follows the caller's role: without the view-all permission the export is
// scoped to the caller's own rows.
func (h *reportHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	criteria := parseCriteria(r)
	audience := report.AudienceAll

	role := user.Role(jwt.RoleFromContext(r.Context()))
	if !user.HasPermission(role, user.PermissionViewAllRecords) {
		userID, err := jwt.UserIDFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		criteria.EmployeeID = userID
		audience = report.AudienceSelf
	}

	result, err := h.reportService.Generate(r.Context(), criteria, audience)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("laporan-absensi-%s.csv", time.Now().In(h.timezone).Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	writer := csv.NewWriter(w)
	if err := writer.Write(result.Header); err != nil {
		slog.Error("CSV export write error", "error", err)
		return
	}
	for _, row := range result.Rows {
		if err := writer.Write(row); err != nil {
			slog.Error("CSV export write error", "error", err)
			return
		}
	}
	writer.Flush()
}
