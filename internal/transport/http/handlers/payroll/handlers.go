package payrollhandler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"paymaster/internal/domain/audit"
	"paymaster/internal/domain/employee"
	"paymaster/internal/domain/payroll"
	"paymaster/internal/domain/payslip"
	"paymaster/internal/ingest"
	"paymaster/internal/platform/metrics"
	"paymaster/internal/transport/http/api"
	"paymaster/internal/transport/http/middleware"
)

type Handler struct {
	Employees *employee.Store
	History   *payroll.HistoryStore
	Audit     *audit.Service
	Renderer  *payslip.Renderer
	Metrics   *metrics.Collector
	Defaults  payroll.RunConfig
}

func NewHandler(employees *employee.Store, history *payroll.HistoryStore, auditSvc *audit.Service, renderer *payslip.Renderer, collector *metrics.Collector, defaults payroll.RunConfig) *Handler {
	return &Handler{
		Employees: employees,
		History:   history,
		Audit:     auditSvc,
		Renderer:  renderer,
		Metrics:   collector,
		Defaults:  defaults,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Post("/process", h.handleProcess)
		r.Post("/export", h.handleExport)
		r.Post("/archive", h.handleArchive)
		r.Get("/history", h.handleHistory)
		r.Post("/payslip", h.handlePayslip)
		r.Post("/payslips/bundle", h.handlePayslipBundle)
	})
}

// runUpload parses the uploaded dataset and form-supplied configuration, then
// runs the full pipeline against the current employee master snapshot.
func (h *Handler) runUpload(r *http.Request) (payroll.Result, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return payroll.Result{}, errMissingFile
	}
	defer file.Close()

	inputs, err := parseUploadFile(header, file)
	if err != nil {
		if errors.Is(err, payroll.ErrEmptyDataset) {
			return payroll.Result{}, err
		}
		return payroll.Result{}, fmt.Errorf("%w: %v", errBadDataset, err)
	}
	if len(inputs) == 0 {
		return payroll.Result{}, payroll.ErrEmptyDataset
	}

	master, err := h.Employees.ListEmployees(r.Context())
	if err != nil {
		return payroll.Result{}, fmt.Errorf("identity snapshot: %w", err)
	}

	cfg := h.runConfig(r)
	result := payroll.Process(inputs, master, cfg)
	if h.Metrics != nil {
		h.Metrics.RecordRun(len(result.Records))
	}
	return result, nil
}

func parseUploadFile(header *multipart.FileHeader, file multipart.File) ([]payroll.FinancialInput, error) {
	return ingest.ParseUpload(header.Filename, file)
}

// runConfig merges optional form overrides onto the server defaults. The
// recognized keys mirror the engine's flat configuration mapping.
func (h *Handler) runConfig(r *http.Request) payroll.RunConfig {
	cfg := h.Defaults
	overrides := map[string]*float64{
		"working_days": &cfg.WorkingDays,
		"stamps_fee":   &cfg.StampsFee,
		"epf_emp_rate": &cfg.EPFEmpRate,
		"epf_co_rate":  &cfg.EPFCoRate,
		"etf_co_rate":  &cfg.ETFCoRate,
	}
	for key, target := range overrides {
		raw := strings.TrimSpace(r.FormValue(key))
		if raw == "" {
			continue
		}
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			*target = value
		}
	}
	return cfg
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.runUpload(r)
	if err != nil {
		failRun(w, r, err)
		return
	}

	if len(result.Unmatched) > 0 {
		if err := h.Audit.Record(r.Context(), user.UserID, "payroll.merge.unmatched", "", middleware.GetRequestID(r.Context()), result.Unmatched); err != nil {
			log.Printf("audit payroll.merge.unmatched failed: %v", err)
		}
	}
	if err := h.Audit.Record(r.Context(), user.UserID, "payroll.process", "", middleware.GetRequestID(r.Context()), result.Summary); err != nil {
		log.Printf("audit payroll.process failed: %v", err)
	}

	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

var exportHeader = []string{
	"Employee ID", "Name", "Designation", "Department",
	"Basic Salary", "Gross Salary", "Nopay Amount", "Liable Salary",
	"Total Tax", "EPF Employee", "Stamps Fee", "Total Deduction",
	"Net Salary", "EPF Company", "ETF Company",
}

// handleExport re-runs the pipeline on the upload and streams the finalized
// records back as a workbook. An XLSX workbook is the default; format=csv
// downgrades to plain CSV.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.runUpload(r)
	if err != nil {
		failRun(w, r, err)
		return
	}

	if strings.EqualFold(r.FormValue("format"), "csv") {
		writeExportCSV(w, result.Records)
		return
	}
	if err := writeExportXLSX(w, result.Records); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build workbook", middleware.GetRequestID(r.Context()))
	}
}

func writeExportCSV(w http.ResponseWriter, records []payroll.Record) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="payroll_summary.csv"`)
	writer := csv.NewWriter(w)
	_ = writer.Write(exportHeader)
	for _, rec := range records {
		_ = writer.Write([]string{
			rec.EmpNo, rec.Name, rec.Designation, rec.Department,
			formatCSV(rec.Basic), formatCSV(rec.Gross), formatCSV(rec.NopayAmount), formatCSV(rec.LiableSalary),
			formatCSV(rec.TotalTax), formatCSV(rec.EPFEmployee), formatCSV(rec.StampFinal), formatCSV(rec.TotalDeduction),
			formatCSV(rec.NetSalary), formatCSV(rec.EPFCompany), formatCSV(rec.ETFCompany),
		})
	}
	writer.Flush()
}

func writeExportXLSX(w http.ResponseWriter, records []payroll.Record) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]any, len(exportHeader))
	for i, name := range exportHeader {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			rec.EmpNo, rec.Name, rec.Designation, rec.Department,
			rec.Basic, rec.Gross, rec.NopayAmount, rec.LiableSalary,
			rec.TotalTax, rec.EPFEmployee, rec.StampFinal, rec.TotalDeduction,
			rec.NetSalary, rec.EPFCompany, rec.ETFCompany,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="payroll_summary.xlsx"`)
	_, err = w.Write(buf.Bytes())
	return err
}

func (h *Handler) handleArchive(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	month, year, ok := parsePeriod(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month and year are required", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.runUpload(r)
	if err != nil {
		failRun(w, r, err)
		return
	}

	processedAt := time.Now().UTC()
	if err := h.History.ArchiveRun(r.Context(), result.Records, month, year, processedAt); err != nil {
		api.Fail(w, http.StatusInternalServerError, "archive_failed", "failed to archive payroll run", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "payroll.archive", fmt.Sprintf("%s-%d", month, year), middleware.GetRequestID(r.Context()), result.Summary); err != nil {
		log.Printf("audit payroll.archive failed: %v", err)
	}

	api.Created(w, map[string]any{
		"archived":    len(result.Records),
		"month":       month,
		"year":        year,
		"processedAt": processedAt,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	month, year, ok := parsePeriod(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month and year are required", middleware.GetRequestID(r.Context()))
		return
	}

	entries, err := h.History.HistoryForPeriod(r.Context(), month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "history_failed", "failed to load payroll history", middleware.GetRequestID(r.Context()))
		return
	}

	var totalNet float64
	for _, entry := range entries {
		totalNet += entry.NetSalary
	}
	api.Success(w, map[string]any{
		"entries":  entries,
		"totalNet": totalNet,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	month, year, ok := parsePeriod(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month and year are required", middleware.GetRequestID(r.Context()))
		return
	}
	employeeID := strings.TrimSpace(r.FormValue("employee_id"))
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employee_id is required", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.runUpload(r)
	if err != nil {
		failRun(w, r, err)
		return
	}

	for _, rec := range result.Records {
		if rec.EmpNo != employeeID {
			continue
		}
		content, err := h.Renderer.Render(rec, month, year)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "render_failed", "failed to render statement", middleware.GetRequestID(r.Context()))
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_%s.pdf"`, rec.EmpNo, strings.ReplaceAll(rec.Name, " ", "_")))
		_, _ = w.Write(content)
		return
	}

	api.Fail(w, http.StatusNotFound, "not_found", "employee not present in uploaded dataset", middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslipBundle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	month, year, ok := parsePeriod(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month and year are required", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.runUpload(r)
	if err != nil {
		failRun(w, r, err)
		return
	}

	content, err := h.Renderer.RenderBundle(result.Records, month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "render_failed", "failed to render statements", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="Payslips_%s_%d.zip"`, month, year))
	_, _ = w.Write(content)
}

func parsePeriod(r *http.Request) (string, int, bool) {
	month := strings.TrimSpace(r.FormValue("month"))
	if month == "" {
		month = strings.TrimSpace(r.URL.Query().Get("month"))
	}
	yearRaw := strings.TrimSpace(r.FormValue("year"))
	if yearRaw == "" {
		yearRaw = strings.TrimSpace(r.URL.Query().Get("year"))
	}
	if month == "" || yearRaw == "" {
		return "", 0, false
	}
	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		return "", 0, false
	}
	return month, year, true
}

var (
	errMissingFile = errors.New("upload file is required")
	errBadDataset  = errors.New("invalid dataset")
)

// failRun maps pipeline failures onto the error taxonomy: bad uploads are the
// caller's problem, everything else aborts the run as an internal failure.
func failRun(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, errMissingFile):
		api.Fail(w, http.StatusBadRequest, "missing_file", "upload file is required", reqID)
	case errors.Is(err, errBadDataset):
		api.Fail(w, http.StatusBadRequest, "invalid_dataset", err.Error(), reqID)
	case errors.Is(err, payroll.ErrEmptyDataset):
		api.Fail(w, http.StatusBadRequest, "empty_dataset", "uploaded dataset contains no rows", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "payroll_run_failed", err.Error(), reqID)
	}
}

func formatCSV(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
