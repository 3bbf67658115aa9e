package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/404Health/universal-dataCleaner/internal/errors"
	"github.com/404Health/universal-dataCleaner/internal/cleaning"
	"github.com/404Health/universal-dataCleaner/internal/dataset"
	"github.com/404Health/universal-dataCleaner/internal/services"
)

// previewRows caps the number of rows returned in clean/run responses.
const previewRows = 50

// CleanHandler handles upload-and-clean requests and run retrieval.
type CleanHandler struct {
	service  CleanServiceInterface
	logger   *slog.Logger
	validate *validator.Validate
}

// NewCleanHandler creates a new clean handler.
func NewCleanHandler(service CleanServiceInterface, logger *slog.Logger) *CleanHandler {
	return &CleanHandler{
		service:  service,
		logger:   logger.With(slog.String("component", "clean_handler")),
		validate: validator.New(),
	}
}

// Routes returns the data-cleaning routes.
func (h *CleanHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/clean", h.Clean)
	r.Route("/runs/{id}", func(r chi.Router) {
		r.Use(h.RunCtx)
		r.Get("/", h.GetRun)
		r.Get("/download/{format}", h.Download)
	})

	return r
}

// TablePreview is the tabular payload rendered by the front end.
type TablePreview struct {
	Columns []string   `json:"columns"`
	Types   []string   `json:"types"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total_rows"`
}

// RunResponse is the response body for clean and run-retrieval requests.
type RunResponse struct {
	RunID      string                       `json:"run_id"`
	File       string                       `json:"file"`
	RowsBefore int                          `json:"rows_before"`
	RowsAfter  int                          `json:"rows_after"`
	Steps      []string                     `json:"steps_taken"`
	Missing    []cleaning.ColumnAction      `json:"missing_values"`
	Comparison []cleaning.MissingComparison `json:"missing_comparison"`
	Preview    TablePreview                 `json:"preview"`
}

// Clean accepts a multipart upload with cleaning options and runs the
// pipeline.
func (h *CleanHandler) Clean(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(dataset.MaxFileSize); err != nil {
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid multipart form", err.Error()))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderError(w, r, apierrors.ErrValidation("file", "An uploaded file is required"))
		return
	}
	defer file.Close()

	if header.Size > dataset.MaxFileSize {
		h.renderError(w, r, apierrors.ErrPayloadTooLarge)
		return
	}
	if !dataset.SupportedExtension(header.Filename) {
		h.renderError(w, r, apierrors.ErrValidation("file", "Unsupported file format. Use CSV or Excel (.xlsx, .xls)"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, dataset.MaxFileSize+1))
	if err != nil {
		h.renderError(w, r, apierrors.ErrInternalServer)
		return
	}
	if int64(len(data)) > dataset.MaxFileSize {
		h.renderError(w, r, apierrors.ErrPayloadTooLarge)
		return
	}

	opts, apiErr := h.parseOptions(r)
	if apiErr != nil {
		h.renderError(w, r, apiErr)
		return
	}

	run, err := h.service.CleanFile(r.Context(), header.Filename, data, opts)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Cleaning run failed",
			slog.String("file", header.Filename),
			slog.String("error", err.Error()))
		if errors.Is(err, services.ErrLoad) {
			h.renderError(w, r, apierrors.NewWithDetails(http.StatusBadRequest, "INVALID_INPUT", "Could not load the uploaded file", err.Error()))
			return
		}
		h.renderError(w, r, apierrors.FromCleaning(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, runResponse(run))
}

// RunCtx validates the run ID and loads the run into scope.
func (h *CleanHandler) RunCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			h.renderError(w, r, apierrors.ErrValidation("id", "Run ID is required"))
			return
		}
		if _, ok := h.service.Run(id); !ok {
			h.renderError(w, r, apierrors.NotFoundError("run"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetRun returns the report and preview for a prior run.
func (h *CleanHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, _ := h.service.Run(chi.URLParam(r, "id"))
	render.JSON(w, r, runResponse(run))
}

// Download streams the cleaned table in the requested format.
func (h *CleanHandler) Download(w http.ResponseWriter, r *http.Request) {
	run, _ := h.service.Run(chi.URLParam(r, "id"))
	format := chi.URLParam(r, "format")

	var (
		data []byte
		mime string
		err  error
	)
	switch format {
	case "csv":
		data, err = h.service.ExportCSV(run)
		mime = "text/csv"
	case "xlsx":
		data, err = h.service.ExportXLSX(run)
		mime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		h.renderError(w, r, apierrors.ErrValidation("format", "Download format must be csv or xlsx"))
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Export failed",
			slog.String("run_id", run.ID),
			slog.String("format", format),
			slog.String("error", err.Error()))
		h.renderError(w, r, apierrors.ErrInternalServer)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", dataset.CleanedFileName(run.FileName, format)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// parseOptions assembles cleaning options from form fields, falling back
// to the service defaults for absent fields.
func (h *CleanHandler) parseOptions(r *http.Request) (cleaning.Options, *apierrors.APIError) {
	opts := h.service.DefaultOptions()

	if v := r.FormValue("fill_strategy"); v != "" {
		opts.FillStrategy = cleaning.FillStrategy(v)
	}
	if v := r.FormValue("apply_outliers"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, apierrors.ErrValidation("apply_outliers", "Must be a boolean")
		}
		opts.ApplyOutliers = b
	}
	if v := r.FormValue("outlier_method"); v != "" {
		opts.OutlierMethod = cleaning.OutlierMethod(v)
	}
	if v := r.FormValue("outlier_threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, apierrors.ErrValidation("outlier_threshold", "Must be a number")
		}
		opts.OutlierThreshold = f
	}
	if v := r.FormValue("outlier_replacement"); v != "" {
		opts.OutlierReplacement = cleaning.Replacement(v)
	}
	if v := r.FormValue("categorical_columns"); v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.CategoricalColumns = append(opts.CategoricalColumns, name)
			}
		}
	}

	if err := h.validate.Struct(opts); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return opts, apierrors.ErrValidation(ve[0].Field(), fmt.Sprintf("Failed %s validation", ve[0].Tag()))
		}
		return opts, apierrors.ErrValidationFailed
	}
	return opts, nil
}

func (h *CleanHandler) renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	render.Status(r, apiErr.StatusCode)
	render.JSON(w, r, apiErr)
}

func runResponse(run *services.Run) RunResponse {
	return RunResponse{
		RunID:      run.ID,
		File:       run.FileName,
		RowsBefore: run.Original.NumRows(),
		RowsAfter:  run.Cleaned.NumRows(),
		Steps:      run.Report.Steps,
		Missing:    run.Report.Actions,
		Comparison: run.Comparison,
		Preview:    preview(run.Cleaned),
	}
}

func preview(t *dataset.Table) TablePreview {
	n := t.NumRows()
	if n > previewRows {
		n = previewRows
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		rows[i] = t.Row(i)
	}
	types := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		types[i] = string(col.Type)
	}
	return TablePreview{
		Columns: t.ColumnNames(),
		Types:   types,
		Rows:    rows,
		Total:   t.NumRows(),
	}
}
