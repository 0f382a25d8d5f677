package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/core"
	"github.com/joseph-ayodele/letters-tracker/internal/core/async"
	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
	"github.com/joseph-ayodele/letters-tracker/internal/entity"
	"github.com/joseph-ayodele/letters-tracker/internal/ingest"
	"github.com/joseph-ayodele/letters-tracker/internal/metrics"
	"github.com/joseph-ayodele/letters-tracker/internal/repository"
	"github.com/joseph-ayodele/letters-tracker/internal/services/export"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxTextRunes    = 200_000
)

// HealthChecker is satisfied by *repository.DB.
type HealthChecker interface {
	HealthCheck(ctx context.Context, timeout time.Duration) error
}

type HTTPDeps struct {
	Processor Extractor
	Ingestor  ingest.Ingestor
	Queue     async.Queue
	Files     repository.LetterFileRepository
	Jobs      repository.ExtractJobRepository
	Export    *export.Service
	DB        HealthChecker
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	// MaxUploadBytes caps multipart uploads; zero means 32 MiB.
	MaxUploadBytes int64
}

type handlers struct {
	HTTPDeps
}

// NewRouter wires the REST API onto a gin engine.
func NewRouter(d HTTPDeps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.MaxUploadBytes <= 0 {
		d.MaxUploadBytes = 32 << 20
	}
	h := &handlers{HTTPDeps: d}

	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())
	r.MaxMultipartMemory = d.MaxUploadBytes

	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	api := r.Group("/api/v1")
	api.POST("/extract", h.extractText)
	api.POST("/files", h.uploadFile)
	api.GET("/files", h.listFiles)
	api.GET("/files/:id", h.getFile)
	api.POST("/files/:id/extract", h.reExtract)
	api.GET("/export", h.exportRegister)
	return r
}

func (h *handlers) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-ID", reqID)
		l := h.Logger.With("request_id", reqID)
		c.Request = c.Request.WithContext(common.WithLogger(common.WithRequestID(c.Request.Context(), reqID), l))

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := c.Writer.Status()
		h.Metrics.HTTPRequest(route, strconv.Itoa(code))
		l.Info("http request",
			"method", c.Request.Method,
			"route", route,
			"status", code,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (h *handlers) fail(c *gin.Context, err error) {
	code := common.HTTPStatus(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		common.LoggerFromContext(c.Request.Context(), h.Logger).Error("request failed", "err", err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

func (h *handlers) health(c *gin.Context) {
	if h.DB != nil {
		if err := h.DB.HealthCheck(c.Request.Context(), 2*time.Second); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type extractRequest struct {
	Text string `json:"text"`
}

// extractText runs the rule engine on posted OCR text. Nothing is stored.
func (h *handlers) extractText(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: body must be JSON {\"text\": \"...\"}", common.ErrInvalidInput))
		return
	}
	if err := common.NewValidator().Field("text", req.Text, common.Required, common.MaxLength(maxTextRunes)).Err(); err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.Processor.ExtractText(c.Request.Context(), req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recordResponse(res.Record, gin.H{}))
}

func (h *handlers) uploadFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		h.fail(c, fmt.Errorf("%w: multipart field \"file\" is required", common.ErrInvalidInput))
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	ctx := c.Request.Context()
	res, err := h.Ingestor.IngestReader(ctx, fh.Filename, f)
	if err != nil {
		h.fail(c, err)
		return
	}
	fileID, err := uuid.Parse(res.FileID)
	if err != nil {
		h.fail(c, err)
		return
	}
	body := gin.H{
		"fileId":       res.FileID,
		"deduplicated": res.Deduplicated,
		"contentHash":  res.HashHex,
		"storageKey":   res.StorageKey,
	}

	if c.Query("sync") == "true" {
		jobID, err := h.Processor.ProcessFile(ctx, fileID)
		body["jobId"] = jobID.String()
		if err != nil {
			body["error"] = err.Error()
			c.JSON(http.StatusUnprocessableEntity, body)
			return
		}
		h.respondFile(c, fileID, http.StatusCreated)
		return
	}

	if res.Deduplicated {
		c.JSON(http.StatusOK, body)
		return
	}
	if err := h.Queue.Enqueue(ctx, async.Job{
		FileID:      fileID,
		SubmittedAt: time.Now(),
		RequestID:   common.RequestIDFromContext(ctx),
	}); err != nil {
		if errors.Is(err, async.ErrQueueClosed) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		h.fail(c, err)
		return
	}
	body["queued"] = true
	c.JSON(http.StatusAccepted, body)
}

func (h *handlers) listFiles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	files, err := h.Files.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files, "limit": limit, "offset": offset})
}

func (h *handlers) getFile(c *gin.Context) {
	fileID, err := common.ParseUUID("id", c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondFile(c, fileID, http.StatusOK)
}

// respondFile writes the file with its latest job. When that job holds a
// record, the record fields are also published at the top level.
func (h *handlers) respondFile(c *gin.Context, fileID uuid.UUID, code int) {
	ctx := c.Request.Context()
	file, err := h.Files.GetByID(ctx, fileID)
	if err != nil {
		h.fail(c, err)
		return
	}
	job, err := h.Jobs.GetLatestByFile(ctx, fileID)
	if err != nil && !common.IsNotFound(err) {
		h.fail(c, err)
		return
	}

	fileBody := fileJSON(file)
	if job == nil {
		c.JSON(code, gin.H{"file": fileBody})
		return
	}
	fileBody["job"] = jobJSON(job)

	var rec rules.StructuredRecord
	if len(job.ExtractedJSON) > 0 && json.Unmarshal(job.ExtractedJSON, &rec) == nil {
		c.JSON(code, recordResponse(rec, fileBody))
		return
	}
	c.JSON(code, gin.H{"file": fileBody})
}

func (h *handlers) reExtract(c *gin.Context) {
	fileID, err := common.ParseUUID("id", c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.Processor.ReExtract(c.Request.Context(), fileID)
	if err != nil {
		h.fail(c, err)
		return
	}
	file, err := h.Files.GetByID(c.Request.Context(), fileID)
	if err != nil {
		h.fail(c, err)
		return
	}
	fileBody := fileJSON(file)
	fileBody["jobId"] = res.JobID.String()
	c.JSON(http.StatusOK, recordResponse(res.Record, fileBody))
}

func (h *handlers) exportRegister(c *gin.Context) {
	from, err := parseDateParam(c.Query("from"), "from")
	if err != nil {
		h.fail(c, err)
		return
	}
	to, err := parseDateParam(c.Query("to"), "to")
	if err != nil {
		h.fail(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "1000"))

	xlsx, rows, err := h.Export.ExportLettersXLSX(c.Request.Context(), from, to, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	name := "letters-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("X-Row-Count", strconv.Itoa(rows))
	c.Data(http.StatusOK, xlsxContentType, xlsx)
}

// parseDateParam reads an optional YYYY-MM-DD query value.
func parseDateParam(s, field string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", common.ErrInvalidInput, field)
	}
	return &t, nil
}

// recordResponse publishes rec at the top level and under file.extractedData.
func recordResponse(rec rules.StructuredRecord, file gin.H) gin.H {
	out := gin.H{}
	for k, v := range rec.Map() {
		out[k] = v
	}
	file["extractedData"] = rec.Map()
	out["file"] = file
	return out
}

func fileJSON(f *entity.LetterFile) gin.H {
	return gin.H{
		"id":          f.ID.String(),
		"sourcePath":  f.SourcePath,
		"storageKey":  f.StorageKey,
		"contentHash": f.ContentHash,
		"fileExt":     f.FileExt,
		"fileSize":    f.FileSize,
		"uploadedAt":  f.UploadedAt,
	}
}

func jobJSON(j *entity.ExtractJob) gin.H {
	out := gin.H{
		"id":            j.ID.String(),
		"status":        string(j.Status),
		"format":        j.Format,
		"ocrMethod":     j.OCRMethod,
		"ocrConfidence": j.OCRConfidence,
		"pageCount":     j.PageCount,
		"startedAt":     j.StartedAt,
	}
	if j.OCRModel != "" {
		out["ocrModel"] = j.OCRModel
	}
	if j.ErrorMessage != "" {
		out["error"] = j.ErrorMessage
	}
	if j.FinishedAt != nil {
		out["finishedAt"] = *j.FinishedAt
	}
	return out
}

var _ Extractor = (*core.Processor)(nil)
