package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/core"
	"github.com/joseph-ayodele/letters-tracker/internal/core/async"
	"github.com/joseph-ayodele/letters-tracker/internal/core/extract"
	"github.com/joseph-ayodele/letters-tracker/internal/core/ocr"
	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
	"github.com/joseph-ayodele/letters-tracker/internal/ingest"
	"github.com/joseph-ayodele/letters-tracker/internal/metrics"
	"github.com/joseph-ayodele/letters-tracker/internal/repository"
	"github.com/joseph-ayodele/letters-tracker/internal/services/export"
	"github.com/joseph-ayodele/letters-tracker/internal/storage"
)

const sampleLetter = `जिल्हाधिकारी कार्यालय, पुणे
दिनांक: 15/03/2024
विषय: रस्ता दुरुस्ती बाबत तक्रार
महोदय,
आमच्या गावातील रस्ता खराब झाला आहे.
मोबाईल: 9876543210`

type testEnv struct {
	router *gin.Engine
	proc   *core.Processor
	queue  *async.ProcessorQueue
	jobs   repository.ExtractJobRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := repository.Open(ctx, repository.Config{Driver: common.DBDriverSQLite, DSN: dsn}, logger)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))

	store, err := storage.NewLocalStore(t.TempDir(), logger)
	require.NoError(t, err)

	files := repository.NewLetterFileRepository(db, logger)
	jobs := repository.NewExtractJobRepository(db, logger)
	m := metrics.New(prometheus.NewRegistry())

	now := func() time.Time { return time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC) }
	proc := core.NewProcessor(logger,
		extract.NewOCRAdapter(ocr.NewExtractor(ocr.Config{}, logger), logger),
		extract.NewRulesExtractor(rules.NewExtractor(logger, rules.WithClock(now))),
		files, jobs,
		core.WithStorage(store),
		core.WithMetrics(m),
	)
	queue := async.NewProcessorQueue(proc, logger, async.WithWorkers(1), async.WithMetrics(m))
	t.Cleanup(func() { queue.Shutdown(context.Background()) })

	router := NewRouter(HTTPDeps{
		Processor: proc,
		Ingestor:  ingest.NewFSIngestor(files, store, logger, m),
		Queue:     queue,
		Files:     files,
		Jobs:      jobs,
		Export:    export.NewService(jobs, files, logger),
		DB:        db,
		Metrics:   m,
		Logger:    logger,
	})
	return &testEnv{router: router, proc: proc, queue: queue, jobs: jobs}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) upload(t *testing.T, name, content, query string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files"+query, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(req)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHTTP_Extract(t *testing.T) {
	env := newTestEnv(t)

	body, _ := json.Marshal(map[string]string{"text": sampleLetter})
	w := env.do(httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	out := decode(t, w)
	assert.Equal(t, "15/03/2024", out["letterDate"])
	assert.Equal(t, "9876543210", out["mobileNumber"])
	assert.Equal(t, "pending", out["letterStatus"])
	nested := out["file"].(map[string]any)["extractedData"].(map[string]any)
	assert.Equal(t, out["letterSubject"], nested["letterSubject"])
	assert.Equal(t, "रस्ता दुरुस्ती बाबत तक्रार", nested["letterSubject"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHTTP_ExtractRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader(`{"text":"   "}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "text")
}

func TestHTTP_UploadSyncThenReExtractAndExport(t *testing.T) {
	env := newTestEnv(t)

	w := env.upload(t, "letter.txt", sampleLetter, "?sync=true")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, "15/03/2024", out["letterDate"])
	file := out["file"].(map[string]any)
	fileID := file["id"].(string)
	assert.Equal(t, "EXTRACT_OK", file["job"].(map[string]any)["status"])

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/files/"+fileID, http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "9876543210", decode(t, w)["mobileNumber"])

	w = env.do(httptest.NewRequest(http.MethodPost, "/api/v1/files/"+fileID+"/extract", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out = decode(t, w)
	assert.Equal(t, "तक्रार", out["letterType"])
	assert.NotEmpty(t, out["file"].(map[string]any)["jobId"])

	// same bytes again: deduplicated
	w = env.upload(t, "copy.txt", sampleLetter, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["deduplicated"])

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/export?from=2024-01-01&to=2024-12-31", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "2", w.Header().Get("X-Row-Count"), "both jobs of the file are registered")

	xl, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer xl.Close()
	rows, err := xl.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "15/03/2024", rows[1][1])

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/export?from=17-10-2026", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHTTP_UploadQueued(t *testing.T) {
	env := newTestEnv(t)

	w := env.upload(t, "queued.md", sampleLetter+"\nमार्फत ई-मेल", "")
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, true, out["queued"])
	fileID := uuid.MustParse(out["fileId"].(string))

	require.Eventually(t, func() bool {
		job, err := env.jobs.GetLatestByFile(context.Background(), fileID)
		return err == nil && job.Status.Terminal()
	}, 5*time.Second, 20*time.Millisecond)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/files/"+fileID.String(), http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "15/03/2024", decode(t, w)["letterDate"])
}

func TestHTTP_UploadRejectsUnsupported(t *testing.T) {
	env := newTestEnv(t)
	w := env.upload(t, "letter.docx", "binary", "")
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", strings.NewReader(""))
	assert.Equal(t, http.StatusBadRequest, env.do(req).Code)
}

func TestHTTP_FileLookupErrors(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusBadRequest, env.do(httptest.NewRequest(http.MethodGet, "/api/v1/files/nope", http.NoBody)).Code)
	assert.Equal(t, http.StatusNotFound, env.do(httptest.NewRequest(http.MethodGet, "/api/v1/files/"+uuid.NewString(), http.NoBody)).Code)
	assert.Equal(t, http.StatusNotFound, env.do(httptest.NewRequest(http.MethodPost, "/api/v1/files/"+uuid.NewString()+"/extract", http.NoBody)).Code)
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = env.do(httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `letters_http_requests_total{code="200",route="/healthz"} 1`)
}

func TestHTTP_FileList(t *testing.T) {
	env := newTestEnv(t)
	env.upload(t, "a.txt", "पहिले पत्र", "?sync=true")
	env.upload(t, "b.txt", "दुसरे पत्र", "?sync=true")

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/files?limit=1", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Len(t, out["files"], 1)
	assert.EqualValues(t, 1, out["limit"])
}
