package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
	"github.com/andreyxaxa/Scan-Checkin/internal/usecase/scan"
	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
	"github.com/andreyxaxa/Scan-Checkin/pkg/queue"
	"github.com/andreyxaxa/Scan-Checkin/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCheckIn struct {
	last     *entity.Outcome
	retryOut entity.Outcome
	retryErr error
}

func (f *fakeCheckIn) Process(context.Context, entity.ScanEvent) entity.Outcome {
	return entity.Outcome{}
}

func (f *fakeCheckIn) Retry(context.Context) (entity.Outcome, error) {
	return f.retryOut, f.retryErr
}

func (f *fakeCheckIn) LastOutcome() (entity.Outcome, bool) {
	if f.last == nil {
		return entity.Outcome{}, false
	}

	return *f.last, true
}

type fakeSink struct {
	last *entity.Outcome
}

func (f *fakeSink) Notify(outcome entity.Outcome) {
	f.last = &outcome
}

func (f *fakeSink) Last() (entity.Outcome, bool) {
	if f.last == nil {
		return entity.Outcome{}, false
	}

	return *f.last, true
}

type testServer struct {
	app  *fiber.App
	q    *queue.Queue[entity.ScanEvent]
	chk  *fakeCheckIn
	sink *fakeSink
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	l := logger.NewWithWriter("disabled", io.Discard)
	s := &testServer{
		app: fiber.New(),
		q:   queue.New[entity.ScanEvent](),
		chk: &fakeCheckIn{},
	}
	s.sink = &fakeSink{}

	NewScanRoutes(s.app, scan.New(s.q, l), l)
	NewOperatorRoutes(s.app.Group("/v1"), s.chk, s.sink, l)

	return s
}

func (s *testServer) do(t *testing.T, method, path, contentType, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var got map[string]any
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(b) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(b, &got))
	}

	return resp.StatusCode, got
}

func TestScan_Accepted(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		ticket      string
		device      string
	}{
		{"json", "application/json", `{"ticket_id":"g-1","ranger_id":"ranger-2"}`, "g-1", "ranger-2"},
		{"json alias", "application/json", `{"barcode":"B-7","scanner_id":"s-1"}`, "B-7", "s-1"},
		{"form", "application/x-www-form-urlencoded", "ticket=T-3", "T-3", "default"},
		{"form with a bad escape", "application/x-www-form-urlencoded", "ticket_id=ABC&ranger_id=r1&note=100%", "ABC", "r1"},
		{"curl -d", "application/x-www-form-urlencoded", "ABC123", "ABC123", "default"},
		{"raw", "text/plain", " ABC123 \n", "ABC123", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			code, body := s.do(t, http.MethodPost, "/scan", tt.contentType, tt.body)
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, true, body["ok"])
			assert.Equal(t, tt.ticket, body["ticket_id"])
			assert.Equal(t, tt.device, body["device_id"])

			event, ok := s.q.TryDequeue()
			require.True(t, ok)
			assert.Equal(t, tt.ticket, event.TicketID)
			assert.Equal(t, tt.device, event.DeviceID)
			assert.Equal(t, 0, s.q.Len())
		})
	}
}

func TestScan_MissingTicket(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"whitespace", "text/plain", "   "},
		{"empty", "", ""},
		{"json without ticket", "application/json", `{"ranger_id":"r1"}`},
		{"empty form field", "application/x-www-form-urlencoded", "ticket_id="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			code, body := s.do(t, http.MethodPost, "/scan", tt.contentType, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, "Missing ticket_id", body["error"])
			assert.Equal(t, 0, s.q.Len())
		})
	}
}

func multipartBody(t *testing.T, fields map[string]string) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	return w.FormDataContentType(), buf.String()
}

func TestScan_Multipart(t *testing.T) {
	s := newTestServer(t)

	contentType, body := multipartBody(t, map[string]string{"ticket_id": "g-42", "ranger_id": "r7"})

	code, got := s.do(t, http.MethodPost, "/scan", contentType, body)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "g-42", got["ticket_id"])
	assert.Equal(t, "r7", got["device_id"])

	event, ok := s.q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, "g-42", event.TicketID)
	assert.Equal(t, "r7", event.DeviceID)
}

func TestScan_MultipartWithoutTicket(t *testing.T) {
	s := newTestServer(t)

	contentType, body := multipartBody(t, map[string]string{"ranger_id": "r7"})

	code, got := s.do(t, http.MethodPost, "/scan", contentType, body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing ticket_id", got["error"])

	code, _ = s.do(t, http.MethodPost, "/scan", "multipart/form-data; boundary=nope", "ABC123")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 0, s.q.Len())
}

func TestManualScan_Multipart(t *testing.T) {
	s := newTestServer(t)

	contentType, body := multipartBody(t, map[string]string{"barcode": "B-9"})

	code, got := s.do(t, http.MethodPost, "/manual/scan", contentType, body)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "B-9", got["ticket_id"])
	assert.Equal(t, "manual", got["device_id"])
}

func TestScan_QueueClosed(t *testing.T) {
	s := newTestServer(t)
	s.q.Close()

	code, body := s.do(t, http.MethodPost, "/scan", "application/json", `{"ticket_id":"g-1"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["ok"])
	assert.Contains(t, body["error"], errs.ErrQueueClosed.Error())
}

func TestScan_Duplicates(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 2; i++ {
		code, _ := s.do(t, http.MethodPost, "/scan", "text/plain", "DUP")
		require.Equal(t, http.StatusOK, code)
	}

	assert.Equal(t, 2, s.q.Len())
}

func TestManualScan(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/manual/scan", "application/x-www-form-urlencoded", "ticket_id=g-5")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "manual", body["device_id"])

	code, body = s.do(t, http.MethodPost, "/manual/scan", "application/json", `{"ticket_id":"g-6","device_id":"desk"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "desk", body["device_id"])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 0, s.q.Len())
}

func TestShowUI(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(b), "/manual/scan")
}

func TestRetry(t *testing.T) {
	t.Run("nothing to retry", func(t *testing.T) {
		s := newTestServer(t)
		s.chk.retryErr = errs.ErrNoLastOutcome

		code, body := s.do(t, http.MethodPost, "/v1/operator/retry", "", "")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, false, body["retried"])
		assert.Equal(t, "No previous check-in to retry.", body["info"])
		assert.Nil(t, body["outcome"])
	})

	t.Run("last has no attendee", func(t *testing.T) {
		s := newTestServer(t)
		s.chk.retryOut = entity.Outcome{TicketID: "X", Status: entity.StatusInvalidTicket}
		s.chk.retryErr = errs.ErrLastOutcomeUnresolved

		code, body := s.do(t, http.MethodPost, "/v1/operator/retry", "", "")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, false, body["retried"])
		assert.NotEmpty(t, body["info"])
	})

	t.Run("reprinted", func(t *testing.T) {
		s := newTestServer(t)
		s.chk.retryOut = entity.Outcome{
			TicketID:     "g-1",
			AttendeeName: "Ada",
			Status:       entity.StatusSuccess,
			StatusText:   "Success",
			Success:      true,
			Retry:        true,
		}

		code, body := s.do(t, http.MethodPost, "/v1/operator/retry", "", "")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, body["retried"])

		outcome, ok := body["outcome"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Ada", outcome["attendee_name"])
		assert.Equal(t, "success", outcome["status"])
		assert.Equal(t, true, outcome["retry"])
	})
}

func TestLast(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/v1/operator/last", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["ok"])

	s.chk.last = &entity.Outcome{TicketID: "stale", Status: entity.StatusSuccess}
	s.sink.Notify(entity.Outcome{TicketID: "g-2", Status: entity.StatusPrintFailed, StatusText: "Error: print failed"})

	code, body = s.do(t, http.MethodGet, "/v1/operator/last", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "g-2", body["ticket_id"])
	assert.Equal(t, "print_failed", body["status"])
	assert.Equal(t, false, body["success"])
}
