package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu          sync.Mutex
	path        string
	contentType string
	body        []byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.path = r.URL.Path
	f.contentType = r.Header.Get("Content-Type")
	f.body = body
	f.mu.Unlock()

	w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
	w.WriteHeader(http.StatusOK)
}

func newTestSink(t *testing.T, server *httptest.Server, prefix string) *Sink {
	t.Helper()

	sink, err := New(Config{
		Endpoint:  strings.TrimPrefix(server.URL, "http://"),
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "reports-bucket",
		Region:    "us-east-1",
		Prefix:    prefix,
		URLExpiry: 10 * time.Minute,
	})
	require.NoError(t, err)
	return sink
}

func TestSink_Upload(t *testing.T) {
	fake := &fakeS3{}
	server := httptest.NewServer(fake)
	defer server.Close()

	sink := newTestSink(t, server, "reports")

	url, err := sink.Upload(context.Background(), "sales-report-3-day-2025-03-10-2025-03-10.pdf", []byte("%PDF-1.3 test"), "application/pdf")

	require.NoError(t, err)
	assert.Equal(t, "/reports-bucket/reports/sales-report-3-day-2025-03-10-2025-03-10.pdf", fake.path)
	assert.Equal(t, "application/pdf", fake.contentType)
	// тело может прийти в aws-chunked кодировке, поэтому проверяем вхождение
	assert.Contains(t, string(fake.body), "%PDF-1.3 test")

	assert.Contains(t, url, "/reports-bucket/reports/sales-report-3-day-2025-03-10-2025-03-10.pdf")
	assert.Contains(t, url, "X-Amz-Expires=600")
	assert.Contains(t, url, "X-Amz-Signature=")
}

func TestSink_UploadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
	}))
	defer server.Close()

	sink := newTestSink(t, server, "")

	_, err := sink.Upload(context.Background(), "report.pdf", []byte("%PDF"), "application/pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "put object report.pdf")
}

func TestSink_ObjectKey(t *testing.T) {
	assert.Equal(t, "report.pdf", (&Sink{}).objectKey("report.pdf"))
	assert.Equal(t, "reports/2025/report.pdf", (&Sink{cfg: Config{Prefix: "reports/2025/"}}).objectKey("report.pdf"))
}
