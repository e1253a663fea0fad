package daemon

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karimwahba/groclist/internal/model"
	"github.com/karimwahba/groclist/internal/notify"
	"github.com/karimwahba/groclist/internal/storage"
)

func TestPIDFileRoundTrip(t *testing.T) {
	pf := &PIDFile{path: filepath.Join(t.TempDir(), "test.pid")}

	assert.False(t, pf.Exists())
	_, err := pf.Read()
	assert.ErrorIs(t, err, ErrNotRunning)

	require.NoError(t, pf.WritePID(12345))
	assert.True(t, pf.Exists())

	pid, err := pf.Read()
	require.NoError(t, err)
	assert.Equal(t, 12345, pid)

	require.NoError(t, pf.Remove())
	assert.False(t, pf.Exists())

	// Removing a missing file is not an error
	require.NoError(t, pf.Remove())
}

func TestPIDFileInvalidContents(t *testing.T) {
	pf := &PIDFile{path: filepath.Join(t.TempDir(), "test.pid")}
	require.NoError(t, pf.WritePID(0))

	// PID 0 is never a running daemon
	assert.False(t, pf.IsRunning())
	assert.Equal(t, 0, pf.GetRunningPID())
}

func TestIsProcessRunning(t *testing.T) {
	// Our own process is always running
	assert.True(t, IsProcessRunning(os.Getpid()))
	assert.False(t, IsProcessRunning(0))
	assert.False(t, IsProcessRunning(-1))
	// PIDs beyond the usual pid_max should not exist
	assert.False(t, IsProcessRunning(99999999))
}

func TestMetricsRecording(t *testing.T) {
	m := NewMetrics()

	m.RecordReminderCheck()
	m.RecordReminderCheck()
	m.RecordNotificationSent(42)
	m.RecordNotificationFailed(errors.New("webhook returned 500"))
	m.RecordPushReceived()

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.RemindersCheckedTotal)
	assert.Equal(t, int64(1), snap.NotificationsSentTotal)
	assert.Equal(t, int64(1), snap.NotificationsFailedTotal)
	assert.Equal(t, int64(1), snap.PushesReceivedTotal)
	assert.Equal(t, int64(1), snap.ErrorsTotal)
	assert.Equal(t, int64(42), snap.ChannelLatencyMs)
	assert.Equal(t, "webhook returned 500", snap.LastError)
	assert.NotNil(t, snap.LastNotificationAt)
	assert.NotNil(t, snap.LastReminderCheck)
	assert.Equal(t, int64(1), snap.ErrorsByCategory["notification"])
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.RecordNotificationSent(10)
	m.RecordError("test", errors.New("boom"))

	m.Reset()

	snap := m.Snapshot()
	assert.Zero(t, snap.NotificationsSentTotal)
	assert.Zero(t, snap.ErrorsTotal)
	assert.Empty(t, snap.LastError)
	assert.Nil(t, snap.LastNotificationAt)
	assert.Empty(t, snap.ErrorsByCategory)
}

func TestMetricsJSON(t *testing.T) {
	m := NewMetrics()
	m.RecordReminderCheck()

	data, err := m.JSON()
	require.NoError(t, err)

	var snap MetricsSnapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, int64(1), snap.RemindersCheckedTotal)
}

func TestHealthCheckerHealthy(t *testing.T) {
	h := NewHealthChecker("test")

	status := h.Check()
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "test", status.Version)
	assert.GreaterOrEqual(t, status.UptimeSeconds, int64(0))
	assert.Greater(t, status.Goroutines, 0)
	assert.True(t, h.IsHealthy())
}

func TestHealthCheckerCustomCheckFailure(t *testing.T) {
	h := NewHealthChecker("test")
	h.AddCheck("database", func() error {
		return errors.New("connection refused")
	})

	assert.False(t, h.IsHealthy())
	assert.Equal(t, "unhealthy", h.Check().Status)

	h.RemoveCheck("database")
	assert.True(t, h.IsHealthy())
}

func TestHealthCheckerPendingNotifications(t *testing.T) {
	h := NewHealthChecker("test")
	h.SetPendingNotifications(3)
	assert.Equal(t, 3, h.Check().PendingNotifications)
}

func pushTestServer(t *testing.T) (*PushServer, *storage.ChannelRepo, *Metrics) {
	t.Helper()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	channelRepo := storage.NewChannelRepo(db)
	metrics := NewMetrics()
	health := NewHealthChecker("test")

	dispatcher := notify.NewDispatcher(channelRepo)
	return NewPushServer(dispatcher, metrics, health), channelRepo, metrics
}

func TestPushEndpointDelivers(t *testing.T) {
	srv, channelRepo, metrics := pushTestServer(t)

	received := make(chan []byte, 1)
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := new(bytes.Buffer)
		body.ReadFrom(r.Body)
		received <- body.Bytes()
		w.WriteHeader(http.StatusOK)
	}))
	defer webhook.Close()

	ch := model.NewChannel("phone", model.ChannelTypeGeneric, webhook.URL)
	require.NoError(t, channelRepo.Create(ch))

	payload := `{"title":"Milk run","body":"Don't forget oat milk","itemId":7}`
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp["status"])
	assert.Equal(t, float64(1), resp["channels"])
	assert.Equal(t, float64(1), resp["delivered"])

	select {
	case body := <-received:
		assert.Contains(t, string(body), "Milk run")
		assert.Contains(t, string(body), "groclist show 7")
	case <-time.After(2 * time.Second):
		t.Fatal("webhook never received the push")
	}

	assert.Equal(t, int64(1), metrics.Snapshot().PushesReceivedTotal)
}

func TestPushEndpointValidation(t *testing.T) {
	srv, _, _ := pushTestServer(t)

	// GET is not allowed
	req := httptest.NewRequest(http.MethodGet, "/push", nil)
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	// Missing title
	req = httptest.NewRequest(http.MethodPost, "/push", bytes.NewBufferString(`{"body":"no title"}`))
	rec = httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed JSON
	req = httptest.NewRequest(http.MethodPost, "/push", bytes.NewBufferString(`{not json`))
	rec = httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := pushTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _, metrics := pushTestServer(t)
	metrics.RecordReminderCheck()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var snap MetricsSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, int64(1), snap.RemindersCheckedTotal)
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 30*time.Minute, "2h 30m"},
		{48 * time.Hour, "2d"},
		{50 * time.Hour, "2d 2h"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatUptime(tt.d), "duration %v", tt.d)
	}
}

func TestDaemonStatusNotRunning(t *testing.T) {
	d := &Daemon{
		pidFile: &PIDFile{path: filepath.Join(t.TempDir(), "test.pid")},
		metrics: NewMetrics(),
	}

	status := d.GetStatus()
	assert.False(t, status.Running)
	assert.Zero(t, status.PID)
	assert.False(t, d.IsRunning())
}
