package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSystemLogLiftsKnownKeys(t *testing.T) {
	record := slog.NewRecord(time.Now(), slog.LevelError, "report update failed", 0)
	record.AddAttrs(
		slog.String("actor_id", "u-1"),
		slog.String("error", "boom"),
		slog.Float64("latency_ms", 12.6),
		slog.String("kind", "report"),
	)

	entry := toSystemLog(record, []slog.Attr{slog.String("tenant_id", "acme")})

	assert.Equal(t, "acme", entry.TenantID)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, "u-1", *entry.ActorID)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)
	assert.Equal(t, "ERROR", entry.Level)

	var extra map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, map[string]interface{}{"kind": "report"}, extra)
}

func TestPGHandlerOnlyErrors(t *testing.T) {
	h := &PGHandler{sink: &pgSink{}}
	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPGHandlerWithAttrsSharesBuffer(t *testing.T) {
	sink := &pgSink{}
	h := &PGHandler{sink: sink}
	child := h.WithAttrs([]slog.Attr{slog.String("tenant_id", "acme")})

	require.NoError(t, child.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "x", 0)))
	require.Len(t, sink.buffer, 1)
	assert.Equal(t, "acme", sink.buffer[0].TenantID)
}

func TestPGFlushFailureDoesNotFeedBuffer(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	var out bytes.Buffer
	sink := &pgSink{db: db, errLog: slog.New(slog.NewJSONHandler(&out, nil))}
	h := &PGHandler{sink: sink}

	prev := slog.Default()
	slog.SetDefault(slog.New(h))
	t.Cleanup(func() { slog.SetDefault(prev) })

	mock.ExpectQuery(`INSERT INTO "system_logs"`).WillReturnError(errors.New("connection refused"))

	slog.Error("db down")
	require.Len(t, sink.buffer, 1)

	sink.flush()
	assert.Empty(t, sink.buffer)
	assert.Contains(t, out.String(), "failed to flush system logs to DB")
}

func TestPGHandlerStopWaitsForFinalFlush(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	h := NewPGHandler(db)
	h.sink.errLog = slog.New(slog.NewJSONHandler(io.Discard, nil))

	mock.ExpectQuery(`INSERT INTO "system_logs"`).WillReturnError(errors.New("connection refused"))

	require.NoError(t, h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "x", 0)))
	h.Stop()

	require.NoError(t, mock.ExpectationsWereMet())
}

type recordingHandler struct {
	level   slog.Level
	records []slog.Record
}

func (r *recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= r.level }
func (r *recordingHandler) Handle(_ context.Context, rec slog.Record) error {
	r.records = append(r.records, rec)
	return nil
}
func (r *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *recordingHandler) WithGroup(string) slog.Handler      { return r }

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	info := &recordingHandler{level: slog.LevelInfo}
	errs := &recordingHandler{level: slog.LevelError}
	logger := slog.New(NewMultiHandler(info, errs))

	logger.Info("access denied")
	logger.Error("db down")

	assert.Len(t, info.records, 2)
	assert.Len(t, errs.records, 1)
}

func TestPurgeSystemLogs(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	now := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`DELETE FROM "system_logs" WHERE timestamp < \$1`).
		WithArgs(now.AddDate(0, 0, -30)).
		WillReturnResult(sqlmock.NewResult(0, 7))

	assert.Equal(t, int64(7), PurgeSystemLogs(db, 30, now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStartCleanupRejectsBadSchedule(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	_, err := StartCleanup(db, "not a schedule", 30)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
