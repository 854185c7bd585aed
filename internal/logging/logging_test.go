package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hidrata/quest-backend/internal/models"
	"github.com/hidrata/quest-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sink down")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var info, debug bytes.Buffer
	logger := slog.New(NewMultiHandler(
		NewJSONHandler(&info, false),
		NewJSONHandler(&debug, true),
	))

	logger.Debug("only debug")
	logger.With("user_id", "u1").Info("both")

	assert.NotContains(t, info.String(), "only debug")
	assert.Contains(t, debug.String(), "only debug")
	assert.Contains(t, info.String(), `"user_id":"u1"`)
	assert.Contains(t, debug.String(), `"user_id":"u1"`)
}

func TestMultiHandlerContinuesPastFailure(t *testing.T) {
	var out bytes.Buffer
	h := NewMultiHandler(failingHandler{}, NewJSONHandler(&out, false))

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "boom", 0))
	require.Error(t, err)
	assert.Contains(t, out.String(), "boom")
}

func TestPGHandlerPersistsErrors(t *testing.T) {
	db := testutil.NewDB(t)
	h := newPGHandler(db, time.Hour)
	logger := slog.New(h).With("request_id", "req-1")

	logger.Info("not stored")
	logger.Error("request failed",
		"user_id", "u-42",
		"path", "/historico",
		"action", "create_history",
		"error", "disk full",
		"profile_id", "p-7",
	)
	h.Stop()
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "request failed", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u-42", *entry.UserID)
	assert.Equal(t, "/historico", entry.Path)
	assert.Equal(t, "create_history", entry.Action)
	assert.Equal(t, "disk full", entry.Error)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, "p-7", extra["profile_id"])
}

func TestPurgeLogs(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2025, 9, 17, 12, 0, 0, 0, time.UTC)

	old := models.SystemLog{ID: uuid.New(), Timestamp: now.AddDate(0, 0, -45), Level: "ERROR", Message: "old"}
	recent := models.SystemLog{ID: uuid.New(), Timestamp: now.AddDate(0, 0, -2), Level: "ERROR", Message: "recent"}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)

	deleted := PurgeLogs(db, 30*24*time.Hour, now)
	assert.Equal(t, int64(1), deleted)

	var remaining []models.SystemLog
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "recent", remaining[0].Message)
}
