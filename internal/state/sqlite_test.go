package state

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janelang/shji/internal/testutil"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(":memory:"))
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)
	ctx := context.Background()

	_, err := store.StartSession(ctx, "repl")
	assert.EqualError(t, err, "database not opened")
	assert.EqualError(t, store.RecordEvaluation(ctx, &Evaluation{SessionID: "x"}), "database not opened")
	_, err = store.ListEvaluations(ctx, 10)
	assert.EqualError(t, err, "database not opened")
	assert.EqualError(t, store.Migrate(), "database not opened")
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_Migrate(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Running again is a no-op.
	require.NoError(t, store.Migrate())

	for _, table := range []string{"sessions", "evaluations"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		require.NoError(t, err, "table %s", table)
		_ = rows.Close()
	}
}

func TestSQLiteStore_TranscriptRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	sess, err := store.StartSession(ctx, "repl")
	require.NoError(t, err)
	assert.Len(t, sess.ID, 36)
	assert.Equal(t, "repl", sess.Source)

	inputs := []*Evaluation{
		{SessionID: sess.ID, Input: "let x = 1", Output: "1"},
		{SessionID: sess.ID, Input: "x + y", Error: `variable "y" was uninitialized or not found at access time`},
		{SessionID: sess.ID, Input: "x * 3", Output: "3"},
	}
	for _, e := range inputs {
		require.NoError(t, store.RecordEvaluation(ctx, e))
		assert.NotZero(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}

	all, err := store.ListEvaluations(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "x * 3", all[0].Input)
	assert.Equal(t, "let x = 1", all[2].Input)
	assert.True(t, all[1].Failed())
	assert.False(t, all[0].Failed())
	assert.Equal(t, sess.ID, all[1].SessionID)

	latest, err := store.ListEvaluations(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, inputs[2].ID, latest[0].ID)
	assert.Equal(t, inputs[1].ID, latest[1].ID)
}

func TestSQLiteStore_RecordRequiresSession(t *testing.T) {
	store := setupTestStore(t)
	err := store.RecordEvaluation(context.Background(), &Evaluation{Input: "1"})
	assert.EqualError(t, err, "evaluation has no session")
}

func TestSQLiteStore_UnknownSessionRejected(t *testing.T) {
	store := setupTestStore(t)
	err := store.RecordEvaluation(context.Background(), &Evaluation{SessionID: "missing", Input: "1"})
	assert.Error(t, err)
}

func TestSQLiteStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.db")
	ctx := context.Background()

	first := NewSQLiteStore(nil)
	require.NoError(t, first.Open(path))
	require.NoError(t, first.Migrate())
	sess, err := first.StartSession(ctx, "run")
	require.NoError(t, err)
	require.NoError(t, first.RecordEvaluation(ctx, &Evaluation{SessionID: sess.ID, Input: "2 ^ 8", Output: "256"}))
	require.NoError(t, first.Close())

	second := NewSQLiteStore(nil)
	require.NoError(t, second.Open(path))
	defer second.Close()
	require.NoError(t, second.Migrate())

	got, err := second.ListEvaluations(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "256", got[0].Output)
}

func TestSQLiteStore_MockedErrors(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		run       func(s *SQLiteStore) error
		errMsg    string
	}{
		{
			name: "start session exec fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO sessions").WillReturnError(errBoom)
			},
			run: func(s *SQLiteStore) error {
				_, err := s.StartSession(context.Background(), "repl")
				return err
			},
			errMsg: "failed to start session: boom",
		},
		{
			name: "record exec fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO evaluations").WillReturnError(errBoom)
			},
			run: func(s *SQLiteStore) error {
				return s.RecordEvaluation(context.Background(), &Evaluation{SessionID: "s", Input: "1"})
			},
			errMsg: "failed to record evaluation: boom",
		},
		{
			name: "record last insert id fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO evaluations").WillReturnResult(sqlmock.NewErrorResult(errBoom))
			},
			run: func(s *SQLiteStore) error {
				return s.RecordEvaluation(context.Background(), &Evaluation{SessionID: "s", Input: "1"})
			},
			errMsg: "failed to read evaluation id: boom",
		},
		{
			name: "list query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id, session_id").WillReturnError(errBoom)
			},
			run: func(s *SQLiteStore) error {
				_, err := s.ListEvaluations(context.Background(), 3)
				return err
			},
			errMsg: "failed to list evaluations: boom",
		},
		{
			name: "list scan fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "session_id", "input", "output", "error", "created_at"}).
					AddRow("not-a-number", "s", "1", "1", "", time.Now())
				mock.ExpectQuery("SELECT id, session_id").WillReturnRows(rows)
			},
			run: func(s *SQLiteStore) error {
				_, err := s.ListEvaluations(context.Background(), 3)
				return err
			},
			errMsg: "failed to scan evaluation",
		},
		{
			name: "list row iteration fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "session_id", "input", "output", "error", "created_at"}).
					AddRow(int64(1), "s", "1", "1", "", time.Now()).
					RowError(0, errBoom)
				mock.ExpectQuery("SELECT id, session_id").WillReturnRows(rows)
			},
			run: func(s *SQLiteStore) error {
				_, err := s.ListEvaluations(context.Background(), 3)
				return err
			},
			errMsg: "failed to iterate evaluations: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)
			err = tt.run(NewWithDB(db, testutil.NewTestLogger(t)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
