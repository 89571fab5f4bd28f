package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/models"
)

func newTestJobRepo(t *testing.T) (JobRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewPostgresJobRepository(&DB{
		DB:                 db,
		logger:             logger.Nop(),
		errorClassificator: NewPostgresErrorClassifier(),
	})
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func jobRows(job models.TranslationJob) *sqlmock.Rows {
	var finishedAt any
	if job.FinishedAt != nil {
		finishedAt = *job.FinishedAt
	}

	return sqlmock.
		NewRows(jobColumns).
		AddRow(
			job.JobID,
			string(job.Status),
			job.SourceLanguage,
			job.TargetLanguage,
			int64(job.Duration),
			job.ErrorRate,
			job.FailureReason,
			job.CreatedAt,
			job.CompletesAt,
			finishedAt,
			job.Version,
		)
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestJobRepository_Create_Success(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	job := newPendingJob("job-1", time.Now())

	mock.ExpectExec("INSERT INTO jobs").
		WithArgs(
			job.JobID,
			string(job.Status),
			job.SourceLanguage,
			job.TargetLanguage,
			int64(job.Duration),
			job.ErrorRate,
			job.FailureReason,
			job.CreatedAt,
			job.CompletesAt,
			nil,
			job.Version,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestJobRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO jobs").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.Create(context.Background(), newPendingJob("job-1", time.Now()))
	if !errors.Is(err, ErrJobAlreadyExists) {
		t.Fatalf("expected ErrJobAlreadyExists, got %v", err)
	}
}

func TestJobRepository_Create_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO jobs").
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), newPendingJob("job-1", time.Now()))
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestJobRepository_Create_RetriesTransientError(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	// deadlock rollback classifies as retryable; the second attempt lands
	mock.ExpectExec("INSERT INTO jobs").
		WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectExec("INSERT INTO jobs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), newPendingJob("job-1", time.Now()))
	if err != nil {
		t.Fatalf("expected retried create to succeed, got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestJobRepository_Create_GivesUpOnPersistentTransientError(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	// initial attempt plus every retry fails the same way
	for i := 0; i < dbRetryMaxRetries+1; i++ {
		mock.ExpectExec("INSERT INTO jobs").
			WillReturnError(pgError(pgerrcode.ConnectionFailure))
	}

	err := repo.Create(context.Background(), newPendingJob("job-1", time.Now()))
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery after exhausted retries, got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// ── Get ──────────────────────────────────────────────────────────────────────

func TestJobRepository_Get_Success(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	job := newPendingJob("job-1", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM jobs").
		WithArgs(job.JobID).
		WillReturnRows(jobRows(job))

	got, err := repo.Get(context.Background(), job.JobID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.JobID != job.JobID {
		t.Errorf("expected job ID %s, got %s", job.JobID, got.JobID)
	}
	if got.Status != models.JobStatusPending {
		t.Errorf("expected pending status, got %s", got.Status)
	}
	if got.Duration != job.Duration {
		t.Errorf("expected duration %s, got %s", job.Duration, got.Duration)
	}
}

func TestJobRepository_Get_NotFound(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM jobs").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

// ── ListDue ──────────────────────────────────────────────────────────────────

func TestJobRepository_ListDue_ReturnsRows(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	now := time.Now()
	first := newPendingJob("job-1", now.Add(-time.Minute))
	second := newPendingJob("job-2", now.Add(-time.Second))

	rows := jobRows(first)
	rows.AddRow(
		second.JobID, string(second.Status), second.SourceLanguage, second.TargetLanguage,
		int64(second.Duration), second.ErrorRate, second.FailureReason,
		second.CreatedAt, second.CompletesAt, nil, second.Version,
	)

	mock.ExpectQuery("SELECT (.+) FROM jobs").
		WillReturnRows(rows)

	due, err := repo.ListDue(context.Background(), now, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("expected 2 due jobs, got %d", len(due))
	}
	if due[0].JobID != "job-1" || due[1].JobID != "job-2" {
		t.Errorf("unexpected job order: %s, %s", due[0].JobID, due[1].JobID)
	}
}

func TestJobRepository_ListDue_Empty(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM jobs").
		WillReturnRows(sqlmock.NewRows(jobColumns))

	due, err := repo.ListDue(context.Background(), time.Now(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("expected no due jobs, got %d", len(due))
	}
}

func TestJobRepository_ListDue_RetriesTransientError(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM jobs").
		WillReturnError(pgError(pgerrcode.ConnectionDoesNotExist))
	mock.ExpectQuery("SELECT (.+) FROM jobs").
		WillReturnRows(jobRows(newPendingJob("job-1", now.Add(-time.Second))))

	due, err := repo.ListDue(context.Background(), now, 10)
	if err != nil {
		t.Fatalf("expected retried query to succeed, got %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected 1 due job, got %d", len(due))
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// ── Finalize ─────────────────────────────────────────────────────────────────

func TestJobRepository_Finalize_Success(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectExec("UPDATE jobs").
		WithArgs(
			string(models.JobStatusCompleted), // status
			"",                                // failure_reason
			now,                               // finished_at
			int64(2),                          // version bump
			"job-1",                           // WHERE job_id
			string(models.JobStatusPending),   // WHERE status
			int64(1),                          // WHERE version
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Finalize(context.Background(), "job-1", models.JobStatusCompleted, "", now, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestJobRepository_Finalize_TerminalIsSticky(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	now := time.Now()
	terminal := newPendingJob("job-1", now)
	terminal.Status = models.JobStatusCompleted
	terminal.Version = 2

	mock.ExpectExec("UPDATE jobs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM jobs").
		WithArgs("job-1").
		WillReturnRows(jobRows(terminal))

	err := repo.Finalize(context.Background(), "job-1", models.JobStatusError, "late", now, 2)
	if !errors.Is(err, ErrJobNotPending) {
		t.Fatalf("expected ErrJobNotPending, got %v", err)
	}
}

func TestJobRepository_Finalize_VersionConflict(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	now := time.Now()
	pending := newPendingJob("job-1", now)
	pending.Version = 5

	mock.ExpectExec("UPDATE jobs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM jobs").
		WithArgs("job-1").
		WillReturnRows(jobRows(pending))

	err := repo.Finalize(context.Background(), "job-1", models.JobStatusCompleted, "", now, 1)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestJobRepository_Finalize_NotFound(t *testing.T) {
	repo, mock, db := newTestJobRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE jobs").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM jobs").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	err := repo.Finalize(context.Background(), "missing", models.JobStatusCompleted, "", time.Now(), 1)
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}
