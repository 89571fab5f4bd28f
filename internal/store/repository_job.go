package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/voxlate/voxlate/models"
)

// jobColumns is the canonical column order used by every SELECT and scan.
var jobColumns = []string{
	"job_id",
	"status",
	"source_language",
	"target_language",
	"duration_ns",
	"error_rate",
	"failure_reason",
	"created_at",
	"completes_at",
	"finished_at",
	"version",
}

// sqlJobRepository implements [JobRepository] over database/sql. The same
// implementation serves PostgreSQL and SQLite; the dialects differ only in
// the squirrel placeholder format and duplicate-key detection.
type sqlJobRepository struct {
	db      *DB
	builder sq.StatementBuilderType

	// isDuplicate reports whether err is the backend's unique-violation error.
	isDuplicate func(err error) bool
}

// NewPostgresJobRepository builds a [JobRepository] backed by PostgreSQL.
func NewPostgresJobRepository(db *DB) JobRepository {
	return &sqlJobRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		isDuplicate: func(err error) bool {
			return postgresError(err) == pgerrcode.UniqueViolation
		},
	}
}

// NewSQLiteJobRepository builds a [JobRepository] backed by SQLite.
func NewSQLiteJobRepository(db *DB) JobRepository {
	return &sqlJobRepository{
		db:          db,
		builder:     sq.StatementBuilder.PlaceholderFormat(sq.Question),
		isDuplicate: sqliteIsUniqueViolation,
	}
}

func (r *sqlJobRepository) Create(ctx context.Context, job models.TranslationJob) error {
	query, args, err := r.builder.
		Insert("jobs").
		Columns(jobColumns...).
		Values(
			job.JobID,
			string(job.Status),
			job.SourceLanguage,
			job.TargetLanguage,
			int64(job.Duration),
			job.ErrorRate,
			job.FailureReason,
			job.CreatedAt,
			job.CompletesAt,
			job.FinishedAt,
			job.Version,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.execRetrying(ctx, query, args...); err != nil {
		if r.isDuplicate(err) {
			return ErrJobAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *sqlJobRepository) Get(ctx context.Context, jobID string) (models.TranslationJob, error) {
	query, args, err := r.builder.
		Select(jobColumns...).
		From("jobs").
		Where(sq.Eq{"job_id": jobID}).
		ToSql()
	if err != nil {
		return models.TranslationJob{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TranslationJob{}, ErrJobNotFound
		}
		return models.TranslationJob{}, err
	}

	return job, nil
}

func (r *sqlJobRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]models.TranslationJob, error) {
	query, args, err := r.builder.
		Select(jobColumns...).
		From("jobs").
		Where(sq.Eq{"status": string(models.JobStatusPending)}).
		Where(sq.LtOrEq{"completes_at": now}).
		OrderBy("completes_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.queryRetrying(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	jobs := make([]models.TranslationJob, 0, limit)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return jobs, nil
}

func (r *sqlJobRepository) Finalize(ctx context.Context, jobID string, status models.JobStatus, failureReason string, finishedAt time.Time, version int64) error {
	query, args, err := r.builder.
		Update("jobs").
		Set("status", string(status)).
		Set("failure_reason", failureReason).
		Set("finished_at", finishedAt).
		Set("version", version+1).
		Where(sq.Eq{
			"job_id":  jobID,
			"status":  string(models.JobStatusPending),
			"version": version,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.execRetrying(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		// job is missing, already terminal, or was finalized concurrently
		job, getErr := r.Get(ctx, jobID)
		if getErr != nil {
			return getErr
		}
		if job.Status.Terminal() {
			return ErrJobNotPending
		}
		return ErrVersionConflict
	}

	return nil
}

func (r *sqlJobRepository) Close() error {
	return r.db.Close()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (models.TranslationJob, error) {
	var (
		job        models.TranslationJob
		status     string
		durationNS int64
		finishedAt sql.NullTime
	)

	err := row.Scan(
		&job.JobID,
		&status,
		&job.SourceLanguage,
		&job.TargetLanguage,
		&durationNS,
		&job.ErrorRate,
		&job.FailureReason,
		&job.CreatedAt,
		&job.CompletesAt,
		&finishedAt,
		&job.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TranslationJob{}, err
		}
		return models.TranslationJob{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	job.Status = models.JobStatus(status)
	job.Duration = time.Duration(durationNS)
	if finishedAt.Valid {
		t := finishedAt.Time
		job.FinishedAt = &t
	}

	return job, nil
}
