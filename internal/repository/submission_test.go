package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"progress_service/internal/domain"
	"progress_service/internal/repository"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// openTestDB connects to the database named by TEST_DATABASE_DSN, applies
// the migrations and wipes all tables. Tests that need a live database are
// skipped when the variable is not set.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}

	conn, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "postgres", driver)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("migrations failed: %v", err)
	}

	_, err = conn.Exec(`TRUNCATE reviews, submissions, enrollments, group_members, groups, assignments, courses, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return conn
}

func seedCourseWork(t *testing.T, conn *sql.DB) (assignmentID, userID int64) {
	t.Helper()

	require.NoError(t, conn.QueryRow(
		`INSERT INTO users (login, name) VALUES ('ada', 'Ada') RETURNING id`,
	).Scan(&userID))

	var courseID int64
	require.NoError(t, conn.QueryRow(
		`INSERT INTO courses (code, name) VALUES ('CS101', 'Algorithms') RETURNING id`,
	).Scan(&courseID))

	require.NoError(t, conn.QueryRow(
		`INSERT INTO assignments (course_id, name, order_index) VALUES ($1, 'lab1', 1) RETURNING id`,
		courseID,
	).Scan(&assignmentID))

	return assignmentID, userID
}

func TestSubmissionUpsertZeroScoreOverwritesGrade(t *testing.T) {
	conn := openTestDB(t)
	repo := repository.NewSubmissionRepository(conn)
	ctx := context.Background()
	assignmentID, userID := seedCourseWork(t, conn)

	graded := &domain.Submission{
		AssignmentID: assignmentID,
		UserID:       userID,
		Score:        7,
		Status:       domain.SubmissionStatusNone,
	}
	require.NoError(t, repo.Upsert(ctx, graded))
	require.NotZero(t, graded.ID)

	regraded := &domain.Submission{
		AssignmentID: assignmentID,
		UserID:       userID,
		Score:        0,
		Status:       domain.SubmissionStatusNone,
	}
	require.NoError(t, repo.Upsert(ctx, regraded))
	assert.Equal(t, graded.ID, regraded.ID)

	stored, err := repo.FindLast(ctx, domain.SubmissionQuery{AssignmentID: assignmentID, UserID: userID})
	require.NoError(t, err)
	assert.Zero(t, stored.Score)
}

func TestSubmissionUpsertIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	repo := repository.NewSubmissionRepository(conn)
	ctx := context.Background()
	assignmentID, userID := seedCourseWork(t, conn)

	var firstID int64
	for i := 0; i < 2; i++ {
		submission := &domain.Submission{
			AssignmentID: assignmentID,
			UserID:       userID,
			Score:        80,
			Status:       domain.SubmissionStatusNone,
		}
		require.NoError(t, repo.Upsert(ctx, submission))
		if firstID == 0 {
			firstID = submission.ID
		} else {
			assert.Equal(t, firstID, submission.ID)
		}
	}

	var count int
	require.NoError(t, conn.QueryRow(
		`SELECT COUNT(*) FROM submissions WHERE assignment_id = $1 AND user_id = $2`,
		assignmentID, userID,
	).Scan(&count))
	assert.Equal(t, 1, count)
}
