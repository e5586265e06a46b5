package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carecircle/internal/domain"
)

func taskRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "assigned_by", "title", "description", "due_at", "repeat", "status", "created_at",
	})
}

func TestCreateTask(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTasksRepository(db)
	created := time.Now().UTC()
	due := created.Add(2 * time.Hour)

	mock.ExpectQuery(`INSERT INTO tasks (.+) RETURNING id, created_at`).
		WithArgs(int64(2), int64(7), "Meds", "Morning vitamins.", &due, "daily", "open").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, created))

	task := &domain.Task{
		UserID: 2, AssignedBy: 7, Title: "Meds",
		Description: "Morning vitamins.", DueAt: &due,
		Repeat: domain.RepeatDaily, Status: domain.TaskStatusOpen,
	}
	id, err := repo.CreateTask(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, created, task.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTask_NullableColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTasksRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(taskRows().
			AddRow(3, 2, 7, "Meds", "", nil, "", "open", time.Now()))

	task, err := repo.GetTask(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, task.DueAt)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, "", task.Repeat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTask_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTasksRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetTask(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTask_MissingRowIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTasksRepository(db)

	mock.ExpectExec(`UPDATE tasks\s+SET title = \$2`).
		WithArgs(int64(404), "Meds", "", (*time.Time)(nil), "", "open").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateTask(context.Background(), &domain.Task{
		ID: 404, Title: "Meds", Status: domain.TaskStatusOpen,
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActionableTasks(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTasksRepository(db)
	due := time.Now().UTC().Add(-time.Hour)

	mock.ExpectQuery(`SELECT (.+) FROM tasks\s+WHERE user_id = ANY\(\$1\) AND status IN \('open', 'missed'\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(taskRows().
			AddRow(1, 2, 7, "Meds", "Morning vitamins.", due, "", "open", time.Now()).
			AddRow(2, 3, 7, "Walk", "", nil, "", "missed", time.Now()))

	tasks, err := repo.ListActionableTasks(context.Background(), []int64{2, 3})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.NotNil(t, tasks[0].DueAt)
	assert.Equal(t, domain.TaskStatusMissed, tasks[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTasksForUser_StatusFilterPassthrough(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTasksRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM tasks\s+WHERE user_id = \$1 AND \(\$2 = '' OR status = \$2\)`).
		WithArgs(int64(2), "done", 20).
		WillReturnRows(taskRows())

	tasks, err := repo.ListTasksForUser(context.Background(), 2, "done", 20)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}
