package thumbnails

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgres_Insert_UsesServerAssignedFields(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	q := `(?s)^INSERT\s+INTO\s+thumbnails\s*\(user_id,\s*image_url,\s*topic,\s*context,\s*style\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*created_at$`
	mock.ExpectQuery(q).
		WithArgs("u1", "https://img/1.png", "X", nil, "vibrant").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("t-1", now))

	empty := ""
	rec, err := repo.Insert(context.Background(), models.NewThumbnail{
		UserID: "u1", ImageURL: "https://img/1.png", Topic: "X", Context: &empty, Style: models.StyleVibrant,
	})
	require.NoError(t, err)
	assert.Equal(t, "t-1", rec.ID)
	assert.True(t, rec.CreatedAt.Equal(now))
	assert.Nil(t, rec.Context)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListByUserID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	t3 := time.Now()
	t2 := t3.Add(-time.Minute)
	t1 := t2.Add(-time.Minute)

	q := `(?s)^SELECT\s+id,.*COUNT\(\*\)\s+OVER\s*\(\)\s+FROM\s+thumbnails\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*seq\s+DESC$`
	mock.ExpectQuery(q).WithArgs("u1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "image_url", "topic", "context", "style", "created_at", "count"}).
			AddRow("c", "u1", "https://img/c", "third", "ctx", "playful", t3, 3).
			AddRow("b", "u1", "https://img/b", "second", nil, "minimal", t2, 3).
			AddRow("a", "u1", "https://img/a", "first", nil, "vibrant", t1, 3))

	list, count, err := repo.ListByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})
	require.NotNil(t, list[0].Context)
	assert.Equal(t, "ctx", *list[0].Context)
	assert.Equal(t, models.StylePlayful, list[0].Style)
}

func TestPostgres_ListByUserID_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT`).WithArgs("u1").WillReturnError(errors.New("db down"))

	_, _, err := repo.ListByUserID(context.Background(), "u1")
	require.ErrorContains(t, err, "db down")
}

func TestPostgres_DeleteByUserID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`DELETE FROM thumbnails WHERE user_id = \$1`).WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}
