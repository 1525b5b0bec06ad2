package audit

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ink-agenda/internal/dbtest"
)

func TestRecord_WritesRow(t *testing.T) {
	db, mock := dbtest.New(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "audit_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	New(db).Record(context.Background(), Event{
		UserID:   Ptr(3),
		Action:   "client_created",
		Entity:   "client",
		EntityID: Ptr(9),
		Metadata: map[string]string{"nome": "Maria"},
	})
}

func TestRecord_SwallowsErrors(t *testing.T) {
	db, mock := dbtest.New(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "audit_logs"`)).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	assert.NotPanics(t, func() {
		New(db).Record(context.Background(), Event{Action: "x"})
	})
}

func TestList_Paginates(t *testing.T) {
	db, mock := dbtest.New(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "audit_logs" WHERE user_id = $1 AND action = $2`)).
		WithArgs(3, "session_deleted").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "audit_logs" WHERE user_id = $1 AND action = $2 ORDER BY created_at DESC LIMIT`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action"}).AddRow(6, 3, "session_deleted"))

	out, total, err := New(db).List(context.Background(), Query{UserID: 3, Action: "session_deleted", Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, out, 1)
}
