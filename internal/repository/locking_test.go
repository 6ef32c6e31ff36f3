package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder captures every statement GORM builds so tests can assert on
// the generated SQL without a database.
type sqlRecorder struct {
	statements []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface          { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})      {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})      {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

func (r *sqlRecorder) last(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, r.statements)
	return r.statements[len(r.statements)-1]
}

// newDryRunDB opens the mysql dialector without connecting: statements are
// built and recorded, never executed.
func newDryRunDB(t *testing.T, rec *sqlRecorder) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:password@tcp(localhost:3306)/banque?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	require.NoError(t, err)
	return db
}

// Every ForUpdate finder must emit a FOR UPDATE clause: the funds check and
// the balance write rely on the row staying locked for the rest of the
// transaction.
func TestForUpdateFindersEmitRowLock(t *testing.T) {
	rec := &sqlRecorder{}
	db := newDryRunDB(t, rec)
	accounts := NewAccountRepository(db)
	transactions := NewTransactionRepository(db)
	ctx := context.Background()

	_, _ = accounts.FindByIDForUpdate(ctx, 1)
	assert.Contains(t, rec.last(t), "FOR UPDATE")

	_, _ = accounts.FindByNumberForUpdate(ctx, "FR0000000000000001")
	assert.Contains(t, rec.last(t), "FOR UPDATE")

	_, _ = accounts.FindByNumberAndUserForUpdate(ctx, "FR0000000000000001", 1)
	assert.Contains(t, rec.last(t), "FOR UPDATE")

	_, _ = transactions.FindByIDForUpdate(ctx, 1)
	assert.Contains(t, rec.last(t), "FOR UPDATE")
}

// The plain lookups stay lock-free.
func TestPlainFindersStayUnlocked(t *testing.T) {
	rec := &sqlRecorder{}
	db := newDryRunDB(t, rec)
	accounts := NewAccountRepository(db)
	transactions := NewTransactionRepository(db)
	ctx := context.Background()

	_, _ = accounts.FindByID(ctx, 1)
	assert.NotContains(t, rec.last(t), "FOR UPDATE")

	_, _ = transactions.FindByID(ctx, 1)
	assert.NotContains(t, rec.last(t), "FOR UPDATE")
}
