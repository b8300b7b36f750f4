package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kursusku_backend/internals/features/finance/wallet/model"
	courseModel "kursusku_backend/internals/features/lms/courses/model"
)

// courseStub — kolom courses secukupnya; model Course asli memakai
// text[] (pq.StringArray) yang tidak bisa dimigrasi sqlite.
type courseStub struct {
	CourseID           uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey"`
	CourseInstructorID uuid.UUID `gorm:"column:course_instructor_id;type:uuid"`
	CourseOfferPrice   int64     `gorm:"column:course_offer_price"`
	DeletedAt          gorm.DeletedAt
}

func (courseStub) TableName() string { return "courses" }

type userStub struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	UserRole  string    `gorm:"column:user_role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (userStub) TableName() string { return "users" }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Wallet{},
		&model.WalletTransaction{},
		&model.WalletTopUp{},
		&courseModel.CourseEnrollment{},
		&courseStub{},
		&userStub{},
	))
	return db
}

func balanceOf(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	b, err := Balance(db, userID)
	require.NoError(t, err)
	return b
}

func TestCreditCreatesWalletLazily(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()

	_, err := Balance(db, userID)
	assert.ErrorIs(t, err, ErrWalletNotFound)

	require.NoError(t, Credit(db, userID, 100))
	assert.Equal(t, int64(100), balanceOf(t, db, userID))
}

func TestLedgerBalanceMatchesTransactionSum(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()

	require.NoError(t, Credit(db, userID, 500))
	require.NoError(t, Debit(db, userID, 120))
	require.NoError(t, Credit(db, userID, 30))
	require.NoError(t, Debit(db, userID, 10))

	txns, err := History(db, userID)
	require.NoError(t, err)
	require.Len(t, txns, 4)

	var sum int64
	for _, txn := range txns {
		switch txn.WalletTransactionKind {
		case model.TxnKindCredit:
			sum += txn.WalletTransactionAmount
		case model.TxnKindDebit:
			sum -= txn.WalletTransactionAmount
		default:
			t.Fatalf("kind tidak dikenal: %s", txn.WalletTransactionKind)
		}
	}
	assert.Equal(t, sum, balanceOf(t, db, userID))
	assert.Equal(t, int64(400), sum)
}

func TestDebitInsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()

	require.NoError(t, Credit(db, userID, 50))

	err := Debit(db, userID, 51)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// saldo & history tidak berubah
	assert.Equal(t, int64(50), balanceOf(t, db, userID))
	txns, err := History(db, userID)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestDebitWalletNeverCreated(t *testing.T) {
	db := newTestDB(t)

	err := Debit(db, uuid.New(), 10)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)

	assert.ErrorIs(t, Credit(db, uuid.New(), 0), ErrInvalidAmount)
	assert.ErrorIs(t, Credit(db, uuid.New(), -5), ErrInvalidAmount)
	assert.ErrorIs(t, Debit(db, uuid.New(), 0), ErrInvalidAmount)
}
