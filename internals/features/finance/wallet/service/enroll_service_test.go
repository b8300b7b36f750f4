package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/finance/wallet/model"
	courseModel "kursusku_backend/internals/features/lms/courses/model"
)

func seedEnrollFixture(t *testing.T, db *gorm.DB, offerPrice int64) (studentID, adminID, courseID uuid.UUID) {
	t.Helper()
	studentID = uuid.New()
	adminID = uuid.New()
	courseID = uuid.New()

	require.NoError(t, db.Create(&userStub{UserID: studentID, UserRole: constants.RoleStudent}).Error)
	require.NoError(t, db.Create(&userStub{UserID: adminID, UserRole: constants.RoleAdmin}).Error)
	require.NoError(t, db.Create(&courseStub{
		CourseID:           courseID,
		CourseInstructorID: uuid.New(),
		CourseOfferPrice:   offerPrice,
	}).Error)
	return studentID, adminID, courseID
}

func TestEnrollDebitsStudentCreditsAdminAndRecordsMembership(t *testing.T) {
	db := newTestDB(t)
	studentID, adminID, courseID := seedEnrollFixture(t, db, 300)
	require.NoError(t, Credit(db, studentID, 500))

	result, err := Enroll(db, studentID, courseID)
	require.NoError(t, err)

	assert.Equal(t, int64(300), result.OfferPrice)
	assert.Equal(t, int64(200), result.NewBalance)
	assert.Equal(t, int64(200), balanceOf(t, db, studentID))
	assert.Equal(t, int64(300), balanceOf(t, db, adminID))

	// satu debit 300 di student, satu credit 300 di admin
	studentTxns, err := History(db, studentID)
	require.NoError(t, err)
	require.Len(t, studentTxns, 2)
	assert.Equal(t, model.TxnKindDebit, studentTxns[1].WalletTransactionKind)
	assert.Equal(t, int64(300), studentTxns[1].WalletTransactionAmount)

	adminTxns, err := History(db, adminID)
	require.NoError(t, err)
	require.Len(t, adminTxns, 1)
	assert.Equal(t, model.TxnKindCredit, adminTxns[0].WalletTransactionKind)

	enrolled, err := courseModel.IsEnrolled(db, studentID, courseID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestEnrollRejectsSecondAttempt(t *testing.T) {
	db := newTestDB(t)
	studentID, _, courseID := seedEnrollFixture(t, db, 100)
	require.NoError(t, Credit(db, studentID, 1000))

	_, err := Enroll(db, studentID, courseID)
	require.NoError(t, err)

	_, err = Enroll(db, studentID, courseID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	// hanya satu kali terpotong
	assert.Equal(t, int64(900), balanceOf(t, db, studentID))
}

func TestEnrollInsufficientFundsLeavesStateUntouched(t *testing.T) {
	db := newTestDB(t)
	studentID, adminID, courseID := seedEnrollFixture(t, db, 300)
	require.NoError(t, Credit(db, studentID, 299))

	_, err := Enroll(db, studentID, courseID)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Equal(t, int64(299), balanceOf(t, db, studentID))
	_, err = Balance(db, adminID)
	assert.ErrorIs(t, err, ErrWalletNotFound)

	enrolled, err := courseModel.IsEnrolled(db, studentID, courseID)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestEnrollCourseNotFound(t *testing.T) {
	db := newTestDB(t)
	studentID := uuid.New()
	require.NoError(t, db.Create(&userStub{UserID: studentID, UserRole: constants.RoleStudent}).Error)

	_, err := Enroll(db, studentID, uuid.New())
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestEnrollFreeCourseSkipsLedger(t *testing.T) {
	db := newTestDB(t)
	studentID, adminID, courseID := seedEnrollFixture(t, db, 0)

	result, err := Enroll(db, studentID, courseID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.OfferPrice)

	_, err = Balance(db, studentID)
	assert.ErrorIs(t, err, ErrWalletNotFound)
	_, err = Balance(db, adminID)
	assert.ErrorIs(t, err, ErrWalletNotFound)

	enrolled, err := courseModel.IsEnrolled(db, studentID, courseID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}
