package service

import (
	"testing"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/finance/wallet/model"
)

func seedPendingTopUp(t *testing.T, db *gorm.DB, amount int64) (*model.WalletTopUp, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	topup := model.WalletTopUp{
		WalletTopUpUserID:  userID,
		WalletTopUpOrderID: "TOPUP-" + uuid.NewString(),
		WalletTopUpAmount:  amount,
		WalletTopUpStatus:  model.TopUpStatusPending,
	}
	require.NoError(t, db.Create(&topup).Error)
	return &topup, userID
}

func TestTopUpSettlementCreditsWallet(t *testing.T) {
	db := newTestDB(t)
	topup, userID := seedPendingTopUp(t, db, 250)

	require.NoError(t, HandleTopUpNotification(db, topup.WalletTopUpOrderID, "settlement"))

	assert.Equal(t, int64(250), balanceOf(t, db, userID))

	var updated model.WalletTopUp
	require.NoError(t, db.First(&updated, "wallet_top_up_id = ?", topup.WalletTopUpID).Error)
	assert.Equal(t, model.TopUpStatusCompleted, updated.WalletTopUpStatus)
}

func TestTopUpDuplicateNotificationCreditsOnce(t *testing.T) {
	db := newTestDB(t)
	topup, userID := seedPendingTopUp(t, db, 100)

	require.NoError(t, HandleTopUpNotification(db, topup.WalletTopUpOrderID, "settlement"))
	require.NoError(t, HandleTopUpNotification(db, topup.WalletTopUpOrderID, "settlement"))

	assert.Equal(t, int64(100), balanceOf(t, db, userID))
	txns, err := History(db, userID)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestTopUpFailureDoesNotCredit(t *testing.T) {
	db := newTestDB(t)
	topup, userID := seedPendingTopUp(t, db, 100)

	require.NoError(t, HandleTopUpNotification(db, topup.WalletTopUpOrderID, "expire"))

	_, err := Balance(db, userID)
	assert.ErrorIs(t, err, ErrWalletNotFound)

	var updated model.WalletTopUp
	require.NoError(t, db.First(&updated, "wallet_top_up_id = ?", topup.WalletTopUpID).Error)
	assert.Equal(t, model.TopUpStatusFailed, updated.WalletTopUpStatus)
}

func TestTopUpUnknownOrder(t *testing.T) {
	db := newTestDB(t)

	err := HandleTopUpNotification(db, "TOPUP-unknown", "settlement")
	assert.ErrorIs(t, err, ErrTopUpNotFound)
}

func TestInitMidtransEnvironment(t *testing.T) {
	InitMidtrans("SB-Mid-server-key", false)
	assert.Equal(t, midtrans.Sandbox, SnapClient.Env)

	InitMidtrans("Mid-server-key", true)
	assert.Equal(t, midtrans.Production, SnapClient.Env)

	InitMidtrans("SB-Mid-server-key", false)
	assert.Equal(t, midtrans.Sandbox, SnapClient.Env)
}
