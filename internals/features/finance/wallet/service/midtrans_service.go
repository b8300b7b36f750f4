package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/finance/wallet/model"
)

var SnapClient snap.Client

var ErrTopUpNotFound = errors.New("top-up tidak ditemukan")

// InitMidtrans harus dipanggil saat bootstrap app.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

// CreateTopUp membuat record top-up pending + snap token Midtrans.
// Saldo belum berubah sampai webhook settlement masuk.
func CreateTopUp(db *gorm.DB, userID uuid.UUID, amount int64, name, email string) (*model.WalletTopUp, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	topup := model.WalletTopUp{
		WalletTopUpUserID:  userID,
		WalletTopUpOrderID: fmt.Sprintf("TOPUP-%d", time.Now().UnixNano()),
		WalletTopUpAmount:  amount,
		WalletTopUpStatus:  model.TopUpStatusPending,
	}
	if err := db.Create(&topup).Error; err != nil {
		return nil, err
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  topup.WalletTopUpOrderID,
			GrossAmt: topup.WalletTopUpAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
	}
	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return nil, err
	}

	topup.WalletTopUpPaymentToken = resp.Token
	if err := db.Save(&topup).Error; err != nil {
		return nil, err
	}
	return &topup, nil
}

// HandleTopUpNotification memproses webhook Midtrans. Settlement
// men-credit wallet user tepat satu kali: transisi status pending →
// completed dipagari CAS supaya notifikasi dobel tidak dobel credit.
func HandleTopUpNotification(db *gorm.DB, orderID, transactionStatus string) error {
	var topup model.WalletTopUp
	if err := db.First(&topup, "wallet_top_up_order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTopUpNotFound
		}
		return err
	}

	switch transactionStatus {
	case "settlement", "capture", "success":
		return db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&model.WalletTopUp{}).
				Where("wallet_top_up_id = ? AND wallet_top_up_status = ?", topup.WalletTopUpID, model.TopUpStatusPending).
				Update("wallet_top_up_status", model.TopUpStatusCompleted)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// sudah diproses notifikasi sebelumnya
				return nil
			}
			return credit(tx, topup.WalletTopUpUserID, topup.WalletTopUpAmount)
		})
	case "deny", "cancel", "expire", "failure":
		return db.Model(&model.WalletTopUp{}).
			Where("wallet_top_up_id = ? AND wallet_top_up_status = ?", topup.WalletTopUpID, model.TopUpStatusPending).
			Update("wallet_top_up_status", model.TopUpStatusFailed).Error
	default:
		// pending dan status lain dibiarkan apa adanya
		return nil
	}
}
