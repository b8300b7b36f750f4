package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kursusku_backend/internals/features/finance/wallet/model"
)

var (
	ErrInvalidAmount     = errors.New("jumlah harus lebih dari nol")
	ErrWalletNotFound    = errors.New("wallet tidak ditemukan")
	ErrInsufficientFunds = errors.New("saldo tidak mencukupi")
)

// credit berjalan di dalam transaksi milik caller; wallet dibuat lazy
// pada credit pertama (upsert no-op lalu increment atomik).
func credit(tx *gorm.DB, userID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	wallet := model.Wallet{WalletUserID: userID}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_user_id"}},
		DoNothing: true,
	}).Create(&wallet).Error; err != nil {
		return err
	}
	// ID hasil upsert tidak reliable saat DoNothing, baca ulang
	if err := tx.First(&wallet, "wallet_user_id = ?", userID).Error; err != nil {
		return err
	}

	if err := tx.Model(&model.Wallet{}).
		Where("wallet_id = ?", wallet.WalletID).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount)).Error; err != nil {
		return err
	}

	txn := model.WalletTransaction{
		WalletTransactionWalletID: wallet.WalletID,
		WalletTransactionAmount:   amount,
		WalletTransactionKind:     model.TxnKindCredit,
	}
	return tx.Create(&txn).Error
}

// debit berjalan di dalam transaksi milik caller. Compare-and-swap:
// update hanya kena bila saldo masih cukup, jadi dua debit concurrent
// tidak bisa sama-sama lolos.
func debit(tx *gorm.DB, userID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	var wallet model.Wallet
	if err := tx.First(&wallet, "wallet_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInsufficientFunds
		}
		return err
	}

	res := tx.Model(&model.Wallet{}).
		Where("wallet_id = ? AND wallet_balance >= ?", wallet.WalletID, amount).
		Update("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientFunds
	}

	txn := model.WalletTransaction{
		WalletTransactionWalletID: wallet.WalletID,
		WalletTransactionAmount:   amount,
		WalletTransactionKind:     model.TxnKindDebit,
	}
	return tx.Create(&txn).Error
}

// Credit menambah saldo user dalam satu transaksi tersendiri.
func Credit(db *gorm.DB, userID uuid.UUID, amount int64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return credit(tx, userID, amount)
	})
}

// Debit mengurangi saldo user; ErrInsufficientFunds bila saldo kurang.
func Debit(db *gorm.DB, userID uuid.UUID, amount int64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return debit(tx, userID, amount)
	})
}

// Balance — wallet yang belum pernah dibuat adalah state tersendiri,
// bukan saldo nol.
func Balance(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var wallet model.Wallet
	if err := db.First(&wallet, "wallet_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrWalletNotFound
		}
		return 0, err
	}
	return wallet.WalletBalance, nil
}

func History(db *gorm.DB, userID uuid.UUID) ([]model.WalletTransaction, error) {
	var wallet model.Wallet
	if err := db.First(&wallet, "wallet_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	var txns []model.WalletTransaction
	if err := db.Where("wallet_transaction_wallet_id = ?", wallet.WalletID).
		Order("created_at ASC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}
