package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wallet satu per user, dibuat lazy saat credit pertama. Saldo tidak
// pernah negatif (ditegakkan lewat CAS di service, bukan check saja).
type Wallet struct {
	WalletID uuid.UUID `gorm:"column:wallet_id;type:uuid;primaryKey" json:"wallet_id"`

	WalletUserID  uuid.UUID `gorm:"column:wallet_user_id;type:uuid;not null;uniqueIndex" json:"wallet_user_id"`
	WalletBalance int64     `gorm:"column:wallet_balance;not null;default:0;check:wallet_balance >= 0" json:"wallet_balance"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}

func (m *Wallet) BeforeCreate(tx *gorm.DB) error {
	if m.WalletID == uuid.Nil {
		m.WalletID = uuid.New()
	}
	return nil
}

const (
	TxnKindCredit = "credit"
	TxnKindDebit  = "debit"
)

// WalletTransaction append-only, tidak pernah di-update atau dihapus.
type WalletTransaction struct {
	WalletTransactionID uuid.UUID `gorm:"column:wallet_transaction_id;type:uuid;primaryKey" json:"wallet_transaction_id"`

	WalletTransactionWalletID uuid.UUID `gorm:"column:wallet_transaction_wallet_id;type:uuid;not null;index" json:"wallet_transaction_wallet_id"`

	WalletTransactionAmount int64  `gorm:"column:wallet_transaction_amount;not null;check:wallet_transaction_amount > 0" json:"wallet_transaction_amount"`
	WalletTransactionKind   string `gorm:"column:wallet_transaction_kind;type:varchar(10);not null" json:"wallet_transaction_kind"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}

func (m *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if m.WalletTransactionID == uuid.Nil {
		m.WalletTransactionID = uuid.New()
	}
	return nil
}

const (
	TopUpStatusPending   = "pending"
	TopUpStatusCompleted = "completed"
	TopUpStatusFailed    = "failed"
)

// WalletTopUp top-up saldo lewat Midtrans; saldo baru masuk setelah
// webhook settlement.
type WalletTopUp struct {
	WalletTopUpID uuid.UUID `gorm:"column:wallet_top_up_id;type:uuid;primaryKey" json:"wallet_top_up_id"`

	WalletTopUpUserID  uuid.UUID `gorm:"column:wallet_top_up_user_id;type:uuid;not null;index" json:"wallet_top_up_user_id"`
	WalletTopUpOrderID string    `gorm:"column:wallet_top_up_order_id;type:varchar(64);not null;uniqueIndex" json:"wallet_top_up_order_id"`

	WalletTopUpAmount       int64  `gorm:"column:wallet_top_up_amount;not null;check:wallet_top_up_amount > 0" json:"wallet_top_up_amount"`
	WalletTopUpStatus       string `gorm:"column:wallet_top_up_status;type:varchar(15);not null;default:pending" json:"wallet_top_up_status"`
	WalletTopUpPaymentToken string `gorm:"column:wallet_top_up_payment_token;type:text" json:"wallet_top_up_payment_token,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WalletTopUp) TableName() string {
	return "wallet_top_ups"
}

func (m *WalletTopUp) BeforeCreate(tx *gorm.DB) error {
	if m.WalletTopUpID == uuid.Nil {
		m.WalletTopUpID = uuid.New()
	}
	return nil
}
