package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionPending   TransactionStatus = "pending"
)

type TransactionMethod string

const (
	MethodCash     TransactionMethod = "cash"
	MethodCard     TransactionMethod = "card"
	MethodTransfer TransactionMethod = "transfer"
	MethodGateway  TransactionMethod = "gateway"
)

// Transaction is one immutable payment movement on a booking's ledger.
// Entries are only ever appended; failed payments stay on record.
type Transaction struct {
	ID        string            `json:"id"`
	Amount    float64           `json:"amount"`
	Method    TransactionMethod `json:"method"`
	Status    TransactionStatus `json:"status"`
	Note      string            `json:"note"`
	CreatedAt time.Time         `json:"created_at"`
}

// TransactionList is stored as a JSONB column on the booking row so the
// ledger is read and written atomically with the booking itself.
type TransactionList []Transaction

func (l TransactionList) Value() (driver.Value, error) {
	if l == nil {
		l = TransactionList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *TransactionList) Scan(value any) error {
	if value == nil {
		*l = TransactionList{}
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("transaction list: unsupported column type")
	}

	return json.Unmarshal(b, l)
}
