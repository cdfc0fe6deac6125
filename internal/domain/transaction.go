package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type TxType int

const (
	TxEmpty TxType = iota
	Deposit
	Transfer
	Withdrawal
)

type TxStatus int

const (
	StatusEmpty TxStatus = iota
	Success
	Failure
	Pending
)

// Wire code used for any value outside the known set.
const OtherCode byte = 3

var (
	ErrEmptyType   = errors.New("transaction type is not set")
	ErrEmptyStatus = errors.New("transaction status is not set")
)

func (t TxType) String() string {
	switch t {
	case Deposit:
		return "DEPOSIT"
	case Transfer:
		return "TRANSFER"
	case Withdrawal:
		return "WITHDRAWAL"
	default:
		return "EMPTY"
	}
}

// Code returns the single-byte binary representation.
func (t TxType) Code() byte {
	switch t {
	case Deposit:
		return 0
	case Transfer:
		return 1
	case Withdrawal:
		return 2
	default:
		return OtherCode
	}
}

// ParseTxType accepts DEPOSIT, TRANSFER or WITHDRAWAL in any case.
func ParseTxType(s string) (TxType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEPOSIT":
		return Deposit, nil
	case "TRANSFER":
		return Transfer, nil
	case "WITHDRAWAL":
		return Withdrawal, nil
	}
	return TxEmpty, fmt.Errorf("unknown transaction type %q", s)
}

func TxTypeFromCode(c byte) (TxType, error) {
	switch c {
	case 0:
		return Deposit, nil
	case 1:
		return Transfer, nil
	case 2:
		return Withdrawal, nil
	}
	return TxEmpty, fmt.Errorf("unknown transaction type code %d", c)
}

func (s TxStatus) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case Pending:
		return "PENDING"
	default:
		return "EMPTY"
	}
}

func (s TxStatus) Code() byte {
	switch s {
	case Success:
		return 0
	case Failure:
		return 1
	case Pending:
		return 2
	default:
		return OtherCode
	}
}

// ParseTxStatus accepts SUCCESS, FAILURE or PENDING in any case.
func ParseTxStatus(s string) (TxStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SUCCESS":
		return Success, nil
	case "FAILURE":
		return Failure, nil
	case "PENDING":
		return Pending, nil
	}
	return StatusEmpty, fmt.Errorf("unknown transaction status %q", s)
}

func TxStatusFromCode(c byte) (TxStatus, error) {
	switch c {
	case 0:
		return Success, nil
	case 1:
		return Failure, nil
	case 2:
		return Pending, nil
	}
	return StatusEmpty, fmt.Errorf("unknown transaction status code %d", c)
}

// Transaction is a single financial event. All fields are comparable, so two
// records are equal under == exactly when every field matches, and a
// Transaction can be used directly as a map key.
type Transaction struct {
	ID          uint64
	Type        TxType
	FromUserID  uint64 // 0 for deposits
	ToUserID    uint64 // 0 for withdrawals
	Amount      uint64
	Timestamp   uint64 // Unix epoch milliseconds
	Status      TxStatus
	Description string
}

// New returns an unpopulated record with the EMPTY type and status.
func New() Transaction {
	return Transaction{Type: TxEmpty, Status: StatusEmpty}
}

// Validate reports whether the record is fully populated.
func (t Transaction) Validate() error {
	if t.Type == TxEmpty {
		return ErrEmptyType
	}
	if t.Status == StatusEmpty {
		return ErrEmptyStatus
	}
	return nil
}

func (t Transaction) Time() time.Time {
	return time.UnixMilli(int64(t.Timestamp)).UTC()
}
