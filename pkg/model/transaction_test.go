package model

import "testing"

func TestNewTransaction(t *testing.T) {
	tx := NewTransaction("tx-1", "001010123456789", 1, 1700000000)

	if tx.State != TransactionStarted {
		t.Errorf("State = %q, want %q", tx.State, TransactionStarted)
	}
	if tx.ID != "tx-1" || tx.IMSI != "001010123456789" || tx.ServiceType != 1 || tx.CreatedAt != 1700000000 {
		t.Errorf("NewTransaction() = %+v", tx)
	}
	if tx.CalledNumber != "" || tx.Cause != 0 || tx.TI != 0 {
		t.Errorf("NewTransaction() should leave call fields empty: %+v", tx)
	}
}
