package engine

import (
	"errors"
	"testing"
)

// stockProduce credits produce by running a full structure cycle is overkill
// for exchange tests, so balances are seeded through Restore.
func stockProduce(e *Engine, owner string, amount int64) {
	e.Restore(Snapshot{
		Accounts: []AccountState{{Owner: owner, Balance: Resources{Produce: amount}}},
	})
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		have    int64
		amount  int64
		wantOut int64
		wantErr error
	}{
		{name: "even amount", have: 10, amount: 4, wantOut: 3},
		{name: "odd amount floors", have: 10, amount: 5, wantOut: 3},
		{name: "whole balance", have: 10, amount: 10, wantOut: 6},
		{name: "over balance", have: 3, amount: 4, wantErr: ErrInsufficientBalance},
		{name: "zero amount", have: 3, amount: 0, wantErr: ErrInvalidAmount},
		{name: "negative amount", have: 3, amount: -2, wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			stockProduce(e, "alice", tt.have)

			out, err := e.Convert("alice", tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Convert() error = %v, want %v", err, tt.wantErr)
			}
			bal := e.Resources("alice")
			if tt.wantErr != nil {
				if bal.Produce != tt.have || bal.Catalyst != 0 {
					t.Errorf("failed Convert() mutated balance: %+v", bal)
				}
				return
			}
			if out != tt.wantOut {
				t.Errorf("Convert() = %d, want %d", out, tt.wantOut)
			}
			if bal.Produce != tt.have-tt.amount || bal.Catalyst != tt.wantOut {
				t.Errorf("balance = %+v, want produce %d catalyst %d",
					bal, tt.have-tt.amount, tt.wantOut)
			}
		})
	}
}

func TestConvert_CreatesOnlyDocumentedBonus(t *testing.T) {
	e, _ := newTestEngine(t)
	stockProduce(e, "alice", 100)

	before := e.Resources("alice")
	out, err := e.Convert("alice", 8)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	after := e.Resources("alice")

	burned := before.Produce - after.Produce
	// The only value created beyond the 2:1 ratio is the flat bonus of 1.
	if created := out - burned/2; created != 1 {
		t.Errorf("conversion created %d beyond ratio, want exactly 1", created)
	}
	if after.Essence != before.Essence {
		t.Errorf("Convert() touched essence: %d -> %d", before.Essence, after.Essence)
	}
}

func TestBuyCatalyst(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		payment int64
		wantErr error
	}{
		{name: "exact payment", amount: 3, payment: 30_000},
		{name: "underpaid", amount: 3, payment: 29_999, wantErr: ErrInsufficientPayment},
		{name: "overpaid", amount: 3, payment: 30_001, wantErr: ErrInsufficientPayment},
		{name: "zero amount", amount: 0, payment: 0, wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			err := e.BuyCatalyst("alice", tt.amount, tt.payment)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("BuyCatalyst() error = %v, want %v", err, tt.wantErr)
			}
			want := int64(0)
			if tt.wantErr == nil {
				want = tt.amount
			}
			if got := e.Resources("alice").Catalyst; got != want {
				t.Errorf("Catalyst = %d, want %d", got, want)
			}
		})
	}
}

func TestSellEssence(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Restore(Snapshot{
		Accounts: []AccountState{{Owner: "alice", Balance: Resources{Essence: 10}}},
	})

	if _, err := e.SellEssence("alice", 11); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("oversell error = %v, want ErrInsufficientBalance", err)
	}

	payout, err := e.SellEssence("alice", 4)
	if err != nil {
		t.Fatalf("SellEssence() error = %v", err)
	}
	if payout != 20_000 {
		t.Errorf("payout = %d, want 20000", payout)
	}
	if got := e.Resources("alice").Essence; got != 6 {
		t.Errorf("Essence = %d, want 6", got)
	}
	if got := e.Proceeds("alice"); got != payout {
		t.Errorf("Proceeds = %d, want %d", got, payout)
	}
}
