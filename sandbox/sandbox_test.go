package sandbox_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solmock/shadow-oracle/ledger"
	"github.com/solmock/shadow-oracle/sandbox"
)

func TestManualClock(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clock := sandbox.NewManualClock()
		if got := clock.Now(); !got.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected default time: %v", got)
		}
		if clock.Slot() != 1 {
			t.Errorf("expected default slot 1, got %d", clock.Slot())
		}
	})

	t.Run("Advance", func(t *testing.T) {
		clock := sandbox.NewManualClock()
		before := clock.Now()

		clock.Advance(5 * time.Minute)
		if got := clock.Now().Sub(before); got != 5*time.Minute {
			t.Errorf("expected 5m advance, got %v", got)
		}

		clock.AdvanceSlot(10)
		if clock.Slot() != 11 {
			t.Errorf("expected slot 11, got %d", clock.Slot())
		}
	})

	t.Run("Snapshot", func(t *testing.T) {
		at := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
		clock := sandbox.NewManualClockAt(at, 42)

		snap := clock.Snapshot()
		if snap.Slot != 42 {
			t.Errorf("expected slot 42, got %d", snap.Slot)
		}
		if snap.UnixTimestamp != at.Unix() {
			t.Errorf("expected timestamp %d, got %d", at.Unix(), snap.UnixTimestamp)
		}
	})
}

func TestSandboxSetGet(t *testing.T) {
	sb := sandbox.New(sandbox.WithLogger(zap.NewNop()))
	addr := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	data := []byte("account payload")
	err := sb.SetAccount(addr, ledger.Account{
		Lamports: 1_000_000_000,
		Data:     data,
		Owner:    owner,
	})
	if err != nil {
		t.Fatalf("SetAccount failed: %v", err)
	}

	// The sandbox keeps a private copy.
	data[0] = 'X'

	acct, ok := sb.GetAccount(addr)
	if !ok {
		t.Fatal("account not found after write")
	}
	if string(acct.Data) != "account payload" {
		t.Errorf("stored data was aliased: %q", acct.Data)
	}
	if acct.Owner != owner {
		t.Error("owner mismatch")
	}
	if acct.Lamports != 1_000_000_000 {
		t.Errorf("lamports mismatch: %d", acct.Lamports)
	}
}

func TestSandboxGetMissing(t *testing.T) {
	sb := sandbox.New()
	if _, ok := sb.GetAccount(solana.NewWallet().PublicKey()); ok {
		t.Error("expected no account at a fresh address")
	}
}

func TestSandboxOverwriteReplacesFullBuffer(t *testing.T) {
	sb := sandbox.New()
	addr := solana.NewWallet().PublicKey()

	long := bytes.Repeat([]byte{0xAA}, 64)
	short := []byte{0x01, 0x02}

	sb.SetAccount(addr, ledger.Account{Data: long})
	sb.SetAccount(addr, ledger.Account{Data: short})

	acct, _ := sb.GetAccount(addr)
	if len(acct.Data) != 2 {
		t.Errorf("overwrite must replace the full buffer, got %d bytes", len(acct.Data))
	}
}

func TestSandboxClockWiring(t *testing.T) {
	clock := sandbox.NewManualClockAt(time.Date(2022, 3, 4, 5, 6, 7, 0, time.UTC), 99)
	sb := sandbox.New(sandbox.WithClock(clock))

	snap := sb.Clock()
	if snap.Slot != 99 {
		t.Errorf("expected slot 99, got %d", snap.Slot)
	}

	sb.ManualClock().AdvanceSlot(1)
	if sb.Clock().Slot != 100 {
		t.Errorf("expected slot 100 after advance, got %d", sb.Clock().Slot)
	}
}

func TestSandboxPersistence(t *testing.T) {
	dir := t.TempDir()
	addr := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	sb, err := sandbox.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	payload := bytes.Repeat([]byte{0x42}, 960) // compressible, above the raw threshold
	if err := sb.SetAccount(addr, ledger.Account{Lamports: 7, Data: payload, Owner: owner}); err != nil {
		t.Fatalf("SetAccount failed: %v", err)
	}
	if err := sb.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// A fresh session sees the persisted account.
	sb2, err := sandbox.Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer sb2.Close()

	acct, ok := sb2.GetAccount(addr)
	if !ok {
		t.Fatal("persisted account not found after reopen")
	}
	if !bytes.Equal(acct.Data, payload) {
		t.Error("persisted data doesn't round-trip")
	}
	if acct.Owner != owner || acct.Lamports != 7 {
		t.Error("persisted metadata doesn't round-trip")
	}
}
