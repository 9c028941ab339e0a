package services

import (
	"testing"

	"sahelbus/internal/domain/models"
	"sahelbus/internal/ledger"
	"sahelbus/internal/repositories"
)

func TestBPayCallbackSettlesAndIsIdempotent(t *testing.T) {
	store := ledger.NewMemoryStore()
	payments := repositories.NewMemoryPayments()

	res, err := store.Create(ledger.Draft{
		TripID:         1,
		Seats:          []string{"1A"},
		PassengerName:  "Aminata Sow",
		PassengerEmail: "aminata@example.mr",
		Status:         models.ReservationPending,
		TotalPrice:     2500,
		ReceiptCode:    "code-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	svc := PaymentService{Ledger: store, Payments: payments}

	settled, err := svc.BPayCallback(res.ID, "BP-1001")
	if err != nil {
		t.Fatalf("first callback: %v", err)
	}
	if settled.Status != models.ReservationPaid {
		t.Fatalf("status: got %s want paid", settled.Status)
	}

	// Redelivery acknowledges without another transition or row.
	replayed, err := svc.BPayCallback(res.ID, "BP-1001")
	if err != nil {
		t.Fatalf("replayed callback: %v", err)
	}
	if replayed.Status != models.ReservationPaid {
		t.Fatalf("replay status: got %s", replayed.Status)
	}

	rows, err := payments.ListByReservation(res.ID)
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("payment rows: got %d want 1", len(rows))
	}
	if rows[0].Method != "bpay" || rows[0].Amount != 2500 || rows[0].TransactionID != "BP-1001" {
		t.Fatalf("payment row: %+v", rows[0])
	}
}

func TestBPayCallbackRefusedForCancelledReservation(t *testing.T) {
	store := ledger.NewMemoryStore()

	res, err := store.Create(ledger.Draft{
		TripID:         1,
		Seats:          []string{"1A"},
		PassengerName:  "Oumar Ba",
		PassengerEmail: "oumar@example.mr",
		ReceiptCode:    "code-2",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.UpdateStatus(res.ID, models.ReservationCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	svc := PaymentService{Ledger: store, Payments: repositories.NewMemoryPayments()}
	if _, err := svc.BPayCallback(res.ID, "BP-1002"); err == nil {
		t.Fatalf("expected error paying a cancelled reservation")
	}
}
