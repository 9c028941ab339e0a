package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"sahelbus/internal/domain/models"
	"sahelbus/internal/ledger"
	"sahelbus/internal/utils"
)

// ReceiptService renders booking receipts as PDFs and verifies them
// by their receipt code (printed on the document and embedded in the
// verification URL shown to agents at boarding).
type ReceiptService struct {
	Ledger    ledger.Store
	Trips     TripStore
	Routes    RouteStore
	Buses     BusStore
	RequestID string
}

func (s ReceiptService) Generate(reservationID int64) ([]byte, string, error) {
	res, err := s.Ledger.GetByID(reservationID)
	if err != nil {
		return nil, "", err
	}
	trip, err := s.Trips.GetByID(res.TripID)
	if err != nil {
		return nil, "", err
	}
	route, err := s.Routes.GetByID(trip.RouteID)
	if err != nil {
		return nil, "", err
	}
	bus, err := s.Buses.GetByID(trip.BusID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "receipt", "generate", fmt.Sprintf("reservation_id=%d", res.ID))
	return buildReceiptPDF(res, trip, route, bus)
}

// Verify resolves a receipt code back to its reservation. Cancelled
// reservations resolve too; the caller surfaces the status.
func (s ReceiptService) Verify(code string) (models.Reservation, error) {
	return s.Ledger.GetByReceiptCode(strings.TrimSpace(code))
}

func buildReceiptPDF(res models.Reservation, trip models.Trip, route models.Route, bus models.Bus) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reçu de réservation", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("REÇU DE RÉSERVATION"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passager        : %s", res.PassengerName),
		fmt.Sprintf("Téléphone       : %s", orDash(res.PassengerPhone)),
		fmt.Sprintf("Trajet          : %s -> %s", route.From, route.To),
		fmt.Sprintf("Départ          : %s", utils.FormatDateTime(trip.DepartureTime)),
		fmt.Sprintf("Véhicule        : %s", bus.Name),
		fmt.Sprintf("Sièges          : %s", strings.Join(res.Seats, ", ")),
		fmt.Sprintf("Montant         : %s", utils.FormatMRU(res.TotalPrice)),
		fmt.Sprintf("Statut          : %s", res.Status),
		fmt.Sprintf("Réservation     : #%d", res.ID),
		fmt.Sprintf("Code de vérification : %s", res.ReceiptCode),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr("Présentez ce reçu à l'embarquement. Le code de vérification permet de contrôler son authenticité."), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RECU_%d.pdf", res.ID)
	return buf.Bytes(), filename, nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
