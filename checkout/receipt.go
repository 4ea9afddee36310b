package checkout

import (
	"bytes"
	"fmt"

	"meraki/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// ReceiptPDF renders an order receipt for a completed purchase, with a QR
// code carrying the purchase id for later reference.
func ReceiptPDF(purchase models.Purchase) ([]byte, error) {
	qrPNG, err := qrcode.Encode("order:"+purchase.ID, qrcode.Medium, 128)
	if err != nil {
		return nil, fmt.Errorf("receipt qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 15, "Order Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Order header
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"Order ID: %s\nPlaced: %s",
		purchase.ID,
		purchase.Timestamp.Format("02 Jan 2006 15:04"),
	), "", "L", false)
	pdf.Ln(4)

	// Line items
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(110, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, it := range purchase.Items {
		price := it.Product.Price
		if price <= 0 {
			price = FallbackUnitPrice
		}
		pdf.CellFormat(110, 8, it.Product.Title, "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", it.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, "Rs. "+FormatINR(int64(it.Quantity)*price), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(130, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Rs. "+FormatINR(purchase.Total), "T", 1, "R", false, 0, "")

	// QR code
	imgOpts := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 230, 30, 30, false, imgOpts, 0, "")

	// Footer
	pdf.SetY(-25)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 10, "Payment and shipping are arranged directly with the supplier over WhatsApp.", "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
