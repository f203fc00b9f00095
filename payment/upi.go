package payment

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

// Reference is the static payment reference shown during the manual QR/UPI
// flow: a UPI URI encoding payee, amount, currency, and a fixed note.
type Reference struct {
	PayeeVPA  string
	PayeeName string
	Amount    float64
	Currency  string
	Note      string
}

// URI renders the reference as a upi://pay link.
func (r Reference) URI() string {
	q := url.Values{}
	q.Set("pa", r.PayeeVPA)
	q.Set("pn", r.PayeeName)
	q.Set("am", fmt.Sprintf("%.2f", r.Amount))
	q.Set("cu", r.Currency)
	if r.Note != "" {
		q.Set("tn", r.Note)
	}
	u := url.URL{Scheme: "upi", Host: "pay", RawQuery: q.Encode()}
	return u.String()
}

// QRPNG renders the payment URI as a QR code PNG of the given pixel size.
func (r Reference) QRPNG(size int) ([]byte, error) {
	png, err := qrcode.Encode(r.URI(), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode payment qr: %w", err)
	}
	return png, nil
}
