package payment

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferenceURI(t *testing.T) {
	ref := Reference{
		PayeeVPA:  "store@upi",
		PayeeName: "Brew Commerce",
		Amount:    649.5,
		Currency:  "INR",
		Note:      "Order payment",
	}

	u, err := url.Parse(ref.URI())
	require.NoError(t, err)
	require.Equal(t, "upi", u.Scheme)
	require.Equal(t, "pay", u.Host)

	q := u.Query()
	require.Equal(t, "store@upi", q.Get("pa"))
	require.Equal(t, "Brew Commerce", q.Get("pn"))
	require.Equal(t, "649.50", q.Get("am"))
	require.Equal(t, "INR", q.Get("cu"))
	require.Equal(t, "Order payment", q.Get("tn"))
}

func TestReferenceURIOmitsEmptyNote(t *testing.T) {
	ref := Reference{PayeeVPA: "store@upi", PayeeName: "Store", Amount: 100, Currency: "INR"}

	u, err := url.Parse(ref.URI())
	require.NoError(t, err)
	require.False(t, u.Query().Has("tn"))
}

func TestReferenceQRPNG(t *testing.T) {
	ref := Reference{PayeeVPA: "store@upi", PayeeName: "Store", Amount: 100, Currency: "INR"}

	png, err := ref.QRPNG(256)
	require.NoError(t, err)
	require.Greater(t, len(png), 8)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
