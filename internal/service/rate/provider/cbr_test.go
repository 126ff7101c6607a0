package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cbrXML = `<?xml version="1.0" encoding="windows-1251"?>
<ValCurs Date="22.08.2026" name="Foreign Currency Market">
	<Valute ID="R01235">
		<NumCode>840</NumCode>
		<CharCode>USD</CharCode>
		<Nominal>1</Nominal>
		<Name>Доллар США</Name>
		<Value>80,5000</Value>
	</Valute>
	<Valute ID="R01239">
		<NumCode>978</NumCode>
		<CharCode>EUR</CharCode>
		<Nominal>1</Nominal>
		<Name>Евро</Name>
		<Value>90,0000</Value>
	</Valute>
	<Valute ID="R01820">
		<NumCode>392</NumCode>
		<CharCode>JPY</CharCode>
		<Nominal>100</Nominal>
		<Name>Иен</Name>
		<Value>55,0000</Value>
	</Valute>
</ValCurs>`

func newCBRServer(t *testing.T, gotDateReq *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotDateReq != nil {
			*gotDateReq = r.URL.Query().Get("date_req")
		}
		_, _ = w.Write([]byte(cbrXML))
	}))
}

func TestCBR_QuoteRUB(t *testing.T) {
	srv := newCBRServer(t, nil)
	defer srv.Close()

	c := NewCBR(srv.URL)
	val, err := c.Rate(context.Background(), "USD", "RUB", time.Time{})
	require.NoError(t, err)
	assert.InDelta(t, 80.5, val, 1e-9)
}

func TestCBR_BaseRUBInverted(t *testing.T) {
	srv := newCBRServer(t, nil)
	defer srv.Close()

	c := NewCBR(srv.URL)
	val, err := c.Rate(context.Background(), "RUB", "USD", time.Time{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/80.5, val, 1e-9)
}

func TestCBR_NominalScaling(t *testing.T) {
	srv := newCBRServer(t, nil)
	defer srv.Close()

	c := NewCBR(srv.URL)
	val, err := c.Rate(context.Background(), "JPY", "RUB", time.Time{})
	require.NoError(t, err)
	assert.InDelta(t, 0.55, val, 1e-9)
}

func TestCBR_CrossThroughRUB(t *testing.T) {
	srv := newCBRServer(t, nil)
	defer srv.Close()

	c := NewCBR(srv.URL)
	val, err := c.Rate(context.Background(), "EUR", "USD", time.Time{})
	require.NoError(t, err)
	assert.InDelta(t, 90.0/80.5, val, 1e-9)
}

func TestCBR_UnknownCode(t *testing.T) {
	srv := newCBRServer(t, nil)
	defer srv.Close()

	c := NewCBR(srv.URL)
	_, err := c.Rate(context.Background(), "GEL", "RUB", time.Time{})
	assert.Error(t, err)
}

func TestCBR_DateEncoding(t *testing.T) {
	var gotDate string
	srv := newCBRServer(t, &gotDate)
	defer srv.Close()

	c := NewCBR(srv.URL)
	date := time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)
	_, err := c.Rate(context.Background(), "USD", "RUB", date)
	require.NoError(t, err)
	assert.Equal(t, "21/08/2026", gotDate)
}
