package tests

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
	"testing"

	"rental/internal/domain"
	"rental/internal/service"
)

// ──────────────────────────────────────────────
// 4. PAYMENT GATEWAY CODEC
// ──────────────────────────────────────────────

// encodeCallback builds a raw gateway payload the way the gateway does:
// URL-encoded values, base64 with the +/ -> -_ substitution, padding trimmed.
func encodeCallback(values url.Values) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(values.Encode()))
	encoded = strings.NewReplacer("+", "-", "/", "_").Replace(encoded)
	return strings.TrimRight(encoded, "=")
}

func signCallback(data, password string) string {
	sum := md5.Sum([]byte(data + password))
	return hex.EncodeToString(sum[:])
}

func TestDecodeCallback_RoundTrip(t *testing.T) {
	t.Parallel()

	gw := service.NewPaymentGateway("proj-1", "secret", "https://pay.example/pay/", "0")

	values := url.Values{}
	values.Set("orderid", "booking-42")
	values.Set("status", "0")
	raw := encodeCallback(values)

	data, err := gw.DecodeCallback(raw, signCallback(raw, "secret"))
	if err != nil {
		t.Fatalf("DecodeCallback() error = %v", err)
	}
	if data.OrderID != "booking-42" {
		t.Errorf("OrderID = %q, want booking-42", data.OrderID)
	}
	if !gw.Success(data) {
		t.Error("Success() = false, want true")
	}
}

func TestDecodeCallback_BadSignatureRejected(t *testing.T) {
	t.Parallel()

	gw := service.NewPaymentGateway("proj-1", "secret", "https://pay.example/pay/", "0")

	values := url.Values{}
	values.Set("orderid", "booking-42")
	raw := encodeCallback(values)

	_, err := gw.DecodeCallback(raw, signCallback(raw, "wrong-password"))
	if !errors.Is(err, service.ErrBadSignature) {
		t.Errorf("DecodeCallback() error = %v, want ErrBadSignature", err)
	}
}

func TestDecodeCallback_MissingOrderIDRejected(t *testing.T) {
	t.Parallel()

	gw := service.NewPaymentGateway("proj-1", "secret", "https://pay.example/pay/", "0")

	values := url.Values{}
	values.Set("status", "0")
	raw := encodeCallback(values)

	_, err := gw.DecodeCallback(raw, signCallback(raw, "secret"))
	if !errors.Is(err, service.ErrMissingOrderID) {
		t.Errorf("DecodeCallback() error = %v, want ErrMissingOrderID", err)
	}
}

func TestDecodeCallback_GarbageRejected(t *testing.T) {
	t.Parallel()

	gw := service.NewPaymentGateway("proj-1", "", "https://pay.example/pay/", "0")

	_, err := gw.DecodeCallback("%%%not-base64%%%", "")
	if !errors.Is(err, service.ErrMalformedCallback) {
		t.Errorf("DecodeCallback() error = %v, want ErrMalformedCallback", err)
	}
}

func TestDecodeCallback_RestoresTrimmedPadding(t *testing.T) {
	t.Parallel()

	gw := service.NewPaymentGateway("proj-1", "", "https://pay.example/pay/", "0")

	// "orderid=b" encodes to a base64 string whose padding the gateway trims.
	values := url.Values{}
	values.Set("orderid", "b")
	raw := encodeCallback(values)
	if strings.HasSuffix(raw, "=") {
		t.Fatal("fixture should have trimmed padding")
	}

	data, err := gw.DecodeCallback(raw, "")
	if err != nil {
		t.Fatalf("DecodeCallback() error = %v", err)
	}
	if data.OrderID != "b" {
		t.Errorf("OrderID = %q, want b", data.OrderID)
	}
}

func TestBuildPaymentURL_SignedAndAmountInCents(t *testing.T) {
	t.Parallel()

	gw := service.NewPaymentGateway("proj-1", "secret", "https://pay.example/pay/", "0")

	booking := &domain.Booking{ID: "booking-42", TotalPrice: 231.50}
	payURL := gw.BuildPaymentURL(booking)

	parsed, err := url.Parse(payURL)
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}

	rawData := parsed.Query().Get("data")
	sign := parsed.Query().Get("sign")
	if sign != signCallback(rawData, "secret") {
		t.Error("sign does not match md5(data + password)")
	}

	data, err := gw.DecodeCallback(rawData, sign)
	if err != nil {
		t.Fatalf("DecodeCallback() on own output: error = %v", err)
	}
	if data.OrderID != "booking-42" {
		t.Errorf("OrderID = %q, want booking-42", data.OrderID)
	}

	// The payload itself carries the amount in cents.
	std := strings.NewReplacer("-", "+", "_", "/").Replace(rawData)
	if pad := len(std) % 4; pad != 0 {
		std += strings.Repeat("=", 4-pad)
	}
	decoded, err := base64.StdEncoding.DecodeString(std)
	if err != nil {
		t.Fatalf("base64 decode error = %v", err)
	}
	payload, _ := url.ParseQuery(string(decoded))
	if payload.Get("amount") != "23150" {
		t.Errorf("amount = %q, want 23150", payload.Get("amount"))
	}
}
