package service

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"rental/internal/domain"
)

// Payment gateway codec errors.
var (
	ErrMalformedCallback = errors.New("malformed callback payload")
	ErrMissingOrderID    = errors.New("callback payload missing orderid")
	ErrBadSignature      = errors.New("callback signature mismatch")
)

// PaymentGateway encodes outbound payment requests and decodes gateway
// callbacks. The wire format is the Paysera one: a URL-encoded key/value
// payload wrapped in base64 with '-' and '_' substituted for '+' and '/',
// signed with md5(data + password).
type PaymentGateway struct {
	projectID     string
	signPassword  string
	payURL        string
	successStatus string
}

// NewPaymentGateway creates a new PaymentGateway codec.
func NewPaymentGateway(projectID, signPassword, payURL, successStatus string) *PaymentGateway {
	if successStatus == "" {
		successStatus = "0"
	}
	return &PaymentGateway{
		projectID:     projectID,
		signPassword:  signPassword,
		payURL:        payURL,
		successStatus: successStatus,
	}
}

// CallbackData is the decoded content of a gateway callback.
type CallbackData struct {
	OrderID string
	Status  string
}

// Success reports whether the callback carries the gateway success code.
func (g *PaymentGateway) Success(data CallbackData) bool {
	return data.Status == g.successStatus
}

// BuildPaymentURL builds the redirect URL the customer is sent to for paying
// a booking. The booking ID doubles as the gateway order ID.
func (g *PaymentGateway) BuildPaymentURL(booking *domain.Booking) string {
	values := url.Values{}
	values.Set("projectid", g.projectID)
	values.Set("orderid", booking.ID)
	values.Set("amount", fmt.Sprintf("%d", int64(booking.TotalPrice*100)))
	values.Set("currency", "EUR")

	data := encodeBase64URL(values.Encode())
	sign := g.sign(data)

	return fmt.Sprintf("%s?data=%s&sign=%s", g.payURL, url.QueryEscape(data), sign)
}

// DecodeCallback decodes and verifies a raw callback payload.
func (g *PaymentGateway) DecodeCallback(rawData, signature string) (CallbackData, error) {
	if g.signPassword != "" && g.sign(rawData) != signature {
		return CallbackData{}, ErrBadSignature
	}

	decoded, err := decodeBase64URL(rawData)
	if err != nil {
		return CallbackData{}, ErrMalformedCallback
	}

	values, err := url.ParseQuery(decoded)
	if err != nil {
		return CallbackData{}, ErrMalformedCallback
	}

	orderID := values.Get("orderid")
	if orderID == "" {
		return CallbackData{}, ErrMissingOrderID
	}

	return CallbackData{
		OrderID: orderID,
		Status:  values.Get("status"),
	}, nil
}

func (g *PaymentGateway) sign(data string) string {
	sum := md5.Sum([]byte(data + g.signPassword))
	return hex.EncodeToString(sum[:])
}

func encodeBase64URL(s string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(s))
	return strings.NewReplacer("+", "-", "/", "_").Replace(encoded)
}

func decodeBase64URL(s string) (string, error) {
	s = strings.NewReplacer("-", "+", "_", "/").Replace(s)
	// Gateways trim padding; restore it before decoding.
	if pad := len(s) % 4; pad != 0 {
		s += strings.Repeat("=", 4-pad)
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
