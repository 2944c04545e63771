// Package payment talks to the external checkout provider.
package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type Customer struct {
	Name  string
	Email string
}

type Checkout struct {
	OrderCode   string
	Amount      int64
	CourseID    uint
	CourseTitle string
	Customer    Customer
}

// Gateway issues checkout links. The provider later reports the outcome
// through a webhook.
type Gateway interface {
	CreateCheckout(ctx context.Context, checkout Checkout) (string, error)
}

// MidtransGateway issues Snap checkout links.
type MidtransGateway struct {
	client snap.Client
}

func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	g := &MidtransGateway{}
	if production {
		g.client.New(serverKey, midtrans.Production)
	} else {
		g.client.New(serverKey, midtrans.Sandbox)
	}
	return g
}

func (g *MidtransGateway) CreateCheckout(ctx context.Context, checkout Checkout) (string, error) {
	if checkout.Amount <= 0 {
		return "", errors.New("invalid checkout amount")
	}
	if checkout.OrderCode == "" {
		return "", errors.New("order code is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  checkout.OrderCode,
			GrossAmt: checkout.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: checkout.Customer.Name,
			Email: checkout.Customer.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       checkout.OrderCode,
				Price:    checkout.Amount,
				Qty:      1,
				Name:     truncate(checkout.CourseTitle, 50),
				Category: "course",
			},
		},
	}

	resp, midErr := g.client.CreateTransaction(req)
	if midErr != nil {
		return "", midErr
	}
	return resp.RedirectURL, nil
}

// Signature is SHA512(orderCode + statusCode + grossAmount + serverKey),
// hex encoded, as the provider computes it for notifications.
func Signature(orderCode, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderCode + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func VerifySignature(orderCode, statusCode, grossAmount, serverKey, signature string) bool {
	if signature == "" || serverKey == "" {
		return false
	}
	want := Signature(orderCode, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(signature))) == 1
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
