package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"

	"github.com/MLSatya/spark-scheduler/internal/httperr"
	"github.com/MLSatya/spark-scheduler/internal/models"
)

// Checkout creates deposit charges and reads back their payment state.
type Checkout struct {
	pref     preference.Client
	payments payment.Client
	notifyTo string
}

func NewCheckout(accessToken, webhookBaseURL string) (*Checkout, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Checkout{
		pref:     preference.NewClient(cfg),
		payments: payment.NewClient(cfg),
		notifyTo: webhookBaseURL + "/api/payments/webhook",
	}, nil
}

type DepositOrder struct {
	OrderID     string `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`

	Deposit float64 `json:"deposit"`
	Balance float64 `json:"balance"`
}

// CreateDepositOrder charges only the deposit portion of the booking total.
// The booking reference travels as the external reference so the webhook can
// map the payment back.
func (c *Checkout) CreateDepositOrder(
	ctx context.Context,
	b *models.Booking,
	service *models.Service,
	total float64,
) (*DepositOrder, error) {

	split := Split(decimal.NewFromFloat(total))
	deposit, _ := split.Deposit.Float64()
	balance, _ := split.Balance.Float64()

	resp, err := c.pref.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:          fmt.Sprintf("booking-%d", b.ID),
				Title:       service.Name,
				Description: fmt.Sprintf("Deposit for %s on %s", service.Name, b.StartTime.Format("2006-01-02 15:04")),
				Quantity:    1,
				UnitPrice:   deposit,
			},
		},
		ExternalReference: b.Reference,
		NotificationURL:   c.notifyTo,
	})
	if err != nil {
		return nil, err
	}

	return &DepositOrder{
		OrderID:     resp.ID,
		CheckoutURL: resp.InitPoint,
		Deposit:     deposit,
		Balance:     balance,
	}, nil
}

// PaymentState is what the webhook needs to settle a booking.
type PaymentState struct {
	OrderID   string
	Reference string
	Approved  bool
	Amount    float64
}

func (c *Checkout) GetPayment(ctx context.Context, paymentID int) (*PaymentState, error) {
	p, err := c.payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, httperr.ErrBusiness("payment_not_found")
	}

	return &PaymentState{
		OrderID:   fmt.Sprintf("%d", p.ID),
		Reference: p.ExternalReference,
		Approved:  p.Status == "approved",
		Amount:    p.TransactionAmount,
	}, nil
}
