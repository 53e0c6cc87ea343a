package payments

import (
	"fmt"

	"minderbook/internal/config"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// Monthly subscription price in cents. Billing beyond the first charge
// is handled by the processor, not modeled here.
const (
	subscriptionAmount   = 999
	subscriptionCurrency = "eur"
)

// Client is the thin wrapper over the payment collaborator's SDK.
type Client struct {
	omise *omise.Client
}

func New(cfg *config.Payments) (*Client, error) {
	c, err := omise.NewClient(cfg.PublicKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment client: %w", err)
	}

	return &Client{omise: c}, nil
}

// Subscribe creates a customer from the card token and takes the first
// subscription charge. Returns the processor-side customer and charge ids.
func (c *Client) Subscribe(email, name, cardToken string) (string, string, error) {
	customer := &omise.Customer{}
	err := c.omise.Do(customer, &operations.CreateCustomer{
		Email:       email,
		Description: "minderbook subscription: " + name,
		Card:        cardToken,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create customer: %w", err)
	}

	charge := &omise.Charge{}
	err = c.omise.Do(charge, &operations.CreateCharge{
		Amount:      subscriptionAmount,
		Currency:    subscriptionCurrency,
		Customer:    customer.ID,
		Description: "minderbook monthly subscription",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create charge: %w", err)
	}

	if !charge.Paid {
		return "", "", fmt.Errorf("charge %s was not paid (status %s)", charge.ID, charge.Status)
	}

	return customer.ID, charge.ID, nil
}
