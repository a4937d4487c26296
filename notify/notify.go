// Package notify renders order notifications and hands them to a transport.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"catering-booking-api/catalog"
	"catering-booking-api/models"
)

// Message kinds, also used as routing keys
const (
	KindCustomerConfirmation = "order.confirmation"
	KindOpsNewOrder          = "order.new"
)

// Message is one rendered notification
type Message struct {
	Kind      string    `json:"kind"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	OrderID   uint      `json:"order_id"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

// Sender delivers rendered messages
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

const customerTemplate = `Hi {{.Name}},

Thank you for booking with us! We received your order {{.Order.Reference}}.

Package:   {{.Order.PackageName}}{{with .Order.PresetName}} ({{.}}){{end}}
Guests:    {{.Order.GuestCount}}
Event:     {{date .Order.EventAt}}
Venue:     {{.Order.VenueAddress}} ({{.Order.ZoneName}})
{{range .Order.Menu}}
{{title .Category}}: {{join .Items ", "}}{{end}}

Package subtotal: {{peso .Order.PackageSubtotal}} ({{peso .Order.PricePerGuest}} x {{.Order.GuestCount}})
{{- if .Order.AddOns}}
Add-ons:          {{peso .Order.AddOnsTotal}}{{range .Order.AddOns}}
  - {{.Name}} x{{.Quantity}}: {{peso .LineTotal}}{{end}}
{{- end}}
{{surchargeLabel .Order.Kind}}: {{peso .Order.Surcharge}}
Total:            {{peso .Order.ComputedTotal}}

Your booking is pending until our team confirms it. We will contact you about the deposit.
`

const opsTemplate = `New {{.Order.Kind}} booking {{.Order.Reference}} (#{{.Order.ID}})

Customer: {{.Order.ContactName}} {{.Order.ContactPhone}} {{.Order.ContactEmail}}
Event:    {{date .Order.EventAt}}
Zone:     {{.Order.ZoneName}}
Venue:    {{.Order.VenueAddress}}
Package:  {{.Order.PackageName}}{{with .Order.PresetName}} / {{.}}{{end}}, {{.Order.GuestCount}} guests
Total:    {{peso .Order.ComputedTotal}}
{{- with .Order.Notes}}
Notes:    {{.}}{{end}}
`

// Notifier builds the customer confirmation and the operations alert for a new order
type Notifier struct {
	sender   Sender
	opsEmail string
	customer *template.Template
	ops      *template.Template
}

func New(sender Sender, opsEmail string, loc *time.Location) (*Notifier, error) {
	funcs := template.FuncMap{
		"peso": func(m catalog.Money) string { return m.String() },
		"date": func(t time.Time) string { return t.In(loc).Format("Monday, January 2, 2006 at 3:04 PM") },
		"join": strings.Join,
		"title": func(c catalog.Category) string {
			s := string(c)
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"surchargeLabel": func(k models.OrderKind) string {
			if k == models.KindDelivery {
				return "Delivery fee"
			}
			return "Travel surcharge"
		},
	}
	customer, err := template.New("customer").Funcs(funcs).Parse(customerTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse customer template: %w", err)
	}
	ops, err := template.New("ops").Funcs(funcs).Parse(opsTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ops template: %w", err)
	}
	return &Notifier{sender: sender, opsEmail: opsEmail, customer: customer, ops: ops}, nil
}

type view struct {
	Name  string
	Order models.Order
}

// Messages renders the notifications for an order. The customer copy is skipped when
// there is no address to send it to.
func (n *Notifier) Messages(order models.Order) ([]Message, error) {
	v := view{Name: order.ContactName, Order: order}
	if v.Name == "" {
		v.Name = order.Customer.Name
	}
	now := time.Now()

	var out []Message
	if to := recipient(order); to != "" {
		body, err := render(n.customer, v)
		if err != nil {
			return nil, err
		}
		out = append(out, Message{
			Kind:      KindCustomerConfirmation,
			To:        to,
			Subject:   fmt.Sprintf("Booking received: %s", order.Reference),
			Body:      body,
			OrderID:   order.ID,
			Reference: order.Reference,
			CreatedAt: now,
		})
	}

	body, err := render(n.ops, v)
	if err != nil {
		return nil, err
	}
	out = append(out, Message{
		Kind:      KindOpsNewOrder,
		To:        n.opsEmail,
		Subject:   fmt.Sprintf("New booking %s: %s, %d guests", order.Reference, order.PackageName, order.GuestCount),
		Body:      body,
		OrderID:   order.ID,
		Reference: order.Reference,
		CreatedAt: now,
	})
	return out, nil
}

// OrderPlaced renders and sends every message. One failed send does not stop the others.
func (n *Notifier) OrderPlaced(ctx context.Context, order models.Order) error {
	msgs, err := n.Messages(order)
	if err != nil {
		return err
	}
	var errs []error
	for _, m := range msgs {
		if err := n.sender.Send(ctx, m); err != nil {
			errs = append(errs, fmt.Errorf("%s to %s: %w", m.Kind, m.To, err))
		}
	}
	return errors.Join(errs...)
}

func recipient(order models.Order) string {
	if order.ContactEmail != "" {
		return order.ContactEmail
	}
	return order.Customer.Email
}

func render(t *template.Template, v view) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}
