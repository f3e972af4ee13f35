package banking

import (
	"strings"
	"time"
)

type Details struct {
	CreatorID     string
	AccountHolder string
	BankName      string
	AccountNumber string
	RoutingCode   string
	PaymentHandle string
	UpdatedAt     time.Time
}

// Masked hides everything but the last four characters of the sensitive
// numbers.
func (d Details) Masked() Details {
	d.AccountNumber = maskTail(d.AccountNumber)
	d.RoutingCode = maskTail(d.RoutingCode)
	return d
}

func maskTail(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}
