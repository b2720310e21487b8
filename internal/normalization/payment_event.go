package normalization

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentEvent is the canonical shape of a gateway callback after boundary
// normalization. Everything past this point only ever sees these field
// names.
type PaymentEvent struct {
	PaymentID       string
	Status          string
	TransactionHash string
}

// Gateways disagree on payload casing; the callback body is accepted in
// snake_case or camelCase and mapped to the canonical field set exactly
// once, here. Aliases are tried in a fixed order so that a payload carrying
// both "payment_status" and "status" resolves the same way every time.
var paymentEventAliases = []struct {
	field   string
	aliases []string
}{
	{"payment_id", []string{"payment_id", "paymentid"}},
	{"status", []string{"payment_status", "paymentstatus", "status"}},
	{"transaction_hash", []string{"transaction_hash", "transactionhash", "tx_hash", "txhash"}},
}

func ParsePaymentEvent(raw []byte) (*PaymentEvent, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("malformed callback payload: %w", err)
	}

	keyed := make(map[string]json.RawMessage, len(payload))
	for key, val := range payload {
		keyed[strings.ToLower(strings.TrimSpace(key))] = val
	}

	canonical := map[string]string{}
	for _, entry := range paymentEventAliases {
		for _, alias := range entry.aliases {
			val, ok := keyed[alias]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				return nil, fmt.Errorf("callback field %q is not a string", alias)
			}
			canonical[entry.field] = strings.TrimSpace(s)
			break
		}
	}

	event := &PaymentEvent{
		PaymentID:       canonical["payment_id"],
		Status:          ParseInputString(canonical["status"]),
		TransactionHash: canonical["transaction_hash"],
	}
	if event.PaymentID == "" {
		return nil, fmt.Errorf("callback payload missing payment id")
	}
	if event.Status == "" {
		return nil, fmt.Errorf("callback payload missing status")
	}
	return event, nil
}
