package conversation

import (
	"fmt"
	"strconv"
	"strings"
)

// Recognized intent actions. The vocabulary is closed: anything else is
// handled as a non-fatal fallback, never an error.
const (
	ActionPresentProducts = "present_products"
	ActionCreateContact   = "create_contact"
	ActionCreateOrder     = "create_order"
)

// Data keys the external classifier uses in intent payloads
const (
	DataKeyProduct   = "produit"
	DataKeyFirstName = "prenom"
	DataKeyLastName  = "nom"
	DataKeyEmail     = "email"
	DataKeyPhone     = "telephone"
	DataKeyQuantity  = "quantite"
)

// Intent is the ephemeral contract between the external AI classifier
// and the dispatcher: an action verb plus a loosely-structured payload.
// It is consumed, never persisted.
type Intent struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data"`
}

// GetString returns the payload value for key when it is a non-empty
// string. Untrusted classifier output may carry any type under any key,
// so absent, empty, and mistyped values all report ok=false.
func (i Intent) GetString(key string) (string, bool) {
	if i.Data == nil {
		return "", false
	}
	raw, exists := i.Data[key]
	if !exists {
		return "", false
	}
	s, isString := raw.(string)
	if !isString {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// GetStringPtr returns the payload value as a pointer, nil when absent.
// Used for partial updates where nil means "leave unchanged".
func (i Intent) GetStringPtr(key string) *string {
	s, ok := i.GetString(key)
	if !ok {
		return nil
	}
	return &s
}

// GetInt returns the payload value coerced to an int. JSON numbers
// decode as float64; the classifier occasionally emits numeric strings.
func (i Intent) GetInt(key string) (int, bool) {
	if i.Data == nil {
		return 0, false
	}
	raw, exists := i.Data[key]
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// String renders the intent for logs
func (i Intent) String() string {
	return fmt.Sprintf("intent{action=%q, keys=%d}", i.Action, len(i.Data))
}
