package v1

import "encoding/json"

// RawMarketEvent is the JSON envelope for inbound normalized market data.
// Type selects how Payload is decoded.
type RawMarketEvent struct {
	Type     DataType        `json:"type"`
	Exchange string          `json:"exchange"`
	Payload  json.RawMessage `json:"payload"`
}
