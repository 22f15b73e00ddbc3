package gateway

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// The backend's payload shapes are loosely structured: the same concept
// arrives under varying field names and casings depending on the endpoint.
// Everything is normalized here; nothing past the gateway sees raw shapes.

var accessKeys = []string{"accessToken", "access_token", "AccessToken", "access"}
var refreshKeys = []string{"refreshToken", "refresh_token", "RefreshToken", "refresh"}
var messageKeys = []string{"message", "error", "detail"}

// decodeTokenPair extracts a credential pair from a token response body,
// accepting any of the known key variants and an optional "data" wrapper.
func decodeTokenPair(body []byte) (TokenPair, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return TokenPair{}, errors.Wrap(err, "[gateway decodeTokenPair] invalid JSON")
	}

	if wrapped, ok := raw["data"].(map[string]any); ok {
		raw = wrapped
	}

	pair := TokenPair{
		Access:  firstString(raw, accessKeys),
		Refresh: firstString(raw, refreshKeys),
	}
	if pair.Access == "" || pair.Refresh == "" {
		return TokenPair{}, errors.New("[gateway decodeTokenPair] response missing credential pair")
	}
	return pair, nil
}

// decodeErrorMessage pulls a human-readable message out of an error payload.
// Returns "" when the body carries nothing usable.
func decodeErrorMessage(body []byte) string {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}
	if wrapped, ok := raw["data"].(map[string]any); ok {
		raw = wrapped
	}
	return firstString(raw, messageKeys)
}

func firstString(raw map[string]any, keys []string) string {
	for _, key := range keys {
		if value, ok := raw[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
