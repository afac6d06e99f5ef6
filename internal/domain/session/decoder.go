// Package session turns the stored bearer token into a role hint.
//
// The decoding below does NOT verify the token signature. The role it yields
// only decides what the console shows; every API call is authorized by the
// HR API itself, which is the actual security boundary.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/astro-web3/hrdesk-console/internal/domain/credential"
)

const jwtPartsCount = 3

//nolint:gochecknoglobals // fixed decoder preference order
var payloadEncodings = []*base64.Encoding{
	base64.RawURLEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.StdEncoding,
}

// DecodeRole extracts the "role" claim from a header.payload.signature token.
// It is total: malformed structure, bad base64, bad JSON, a non-object payload
// or a missing/non-string role all yield RoleNone.
func DecodeRole(token string) Role {
	claims, ok := decodePayload(token)
	if !ok {
		return RoleNone
	}

	raw, ok := claims["role"]
	if !ok {
		return RoleNone
	}

	var role string
	if err := json.Unmarshal(raw, &role); err != nil {
		return RoleNone
	}

	return Role(role)
}

// FromStore decodes the role of the token currently held by store.
func FromStore(ctx context.Context, store credential.Store) Role {
	token, ok := store.Get(ctx)
	if !ok {
		return RoleNone
	}
	return DecodeRole(token)
}

func decodePayload(token string) (map[string]json.RawMessage, bool) {
	if token == "" {
		return nil, false
	}

	parts := strings.Split(token, ".")
	if len(parts) != jwtPartsCount || parts[1] == "" {
		return nil, false
	}

	var payload []byte
	for _, enc := range payloadEncodings {
		decoded, err := enc.DecodeString(parts[1])
		if err == nil {
			payload = decoded
			break
		}
	}
	if payload == nil {
		return nil, false
	}

	var claims map[string]json.RawMessage
	if err := json.Unmarshal(payload, &claims); err != nil || claims == nil {
		return nil, false
	}

	return claims, true
}
