// Package token decodes the bearer credential issued by the Visual Caption
// backend into a structured identity claim. Decoding is pure and never
// reaches the network.
//
// The backend embeds the identity in the JWT "sub" claim as a Python dict
// literal, e.g.
//
//	{'user_id': UUID('e2f21c08-...'), 'email': 'a@b.c'}
//
// which is not valid JSON. NormalizeSubject rewrites it into JSON before
// structured parsing: UUID('x') constructor calls are unwrapped to "x" and
// single quotes become double quotes.
//
// The signature is intentionally NOT verified here: the client only reads the
// claim set, trust is the backend's responsibility on every authenticated
// request.
package token

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaim is the structured identity decoded from a credential.
type IdentityClaim struct {
	UserID string
	// Extra holds any additional subject fields (email etc.) the backend
	// chooses to embed. The client treats them as opaque.
	Extra map[string]any
}

var uuidCallRe = regexp.MustCompile(`UUID\(['"](.*?)['"]\)`)

// NormalizeSubject rewrites the subject's Python object-literal notation into
// valid JSON. The transform is deterministic and has no error cases of its
// own; whether the result parses is the caller's problem.
func NormalizeSubject(sub string) string {
	s := uuidCallRe.ReplaceAllString(sub, `"$1"`)
	return strings.ReplaceAll(s, "'", `"`)
}

// Decode parses a credential into an IdentityClaim. Any failure at any step
// (malformed token, missing or malformed subject, non-string user_id) yields
// nil; no error ever escapes to the caller.
func Decode(credential string) *IdentityClaim {
	if credential == "" {
		return nil
	}

	parser := jwt.NewParser()
	tok, _, err := parser.ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return nil
	}

	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(NormalizeSubject(sub)), &fields); err != nil {
		return nil
	}

	userID, ok := fields["user_id"].(string)
	if !ok || userID == "" {
		return nil
	}
	delete(fields, "user_id")

	return &IdentityClaim{UserID: userID, Extra: fields}
}
