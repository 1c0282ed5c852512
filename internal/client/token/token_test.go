package token

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, sub any) string {
	t.Helper()
	claims := jwt.MapClaims{}
	if sub != nil {
		claims["sub"] = sub
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestNormalizeSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "python dict with UUID wrapper",
			in:   `{'user_id': UUID('abc-123'), 'email': 'a@b.c'}`,
			want: `{"user_id": "abc-123", "email": "a@b.c"}`,
		},
		{
			name: "double-quoted UUID wrapper",
			in:   `{"user_id": UUID("abc")}`,
			want: `{"user_id": "abc"}`,
		},
		{
			name: "already valid JSON is untouched",
			in:   `{"user_id": "abc"}`,
			want: `{"user_id": "abc"}`,
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, NormalizeSubject(tt.in))
		})
	}
}

func TestDecode_WellFormed(t *testing.T) {
	t.Parallel()

	cred := mintToken(t, `{'user_id': UUID('e2f21c08-f9d6-4388-a3f4-a32393846b70'), 'email': 'admin@example.com'}`)
	claim := Decode(cred)
	require.NotNil(t, claim)
	require.Equal(t, "e2f21c08-f9d6-4388-a3f4-a32393846b70", claim.UserID)
	require.Equal(t, "admin@example.com", claim.Extra["email"])
}

func TestDecode_PlainJSONSubject(t *testing.T) {
	t.Parallel()

	claim := Decode(mintToken(t, `{"user_id": "abc"}`))
	require.NotNil(t, claim)
	require.Equal(t, "abc", claim.UserID)
	require.Empty(t, claim.Extra)
}

func TestDecode_FailuresYieldNil(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cred string
	}{
		{"empty credential", ""},
		{"not a jwt", "not.a.jwt"},
		{"garbage", "zzzz"},
		{"no sub claim", mintToken(t, nil)},
		{"sub is not an object", mintToken(t, "just-a-string")},
		{"sub parses without user_id", mintToken(t, `{'email': 'a@b.c'}`)},
		{"user_id not a string", mintToken(t, `{'user_id': 42}`)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Nil(t, Decode(tt.cred))
		})
	}
}
