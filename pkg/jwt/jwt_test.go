package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/consola-negocios/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func issue(t *testing.T, at time.Time, ttl time.Duration) string {
	t.Helper()
	tok, err := pkgjwt.Generate(pkgjwt.Issue{
		Secret: testSecret, Issuer: "test", UserID: 7, NegocioID: 3, Role: "ADMIN",
		IssuedAt: at, TTL: ttl,
	})
	require.NoError(t, err)
	return tok
}

func TestGenerateAndParse(t *testing.T) {
	tok := issue(t, time.Now(), time.Hour)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, 3, claims.NegocioID)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok := issue(t, time.Now(), time.Hour)

	_, err := pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok := issue(t, time.Now().Add(-2*time.Hour), time.Hour)

	_, err := pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestExpiresAt_SinVerificarFirma(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tok := issue(t, at, 60*time.Second)

	exp, err := pkgjwt.ExpiresAt(tok)
	require.NoError(t, err)
	assert.True(t, exp.Equal(at.Add(60*time.Second)), "exp = %s", exp)
}

func TestExpiresAt_TokenBasura(t *testing.T) {
	_, err := pkgjwt.ExpiresAt("no-es-un-jwt")
	assert.Error(t, err)
}
