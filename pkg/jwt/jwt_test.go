package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/pkg/jwt"
)

const testSecret = "test-secret"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "ana", "tienda-api", 60)
	require.NoError(t, err)

	userID, username, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "ana", username)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "ana", "tienda-api", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "ana", "tienda-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "ana", "tienda-api", 60)
	assert.Error(t, err)
}
