package jwt_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/RividuPesara/apex-auto/internal/jwt"
	"github.com/RividuPesara/apex-auto/internal/model"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &model.User{ID: uuid.New(), Name: "Driver", Email: "driver@apex.test"}

	access, refresh, err := jwt.GenerateTokens(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	require.NotEqual(t, access, refresh)

	claims, err := jwt.ValidateToken(access)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims["sub"])
	require.Equal(t, "Driver", claims["name"])
	require.Equal(t, "driver@apex.test", claims["email"])

	refreshClaims, err := jwt.ValidateToken(refresh)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), refreshClaims["sub"])
	require.NotContains(t, refreshClaims, "email")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	access, _, err := jwt.GenerateTokens(&model.User{ID: uuid.New()})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = jwt.ValidateToken(access)
	require.Error(t, err)
}

func TestValidateToken_RejectsUnsignedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	unsigned := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{"sub": "anyone"})
	tokenString, err := unsigned.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = jwt.ValidateToken(tokenString)
	require.Error(t, err)
}
