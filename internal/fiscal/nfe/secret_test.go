package nfe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() *[32]byte {
	var key [32]byte
	copy(key[:], "0123456789abcdef0123456789abcdef")
	return &key
}

func TestSealOpenRoundTrip(t *testing.T) {
	key := testKey()

	sealed, err := sealSecret(key, "senha-do-certificado")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "senha")

	plain, err := openSecret(key, sealed)
	require.NoError(t, err)
	assert.Equal(t, "senha-do-certificado", plain)
}

func TestSealProducesDistinctCiphertexts(t *testing.T) {
	key := testKey()

	a, err := sealSecret(key, "mesmo segredo")
	require.NoError(t, err)
	b, err := sealSecret(key, "mesmo segredo")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "nonce must randomize the ciphertext")
}

func TestOpenWithWrongKeyFails(t *testing.T) {
	sealed, err := sealSecret(testKey(), "segredo")
	require.NoError(t, err)

	var other [32]byte
	copy(other[:], "ffffffffffffffffffffffffffffffff")
	_, err = openSecret(&other, sealed)
	assert.ErrorIs(t, err, errSecretCorrupt)
}

func TestOpenGarbageFails(t *testing.T) {
	_, err := openSecret(testKey(), "not base64 %%%")
	assert.ErrorIs(t, err, errSecretCorrupt)

	_, err = openSecret(testKey(), "c2hvcnQ=")
	assert.ErrorIs(t, err, errSecretCorrupt)
}
