package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDEKParams 测试 DEK 派生参数
func TestDEKParams(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		p := DefaultDEKParams()
		assert.Equal(t, 64, p.KeyLength)
		assert.Equal(t, 10000, p.IterationCount)
		assert.Equal(t, HashSHA512, p.Hash)
		assert.NoError(t, p.Validate())
	})

	t.Run("Validate_ShortKey", func(t *testing.T) {
		p := DefaultDEKParams()
		p.KeyLength = MinDEKKeyLength - 1
		assert.Error(t, p.Validate())
	})

	t.Run("Validate_ShortSalt", func(t *testing.T) {
		assert.Error(t, DefaultDEKParams().WithSalt("short").Validate())
	})

	t.Run("Validate_FewIterations", func(t *testing.T) {
		assert.Error(t, DefaultDEKParams().WithIterationCount(10).Validate())
	})

	t.Run("Validate_UnknownHash", func(t *testing.T) {
		p := DefaultDEKParams()
		p.Hash = "md5"
		assert.Error(t, p.Validate())
	})

	t.Log("✅ DEKParams 测试通过")
}

// TestKeychainParams 测试密钥链参数
func TestKeychainParams(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		var p *KeychainParams
		assert.NoError(t, p.Validate())
		assert.Equal(t, DefaultDEKParams(), p.EffectiveDEK())
	})

	t.Run("DEKWithoutPass", func(t *testing.T) {
		dek := DefaultDEKParams()
		p := &KeychainParams{DEK: &dek}
		assert.Error(t, p.Validate())
	})

	t.Run("PassWithCustomDEK", func(t *testing.T) {
		dek := DefaultDEKParams().WithSalt("0123456789abcdef0123")
		p := &KeychainParams{Pass: "pw", DEK: &dek}
		assert.NoError(t, p.Validate())
		assert.Equal(t, "0123456789abcdef0123", p.EffectiveDEK().Salt)
	})

	t.Run("Parse", func(t *testing.T) {
		p, err := ParseKeychainParams([]byte(`{
			"pass": "pw",
			"dek": {"keyLength": 32, "iterationCount": 2000, "salt": "0123456789abcdef", "hash": "sha2-256"}
		}`))
		require.NoError(t, err)
		assert.Equal(t, "pw", p.Pass)
		require.NotNil(t, p.DEK)
		assert.Equal(t, 32, p.DEK.KeyLength)
		assert.Equal(t, HashSHA256, p.DEK.Hash)
		assert.NoError(t, p.Validate())
	})

	t.Run("Parse_Invalid", func(t *testing.T) {
		_, err := ParseKeychainParams([]byte(`{`))
		assert.Error(t, err)
	})

	t.Run("Load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "keychain.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"pass":"pw"}`), 0o600))

		p, err := LoadKeychainParams(path)
		require.NoError(t, err)
		assert.Equal(t, "pw", p.Pass)
		assert.Nil(t, p.DEK)

		_, err = LoadKeychainParams(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Log("✅ KeychainParams 测试通过")
}
