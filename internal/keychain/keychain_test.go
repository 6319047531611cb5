package keychain

import (
	"context"
	"testing"

	ds "github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-dep2p-defaults/config"
)

func newStore() ds.Datastore {
	return dssync.MutexWrap(ds.NewMapDatastore())
}

func newKey(t *testing.T) crypto.PrivKey {
	t.Helper()
	priv, _, err := crypto.GenerateEd25519Key(nil)
	require.NoError(t, err)
	return priv
}

func testParams() *config.KeychainParams {
	dek := config.DefaultDEKParams().
		WithSalt("0123456789abcdef0123456789abcdef").
		WithIterationCount(config.MinDEKIterationCount)
	return &config.KeychainParams{Pass: "correct horse battery staple", DEK: &dek}
}

func TestNew(t *testing.T) {
	t.Run("NilParams", func(t *testing.T) {
		k, err := New(newStore(), nil)
		require.NoError(t, err)
		assert.False(t, k.Encrypted())
	})

	t.Run("WithPass", func(t *testing.T) {
		k, err := New(newStore(), testParams())
		require.NoError(t, err)
		assert.True(t, k.Encrypted())
	})

	t.Run("InvalidParams", func(t *testing.T) {
		p := testParams()
		p.DEK.Salt = "short"
		_, err := New(newStore(), p)
		assert.Error(t, err)
	})

	t.Run("NilStore", func(t *testing.T) {
		_, err := New(nil, nil)
		assert.Error(t, err)
	})

	t.Log("✅ 密钥链构造测试通过")
}

func TestKeychain(t *testing.T) {
	ctx := context.Background()

	for name, params := range map[string]*config.KeychainParams{
		"Plain":     nil,
		"Encrypted": testParams(),
	} {
		t.Run(name, func(t *testing.T) {
			k, err := New(newStore(), params)
			require.NoError(t, err)
			priv := newKey(t)

			has, err := k.Has(ctx, "alice")
			require.NoError(t, err)
			assert.False(t, has)

			require.NoError(t, k.Import(ctx, "alice", priv))
			assert.ErrorIs(t, k.Import(ctx, "alice", priv), ErrKeyExists)

			got, err := k.Export(ctx, "alice")
			require.NoError(t, err)
			assert.True(t, priv.Equals(got))

			require.NoError(t, k.Import(ctx, SelfKeyName, newKey(t)))
			names, err := k.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"alice", SelfKeyName}, names)

			require.NoError(t, k.Remove(ctx, "alice"))
			assert.ErrorIs(t, k.Remove(ctx, "alice"), ErrKeyNotFound)
			_, err = k.Export(ctx, "alice")
			assert.ErrorIs(t, err, ErrKeyNotFound)
		})
	}

	t.Log("✅ 密钥链读写测试通过")
}

func TestKeychain_InvalidName(t *testing.T) {
	ctx := context.Background()
	k, err := New(newStore(), nil)
	require.NoError(t, err)

	for _, name := range []string{"", "a/b", `a\b`} {
		assert.ErrorIs(t, k.Import(ctx, name, newKey(t)), ErrInvalidName, name)
		_, err := k.Export(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestKeychain_Encryption(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	priv := newKey(t)

	k, err := New(store, testParams())
	require.NoError(t, err)
	require.NoError(t, k.Import(ctx, "alice", priv))

	t.Run("CiphertextOnDisk", func(t *testing.T) {
		raw, err := crypto.MarshalPrivateKey(priv)
		require.NoError(t, err)
		stored, err := store.Get(ctx, keyPrefix.ChildString("alice"))
		require.NoError(t, err)
		assert.NotContains(t, string(stored), string(raw))
	})

	t.Run("WrongPass", func(t *testing.T) {
		p := testParams()
		p.Pass = "wrong"
		other, err := New(store, p)
		require.NoError(t, err)
		_, err = other.Export(ctx, "alice")
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})

	t.Run("NoPass", func(t *testing.T) {
		plain, err := New(store, nil)
		require.NoError(t, err)
		_, err = plain.Export(ctx, "alice")
		assert.ErrorIs(t, err, ErrPassRequired)
	})

	t.Run("Reopen", func(t *testing.T) {
		again, err := New(store, testParams())
		require.NoError(t, err)
		got, err := again.Export(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, priv.Equals(got))
	})
}

func TestDecodeEntry_Invalid(t *testing.T) {
	_, err := decodeEntry(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = decodeEntry([]byte{9, 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = decodeEntry([]byte{entryVersion, 1, 1, 2, 3}, []byte("dek"))
	assert.ErrorIs(t, err, ErrInvalidEntry)
}
