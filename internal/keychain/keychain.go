// Package keychain 实现基于数据存储的私钥密钥链
//
// 密钥链参数（口令与 DEK 派生参数）在构造时校验。配置口令时，
// 用 PBKDF2 从口令派生数据加密密钥（DEK），每个条目再以随机盐
// 经 Argon2id 派生 AES-256-GCM 密钥加密存储；未配置口令时条目以明文存储。
package keychain

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"sort"
	"strings"
	"sync"

	ds "github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"
	"github.com/libp2p/go-libp2p/core/crypto"
	"golang.org/x/crypto/pbkdf2"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/internal/util/logger"
)

var log = logger.Logger("keychain")

// keyPrefix 条目在数据存储中的前缀
var keyPrefix = ds.NewKey("/keychain")

// SelfKeyName 节点身份私钥在密钥链中的名称
const SelfKeyName = "self"

// Keychain 私钥密钥链
type Keychain struct {
	store ds.Datastore

	// dek 为 nil 表示明文存储
	dek []byte

	mu sync.Mutex
}

// New 创建密钥链
//
// params 可以为 nil，此时不加密。
func New(store ds.Datastore, params *config.KeychainParams) (*Keychain, error) {
	if store == nil {
		return nil, errors.New("keychain datastore is nil")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid keychain params: %w", err)
	}

	k := &Keychain{store: store}
	if params != nil && params.Pass != "" {
		dek := params.EffectiveDEK()
		k.dek = pbkdf2.Key([]byte(params.Pass), []byte(dek.Salt), dek.IterationCount, dek.KeyLength, hashFunc(dek.Hash))
	}

	log.Debug("密钥链已创建", "encrypted", k.Encrypted())
	return k, nil
}

// Encrypted 条目是否加密存储
func (k *Keychain) Encrypted() bool {
	return k.dek != nil
}

// Has 检查密钥是否存在
func (k *Keychain) Has(ctx context.Context, name string) (bool, error) {
	key, err := entryKey(name)
	if err != nil {
		return false, err
	}
	return k.store.Has(ctx, key)
}

// Import 存入私钥，同名密钥已存在时返回 ErrKeyExists
func (k *Keychain) Import(ctx context.Context, name string, priv crypto.PrivKey) error {
	key, err := entryKey(name)
	if err != nil {
		return err
	}
	if priv == nil {
		return errors.New("private key is nil")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	exists, err := k.store.Has(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrKeyExists, name)
	}

	raw, err := crypto.MarshalPrivateKey(priv)
	if err != nil {
		return fmt.Errorf("marshal private key: %w", err)
	}
	entry, err := encodeEntry(raw, k.dek)
	if err != nil {
		return err
	}
	if err := k.store.Put(ctx, key, entry); err != nil {
		return fmt.Errorf("store key %s: %w", name, err)
	}

	log.Debug("密钥已导入", "name", name, "type", priv.Type().String())
	return nil
}

// Export 取出私钥
func (k *Keychain) Export(ctx context.Context, name string) (crypto.PrivKey, error) {
	key, err := entryKey(name)
	if err != nil {
		return nil, err
	}

	data, err := k.store.Get(ctx, key)
	if errors.Is(err, ds.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	raw, err := decodeEntry(data, k.dek)
	if err != nil {
		return nil, fmt.Errorf("key %s: %w", name, err)
	}
	return crypto.UnmarshalPrivateKey(raw)
}

// Remove 删除私钥
func (k *Keychain) Remove(ctx context.Context, name string) error {
	key, err := entryKey(name)
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	exists, err := k.store.Has(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	return k.store.Delete(ctx, key)
}

// List 返回排序后的密钥名称
func (k *Keychain) List(ctx context.Context) ([]string, error) {
	res, err := k.store.Query(ctx, query.Query{Prefix: keyPrefix.String(), KeysOnly: true})
	if err != nil {
		return nil, err
	}
	entries, err := res.Rest()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, ds.RawKey(e.Key).BaseNamespace())
	}
	sort.Strings(names)
	return names, nil
}

// entryKey 校验名称并返回存储键
func entryKey(name string) (ds.Key, error) {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return ds.Key{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return keyPrefix.ChildString(name), nil
}

func hashFunc(name string) func() hash.Hash {
	if name == config.HashSHA256 {
		return sha256.New
	}
	return sha512.New
}
