package keychain

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"

	"golang.org/x/crypto/argon2"
)

// 条目格式：
//
//   ┌────────────────────────────────────────────────────────────┐
//   │  Version:   uint8                                           │
//   │  Encrypted: uint8 (0=否, 1=是)                              │
//   │  Data:      序列化私钥或加密数据                             │
//   └────────────────────────────────────────────────────────────┘
//
//   加密数据格式：
//   ┌────────────────────────────────────────────────────────────┐
//   │  Salt:       16 bytes（Argon2 盐）                          │
//   │  Nonce:      12 bytes                                       │
//   │  Ciphertext: 变长（AES-256-GCM）                            │
//   └────────────────────────────────────────────────────────────┘

const (
	entryVersion = 1

	saltSize  = 16
	nonceSize = 12

	// Argon2 参数
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
)

// encodeEntry 编码条目，dek 非空时加密
func encodeEntry(raw, dek []byte) ([]byte, error) {
	if dek == nil {
		out := make([]byte, 0, 2+len(raw))
		out = append(out, entryVersion, 0)
		return append(out, raw...), nil
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	gcm, err := entryCipher(dek, salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	out := make([]byte, 0, 2+saltSize+nonceSize+len(raw)+gcm.Overhead())
	out = append(out, entryVersion, 1)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, raw, nil), nil
}

// decodeEntry 解码条目
func decodeEntry(data, dek []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != entryVersion {
		return nil, ErrInvalidEntry
	}
	body := data[2:]
	if data[1] == 0 {
		return body, nil
	}
	if dek == nil {
		return nil, ErrPassRequired
	}
	if len(body) < saltSize+nonceSize {
		return nil, ErrInvalidEntry
	}

	salt := body[:saltSize]
	nonce := body[saltSize : saltSize+nonceSize]
	gcm, err := entryCipher(dek, salt)
	if err != nil {
		return nil, err
	}
	raw, err := gcm.Open(nil, nonce, body[saltSize+nonceSize:], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return raw, nil
}

// entryCipher 由 DEK 与条目盐派生 AES-GCM
func entryCipher(dek, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(dek, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
