package keychain

import "errors"

var (
	// ErrKeyNotFound 密钥不存在
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyExists 密钥已存在
	ErrKeyExists = errors.New("key already exists")

	// ErrInvalidName 密钥名称无效
	ErrInvalidName = errors.New("invalid key name")

	// ErrInvalidEntry 存储条目格式无效
	ErrInvalidEntry = errors.New("invalid keychain entry")

	// ErrPassRequired 条目已加密但密钥链未配置口令
	ErrPassRequired = errors.New("keychain entry is encrypted but no pass is configured")

	// ErrDecryptionFailed 解密失败（口令错误或数据损坏）
	ErrDecryptionFailed = errors.New("keychain decryption failed")
)
