package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// 密钥派生参数下限
const (
	// MinDEKKeyLength 派生密钥最小长度（字节），112 位
	MinDEKKeyLength = 14

	// MinDEKSaltLength 盐最小长度（字节），128 位
	MinDEKSaltLength = 16

	// MinDEKIterationCount PBKDF2 最小迭代次数
	MinDEKIterationCount = 1000
)

// 支持的 DEK 哈希算法
const (
	HashSHA256 = "sha2-256"
	HashSHA512 = "sha2-512"
)

// KeychainParams 密钥链参数
//
// 装配器不解释也不校验这些参数，只原样转发给密钥链服务；
// 校验发生在密钥链构造时。
type KeychainParams struct {
	// Pass 用于派生数据加密密钥（DEK）的口令
	// 为空时密钥以明文形式存入数据存储
	Pass string `json:"pass,omitempty"`

	// DEK 数据加密密钥派生参数，为 nil 时使用 DefaultDEKParams
	DEK *DEKParams `json:"dek,omitempty"`
}

// DEKParams 数据加密密钥派生参数（PBKDF2）
type DEKParams struct {
	// KeyLength 派生密钥长度（字节）
	KeyLength int `json:"keyLength"`

	// IterationCount 迭代次数
	IterationCount int `json:"iterationCount"`

	// Salt 盐
	Salt string `json:"salt"`

	// Hash 哈希算法: "sha2-256" 或 "sha2-512"
	Hash string `json:"hash"`
}

// DefaultDEKParams 返回默认 DEK 派生参数
//
// 默认盐是公开常量，生产环境必须替换为随机值。
func DefaultDEKParams() DEKParams {
	return DEKParams{
		KeyLength:      512 / 8,
		IterationCount: 10000,
		Salt:           "you should override this value with a crypto secure random number",
		Hash:           HashSHA512,
	}
}

// Validate 验证 DEK 参数
func (p DEKParams) Validate() error {
	if p.KeyLength < MinDEKKeyLength {
		return fmt.Errorf("dek key length must be at least %d bytes", MinDEKKeyLength)
	}
	if len(p.Salt) < MinDEKSaltLength {
		return fmt.Errorf("dek salt must be at least %d bytes", MinDEKSaltLength)
	}
	if p.IterationCount < MinDEKIterationCount {
		return fmt.Errorf("dek iteration count must be at least %d", MinDEKIterationCount)
	}
	switch p.Hash {
	case HashSHA256, HashSHA512:
	default:
		return fmt.Errorf("dek hash must be %q or %q", HashSHA256, HashSHA512)
	}
	return nil
}

// WithSalt 设置盐
func (p DEKParams) WithSalt(salt string) DEKParams {
	p.Salt = salt
	return p
}

// WithIterationCount 设置迭代次数
func (p DEKParams) WithIterationCount(n int) DEKParams {
	p.IterationCount = n
	return p
}

// EffectiveDEK 返回实际使用的 DEK 参数
func (p *KeychainParams) EffectiveDEK() DEKParams {
	if p == nil || p.DEK == nil {
		return DefaultDEKParams()
	}
	return *p.DEK
}

// Validate 验证密钥链参数，nil 参数有效
func (p *KeychainParams) Validate() error {
	if p == nil {
		return nil
	}
	if p.Pass == "" {
		if p.DEK != nil {
			return errors.New("keychain dek params given without a pass")
		}
		return nil
	}
	return p.EffectiveDEK().Validate()
}

// ParseKeychainParams 从 JSON 解析密钥链参数
//
// 示例 JSON:
//
//	{
//	  "pass": "correct horse battery staple",
//	  "dek": {"keyLength": 64, "iterationCount": 10000, "salt": "...", "hash": "sha2-512"}
//	}
func ParseKeychainParams(data []byte) (*KeychainParams, error) {
	var p KeychainParams
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keychain params: %w", err)
	}
	return &p, nil
}

// LoadKeychainParams 从 JSON 文件加载密钥链参数
func LoadKeychainParams(path string) (*KeychainParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keychain params: %w", err)
	}
	return ParseKeychainParams(data)
}
