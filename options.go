package defaults

import (
	"fmt"
	"os"

	"github.com/libp2p/go-libp2p/core/crypto"
	madns "github.com/multiformats/go-multiaddr-dns"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/internal/assembler"
	"github.com/dep2p/go-dep2p-defaults/internal/resolver"
)

// Option 配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 身份配置
	privateKey      crypto.PrivKey
	identityKeyFile string

	// 名称解析
	resolver  *madns.Resolver
	dnsServer string

	// 密钥链
	keychain     *config.KeychainParams
	keychainFile string

	// 节点标识
	pkg        assembler.Component
	descriptor string
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{
		pkg: assembler.Component{Name: Name, Version: Version},
	}
}

// toAssemblerOptions 解析文件与 DNS 服务器选项，生成装配器输入
func (o *options) toAssemblerOptions() (assembler.Options, error) {
	var out assembler.Options

	// 身份
	if o.privateKey != nil && o.identityKeyFile != "" {
		return out, fmt.Errorf("%w: WithIdentity and WithIdentityFromFile", ErrConflictingOptions)
	}
	out.PrivateKey = o.privateKey
	if o.identityKeyFile != "" {
		priv, err := loadPrivateKey(o.identityKeyFile)
		if err != nil {
			return out, err
		}
		out.PrivateKey = priv
	}

	// 名称解析
	if o.resolver != nil && o.dnsServer != "" {
		return out, fmt.Errorf("%w: WithResolver and WithDNSServer", ErrConflictingOptions)
	}
	out.Resolver = o.resolver
	if o.dnsServer != "" {
		rcfg := resolver.DefaultConfig()
		rcfg.Server = o.dnsServer
		r, err := resolver.New(rcfg)
		if err != nil {
			return out, fmt.Errorf("dns server %q: %w", o.dnsServer, err)
		}
		out.Resolver = r
	}

	// 密钥链
	if o.keychain != nil && o.keychainFile != "" {
		return out, fmt.Errorf("%w: WithKeychain and WithKeychainFile", ErrConflictingOptions)
	}
	out.Keychain = o.keychain
	if o.keychainFile != "" {
		params, err := config.LoadKeychainParams(o.keychainFile)
		if err != nil {
			return out, err
		}
		out.Keychain = params
	}

	return out, nil
}

// loadPrivateKey 读取 libp2p protobuf 编码的私钥文件
func loadPrivateKey(path string) (crypto.PrivKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read identity key file: %w", err)
	}
	priv, err := crypto.UnmarshalPrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("decode identity key file %s: %w", path, err)
	}
	return priv, nil
}

// ============================================================================
//                              身份选项
// ============================================================================

// WithIdentity 使用指定的私钥作为身份
//
// 私钥原样透传给节点构造流程，不出现在任何描述性输出中。
func WithIdentity(key crypto.PrivKey) Option {
	return func(o *options) error {
		if key == nil {
			return fmt.Errorf("%w: private key is nil", ErrInvalidOption)
		}
		o.privateKey = key
		return nil
	}
}

// WithIdentityFromFile 从文件加载身份私钥
//
// 文件内容为 crypto.MarshalPrivateKey 的输出。
func WithIdentityFromFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return fmt.Errorf("%w: identity key file path is empty", ErrInvalidOption)
		}
		o.identityKeyFile = path
		return nil
	}
}

// ============================================================================
//                              名称解析选项
// ============================================================================

// WithResolver 使用指定的名称解析器
func WithResolver(r *madns.Resolver) Option {
	return func(o *options) error {
		if r == nil {
			return fmt.Errorf("%w: resolver is nil", ErrInvalidOption)
		}
		o.resolver = r
		return nil
	}
}

// WithDNSServer 通过指定 DNS 服务器解析 /dns* 地址
//
// 地址格式 "ip" 或 "ip:port"，省略端口时使用 53。
//
//	defaults.Defaults(defaults.WithDNSServer("1.1.1.1"))
func WithDNSServer(addr string) Option {
	return func(o *options) error {
		if addr == "" {
			return fmt.Errorf("%w: dns server is empty", ErrInvalidOption)
		}
		o.dnsServer = addr
		return nil
	}
}

// ============================================================================
//                              密钥链选项
// ============================================================================

// WithKeychain 设置密钥链参数
//
// 参数原样转发给密钥链服务，在节点启动时校验。
func WithKeychain(params *config.KeychainParams) Option {
	return func(o *options) error {
		if params == nil {
			return fmt.Errorf("%w: keychain params are nil", ErrInvalidOption)
		}
		o.keychain = params
		return nil
	}
}

// WithKeychainFile 从 JSON 文件加载密钥链参数
func WithKeychainFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return fmt.Errorf("%w: keychain file path is empty", ErrInvalidOption)
		}
		o.keychainFile = path
		return nil
	}
}

// ============================================================================
//                              节点标识选项
// ============================================================================

// WithAgentPackage 设置节点标识字符串中的调用方包名与版本
//
// 默认为本包的 Name 与 Version。
func WithAgentPackage(name, version string) Option {
	return func(o *options) error {
		if name == "" || version == "" {
			return fmt.Errorf("%w: agent package name and version are required", ErrInvalidOption)
		}
		o.pkg = assembler.Component{Name: name, Version: version}
		return nil
	}
}

// WithRuntimeDescriptor 覆盖节点标识字符串中的运行时描述
func WithRuntimeDescriptor(descriptor string) Option {
	return func(o *options) error {
		if descriptor == "" {
			return fmt.Errorf("%w: runtime descriptor is empty", ErrInvalidOption)
		}
		o.descriptor = descriptor
		return nil
	}
}
