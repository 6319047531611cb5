// Package config 定义默认网络栈配置的数据模型
//
// Configuration 是装配器的输出：一次装配生成一个实例，装配器不保留引用，
// 调用方将其原样交给节点构造流程。
//
// 配置按照关注点组织：
//   - Identity / NameResolution: 调用方透传的身份私钥与名称解析器
//   - ListenAddresses: 监听地址模式
//   - Transports / ConnectionEncrypters / StreamMuxers: 连接建立的三层选择
//   - PeerDiscovery: 节点发现机制
//   - Services: 以服务名为键的协议服务
//
// 使用示例:
//
//	cfg := assembler.New(types.EnvironmentHost, runtime).Assemble(assembler.Options{})
//	if err := cfg.Validate(); err != nil {
//	    // 组合不一致：缺少必需服务或能力与环境不匹配
//	}
package config

import (
	"github.com/libp2p/go-libp2p/core/crypto"
	ma "github.com/multiformats/go-multiaddr"
	madns "github.com/multiformats/go-multiaddr-dns"

	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

// Configuration 装配完成的网络栈配置
type Configuration struct {
	// Environment 生成该配置的运行环境
	Environment types.Environment

	// Identity 身份私钥（可选，原样透传）
	Identity crypto.PrivKey

	// NameResolution 名称解析器覆盖（可选，原样透传）
	NameResolution *madns.Resolver

	// ListenAddresses 监听地址，顺序仅影响可读性
	ListenAddresses []ma.Multiaddr

	// Transports 传输选择，至少一个支持主动拨号
	Transports []Transport

	// ConnectionEncrypters 加密握手选择，按顺序尝试
	ConnectionEncrypters []Encrypter

	// StreamMuxers 流多路复用选择，按顺序协商
	StreamMuxers []Muxer

	// PeerDiscovery 节点发现机制，可以为空
	PeerDiscovery []Discovery

	// Services 服务名到服务配置的映射
	Services Services
}

// AgentVersion 返回身份交换服务中携带的节点标识字符串
func (c *Configuration) AgentVersion() string {
	if id, ok := c.Services[ServiceIdentify].(Identify); ok {
		return id.AgentVersion
	}
	return ""
}

// ListenAddressStrings 返回监听地址的字符串形式
func (c *Configuration) ListenAddressStrings() []string {
	out := make([]string, 0, len(c.ListenAddresses))
	for _, addr := range c.ListenAddresses {
		out = append(out, addr.String())
	}
	return out
}
