// Package assembler 实现按运行环境装配默认网络栈配置
//
// 两种环境（sandboxed / host）共享同一个参数化装配器，差异完全由
// 环境能力集合与 table.go 中的能力表决定。
//
// 装配流程：
//
//	Options ──▶ 节点标识字符串 ──▶ 监听地址 ──▶ 传输 ──▶ 加密 ──▶ 多路复用
//	        ──▶ 发现 ──▶ 服务 ──▶ *config.Configuration
//
// 装配器不做 I/O、不启动 goroutine、不会失败；
// 选项形状的校验推迟到能力模块在节点启动时进行。
package assembler

import (
	"github.com/libp2p/go-libp2p/core/crypto"
	ma "github.com/multiformats/go-multiaddr"
	madns "github.com/multiformats/go-multiaddr-dns"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/internal/util/logger"
	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

var log = logger.Logger("assembler")

// Options 调用方选项，全部可选
type Options struct {
	// PrivateKey 身份私钥，原样透传
	PrivateKey crypto.PrivKey

	// Resolver 名称解析器覆盖，原样透传
	Resolver *madns.Resolver

	// Keychain 密钥链参数，原样转发给密钥链服务
	Keychain *config.KeychainParams
}

// Assembler 默认配置装配器
type Assembler struct {
	env     types.Environment
	caps    types.Capability
	runtime RuntimeInfo
}

// New 创建指定环境的装配器
func New(env types.Environment, runtime RuntimeInfo) *Assembler {
	return &Assembler{
		env:     env,
		caps:    env.Capabilities(),
		runtime: runtime,
	}
}

// Environment 返回装配器对应的环境
func (a *Assembler) Environment() types.Environment {
	return a.env
}

// Capabilities 返回环境能力集合
func (a *Assembler) Capabilities() types.Capability {
	return a.caps
}

// AgentVersion 返回节点标识字符串
func (a *Assembler) AgentVersion() string {
	return FormatAgentVersion(a.runtime)
}

// Assemble 根据选项装配配置
//
// 每次调用返回一个新配置，装配器不保留其引用。
func (a *Assembler) Assemble(opts Options) *config.Configuration {
	b := &buildContext{
		caps:  a.caps,
		opts:  opts,
		agent: a.AgentVersion(),
	}

	cfg := &config.Configuration{
		Environment:     a.env,
		Identity:        opts.PrivateKey,
		NameResolution:  opts.Resolver,
		ListenAddresses: a.listenAddresses(),
		Transports: selectFor(a.caps, transportTable, func(t config.Transport) types.Capability {
			return t.Requires
		}),
		ConnectionEncrypters: selectFor(a.caps, encrypterTable, func(e config.Encrypter) types.Capability {
			return e.Requires
		}),
		StreamMuxers: selectFor(a.caps, muxerTable, func(m config.Muxer) types.Capability {
			return m.Requires
		}),
		PeerDiscovery: selectFor(a.caps, discoveryTable, func(d config.Discovery) types.Capability {
			return d.Requires
		}),
		Services: a.services(b),
	}

	log.Debug("配置装配完成",
		"env", a.env,
		"caps", a.caps,
		"transports", len(cfg.Transports),
		"encrypters", len(cfg.ConnectionEncrypters),
		"discovery", len(cfg.PeerDiscovery),
		"services", cfg.Services.Keys())

	return cfg
}

func (a *Assembler) listenAddresses() []ma.Multiaddr {
	out := make([]ma.Multiaddr, 0, len(listenTable))
	for _, c := range listenTable {
		if a.caps.Has(c.requires) {
			out = append(out, c.addr)
		}
	}
	return out
}

func (a *Assembler) services(b *buildContext) config.Services {
	services := make(config.Services, len(serviceTable))
	for _, entry := range serviceTable {
		if !a.caps.Has(entry.requires) {
			continue
		}
		services[entry.key] = entry.build(b)
	}
	return services
}
