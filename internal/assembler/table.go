package assembler

import (
	ma "github.com/multiformats/go-multiaddr"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/internal/capability"
	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              能力表
// ════════════════════════════════════════════════════════════════════════════
//
// 每类选择项按最终顺序列出全部候选，候选自身声明所需能力（Requires），
// 装配时保留需求被环境满足的候选。新增能力模块只需在表中追加一行，
// 两种环境不会各自维护一份列表。
//
//   ┌──────────────┬──────────────────────────┬───────────────────────────┐
//   │ 类别         │ 候选（按顺序）           │ 所需能力                  │
//   ├──────────────┼──────────────────────────┼───────────────────────────┤
//   │ 监听地址     │ /ip4/0.0.0.0/tcp/0       │ raw-sockets               │
//   │              │ /ip6/::/tcp/0            │ raw-sockets               │
//   │              │ /p2p-circuit             │ -                         │
//   │ 传输         │ circuit-relay, tcp, ws   │ tcp: raw-sockets          │
//   │ 加密         │ noise, tls               │ tls: raw-sockets          │
//   │ 多路复用     │ yamux, mplex             │ -                         │
//   │ 发现         │ mdns                     │ local-broadcast           │
//   │ 服务 upnp    │ 端口映射                 │ raw-sockets|local-bcast   │
//   │ 服务 relay   │ 中继服务端               │ accept-inbound            │
//   └──────────────┴──────────────────────────┴───────────────────────────┘

// listenCandidate 监听地址候选
type listenCandidate struct {
	addr     ma.Multiaddr
	requires types.Capability
}

var listenTable = []listenCandidate{
	{ma.StringCast("/ip4/0.0.0.0/tcp/0"), types.CapRawSockets},
	{ma.StringCast("/ip6/::/tcp/0"), types.CapRawSockets},
	{ma.StringCast("/p2p-circuit"), types.CapNone},
}

var transportTable = []func() config.Transport{
	capability.CircuitRelay,
	capability.TCP,
	capability.WebSockets,
}

// noise 在前，tls 只在 noise 协商失败后尝试
var encrypterTable = []func() config.Encrypter{
	capability.Noise,
	capability.TLS,
}

// yamux 为首选，mplex 兼容旧节点
var muxerTable = []func() config.Muxer{
	capability.Yamux,
	capability.Mplex,
}

var discoveryTable = []func() config.Discovery{
	func() config.Discovery { return capability.MDNS("") },
}

// buildContext 构造服务时可用的输入
type buildContext struct {
	caps  types.Capability
	opts  Options
	agent string
}

// serviceEntry 服务候选
//
// requires 决定服务键是否出现；服务参数可以进一步依赖能力（如 DHT 模式）。
type serviceEntry struct {
	key      string
	requires types.Capability
	build    func(b *buildContext) config.Service
}

var serviceTable = []serviceEntry{
	{config.ServiceAutoNAT, types.CapNone, func(b *buildContext) config.Service {
		return config.AutoNAT{ServeProbes: b.caps.Has(types.CapAcceptInbound)}
	}},
	{config.ServiceDCUtR, types.CapNone, func(*buildContext) config.Service {
		return config.HolePunching{}
	}},
	{config.ServiceDelegatedRouting, types.CapNone, func(b *buildContext) config.Service {
		protocols := capability.DefaultDelegatedProtocolFilter()
		addrs := capability.DefaultDelegatedAddrFilter()
		return config.DelegatedRouting{
			Endpoint:       capability.DefaultDelegatedRoutingEndpoint,
			ProtocolFilter: protocols,
			AddrFilter:     addrs,
			Client: capability.DelegatedRoutingClient(
				capability.DefaultDelegatedRoutingEndpoint, b.agent, protocols, addrs),
		}
	}},
	{config.ServiceDHT, types.CapNone, func(b *buildContext) config.Service {
		mode := config.DHTModeClient
		if b.caps.Has(types.CapAcceptInbound) {
			mode = config.DHTModeAuto
		}
		return config.DHT{Mode: mode, Validators: capability.NamingValidators()}
	}},
	{config.ServiceIdentify, types.CapNone, func(b *buildContext) config.Service {
		return config.Identify{AgentVersion: b.agent}
	}},
	{config.ServiceIdentifyPush, types.CapNone, func(b *buildContext) config.Service {
		return config.Identify{AgentVersion: b.agent, Push: true}
	}},
	{config.ServiceKeychain, types.CapNone, func(b *buildContext) config.Service {
		return config.Keychain{Params: b.opts.Keychain}
	}},
	{config.ServicePing, types.CapNone, func(*buildContext) config.Service {
		return config.Ping{}
	}},
	{config.ServiceRelay, types.CapAcceptInbound, func(*buildContext) config.Service {
		return config.RelayServer{}
	}},
	{config.ServiceUPnP, types.CapRawSockets | types.CapLocalBroadcast, func(*buildContext) config.Service {
		return config.PortMapping{Protocol: "upnp"}
	}},
}

// selectFor 按表顺序构造候选，保留能力需求被满足的项
func selectFor[T any](caps types.Capability, table []func() T, requires func(T) types.Capability) []T {
	out := make([]T, 0, len(table))
	for _, build := range table {
		item := build()
		if caps.Has(requires(item)) {
			out = append(out, item)
		}
	}
	return out
}
