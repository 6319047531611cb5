package node

import (
	"github.com/libp2p/go-libp2p"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/internal/capability"
)

// HostOptions 将配置渲染为 go-libp2p 选项
//
// DHT、委托路由与密钥链不属于 host 选项，由 Module 构造。
// 渲染结果顺序确定：身份、解析器、监听地址、传输、加密、多路复用、服务。
func HostOptions(cfg *config.Configuration) []libp2p.Option {
	if cfg == nil {
		return nil
	}

	var opts []libp2p.Option

	if cfg.Identity != nil {
		opts = append(opts, libp2p.Identity(cfg.Identity))
	}
	if cfg.NameResolution != nil {
		opts = append(opts, libp2p.MultiaddrResolver(cfg.NameResolution))
	}

	// 显式给出监听地址，空列表也要覆盖 go-libp2p 的默认监听
	if len(cfg.ListenAddresses) > 0 {
		opts = append(opts, libp2p.ListenAddrs(cfg.ListenAddresses...))
	} else {
		opts = append(opts, libp2p.NoListenAddrs)
	}

	relay := false
	for _, t := range cfg.Transports {
		if t.Name == capability.TransportCircuitRelay {
			relay = true
		}
		if t.Option != nil {
			opts = append(opts, t.Option)
		}
	}
	if !relay {
		opts = append(opts, libp2p.DisableRelay())
	}

	for _, e := range cfg.ConnectionEncrypters {
		opts = append(opts, libp2p.Security(string(e.ID), e.Constructor))
	}
	for _, m := range cfg.StreamMuxers {
		opts = append(opts, libp2p.Muxer(string(m.ID), m.Multiplexer))
	}

	return append(opts, serviceOptions(cfg.Services)...)
}

// serviceOptions 渲染由 host 内建实现的服务
func serviceOptions(services config.Services) []libp2p.Option {
	var opts []libp2p.Option
	ping := false

	for _, key := range services.Keys() {
		switch svc := services[key].(type) {
		case config.AutoNAT:
			// 可达性探测客户端始终开启，这里只决定是否为他人提供探测
			if svc.ServeProbes {
				opts = append(opts, libp2p.EnableNATService())
			}
		case config.PortMapping:
			opts = append(opts, libp2p.NATPortMap())
		case config.HolePunching:
			opts = append(opts, libp2p.EnableHolePunching())
		case config.RelayServer:
			opts = append(opts, libp2p.EnableRelayService())
		case config.Identify:
			if !svc.Push && svc.AgentVersion != "" {
				opts = append(opts, libp2p.UserAgent(svc.AgentVersion))
			}
		case config.Ping:
			ping = true
		}
	}

	return append(opts, libp2p.Ping(ping))
}
