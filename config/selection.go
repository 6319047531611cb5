package config

import (
	"io"

	"github.com/libp2p/go-libp2p"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/protocol"

	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              传输选择
// ════════════════════════════════════════════════════════════════════════════

// Transport 传输能力选择
type Transport struct {
	// Name 传输名称，例如 "tcp"、"websockets"、"circuit-relay"
	Name string

	// CanDial 是否支持主动拨号
	CanDial bool

	// Requires 运行该传输所需的环境能力
	Requires types.Capability

	// Option 启用该传输的 libp2p 选项
	Option libp2p.Option
}

// ════════════════════════════════════════════════════════════════════════════
//                              加密选择
// ════════════════════════════════════════════════════════════════════════════

// Encrypter 连接加密握手选择
type Encrypter struct {
	// ID 握手协议 ID
	ID protocol.ID

	// Requires 所需环境能力
	Requires types.Capability

	// Constructor 安全传输构造函数（交给 libp2p.Security）
	Constructor any
}

// ════════════════════════════════════════════════════════════════════════════
//                              多路复用选择
// ════════════════════════════════════════════════════════════════════════════

// Muxer 流多路复用协议选择
type Muxer struct {
	// ID 多路复用协议 ID
	ID protocol.ID

	// Requires 所需环境能力
	Requires types.Capability

	// Multiplexer 多路复用实现
	Multiplexer network.Multiplexer
}

// ════════════════════════════════════════════════════════════════════════════
//                              发现选择
// ════════════════════════════════════════════════════════════════════════════

// PeerFoundFunc 发现节点时的回调
type PeerFoundFunc func(peer.AddrInfo)

// DiscoveryService 运行中的发现服务
type DiscoveryService interface {
	Start() error
	io.Closer
}

// Discovery 节点发现机制选择
type Discovery struct {
	// Name 发现机制名称
	Name string

	// Requires 所需环境能力
	Requires types.Capability

	// New 在主机创建后构造发现服务
	New func(h host.Host, found PeerFoundFunc) DiscoveryService
}
