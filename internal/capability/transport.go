package capability

import (
	"github.com/libp2p/go-libp2p"
	"github.com/libp2p/go-libp2p/p2p/transport/websocket"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

// 传输名称
const (
	TransportCircuitRelay = "circuit-relay"
	TransportTCP          = "tcp"
	TransportWebSockets   = "websockets"
)

// CircuitRelay 中继电路传输（客户端）
//
// 通过中继节点拨号，并可在 /p2p-circuit 上接受经中继转发的连接。
func CircuitRelay() config.Transport {
	return config.Transport{
		Name:     TransportCircuitRelay,
		CanDial:  true,
		Requires: types.CapNone,
		Option:   libp2p.EnableRelay(),
	}
}

// WebSockets WebSocket 传输
func WebSockets() config.Transport {
	return config.Transport{
		Name:     TransportWebSockets,
		CanDial:  true,
		Requires: types.CapNone,
		Option:   libp2p.Transport(websocket.New),
	}
}
