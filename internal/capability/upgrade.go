package capability

import (
	mplex "github.com/libp2p/go-libp2p-mplex"
	"github.com/libp2p/go-libp2p/p2p/muxer/yamux"
	"github.com/libp2p/go-libp2p/p2p/security/noise"
	libp2ptls "github.com/libp2p/go-libp2p/p2p/security/tls"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              加密握手
// ════════════════════════════════════════════════════════════════════════════

// Noise Noise 协议握手
func Noise() config.Encrypter {
	return config.Encrypter{
		ID:          noise.ID,
		Requires:    types.CapNone,
		Constructor: noise.New,
	}
}

// TLS 基于 TLS 1.3 的握手
func TLS() config.Encrypter {
	return config.Encrypter{
		ID:          libp2ptls.ID,
		Requires:    types.CapRawSockets,
		Constructor: libp2ptls.New,
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              流多路复用
// ════════════════════════════════════════════════════════════════════════════

// Yamux 首选多路复用协议
func Yamux() config.Muxer {
	return config.Muxer{
		ID:          yamux.ID,
		Requires:    types.CapNone,
		Multiplexer: yamux.DefaultTransport,
	}
}

// Mplex 兼容旧节点的回退多路复用协议
func Mplex() config.Muxer {
	return config.Muxer{
		ID:          mplex.ID,
		Requires:    types.CapNone,
		Multiplexer: mplex.DefaultTransport,
	}
}
