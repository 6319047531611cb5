//go:build !js

package capability

import (
	"github.com/libp2p/go-libp2p"
	"github.com/libp2p/go-libp2p/p2p/transport/tcp"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

// TCP 直连 TCP 传输
func TCP() config.Transport {
	return config.Transport{
		Name:     TransportTCP,
		CanDial:  true,
		Requires: types.CapRawSockets,
		Option:   libp2p.Transport(tcp.NewTCPTransport),
	}
}
