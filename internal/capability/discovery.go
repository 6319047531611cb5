package capability

import (
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/p2p/discovery/mdns"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

// DiscoveryMDNS mDNS 发现名称
const DiscoveryMDNS = "mdns"

// MDNS 本地网络广播发现
func MDNS(serviceName string) config.Discovery {
	if serviceName == "" {
		serviceName = mdns.ServiceName
	}
	return config.Discovery{
		Name:     DiscoveryMDNS,
		Requires: types.CapLocalBroadcast,
		New: func(h host.Host, found config.PeerFoundFunc) config.DiscoveryService {
			return mdns.NewMdnsService(h, serviceName, peerFoundNotifee(found))
		},
	}
}

// peerFoundNotifee 将回调函数适配为 mdns.Notifee
type peerFoundNotifee config.PeerFoundFunc

func (f peerFoundNotifee) HandlePeerFound(pi peer.AddrInfo) {
	if f != nil {
		f(pi)
	}
}
