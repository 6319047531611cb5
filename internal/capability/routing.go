package capability

import (
	"fmt"

	"github.com/ipfs/boxo/ipns"
	"github.com/ipfs/boxo/routing/http/client"
	record "github.com/libp2p/go-libp2p-record"
	"github.com/libp2p/go-libp2p/core/peerstore"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/internal/util/logger"
	"github.com/dep2p/go-dep2p-defaults/pkg/lib/lazy"
)

var log = logger.Logger("capability")

// DefaultDelegatedRoutingEndpoint 公共委托路由服务地址
const DefaultDelegatedRoutingEndpoint = "https://delegated-ipfs.dev"

// 记录命名空间
const (
	NamespacePK   = "pk"
	NamespaceIPNS = "ipns"
)

// DefaultDelegatedProtocolFilter 委托路由返回的提供者协议过滤
func DefaultDelegatedProtocolFilter() []string {
	return []string{"unknown", "transport-bitswap", "transport-ipfs-gateway-http"}
}

// DefaultDelegatedAddrFilter 委托路由返回的地址协议过滤
func DefaultDelegatedAddrFilter() []string {
	return []string{"https", "webtransport", "webrtc", "webrtc-direct", "wss", "tls"}
}

// NamingValidators 命名系统记录的校验器与选择器
//
// 公钥记录（pk）与 IPNS 记录（ipns）。IPNS 校验器从密钥簿中查找
// 记录中未内嵌的公钥，并在多个有效记录中选出序号最高者。
func NamingValidators() map[string]config.ValidatorFactory {
	return map[string]config.ValidatorFactory{
		NamespacePK: func(peerstore.KeyBook) record.Validator {
			return record.PublicKeyValidator{}
		},
		NamespaceIPNS: func(kb peerstore.KeyBook) record.Validator {
			return ipns.Validator{KeyBook: kb}
		},
	}
}

// NamespacedValidator 用密钥簿实例化全部校验器
func NamespacedValidator(factories map[string]config.ValidatorFactory, kb peerstore.KeyBook) record.NamespacedValidator {
	nsval := make(record.NamespacedValidator, len(factories))
	for ns, factory := range factories {
		nsval[ns] = factory(kb)
	}
	return nsval
}

// DelegatedRoutingClient 返回延迟构造的委托路由客户端
//
// 客户端在节点运行时首次调用 Get 时才构造。
func DelegatedRoutingClient(endpoint, agentVersion string, protocolFilter, addrFilter []string) *lazy.Value[*client.Client] {
	return lazy.New(func() (*client.Client, error) {
		log.Debug("构造委托路由客户端", "endpoint", endpoint)
		c, err := client.New(endpoint,
			client.WithUserAgent(agentVersion),
			client.WithProtocolFilter(protocolFilter),
			client.WithAddrFilter(addrFilter),
		)
		if err != nil {
			return nil, fmt.Errorf("delegated routing client %s: %w", endpoint, err)
		}
		return c, nil
	})
}
