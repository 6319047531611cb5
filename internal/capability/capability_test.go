package capability

import (
	"testing"

	"github.com/ipfs/boxo/ipns"
	record "github.com/libp2p/go-libp2p-record"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/p2p/host/peerstore/pstoremem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

func TestTransports(t *testing.T) {
	t.Run("CircuitRelay", func(t *testing.T) {
		tr := CircuitRelay()
		assert.Equal(t, TransportCircuitRelay, tr.Name)
		assert.True(t, tr.CanDial)
		assert.Equal(t, types.CapNone, tr.Requires)
		assert.NotNil(t, tr.Option)
	})

	t.Run("TCP", func(t *testing.T) {
		tr := TCP()
		assert.Equal(t, TransportTCP, tr.Name)
		assert.Equal(t, types.CapRawSockets, tr.Requires)
		assert.NotNil(t, tr.Option)
	})

	t.Run("WebSockets", func(t *testing.T) {
		tr := WebSockets()
		assert.Equal(t, TransportWebSockets, tr.Name)
		assert.True(t, tr.CanDial)
		assert.Equal(t, types.CapNone, tr.Requires)
	})

	t.Log("✅ 传输选择测试通过")
}

func TestUpgradeStack(t *testing.T) {
	assert.Equal(t, "/noise", string(Noise().ID))
	assert.Equal(t, types.CapNone, Noise().Requires)
	assert.Equal(t, "/tls/1.0.0", string(TLS().ID))
	assert.Equal(t, types.CapRawSockets, TLS().Requires)

	assert.Equal(t, "/yamux/1.0.0", string(Yamux().ID))
	assert.NotNil(t, Yamux().Multiplexer)
	assert.Equal(t, "/mplex/6.7.0", string(Mplex().ID))
	assert.NotNil(t, Mplex().Multiplexer)
}

func TestMDNS(t *testing.T) {
	d := MDNS("")
	assert.Equal(t, DiscoveryMDNS, d.Name)
	assert.Equal(t, types.CapLocalBroadcast, d.Requires)
	assert.NotNil(t, d.New)

	var got []peer.ID
	n := peerFoundNotifee(func(pi peer.AddrInfo) { got = append(got, pi.ID) })
	n.HandlePeerFound(peer.AddrInfo{ID: "peer-a"})
	assert.Equal(t, []peer.ID{"peer-a"}, got)

	// 空回调不应 panic
	peerFoundNotifee(nil).HandlePeerFound(peer.AddrInfo{})
}

func TestNamingValidators(t *testing.T) {
	factories := NamingValidators()
	require.Len(t, factories, 2)

	kb, err := pstoremem.NewPeerstore()
	require.NoError(t, err)
	defer kb.Close()

	nsval := NamespacedValidator(factories, kb)
	require.Len(t, nsval, 2)

	_, ok := nsval[NamespacePK].(record.PublicKeyValidator)
	assert.True(t, ok, "pk 命名空间应使用公钥校验器")

	v, ok := nsval[NamespaceIPNS].(ipns.Validator)
	require.True(t, ok, "ipns 命名空间应使用 IPNS 校验器")
	assert.NotNil(t, v.KeyBook)

	t.Log("✅ 命名记录校验器测试通过")
}

func TestDelegatedRoutingClient(t *testing.T) {
	h := DelegatedRoutingClient(DefaultDelegatedRoutingEndpoint, "test/1.0.0",
		DefaultDelegatedProtocolFilter(), DefaultDelegatedAddrFilter())
	require.NotNil(t, h)
	assert.False(t, h.Initialized(), "客户端应延迟构造")

	c, err := h.Get()
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.True(t, h.Initialized())

	c2, err := h.Get()
	require.NoError(t, err)
	assert.Same(t, c, c2)
}
