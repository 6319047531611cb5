package node

import (
	"context"
	"testing"
	"time"

	"github.com/ipfs/boxo/routing/http/client"
	ds "github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
	madns "github.com/multiformats/go-multiaddr-dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/internal/assembler"
	"github.com/dep2p/go-dep2p-defaults/internal/keychain"
	"github.com/dep2p/go-dep2p-defaults/pkg/lib/lazy"
	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

var testRuntime = assembler.RuntimeInfo{
	Package:    assembler.Component{Name: "node-test", Version: "0.0.1"},
	Library:    assembler.Component{Name: "go-libp2p", Version: "v0.36.5"},
	Descriptor: "test",
}

func assemble(env types.Environment, opts assembler.Options) *config.Configuration {
	return assembler.New(env, testRuntime).Assemble(opts)
}

// TestHostOptions 测试配置渲染为 host 选项
func TestHostOptions(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.Nil(t, HostOptions(nil))
	})

	t.Run("Host", func(t *testing.T) {
		cfg := assemble(types.EnvironmentHost, assembler.Options{})
		// 监听 1 + 传输 3 + 加密 2 + 多路复用 2
		// + 服务（NAT 服务、端口映射、打洞、中继服务、UserAgent、Ping）6
		assert.Len(t, HostOptions(cfg), 14)
	})

	t.Run("HostWithIdentity", func(t *testing.T) {
		priv, _, err := crypto.GenerateEd25519Key(nil)
		require.NoError(t, err)
		cfg := assemble(types.EnvironmentHost, assembler.Options{PrivateKey: priv})
		assert.Len(t, HostOptions(cfg), 15)
	})

	t.Run("HostWithResolver", func(t *testing.T) {
		r, err := madns.NewResolver()
		require.NoError(t, err)
		cfg := assemble(types.EnvironmentHost, assembler.Options{Resolver: r})
		require.Same(t, r, cfg.NameResolution)
		assert.Len(t, HostOptions(cfg), 15)
	})

	t.Run("Sandboxed", func(t *testing.T) {
		cfg := assemble(types.EnvironmentSandboxed, assembler.Options{})
		// 监听 1 + 传输 2 + 加密 1 + 多路复用 2 + 服务（打洞、UserAgent、Ping）3
		assert.Len(t, HostOptions(cfg), 9)
	})

	t.Run("NoRelayTransport", func(t *testing.T) {
		cfg := assemble(types.EnvironmentSandboxed, assembler.Options{})
		cfg.Transports = cfg.Transports[1:]
		// 去掉中继传输后补 DisableRelay，数量不变
		assert.Len(t, HostOptions(cfg), 9)
	})

	t.Run("NoListenAddresses", func(t *testing.T) {
		cfg := assemble(types.EnvironmentSandboxed, assembler.Options{})
		cfg.ListenAddresses = nil
		assert.Len(t, HostOptions(cfg), 9)
	})

	t.Log("✅ HostOptions 测试通过")
}

// TestDHTMode 测试 DHT 模式映射
func TestDHTMode(t *testing.T) {
	assert.Equal(t, dht.ModeClient, dhtMode(config.DHTModeClient))
	assert.Equal(t, dht.ModeAuto, dhtMode(config.DHTModeAuto))
	assert.Equal(t, dht.ModeAuto, dhtMode(config.DHTMode(9)))
}

// TestModule_Validate 测试 fx 依赖图
func TestModule_Validate(t *testing.T) {
	for _, env := range []types.Environment{types.EnvironmentHost, types.EnvironmentSandboxed} {
		cfg := assemble(env, assembler.Options{})
		err := fx.ValidateApp(
			Module(cfg),
			WithNopLogger(),
			fx.Invoke(func(host.Host, *dht.IpfsDHT, *keychain.Keychain, *lazy.Value[*client.Client]) {}),
		)
		assert.NoError(t, err, env.String())
	}

	t.Log("✅ fx 依赖图校验通过")
}

// TestModule_MissingService 测试服务缺失时构造失败
func TestModule_MissingService(t *testing.T) {
	cfg := assemble(types.EnvironmentSandboxed, assembler.Options{})
	delete(cfg.Services, config.ServiceDelegatedRouting)

	app := fx.New(
		Module(cfg),
		WithNopLogger(),
		fx.Invoke(func(*lazy.Value[*client.Client]) {}),
	)
	err := app.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ServiceDelegatedRouting)
}

// TestModule_Start 测试沙箱配置的节点启动与停止
func TestModule_Start(t *testing.T) {
	priv, _, err := crypto.GenerateEd25519Key(nil)
	require.NoError(t, err)
	cfg := assemble(types.EnvironmentSandboxed, assembler.Options{PrivateKey: priv})

	store := dssync.MutexWrap(ds.NewMapDatastore())

	var (
		h  host.Host
		d  *dht.IpfsDHT
		kc *keychain.Keychain
		dr *lazy.Value[*client.Client]
	)
	app := fxtest.New(t,
		Module(cfg),
		fx.Provide(func() ds.Datastore { return store }),
		fx.Populate(&h, &d, &kc, &dr),
	)
	app.RequireStart()
	defer app.RequireStop()

	id, err := peer.IDFromPrivateKey(priv)
	require.NoError(t, err)
	assert.Equal(t, id, h.ID())
	assert.Equal(t, dht.ModeClient, d.Mode())
	assert.False(t, dr.Initialized(), "委托路由客户端应延迟构造")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	self, err := kc.Export(ctx, keychain.SelfKeyName)
	require.NoError(t, err)
	assert.True(t, priv.Equals(self))

	t.Log("✅ 节点启动测试通过")
}

// TestModule_StartHost 测试主机配置（含名称解析覆盖）的节点启动与停止
func TestModule_StartHost(t *testing.T) {
	r, err := madns.NewResolver()
	require.NoError(t, err)
	cfg := assemble(types.EnvironmentHost, assembler.Options{Resolver: r})
	require.Len(t, cfg.PeerDiscovery, 1)

	var (
		h host.Host
		d *dht.IpfsDHT
	)
	app := fxtest.New(t,
		Module(cfg),
		fx.Populate(&h, &d),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Equal(t, dht.ModeAuto, d.Mode())

	tcp := 0
	for _, addr := range h.Network().ListenAddresses() {
		if _, err := addr.ValueForProtocol(ma.P_TCP); err == nil {
			tcp++
		}
	}
	assert.Positive(t, tcp, "主机配置应监听 TCP")

	t.Log("✅ 主机节点启动测试通过")
}
