package node

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ipfs/boxo/routing/http/client"
	ds "github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	"github.com/libp2p/go-libp2p"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/internal/capability"
	"github.com/dep2p/go-dep2p-defaults/internal/keychain"
	"github.com/dep2p/go-dep2p-defaults/internal/util/logger"
	"github.com/dep2p/go-dep2p-defaults/pkg/lib/lazy"
)

var log = logger.Logger("node")

// connectTimeout 发现节点后的连接超时
const connectTimeout = 30 * time.Second

// ErrServiceType 服务键下的配置类型不符
var ErrServiceType = errors.New("unexpected service configuration type")

// Module 返回以配置为输入的 fx 模块
//
// 提供:
//   - host.Host
//   - *dht.IpfsDHT
//   - *keychain.Keychain（数据存储可由外部以 ds.Datastore 注入）
//   - *lazy.Value[*client.Client] 委托路由客户端句柄
func Module(cfg *config.Configuration) fx.Option {
	return fx.Module("node",
		fx.Supply(cfg),
		fx.Provide(
			provideHost,
			provideDHT,
			provideKeychain,
			provideDelegatedRouting,
		),
		fx.Invoke(registerDiscovery),
	)
}

// WithNopLogger 关闭 fx 事件日志
func WithNopLogger() fx.Option {
	return fx.WithLogger(func() fxevent.Logger {
		return &fxevent.ZapLogger{Logger: zap.NewNop()}
	})
}

// ════════════════════════════════════════════════════════════════════════════
//                              Host
// ════════════════════════════════════════════════════════════════════════════

func provideHost(lc fx.Lifecycle, cfg *config.Configuration) (host.Host, error) {
	h, err := libp2p.New(HostOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("create host: %w", err)
	}

	log.Info("节点已创建",
		"peer", h.ID().String(),
		"env", cfg.Environment,
		"addrs", len(h.Addrs()))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return h.Close()
		},
	})
	return h, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              DHT
// ════════════════════════════════════════════════════════════════════════════

func dhtMode(m config.DHTMode) dht.ModeOpt {
	switch m {
	case config.DHTModeClient:
		return dht.ModeClient
	default:
		return dht.ModeAuto
	}
}

func provideDHT(lc fx.Lifecycle, h host.Host, cfg *config.Configuration) (*dht.IpfsDHT, error) {
	svc, ok := cfg.Services[config.ServiceDHT].(config.DHT)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceType, config.ServiceDHT)
	}

	d, err := dht.New(context.Background(), h,
		dht.Mode(dhtMode(svc.Mode)),
		dht.Validator(capability.NamespacedValidator(svc.Validators, h.Peerstore())),
	)
	if err != nil {
		return nil, fmt.Errorf("create dht: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return d.Bootstrap(ctx)
		},
		OnStop: func(context.Context) error {
			return d.Close()
		},
	})
	return d, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              密钥链
// ════════════════════════════════════════════════════════════════════════════

type keychainInput struct {
	fx.In
	LC    fx.Lifecycle
	Cfg   *config.Configuration
	Store ds.Datastore `optional:"true"`
}

func provideKeychain(in keychainInput) (*keychain.Keychain, error) {
	svc, ok := in.Cfg.Services[config.ServiceKeychain].(config.Keychain)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceType, config.ServiceKeychain)
	}

	store := in.Store
	if store == nil {
		store = dssync.MutexWrap(ds.NewMapDatastore())
	}
	k, err := keychain.New(store, svc.Params)
	if err != nil {
		return nil, err
	}

	// 身份私钥存入密钥链，已存在时保留原值
	if in.Cfg.Identity != nil {
		in.LC.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				err := k.Import(ctx, keychain.SelfKeyName, in.Cfg.Identity)
				if errors.Is(err, keychain.ErrKeyExists) {
					return nil
				}
				return err
			},
		})
	}
	return k, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              委托路由
// ════════════════════════════════════════════════════════════════════════════

func provideDelegatedRouting(cfg *config.Configuration) (*lazy.Value[*client.Client], error) {
	svc, ok := cfg.Services[config.ServiceDelegatedRouting].(config.DelegatedRouting)
	if !ok || svc.Client == nil {
		return nil, fmt.Errorf("%w: %s", ErrServiceType, config.ServiceDelegatedRouting)
	}
	return svc.Client, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              发现
// ════════════════════════════════════════════════════════════════════════════

func registerDiscovery(lc fx.Lifecycle, h host.Host, cfg *config.Configuration) {
	if len(cfg.PeerDiscovery) == 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	services := make([]config.DiscoveryService, 0, len(cfg.PeerDiscovery))
	for _, d := range cfg.PeerDiscovery {
		services = append(services, d.New(h, connectFound(ctx, h, d.Name)))
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for i, svc := range services {
				if err := svc.Start(); err != nil {
					for _, started := range services[:i] {
						_ = started.Close()
					}
					cancel()
					return fmt.Errorf("start discovery %s: %w", cfg.PeerDiscovery[i].Name, err)
				}
			}
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			var err error
			for _, svc := range services {
				err = multierr.Append(err, svc.Close())
			}
			return err
		},
	})
}

// connectFound 返回连接发现节点的回调
func connectFound(ctx context.Context, h host.Host, source string) config.PeerFoundFunc {
	return func(pi peer.AddrInfo) {
		if pi.ID == h.ID() {
			return
		}
		go func() {
			cctx, cancel := context.WithTimeout(ctx, connectTimeout)
			defer cancel()
			if err := h.Connect(cctx, pi); err != nil {
				log.Debug("连接发现节点失败", "source", source, "peer", pi.ID.String(), "err", err)
				return
			}
			log.Debug("已连接发现节点", "source", source, "peer", pi.ID.String())
		}()
	}
}
