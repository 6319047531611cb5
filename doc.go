// Package defaults 按运行环境生成 P2P 节点的默认网络栈配置
//
// 同一套默认值要同时服务两类宿主：
//
//   - host: 具备原始套接字、本地广播与入站连接能力的普通进程
//   - sandboxed: 浏览器 / wasm 等受限宿主，只能经中继和 WebSocket 通信
//
// 环境在编译期由构建标签确定（js 为 sandboxed），两种环境共享一个
// 参数化装配器，差异由能力表中每个候选声明的能力需求决定。
//
// # 快速开始
//
//	cfg, err := defaults.Defaults(
//	    defaults.WithIdentity(priv),
//	    defaults.WithKeychain(&config.KeychainParams{Pass: pass}),
//	)
//	if err != nil {
//	    return err
//	}
//	h, err := libp2p.New(node.HostOptions(cfg)...)
//
// 或交给 fx 组装完整节点（host、DHT、密钥链、发现服务）：
//
//	app := fx.New(node.Module(cfg), node.WithNopLogger())
//
// # 配置内容
//
//	┌─────────────────┬──────────────────────────────┬──────────────────────┐
//	│                 │ host                         │ sandboxed            │
//	├─────────────────┼──────────────────────────────┼──────────────────────┤
//	│ 监听地址        │ tcp4, tcp6, /p2p-circuit     │ /p2p-circuit         │
//	│ 传输            │ circuit-relay, tcp, ws       │ circuit-relay, ws    │
//	│ 加密            │ noise, tls                   │ noise                │
//	│ 多路复用        │ yamux, mplex                 │ yamux, mplex         │
//	│ 发现            │ mdns                         │ -                    │
//	│ DHT             │ auto                         │ client               │
//	│ 中继服务 / UPnP │ 有                           │ 无                   │
//	└─────────────────┴──────────────────────────────┴──────────────────────┘
//
// 两种环境都包含 identify、identifyPush、dht、delegatedRouting、ping、
// autoNAT、keychain 服务。
//
// # 日志
//
// 日志通过环境变量配置：
//
//	DEFAULTS_LOG_LEVEL=assembler=debug,info
//	DEFAULTS_LOG_FORMAT=json
package defaults
