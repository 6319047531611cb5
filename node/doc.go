// Package node 将默认配置交给 go-libp2p 节点构造流程
//
// 装配器只描述"用什么"，本包负责"怎么接上"：
//   - HostOptions: 把配置渲染为 libp2p.Option 列表，交给 libp2p.New
//   - Module: fx 模块，提供 host、DHT、密钥链与委托路由句柄，
//     并在生命周期内启动与关闭发现服务
//
// 使用示例:
//
//	cfg, _ := defaults.Defaults()
//	app := fx.New(node.Module(cfg), node.WithNopLogger())
//	if err := app.Start(ctx); err != nil {
//	    return err
//	}
//	defer app.Stop(ctx)
package node
