// Package capability 将外部能力模块绑定为配置选择项
//
// 每个函数返回一个声明了所需环境能力（Requires）的选择项，
// 本包不实现任何网络协议，只引用 go-libp2p 及其生态中的实现：
//
//	┌───────────────┬──────────────────────────────────────────────┐
//	│ 类别          │ 选择项                                        │
//	├───────────────┼──────────────────────────────────────────────┤
//	│ 传输          │ circuit-relay / tcp / websockets             │
//	│ 加密          │ noise / tls                                  │
//	│ 多路复用      │ yamux / mplex                                │
//	│ 发现          │ mdns                                         │
//	│ 路由          │ ipns 记录校验器、委托路由客户端工厂          │
//	└───────────────┴──────────────────────────────────────────────┘
package capability
