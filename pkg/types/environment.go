package types

import "strings"

// ============================================================================
//                              Environment - 运行环境
// ============================================================================

// Environment 运行环境标签
//
// 决定默认配置装配器启用哪些能力模块。
type Environment int

const (
	// EnvironmentHost 通用主机环境（可直接使用套接字、可进行本地网络广播）
	EnvironmentHost Environment = iota
	// EnvironmentSandboxed 沙箱环境（浏览器等，无原始套接字、无文件系统）
	EnvironmentSandboxed
)

// String 返回环境的字符串表示
func (e Environment) String() string {
	switch e {
	case EnvironmentSandboxed:
		return "sandboxed"
	default:
		return "host"
	}
}

// ParseEnvironment 解析环境标签
//
// 无法识别时返回 EnvironmentHost：沙箱限制是在主机能力上做减法，
// 因此歧义时落回主机环境。
func ParseEnvironment(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sandboxed", "sandbox", "browser", "js":
		return EnvironmentSandboxed
	default:
		return EnvironmentHost
	}
}

// Capabilities 返回环境具备的能力集合
func (e Environment) Capabilities() Capability {
	switch e {
	case EnvironmentSandboxed:
		return CapNone
	default:
		return CapAll
	}
}

// ============================================================================
//                              Capability - 环境能力
// ============================================================================

// Capability 环境能力位集合
//
// 每个能力模块声明自己需要的能力，装配器只选择需求被满足的模块。
type Capability uint8

const (
	// CapRawSockets 可绑定原始套接字（TCP 监听、TLS 握手、端口映射）
	CapRawSockets Capability = 1 << iota
	// CapLocalBroadcast 可进行本地网络广播（mDNS、UPnP/SSDP）
	CapLocalBroadcast
	// CapAcceptInbound 可接受入站拨号（中继服务端、DHT 服务端、AutoNAT 服务端）
	CapAcceptInbound
)

const (
	// CapNone 无任何附加能力
	CapNone Capability = 0
	// CapAll 全部能力
	CapAll = CapRawSockets | CapLocalBroadcast | CapAcceptInbound
)

// Has 检查是否具备 required 中的全部能力
func (c Capability) Has(required Capability) bool {
	return c&required == required
}

// Missing 返回 required 中未被满足的能力
func (c Capability) Missing(required Capability) Capability {
	return required &^ c
}

// String 返回能力集合的字符串表示
func (c Capability) String() string {
	if c == CapNone {
		return "none"
	}
	var names []string
	if c&CapRawSockets != 0 {
		names = append(names, "raw-sockets")
	}
	if c&CapLocalBroadcast != 0 {
		names = append(names, "local-broadcast")
	}
	if c&CapAcceptInbound != 0 {
		names = append(names, "accept-inbound")
	}
	return strings.Join(names, "|")
}
