package config

import (
	"sort"

	"github.com/ipfs/boxo/routing/http/client"
	record "github.com/libp2p/go-libp2p-record"
	"github.com/libp2p/go-libp2p/core/peerstore"

	"github.com/dep2p/go-dep2p-defaults/pkg/lib/lazy"
	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

// 服务键
const (
	ServiceAutoNAT          = "autoNAT"
	ServiceDCUtR            = "dcutr"
	ServiceDelegatedRouting = "delegatedRouting"
	ServiceDHT              = "dht"
	ServiceIdentify         = "identify"
	ServiceIdentifyPush     = "identifyPush"
	ServiceKeychain         = "keychain"
	ServicePing             = "ping"
	ServiceRelay            = "relay"
	ServiceUPnP             = "upnp"
)

// MandatoryServiceKeys 两种环境都必须包含的服务
var MandatoryServiceKeys = []string{
	ServiceIdentify,
	ServiceIdentifyPush,
	ServiceDHT,
	ServiceDelegatedRouting,
	ServicePing,
	ServiceAutoNAT,
	ServiceKeychain,
}

// Service 服务配置
type Service interface {
	// Kind 服务模块名称
	Kind() string

	// Requires 以当前参数运行所需的环境能力
	Requires() types.Capability
}

// Services 服务名到服务配置的映射
type Services map[string]Service

// Keys 返回排序后的服务键
func (s Services) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has 检查服务是否存在
func (s Services) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// ============================================================================
//                              NAT 穿透
// ============================================================================

// AutoNAT 可达性自动检测
type AutoNAT struct {
	// ServeProbes 是否为其他节点提供回拨探测
	ServeProbes bool
}

func (AutoNAT) Kind() string { return "autonat" }

func (a AutoNAT) Requires() types.Capability {
	if a.ServeProbes {
		return types.CapAcceptInbound
	}
	return types.CapNone
}

// PortMapping 网关端口映射
type PortMapping struct {
	// Protocol 映射协议，目前为 "upnp"
	Protocol string
}

func (PortMapping) Kind() string { return "upnp-nat" }

func (PortMapping) Requires() types.Capability {
	return types.CapRawSockets | types.CapLocalBroadcast
}

// HolePunching 直连升级（打洞）
type HolePunching struct{}

func (HolePunching) Kind() string { return "dcutr" }

func (HolePunching) Requires() types.Capability { return types.CapNone }

// RelayServer 中继服务端，为其他节点转发流量
type RelayServer struct{}

func (RelayServer) Kind() string { return "circuit-relay-server" }

func (RelayServer) Requires() types.Capability { return types.CapAcceptInbound }

// ============================================================================
//                              路由
// ============================================================================

// DHTMode 分布式哈希表运行模式
type DHTMode int

const (
	// DHTModeClient 仅客户端，不为他人响应路由表查询
	DHTModeClient DHTMode = iota
	// DHTModeAuto 根据可达性在客户端与服务端之间切换
	DHTModeAuto
)

// String 返回模式的字符串表示
func (m DHTMode) String() string {
	switch m {
	case DHTModeClient:
		return "client"
	case DHTModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ValidatorFactory 根据密钥簿构造记录校验器
//
// record.Validator 同时承担校验（Validate）与选择（Select）。
type ValidatorFactory func(kb peerstore.KeyBook) record.Validator

// DHT 分布式哈希表
type DHT struct {
	// Mode 运行模式
	Mode DHTMode

	// Validators 命名空间到记录校验器/选择器
	Validators map[string]ValidatorFactory
}

func (DHT) Kind() string { return "kad-dht" }

func (d DHT) Requires() types.Capability {
	if d.Mode == DHTModeClient {
		return types.CapNone
	}
	return types.CapAcceptInbound
}

// Namespaces 返回排序后的记录命名空间
func (d DHT) Namespaces() []string {
	ns := make([]string, 0, len(d.Validators))
	for k := range d.Validators {
		ns = append(ns, k)
	}
	sort.Strings(ns)
	return ns
}

// DelegatedRouting 委托路由（HTTP 回退查询）
type DelegatedRouting struct {
	// Endpoint 委托路由服务地址
	Endpoint string

	// ProtocolFilter 只保留这些传输协议的提供者记录
	ProtocolFilter []string

	// AddrFilter 只保留这些地址协议
	AddrFilter []string

	// Client 延迟构造的客户端，由节点运行时在首次使用时初始化
	Client *lazy.Value[*client.Client]
}

func (DelegatedRouting) Kind() string { return "delegated-routing-v1-http" }

func (DelegatedRouting) Requires() types.Capability { return types.CapNone }

// ============================================================================
//                              身份交换与探测
// ============================================================================

// Identify 身份交换
type Identify struct {
	// AgentVersion 节点标识字符串
	AgentVersion string

	// Push 是否为主动推送变体
	Push bool
}

func (i Identify) Kind() string {
	if i.Push {
		return "identify-push"
	}
	return "identify"
}

func (Identify) Requires() types.Capability { return types.CapNone }

// Ping 连接健康探测
type Ping struct{}

func (Ping) Kind() string { return "ping" }

func (Ping) Requires() types.Capability { return types.CapNone }

// ============================================================================
//                              密钥存储
// ============================================================================

// Keychain 私钥存储
type Keychain struct {
	// Params 调用方提供的密钥链参数，原样转发，可以为 nil
	Params *KeychainParams
}

func (Keychain) Kind() string { return "keychain" }

func (Keychain) Requires() types.Capability { return types.CapNone }
