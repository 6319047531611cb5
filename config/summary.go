package config

import (
	"encoding/json"

	"github.com/libp2p/go-libp2p/core/peer"
)

// Summary 配置的描述性视图
//
// 只包含名称与参数，不包含任何密钥材料；身份以 PeerID 呈现。
type Summary struct {
	Environment     string                    `json:"environment"`
	PeerID          string                    `json:"peer_id,omitempty"`
	CustomResolver  bool                      `json:"custom_resolver"`
	ListenAddresses []string                  `json:"listen_addresses"`
	Transports      []TransportSummary        `json:"transports"`
	Encrypters      []string                  `json:"connection_encrypters"`
	Muxers          []string                  `json:"stream_muxers"`
	PeerDiscovery   []string                  `json:"peer_discovery"`
	Services        map[string]ServiceSummary `json:"services"`
}

// TransportSummary 传输描述
type TransportSummary struct {
	Name    string `json:"name"`
	CanDial bool   `json:"can_dial"`
}

// ServiceSummary 服务描述
type ServiceSummary struct {
	Kind   string         `json:"kind"`
	Params map[string]any `json:"params,omitempty"`
}

// Summary 生成配置的描述性视图
func (c *Configuration) Summary() Summary {
	s := Summary{
		Environment:     c.Environment.String(),
		CustomResolver:  c.NameResolution != nil,
		ListenAddresses: c.ListenAddressStrings(),
		Transports:      make([]TransportSummary, 0, len(c.Transports)),
		Encrypters:      make([]string, 0, len(c.ConnectionEncrypters)),
		Muxers:          make([]string, 0, len(c.StreamMuxers)),
		PeerDiscovery:   make([]string, 0, len(c.PeerDiscovery)),
		Services:        make(map[string]ServiceSummary, len(c.Services)),
	}

	if c.Identity != nil {
		if id, err := peer.IDFromPrivateKey(c.Identity); err == nil {
			s.PeerID = id.String()
		}
	}
	for _, t := range c.Transports {
		s.Transports = append(s.Transports, TransportSummary{Name: t.Name, CanDial: t.CanDial})
	}
	for _, e := range c.ConnectionEncrypters {
		s.Encrypters = append(s.Encrypters, string(e.ID))
	}
	for _, m := range c.StreamMuxers {
		s.Muxers = append(s.Muxers, string(m.ID))
	}
	for _, d := range c.PeerDiscovery {
		s.PeerDiscovery = append(s.PeerDiscovery, d.Name)
	}
	for key, svc := range c.Services {
		if svc == nil {
			continue
		}
		s.Services[key] = ServiceSummary{Kind: svc.Kind(), Params: serviceParams(svc)}
	}

	return s
}

// MarshalJSON 以 Summary 形式输出
func (c *Configuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Summary())
}

// serviceParams 提取服务的可公开参数
func serviceParams(svc Service) map[string]any {
	switch s := svc.(type) {
	case AutoNAT:
		return map[string]any{"serve_probes": s.ServeProbes}
	case PortMapping:
		return map[string]any{"protocol": s.Protocol}
	case DHT:
		return map[string]any{"mode": s.Mode.String(), "namespaces": s.Namespaces()}
	case DelegatedRouting:
		return map[string]any{
			"endpoint":        s.Endpoint,
			"protocol_filter": s.ProtocolFilter,
			"addr_filter":     s.AddrFilter,
		}
	case Identify:
		return map[string]any{"agent_version": s.AgentVersion}
	case Keychain:
		// 口令属于密钥材料，只报告是否设置
		return map[string]any{"pass_set": s.Params != nil && s.Params.Pass != ""}
	default:
		return nil
	}
}
