// Package resolver 提供指向指定 DNS 服务器的名称解析器
//
// 节点对 /dns、/dns4、/dns6、/dnsaddr 地址的解析默认使用系统解析器。
// 当调用方指定 DNS 服务器时，本包以 miekg/dns 直接向该服务器发起查询，
// 并封装为 madns.Resolver 作为名称解析覆盖传给装配器。
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	madns "github.com/multiformats/go-multiaddr-dns"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-dep2p-defaults/internal/util/logger"
)

var log = logger.Logger("resolver")

// ============================================================================
//                              解析器配置
// ============================================================================

// Config 解析器配置
type Config struct {
	// Server DNS 服务器地址（格式: "ip" 或 "ip:port"），为空使用系统解析器
	Server string

	// Timeout 单次查询超时
	Timeout time.Duration
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		Timeout: 5 * time.Second,
	}
}

// ErrEmptyServer 未指定 DNS 服务器
var ErrEmptyServer = errors.New("dns server is empty")

// ============================================================================
//                              Client 实现
// ============================================================================

// Client 直接查询单个 DNS 服务器的基础解析器
//
// 实现 madns.BasicResolver。
type Client struct {
	server string
	client *dns.Client
}

var _ madns.BasicResolver = (*Client)(nil)

// NewClient 创建查询指定服务器的解析器
func NewClient(cfg Config) (*Client, error) {
	server, err := normalizeServer(cfg.Server)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Client{
		server: server,
		client: &dns.Client{Net: "udp", Timeout: timeout},
	}, nil
}

// Server 返回查询的服务器地址
func (c *Client) Server() string {
	return c.server
}

// LookupIPAddr 并发查询 A 与 AAAA 记录
//
// 两类查询互不影响，返回二者并集；仅当两者均失败或均无记录时返回错误。
func (c *Client) LookupIPAddr(ctx context.Context, name string) ([]net.IPAddr, error) {
	var (
		g          errgroup.Group
		v4, v6     []dns.RR
		err4, err6 error
	)
	g.Go(func() error {
		v4, err4 = c.query(ctx, name, dns.TypeA)
		return nil
	})
	g.Go(func() error {
		v6, err6 = c.query(ctx, name, dns.TypeAAAA)
		return nil
	})
	_ = g.Wait()

	var addrs []net.IPAddr
	for _, rr := range append(v4, v6...) {
		switch r := rr.(type) {
		case *dns.A:
			addrs = append(addrs, net.IPAddr{IP: r.A})
		case *dns.AAAA:
			addrs = append(addrs, net.IPAddr{IP: r.AAAA})
		}
	}
	if len(addrs) > 0 {
		if err4 != nil || err6 != nil {
			log.Debug("部分地址查询失败", "name", name, "a", err4, "aaaa", err6)
		}
		return addrs, nil
	}

	switch {
	case err4 != nil:
		return nil, err4
	case err6 != nil:
		return nil, err6
	}
	return nil, notFound(name, c.server)
}

// LookupTXT 查询 TXT 记录，同一记录的多个字符串拼接为一条
func (c *Client) LookupTXT(ctx context.Context, name string) ([]string, error) {
	rrs, err := c.query(ctx, name, dns.TypeTXT)
	if err != nil {
		return nil, err
	}

	var records []string
	for _, rr := range rrs {
		if txt, ok := rr.(*dns.TXT); ok {
			records = append(records, strings.Join(txt.Txt, ""))
		}
	}
	if len(records) == 0 {
		return nil, notFound(name, c.server)
	}
	return records, nil
}

// query 发送单个问题并返回应答段
//
// NXDOMAIN 返回 IsNotFound 的 *net.DNSError；NOERROR 无记录返回空切片。
func (c *Client) query(ctx context.Context, name string, qtype uint16) ([]dns.RR, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true

	in, _, err := c.client.ExchangeContext(ctx, msg, c.server)
	if err != nil {
		return nil, &net.DNSError{Err: err.Error(), Name: name, Server: c.server, IsTimeout: isTimeout(err)}
	}

	switch in.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, notFound(name, c.server)
	default:
		return nil, &net.DNSError{Err: dns.RcodeToString[in.Rcode], Name: name, Server: c.server}
	}

	log.Debug("DNS 查询完成", "name", name, "type", dns.TypeToString[qtype], "answers", len(in.Answer))
	return in.Answer, nil
}

// ============================================================================
//                              构造 madns.Resolver
// ============================================================================

// New 创建名称解析器
//
// cfg.Server 为空时返回使用系统解析器的 madns.Resolver。
func New(cfg Config) (*madns.Resolver, error) {
	if cfg.Server == "" {
		return madns.NewResolver()
	}
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	r, err := madns.NewResolver(madns.WithDefaultResolver(c))
	if err != nil {
		return nil, fmt.Errorf("create resolver for %s: %w", c.server, err)
	}
	return r, nil
}

// ============================================================================
//                              辅助函数
// ============================================================================

// normalizeServer 补全默认端口
func normalizeServer(server string) (string, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return "", ErrEmptyServer
	}
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server, nil
	}
	host := strings.TrimSuffix(strings.TrimPrefix(server, "["), "]")
	if net.ParseIP(host) == nil && strings.Contains(host, ":") {
		return "", fmt.Errorf("invalid dns server address %q", server)
	}
	return net.JoinHostPort(host, "53"), nil
}

func notFound(name, server string) error {
	return &net.DNSError{Err: "no such host", Name: name, Server: server, IsNotFound: true}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
