package config

import (
	"errors"
	"fmt"

	ma "github.com/multiformats/go-multiaddr"
	"go.uber.org/multierr"

	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

// 结构校验错误
var (
	// ErrNilConfiguration 配置为空
	ErrNilConfiguration = errors.New("configuration is nil")

	// ErrNoEncrypters 未选择任何加密握手
	ErrNoEncrypters = errors.New("no connection encrypters selected")

	// ErrNoMuxers 未选择任何多路复用协议
	ErrNoMuxers = errors.New("no stream muxers selected")

	// ErrNoDialer 没有可主动拨号的传输
	ErrNoDialer = errors.New("no transport can dial")

	// ErrMissingService 缺少必需服务
	ErrMissingService = errors.New("mandatory service missing")

	// ErrDuplicate 选择项重复
	ErrDuplicate = errors.New("duplicate selection")

	// ErrCapabilityMismatch 选择项需要环境不具备的能力
	ErrCapabilityMismatch = errors.New("selection not supported by environment")
)

// Validate 按配置自身记录的环境校验
func (c *Configuration) Validate() error {
	if c == nil {
		return ErrNilConfiguration
	}
	return c.ValidateFor(c.Environment.Capabilities())
}

// ValidateFor 校验配置的内部一致性以及与给定能力集合的兼容性
//
// 返回所有违反项的聚合错误，可用 errors.Is 匹配具体类别，
// 或用 multierr.Errors 展开。
func (c *Configuration) ValidateFor(caps types.Capability) error {
	if c == nil {
		return ErrNilConfiguration
	}

	var err error

	if len(c.ConnectionEncrypters) == 0 {
		err = multierr.Append(err, ErrNoEncrypters)
	}
	if len(c.StreamMuxers) == 0 {
		err = multierr.Append(err, ErrNoMuxers)
	}

	err = multierr.Append(err, c.validateTransports(caps))
	err = multierr.Append(err, c.validateSecurity(caps))
	err = multierr.Append(err, c.validateDiscovery(caps))
	err = multierr.Append(err, c.validateServices(caps))
	err = multierr.Append(err, c.validateListenAddresses(caps))

	return err
}

func (c *Configuration) validateTransports(caps types.Capability) error {
	var err error
	seen := make(map[string]bool, len(c.Transports))
	dialer := false
	for _, t := range c.Transports {
		if seen[t.Name] {
			err = multierr.Append(err, fmt.Errorf("%w: transport %q", ErrDuplicate, t.Name))
		}
		seen[t.Name] = true
		if t.CanDial {
			dialer = true
		}
		err = multierr.Append(err, checkCaps("transport "+t.Name, t.Requires, caps))
	}
	if !dialer {
		err = multierr.Append(err, ErrNoDialer)
	}
	return err
}

func (c *Configuration) validateSecurity(caps types.Capability) error {
	var err error
	encrypters := make(map[string]bool)
	for _, e := range c.ConnectionEncrypters {
		if encrypters[string(e.ID)] {
			err = multierr.Append(err, fmt.Errorf("%w: encrypter %q", ErrDuplicate, e.ID))
		}
		encrypters[string(e.ID)] = true
		err = multierr.Append(err, checkCaps("encrypter "+string(e.ID), e.Requires, caps))
	}
	muxers := make(map[string]bool)
	for _, m := range c.StreamMuxers {
		if muxers[string(m.ID)] {
			err = multierr.Append(err, fmt.Errorf("%w: muxer %q", ErrDuplicate, m.ID))
		}
		muxers[string(m.ID)] = true
		err = multierr.Append(err, checkCaps("muxer "+string(m.ID), m.Requires, caps))
	}
	return err
}

func (c *Configuration) validateDiscovery(caps types.Capability) error {
	var err error
	seen := make(map[string]bool)
	for _, d := range c.PeerDiscovery {
		if seen[d.Name] {
			err = multierr.Append(err, fmt.Errorf("%w: discovery %q", ErrDuplicate, d.Name))
		}
		seen[d.Name] = true
		err = multierr.Append(err, checkCaps("discovery "+d.Name, d.Requires, caps))
	}
	return err
}

func (c *Configuration) validateServices(caps types.Capability) error {
	var err error
	for _, key := range MandatoryServiceKeys {
		if !c.Services.Has(key) {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrMissingService, key))
		}
	}

	// 同一服务模块不能挂在两个键下
	kinds := make(map[string]string, len(c.Services))
	for _, key := range c.Services.Keys() {
		svc := c.Services[key]
		if svc == nil {
			err = multierr.Append(err, fmt.Errorf("%w: %q is nil", ErrMissingService, key))
			continue
		}
		if prev, ok := kinds[svc.Kind()]; ok {
			err = multierr.Append(err, fmt.Errorf("%w: service %q registered as %q and %q",
				ErrDuplicate, svc.Kind(), prev, key))
		}
		kinds[svc.Kind()] = key
		err = multierr.Append(err, checkCaps("service "+key, svc.Requires(), caps))
	}
	return err
}

func (c *Configuration) validateListenAddresses(caps types.Capability) error {
	if caps.Has(types.CapRawSockets) {
		return nil
	}
	var err error
	for _, addr := range c.ListenAddresses {
		if bindsSocket(addr) {
			err = multierr.Append(err, fmt.Errorf("%w: listen address %s requires %s",
				ErrCapabilityMismatch, addr, types.CapRawSockets))
		}
	}
	return err
}

// bindsSocket 检查地址是否需要绑定本地套接字
func bindsSocket(addr ma.Multiaddr) bool {
	for _, code := range []int{ma.P_TCP, ma.P_UDP} {
		if _, err := addr.ValueForProtocol(code); err == nil {
			return true
		}
	}
	return false
}

func checkCaps(what string, required, caps types.Capability) error {
	if missing := caps.Missing(required); missing != types.CapNone {
		return fmt.Errorf("%w: %s requires %s", ErrCapabilityMismatch, what, missing)
	}
	return nil
}
