package defaults

import (
	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/internal/assembler"
	"github.com/dep2p/go-dep2p-defaults/internal/env"
	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

// Environment 运行环境
type Environment = types.Environment

// 运行环境
const (
	EnvironmentHost      = types.EnvironmentHost
	EnvironmentSandboxed = types.EnvironmentSandboxed
)

// Assembler 默认配置装配器
type Assembler = assembler.Assembler

// RuntimeInfo 节点标识字符串所需的运行时信息
type RuntimeInfo = assembler.RuntimeInfo

// ════════════════════════════════════════════════════════════════════════════
//                              入口
// ════════════════════════════════════════════════════════════════════════════

// Detect 返回当前构建目标对应的环境
func Detect() Environment {
	return env.Detect()
}

// Defaults 为当前环境生成默认配置
func Defaults(opts ...Option) (*config.Configuration, error) {
	return DefaultsFor(env.Detect(), opts...)
}

// DefaultsFor 为指定环境生成默认配置
//
// 只有选项本身无效（文件不可读、DNS 服务器地址非法、选项冲突）时返回错误；
// 装配过程本身不会失败。
func DefaultsFor(e Environment, opts ...Option) (*config.Configuration, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	aopts, err := o.toAssemblerOptions()
	if err != nil {
		return nil, err
	}
	return assembler.New(e, o.runtime()).Assemble(aopts), nil
}

// ForEnvironment 返回指定环境的装配器，使用本包名与版本生成节点标识
func ForEnvironment(e Environment) *Assembler {
	return assembler.New(e, newOptions().runtime())
}

// runtime 汇总节点标识所需的运行时信息
func (o *options) runtime() RuntimeInfo {
	info := env.RuntimeInfo(o.pkg)
	if o.descriptor != "" {
		info.Descriptor = o.descriptor
	}
	return info
}
