package defaults

import (
	"errors"

	"github.com/dep2p/go-dep2p-defaults/config"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 选项错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrInvalidOption 选项参数无效
	ErrInvalidOption = errors.New("invalid option")

	// ErrConflictingOptions 选项相互冲突
	ErrConflictingOptions = errors.New("conflicting options")

	// ────────────────────────────────────────────────────────────────────────
	// 配置校验错误（config 包的别名）
	// ────────────────────────────────────────────────────────────────────────

	// ErrNoEncrypters 未选择任何加密握手
	ErrNoEncrypters = config.ErrNoEncrypters

	// ErrNoMuxers 未选择任何多路复用协议
	ErrNoMuxers = config.ErrNoMuxers

	// ErrNoDialer 没有可主动拨号的传输
	ErrNoDialer = config.ErrNoDialer

	// ErrMissingService 缺少必需服务
	ErrMissingService = config.ErrMissingService

	// ErrDuplicate 选择项重复
	ErrDuplicate = config.ErrDuplicate

	// ErrCapabilityMismatch 选择项需要环境不具备的能力
	ErrCapabilityMismatch = config.ErrCapabilityMismatch
)
