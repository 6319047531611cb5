package assembler

import "fmt"

// Component 名称与版本
type Component struct {
	Name    string
	Version string
}

// String 返回 "名称/版本"
func (c Component) String() string {
	return c.Name + "/" + c.Version
}

// RuntimeInfo 生成节点标识字符串所需的运行时信息
//
// 由调用方显式传入，装配器不读取任何全局状态。
type RuntimeInfo struct {
	// Package 调用方包名与版本
	Package Component

	// Library 底层网络库名与版本
	Library Component

	// Descriptor 运行时描述：沙箱环境为 user-agent，主机环境为运行时版本
	Descriptor string
}

// FormatAgentVersion 生成节点标识字符串
//
// 格式: "<包>/<版本> <库>/<版本> UserAgent=<运行时描述>"
//
// 仅用于描述，对端不据此做任何控制决策。
func FormatAgentVersion(info RuntimeInfo) string {
	return fmt.Sprintf("%s %s UserAgent=%s", info.Package, info.Library, info.Descriptor)
}
