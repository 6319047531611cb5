// Package env 检测当前运行环境并收集运行时信息
//
// 环境在编译期由构建标签决定：
//   - js（浏览器 / wasm）: sandboxed，运行时描述取 navigator.userAgent
//   - 其他平台: host，运行时描述取 Go 运行时版本
//
// 检测结果通过 assembler.RuntimeInfo 显式传给装配器。
package env

import (
	"runtime/debug"

	"github.com/dep2p/go-dep2p-defaults/internal/assembler"
	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

// LibraryModule 底层网络库的模块路径
const LibraryModule = "github.com/libp2p/go-libp2p"

// LibraryName 底层网络库在节点标识中的名称
const LibraryName = "go-libp2p"

// Detect 返回当前构建目标对应的环境
func Detect() types.Environment {
	return detected
}

// RuntimeInfo 构造运行时信息
//
// pkg 为调用方包名与版本；底层库版本从构建信息中读取。
func RuntimeInfo(pkg assembler.Component) assembler.RuntimeInfo {
	return assembler.RuntimeInfo{
		Package:    pkg,
		Library:    assembler.Component{Name: LibraryName, Version: LibraryVersion()},
		Descriptor: Descriptor(),
	}
}

// LibraryVersion 从构建信息中读取底层网络库版本
//
// 测试二进制或无模块信息时返回 "unknown"。
func LibraryVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return libraryVersion(info)
}

func libraryVersion(info *debug.BuildInfo) string {
	for _, dep := range info.Deps {
		if dep.Path != LibraryModule {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version
		}
		if dep.Version != "" {
			return dep.Version
		}
	}
	return "unknown"
}
