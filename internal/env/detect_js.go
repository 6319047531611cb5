//go:build js

package env

import (
	"runtime"
	"syscall/js"

	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

const detected = types.EnvironmentSandboxed

// Descriptor 返回运行时描述，沙箱环境为宿主的 user-agent
//
// 宿主没有 navigator（如 Node.js 运行 wasm）时退回 Go 运行时版本。
func Descriptor() string {
	nav := js.Global().Get("navigator")
	if nav.Type() == js.TypeObject {
		if ua := nav.Get("userAgent"); ua.Type() == js.TypeString {
			return ua.String()
		}
	}
	return runtime.Version() + " js/wasm"
}
