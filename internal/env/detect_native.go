//go:build !js

package env

import (
	"runtime"

	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

const detected = types.EnvironmentHost

// Descriptor 返回运行时描述，主机环境为 Go 运行时版本与平台
func Descriptor() string {
	return runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH
}
