//go:build js

package capability

import (
	"errors"

	"github.com/libp2p/go-libp2p"

	"github.com/dep2p/go-dep2p-defaults/config"
	"github.com/dep2p/go-dep2p-defaults/pkg/types"
)

// TCP 在 js/wasm 下不可用，选项应用时报错
//
// 沙箱环境不具备 raw-sockets 能力，装配时不会选中。
func TCP() config.Transport {
	return config.Transport{
		Name:     TransportTCP,
		CanDial:  true,
		Requires: types.CapRawSockets,
		Option: func(*libp2p.Config) error {
			return errors.New("tcp transport is not available on js/wasm")
		},
	}
}
