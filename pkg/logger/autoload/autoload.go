// Package autoload initializes the global logger from the LOG_* environment
// on import. Import it for its side effect:
//
//	import _ "github.com/boterol/ecomarket-assistant/pkg/logger/autoload"
package autoload

import (
	configx "github.com/boterol/ecomarket-assistant/pkg/config"
	logx "github.com/boterol/ecomarket-assistant/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
