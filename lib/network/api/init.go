package api

import (
	logging "github.com/inconshreveable/log15"

	"github.com/ModernExodus/tontoken/lib/common"
)

var log logging.Logger = logging.New("module", "api")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLoggingFor(log, level, handler)
}
