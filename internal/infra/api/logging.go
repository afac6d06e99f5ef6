package api

import (
	"context"
	"fmt"

	"github.com/astro-web3/hrdesk-console/pkg/logger"
)

// restyLogger routes resty's own diagnostics into the application logger.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) {
	logger.ErrorContext(context.Background(), "resty: "+fmt.Sprintf(format, v...))
}

func (restyLogger) Warnf(format string, v ...any) {
	logger.WarnContext(context.Background(), "resty: "+fmt.Sprintf(format, v...))
}

func (restyLogger) Debugf(format string, v ...any) {
	logger.DebugContext(context.Background(), "resty: "+fmt.Sprintf(format, v...))
}
