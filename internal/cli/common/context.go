package common

import (
	"context"
	"io"

	"github.com/go-logr/logr"

	"github.com/crmarques/geoserverctl/internal/logging"
)

// WithDebugTrace attaches the http trace logger when --debug is set. The
// transport reads it back through logr.FromContextOrDiscard.
func WithDebugTrace(ctx context.Context, flags *GlobalFlags, w io.Writer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if flags == nil || !flags.Debug {
		return ctx
	}
	return logr.NewContext(ctx, logging.TraceLogger(w))
}
