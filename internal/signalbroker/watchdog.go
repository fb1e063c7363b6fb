// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"os/signal"

	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
)

// Watch waits for the first signal on sigCh and cancels the context with a
// *SignalError cause. Afterwards the channel is detached from signal delivery,
// so a further signal gets the runtime's default behaviour and ends the process.
// Watch returns when a signal arrives, sigCh is closed, or ctx is done.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelCauseFunc) {
	select {
	case sig, ok := <-sigCh:
		if !ok {
			return
		}

		ctxlog.Logger(ctx).Info("watchdog", "detail", "received signal, cancelling run", "signal", sig.String())
		signal.Stop(sigCh)
		cancel(&SignalError{Signal: sig})

	case <-ctx.Done():
	}
}
