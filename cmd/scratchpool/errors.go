package main

import (
	"fmt"
	"io"
	"log/slog"

	apperrors "github.com/go-i2p/scratchpool/lib/errors"
)

// errorAttrs describes err for structured logging: its category, the safe
// message for that category and the full error.
func errorAttrs(err error) []any {
	e := apperrors.FromSentinel(err)
	return []any{"code", apperrors.CodeName(e.Code), "reason", e.SafeMessage(), "error", e.Err}
}

// fail logs msg with err's category and returns the failure exit code.
func fail(logger *slog.Logger, msg string, err error, attrs ...any) int {
	logger.Error(msg, append(attrs, errorAttrs(err)...)...)
	return 1
}

// printError reports err on w for failures that happen before logging is set up.
func printError(w io.Writer, msg string, err error) {
	e := apperrors.FromSentinel(err)
	fmt.Fprintf(w, "%s: %s [%s]: %v\n", msg, e.SafeMessage(), apperrors.CodeName(e.Code), e.Err)
}
