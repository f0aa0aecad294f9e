// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package agent

import "go.uber.org/zap"

// ErrorHandler receives every non-terminal error a hosted Agent's DoWork
// returns, so one agent's bug can be observed without taking down the
// runner or invoker hosting it.
type ErrorHandler interface {
	OnError(roleName string, err error)
}

// ErrorHandlerFunc adapts a plain function to ErrorHandler.
type ErrorHandlerFunc func(roleName string, err error)

func (f ErrorHandlerFunc) OnError(roleName string, err error) { f(roleName, err) }

// ZapErrorHandler logs each error at Warn level via a *zap.Logger, the
// default ErrorHandler for [AgentRunner] and [AgentInvoker] when none is
// supplied.
type ZapErrorHandler struct {
	Logger *zap.Logger
}

// NewZapErrorHandler wraps logger, falling back to zap.NewNop if logger is nil.
func NewZapErrorHandler(logger *zap.Logger) *ZapErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapErrorHandler{Logger: logger}
}

func (h *ZapErrorHandler) OnError(roleName string, err error) {
	h.Logger.Warn("agent duty cycle error",
		zap.String("role", roleName),
		zap.Error(err),
	)
}
