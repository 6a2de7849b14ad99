package channel

import (
	"fmt"
	"log/slog"
	"time"
)

// Middleware wraps a MethodCallHandler.
type Middleware func(MethodCallHandler) MethodCallHandler

// Chain chains multiple middleware together. The first middleware is the
// outermost.
func Chain(h MethodCallHandler, middleware ...Middleware) MethodCallHandler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}

// Recovery recovers from handler panics and replies with a "panic" error
// unless the handler already replied.
func Recovery(next MethodCallHandler) MethodCallHandler {
	return MethodCallHandlerFunc(func(call *MethodCall, result Result) {
		rec := &recorder{Result: result}
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic recovered",
					"message_id", call.ID,
					"method", call.Method,
					"error", err,
				)
				if rec.outcome == "" {
					rec.Error(CodePanic, fmt.Sprint(err), nil)
				}
			}
		}()
		next.HandleMethodCall(call, rec)
	})
}

// Logging logs each method call at debug level.
func Logging(channel string) Middleware {
	return func(next MethodCallHandler) MethodCallHandler {
		return MethodCallHandlerFunc(func(call *MethodCall, result Result) {
			start := time.Now()
			rec := &recorder{Result: result}

			next.HandleMethodCall(call, rec)

			outcome := rec.outcome
			if outcome == "" {
				outcome = "unanswered"
			}
			slog.Debug("method call completed",
				"message_id", call.ID,
				"channel", channel,
				"method", call.Method,
				"outcome", outcome,
				"duration", time.Since(start),
			)
		})
	}
}

// recorder wraps Result to capture which reply the handler gave.
type recorder struct {
	Result
	outcome string
}

func (r *recorder) Success(result any) {
	r.mark("success")
	r.Result.Success(result)
}

func (r *recorder) Error(code, message string, details any) {
	r.mark("error")
	r.Result.Error(code, message, details)
}

func (r *recorder) NotImplemented() {
	r.mark("not_implemented")
	r.Result.NotImplemented()
}

func (r *recorder) mark(outcome string) {
	if r.outcome == "" {
		r.outcome = outcome
	}
}
