package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	localLogger     = "logger"
	HeaderRequestID = "X-Request-ID"
)

// RequestLogger tags every request with a txid and logs its outcome.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		txid := c.Get(HeaderRequestID)
		if txid == "" {
			txid = uuid.NewString()
		}
		c.Set(HeaderRequestID, txid)

		reqLog := log.With(zap.String("txid", txid))
		c.Locals(localLogger, reqLog)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		switch {
		case status >= 500:
			reqLog.Error("request", append(fields, zap.Error(err))...)
		case status >= 400:
			reqLog.Warn("request", fields...)
		default:
			reqLog.Info("request", fields...)
		}
		return err
	}
}

// Logger returns the request logger, or a no-op logger outside RequestLogger.
func Logger(c *fiber.Ctx) *zap.Logger {
	if l, ok := c.Locals(localLogger).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}
