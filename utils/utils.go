package utils

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// Round2 rounds a monetary amount to 2 decimal places, half away from zero,
// on the scaled value rather than with float tricks.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// SafeDiv returns a/b, or 0 when b is 0. Ratio metrics over an empty window
// must come out 0, not NaN or Inf.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
