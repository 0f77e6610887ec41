package rotlog

import (
	"testing"
)

// BenchmarkLoggerInfo benchmarks the performance of standard Info logging
func BenchmarkLoggerInfo(b *testing.B) {
	logger, _ := createTestLogger(b)
	defer logger.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message ", i)
	}
}

// BenchmarkLoggerFiltered benchmarks a call below every threshold
func BenchmarkLoggerFiltered(b *testing.B) {
	logger, _ := createTestLogger(b)
	defer logger.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("filtered ", i)
	}
}

// BenchmarkLoggerError benchmarks logging with source position capture
func BenchmarkLoggerError(b *testing.B) {
	logger, _ := createTestLogger(b)
	defer logger.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Error("benchmark error ", i)
	}
}

// BenchmarkConcurrentLogging benchmarks the logger's performance under concurrent load
func BenchmarkConcurrentLogging(b *testing.B) {
	logger, _ := createTestLogger(b)
	defer logger.Shutdown()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			logger.Info("concurrent message ", i)
			i++
		}
	})
}
