package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/rotlog"
	"github.com/spf13/pflag"
)

var levels = []int64{
	rotlog.LevelDebug,
	rotlog.LevelInfo,
	rotlog.LevelWarn,
	rotlog.LevelError,
}

// options are the command line settings of a stress run
type options struct {
	configFile     string
	overrides      []string
	workers        int
	bursts         int
	logsPerBurst   int
	maxMessageSize int
	shutdown       time.Duration
}

func generateRandomMessage(rng *rand.Rand, size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rng.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity
func logBurst(logger *rotlog.Logger, opts *options, rng *rand.Rand, burstID int) {
	tracer := logger.Trace(fmt.Sprintf("burst-%d", burstID%opts.workers))
	for i := 0; i < opts.logsPerBurst; i++ {
		msg := generateRandomMessage(rng, rng.Intn(opts.maxMessageSize)+10)
		parts := []any{msg, " bst=", burstID, " seq=", i, " rnd=", rng.Int63()}
		switch levels[rng.Intn(len(levels))] {
		case rotlog.LevelDebug:
			tracer.Debug(parts...)
		case rotlog.LevelInfo:
			tracer.Info(parts...)
		case rotlog.LevelWarn:
			tracer.Warn(parts...)
		case rotlog.LevelError:
			tracer.Error(parts...)
		}
	}
}

// worker goroutine function
func worker(logger *rotlog.Logger, opts *options, burstChan <-chan int, wg *sync.WaitGroup, completedBursts *atomic.Int64) {
	defer wg.Done()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for burstID := range burstChan {
		logBurst(logger, opts, rng, burstID)
		completed := completedBursts.Add(1)
		if completed%10 == 0 || completed == int64(opts.bursts) {
			fmt.Printf("\rProgress: %d/%d bursts completed", completed, opts.bursts)
		}
	}
}

func parseOptions() (*options, error) {
	opts := &options{}
	flagSet := pflag.NewFlagSet("stress", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.configFile, "config", "c", "", "TOML file with a [log] table")
	flagSet.StringArrayVarP(&opts.overrides, "set", "s", nil, "configuration override key=value (repeatable)")
	flagSet.IntVar(&opts.workers, "workers", 100, "concurrent producer goroutines")
	flagSet.IntVar(&opts.bursts, "bursts", 100, "number of bursts to submit")
	flagSet.IntVar(&opts.logsPerBurst, "logs-per-burst", 500, "lines logged per burst")
	flagSet.IntVar(&opts.maxMessageSize, "max-message-size", 2000, "upper bound of random payload size")
	flagSet.DurationVar(&opts.shutdown, "shutdown-timeout", 10*time.Second, "bound on the final drain")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return nil, err
	}
	if opts.workers <= 0 || opts.bursts <= 0 || opts.logsPerBurst <= 0 || opts.maxMessageSize <= 0 {
		return nil, fmt.Errorf("workers, bursts, logs-per-burst and max-message-size must be positive")
	}
	return opts, nil
}

func loadConfig(opts *options) (*rotlog.Config, error) {
	cfg := rotlog.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := rotlog.NewConfigFromFile(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		// Small files and a tight cap force frequent rotation and deletion
		cfg.Name = "stress_test"
		cfg.Directory = "./logs"
		cfg.EnableConsole = false
		cfg.FileLevel = rotlog.LevelDebug
		cfg.MaxFileBytes = 1024 * 1024
		cfg.MaxFileCount = 20
		cfg.FlushIntervalMs = 50
		cfg.InternalErrorsToStderr = true
	}
	if err := cfg.Override(opts.overrides...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	opts, err := parseOptions()
	if err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "stress: %v\n", err)
		os.Exit(2)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("--- Logger Stress Test ---")

	logger := rotlog.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger started. Logs will be written to: %s\n", cfg.Directory)

	fmt.Printf("Starting stress test: %d workers, %d bursts, %d logs/burst.\n",
		opts.workers, opts.bursts, opts.logsPerBurst)
	fmt.Println("Check log directory size and file rotation.")
	fmt.Println("Press Ctrl+C to stop early.")

	// --- Setup Workers and Signal Handling ---
	burstChan := make(chan int, opts.workers)
	var wg sync.WaitGroup
	completedBursts := atomic.Int64{}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < opts.workers; i++ {
		wg.Add(1)
		go worker(logger, opts, burstChan, &wg, &completedBursts)
	}

	// --- Run Test ---
	startTime := time.Now()
submit:
	for i := 1; i <= opts.bursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			fmt.Println("[Signal Received] Halting burst submission.")
			break submit
		}
	}
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	wg.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, opts.bursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		logsPerSec := float64(finalCompleted*int64(opts.logsPerBurst)) / duration.Seconds()
		fmt.Printf("Approximate Logs/sec: %.2f\n", logsPerSec)
	}

	// --- Shutdown Logger ---
	fmt.Printf("Shutting down logger (allowing up to %v)...\n", opts.shutdown)
	if err := logger.Shutdown(opts.shutdown); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	stats := logger.Stats()
	fmt.Printf("Enqueued %d, written %d, dropped %d, rotations %d, deletions %d, retained files %d\n",
		stats.LinesEnqueued, stats.LinesWritten, stats.LinesDropped,
		stats.Rotations, stats.Deletions, stats.RetainedFiles)
}
