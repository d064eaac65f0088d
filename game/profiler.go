package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrProfilerBusy is returned when a capture is running or the cooldown has not passed
var ErrProfilerBusy = errors.New("profiler busy")

// Profiler captures a CPU profile and an execution trace when the frame rate drops
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
	logger          *zap.Logger
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, logger *zap.Logger) (*Profiler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating profile dir: %w", err)
	}

	return &Profiler{
		captureCooldown: 10 * time.Second,
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
		logger:          logger,
	}, nil
}

// CaptureProfile starts a capture in the background and returns immediately
func (p *Profiler) CaptureProfile(reason string) error {
	baseName, err := p.begin(reason)
	if err != nil {
		return err
	}

	go func() {
		defer p.end()
		if err := p.capture(baseName, p.captureDuration); err != nil {
			p.logger.Warn("profile capture failed", zap.Error(err))
		}
	}()
	return nil
}

// CaptureProfileSync captures for duration and returns once both files are written
func (p *Profiler) CaptureProfileSync(reason string, duration time.Duration) error {
	baseName, err := p.begin(reason)
	if err != nil {
		return err
	}
	defer p.end()
	return p.capture(baseName, duration)
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) begin(reason string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return "", fmt.Errorf("%w: capture in progress", ErrProfilerBusy)
	}
	if since := time.Since(p.lastCaptureTime); since < p.captureCooldown {
		return "", fmt.Errorf("%w: last capture was %v ago", ErrProfilerBusy, since.Round(time.Millisecond))
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	return fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason), nil
}

func (p *Profiler) end() {
	p.mu.Lock()
	p.isProfiling = false
	p.mu.Unlock()
}

// capture runs the CPU profile and the trace side by side
func (p *Profiler) capture(baseName string, duration time.Duration) error {
	var wg sync.WaitGroup
	var cpuErr, traceErr error
	wg.Add(2)

	go func() {
		defer wg.Done()
		cpuErr = p.captureCPUProfile(baseName, duration)
	}()

	go func() {
		defer wg.Done()
		traceErr = p.captureTrace(baseName, duration)
	}()

	wg.Wait()
	if err := errors.Join(cpuErr, traceErr); err != nil {
		return err
	}

	p.logSummary(baseName)
	return nil
}

func (p *Profiler) captureCPUProfile(baseName string, duration time.Duration) error {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(duration)
	pprof.StopCPUProfile()

	p.logger.Info("CPU profile saved", zap.String("path", path))
	return nil
}

func (p *Profiler) captureTrace(baseName string, duration time.Duration) error {
	path := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(duration)
	trace.Stop()

	p.logger.Info("trace saved", zap.String("path", path))
	return nil
}

// logSummary logs where the capture went and the heap state at the end of it
func (p *Profiler) logSummary(baseName string) {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(path)
	if err != nil {
		p.logger.Warn("could not stat profile", zap.Error(err))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info("performance capture complete",
		zap.String("profile", path),
		zap.Int64("bytes", info.Size()),
		zap.String("view", "go tool pprof -http=:8080 "+path),
		zap.Uint64("heapAllocKB", m.HeapAlloc/1024),
		zap.Uint32("numGC", m.NumGC),
		zap.Uint64("heapObjects", m.HeapObjects),
	)
}
