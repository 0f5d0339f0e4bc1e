package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"office-converter/internal/domain"
)

// mockLogger discards everything.
type mockLogger struct{}

func (l *mockLogger) Info(msg string, fields ...interface{})             {}
func (l *mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockLogger) Warn(msg string, fields ...interface{})             {}

// testConfig implements domain.Config with per-test paths.
type testConfig struct {
	scratch  string
	output   string
	template string
	serial   string
	timeout  time.Duration
	formats  []string
	maxSize  int64
}

func newTestConfig(dir string) *testConfig {
	return &testConfig{
		scratch:  filepath.Join(dir, "scratch"),
		output:   filepath.Join(dir, "generated"),
		template: filepath.Join(dir, "templates"),
		serial:   filepath.Join(dir, "serial_data.txt"),
		timeout:  5 * time.Second,
		formats:  []string{"pdf", "docx", "odt", "txt", "rtf", "html"},
		maxSize:  10 * 1024 * 1024,
	}
}

func (c *testConfig) GetServerPort() string            { return "8080" }
func (c *testConfig) GetScratchPath() string           { return c.scratch }
func (c *testConfig) GetOutputPath() string            { return c.output }
func (c *testConfig) GetTemplatePath() string          { return c.template }
func (c *testConfig) GetMaxFileSize() int64            { return c.maxSize }
func (c *testConfig) GetConvertTimeout() time.Duration { return c.timeout }
func (c *testConfig) GetAllowedFormats() []string      { return c.formats }
func (c *testConfig) GetSofficePath() string           { return "" }
func (c *testConfig) GetSerialFilePath() string        { return c.serial }
func (c *testConfig) GetLogLevel() string              { return "error" }
func (c *testConfig) GetAPIKey() string                { return "" }

// fakeRunner stands in for the external engine. It copies the staged input
// into the output directory under the converted name, optionally transformed,
// and records every invocation.
type fakeRunner struct {
	mu        sync.Mutex
	calls     int
	transform func(input []byte) []byte
	fail      error
	delay     time.Duration
	noOutput  bool
}

func (f *fakeRunner) Run(ctx context.Context, inputPath, outDir, profileDir string, target domain.Format) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return domain.ErrConversionTimeout
		}
	}
	if f.fail != nil {
		return f.fail
	}
	if f.noOutput {
		return nil
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	if f.transform != nil {
		data = f.transform(data)
	}

	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return os.WriteFile(filepath.Join(outDir, base+"."+string(target)), data, 0o644)
}

func (f *fakeRunner) Binary() string { return "/fake/soffice" }
func (f *fakeRunner) Healthy() bool  { return true }

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
