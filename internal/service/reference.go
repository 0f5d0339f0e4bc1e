package service

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const (
	referencePrefix   = "BKR"
	defaultSerialBase = 1000
)

// nextReferenceNumber allocates the next reference number in the format
// BKR<MM>-<YYYY>-CR<serial>. The serial counter lives in a file shared by
// every worker process, so the read-increment-write cycle is guarded with a
// cross-process file lock.
func (s *DocumentTemplateService) nextReferenceNumber() (string, error) {
	serial, err := s.nextSerial()
	if err != nil {
		return "", err
	}
	now := time.Now()
	return fmt.Sprintf("%s%02d-%d-CR%d", referencePrefix, int(now.Month()), now.Year(), serial), nil
}

func (s *DocumentTemplateService) nextSerial() (int64, error) {
	path := s.config.GetSerialFilePath()

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return 0, fmt.Errorf("locking serial file: %w", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("Failed to release serial file lock", "path", path, "error", err)
		}
	}()

	base, counter, err := readSerialFile(path)
	if err != nil {
		return 0, err
	}

	serial := base + counter
	if err := writeSerialFile(path, base, counter+1); err != nil {
		return 0, err
	}
	return serial, nil
}

// readSerialFile parses the "base,counter" counter file, seeding it with
// defaults when it does not exist yet.
func readSerialFile(path string) (base, counter int64, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultSerialBase, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("reading serial file: %w", err)
	}

	parts := strings.Split(strings.TrimSpace(string(data)), ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed serial file %s", path)
	}
	base, err = strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed serial base: %w", err)
	}
	counter, err = strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed serial counter: %w", err)
	}
	return base, counter, nil
}

func writeSerialFile(path string, base, counter int64) error {
	if err := os.WriteFile(path, []byte(fmt.Sprintf("%d,%d", base, counter)), 0o644); err != nil {
		return fmt.Errorf("writing serial file: %w", err)
	}
	return nil
}
