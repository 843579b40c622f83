package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"rejiscan/pkg/ocr"

	"github.com/rs/zerolog/log"
)

// FileScanLog is an append-only diagnostic log of processed receipts,
// exposed over the /logs/ocr endpoints. It implements ocr.ScanLogger so the
// pipeline never holds the file handle itself.
type FileScanLog struct {
	mu   sync.Mutex
	path string
}

func NewFileScanLog(path string) (*FileScanLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return &FileScanLog{path: path}, nil
}

func (l *FileScanLog) Path() string { return l.path }

// Record appends one block per scan. Write failures are logged, never
// surfaced: diagnostics must not fail a request.
func (l *FileScanLog) Record(e ocr.ScanEvent) {
	var b strings.Builder
	sep := strings.Repeat("=", 50)
	fmt.Fprintf(&b, "\n%s\n", sep)
	fmt.Fprintf(&b, "ファイル名: %s\n", e.FileName)
	fmt.Fprintf(&b, "処理時刻: %s\n", e.When.Format("2006-01-02 15:04:05"))
	if e.Failure != "" {
		fmt.Fprintf(&b, "エラー: %s\n", e.Failure)
	} else {
		fmt.Fprintf(&b, "抽出結果: %s\n", e.Formatted)
	}
	fmt.Fprintf(&b, "%s\n", sep)

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Warn().Err(err).Str("path", l.path).Msg("scan log open failed")
		return
	}
	defer f.Close()
	if _, err := f.WriteString(b.String()); err != nil {
		log.Warn().Err(err).Str("path", l.path).Msg("scan log write failed")
	}
}

func (l *FileScanLog) Read() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Clear truncates the log, leaving a timestamped marker line.
func (l *FileScanLog) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	marker := fmt.Sprintf("ログクリア: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	return os.WriteFile(l.path, []byte(marker), 0644)
}
