package logwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// MonthlyFileHook is a logrus hook that appends every entry to a per-month
// log file, logs/January.log style.
type MonthlyFileHook struct {
	dir string
	mu  sync.Mutex
}

func NewMonthlyFileHook(dir string) *MonthlyFileHook {
	return &MonthlyFileHook{dir: dir}
}

func (h *MonthlyFileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *MonthlyFileHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return err
	}

	fileName := filepath.Join(h.dir, entry.Time.Month().String()+".log")
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(formatEntry(entry))
	return err
}

func formatEntry(entry *logrus.Entry) string {
	var b strings.Builder
	b.WriteString(entry.Time.Format(time.DateTime))
	b.WriteString(" [")
	b.WriteString(strings.ToUpper(entry.Level.String()))
	b.WriteString("] ")
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteString("\n")
	return b.String()
}
