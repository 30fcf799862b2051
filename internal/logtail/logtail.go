package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Entry is one line of the session log. Lines that are not JSON keep only
// Message.
type Entry struct {
	Time      time.Time
	Level     string
	Component string
	Message   string
}

// String renders the entry on one line.
func (e Entry) String() string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Format("15:04:05"))
		b.WriteString(" ")
	}
	if e.Level != "" {
		b.WriteString(strings.ToUpper(e.Level))
		b.WriteString(" ")
	}
	if e.Component != "" {
		b.WriteString("[" + e.Component + "] ")
	}
	b.WriteString(e.Message)
	return b.String()
}

type jsonLine struct {
	Time      time.Time `json:"time"`
	Level     string    `json:"level"`
	Component string    `json:"component"`
	Message   string    `json:"msg"`
}

// Parse decodes a logrus JSON line.
func Parse(line string) Entry {
	var j jsonLine
	if err := json.Unmarshal([]byte(line), &j); err != nil || j.Message == "" {
		return Entry{Message: line}
	}
	return Entry{Time: j.Time, Level: j.Level, Component: j.Component, Message: j.Message}
}

// Read returns at most maxLines entries from the end of the file at path. A
// missing file has no entries.
func Read(path string, maxLines int) ([]Entry, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	start := 0
	if count == maxLines {
		start = idx
	}
	entries := make([]Entry, count)
	for i := 0; i < count; i++ {
		entries[i] = Parse(ring[(start+i)%maxLines])
	}
	return entries, nil
}
