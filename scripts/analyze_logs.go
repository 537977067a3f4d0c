package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// LogStats summarises one day of service logs
type LogStats struct {
	TotalRequests int
	StatusClasses map[string]int
	Paths         map[string]int
	SlowRequests  []RequestLine
	TotalErrors   int
	ErrorPatterns map[string]int
	SlowThreshold time.Duration
	TotalDuration time.Duration
	MaxDuration   time.Duration
}

// RequestLine is a parsed access log entry
type RequestLine struct {
	Method    string
	Path      string
	Status    int
	Duration  time.Duration
	RequestID string
}

var (
	requestPattern = regexp.MustCompile(`Request: (\S+) (\S+) from \S+ - Status: (\d{3}) - Duration: (\S+) - ID: (\S*)`)
	errorPattern   = regexp.MustCompile(`^ERROR: \S+ \S+ [^:]+:\d+: (.*)$`)
	numberPattern  = regexp.MustCompile(`\d+`)
	idPathPattern  = regexp.MustCompile(`/\d+(/|$)`)
)

func newLogStats(slow time.Duration) *LogStats {
	return &LogStats{
		StatusClasses: make(map[string]int),
		Paths:         make(map[string]int),
		ErrorPatterns: make(map[string]int),
		SlowThreshold: slow,
	}
}

func main() {
	logDir := pflag.String("dir", "./logs", "directory holding the service logs")
	date := pflag.String("date", time.Now().Format("2006-01-02"), "day to analyse (YYYY-MM-DD)")
	slow := pflag.Duration("slow", 500*time.Millisecond, "requests at or above this duration are reported as slow")
	pflag.Parse()

	stats := newLogStats(*slow)

	if err := analyzeFile(filepath.Join(*logDir, fmt.Sprintf("info-%s.log", *date)), stats.addInfoLine); err != nil {
		fmt.Printf("Error reading info log: %v\n", err)
	}
	if err := analyzeFile(filepath.Join(*logDir, fmt.Sprintf("error-%s.log", *date)), stats.addErrorLine); err != nil {
		fmt.Printf("Error reading error log: %v\n", err)
	}

	printReport(os.Stdout, stats)
}

func analyzeFile(logFile string, handle func(string)) error {
	file, err := os.Open(logFile)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		handle(scanner.Text())
	}
	return scanner.Err()
}

// parseRequestLine extracts an access log entry from an info line
func parseRequestLine(line string) (RequestLine, bool) {
	m := requestPattern.FindStringSubmatch(line)
	if m == nil {
		return RequestLine{}, false
	}
	status, err := strconv.Atoi(m[3])
	if err != nil {
		return RequestLine{}, false
	}
	duration, err := time.ParseDuration(m[4])
	if err != nil {
		return RequestLine{}, false
	}
	return RequestLine{Method: m[1], Path: m[2], Status: status, Duration: duration, RequestID: m[5]}, true
}

func (s *LogStats) addInfoLine(line string) {
	req, ok := parseRequestLine(line)
	if !ok {
		return
	}
	s.TotalRequests++
	s.StatusClasses[fmt.Sprintf("%dxx", req.Status/100)]++
	s.Paths[req.Method+" "+normalizePath(req.Path)]++
	s.TotalDuration += req.Duration
	if req.Duration > s.MaxDuration {
		s.MaxDuration = req.Duration
	}
	if s.SlowThreshold > 0 && req.Duration >= s.SlowThreshold {
		s.SlowRequests = append(s.SlowRequests, req)
	}
}

func (s *LogStats) addErrorLine(line string) {
	m := errorPattern.FindStringSubmatch(line)
	if m == nil {
		// stack traces and other continuation lines
		return
	}
	s.TotalErrors++
	s.ErrorPatterns[errorKey(m[1])]++
}

// normalizePath folds numeric ids so /items/7 and /items/9 group together
func normalizePath(path string) string {
	return idPathPattern.ReplaceAllString(path, "/:id$1")
}

// errorKey keeps the leading message and drops the wrapped cause
func errorKey(msg string) string {
	if i := strings.Index(msg, ": "); i >= 0 {
		msg = msg[:i]
	}
	return numberPattern.ReplaceAllString(msg, "N")
}

func printReport(w io.Writer, stats *LogStats) {
	fmt.Fprintln(w, "\n=== Log Analysis Report ===")
	fmt.Fprintln(w, "Generated:", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Fprintln(w, "\n1. Request Statistics:")
	fmt.Fprintf(w, "   Total Requests: %d\n", stats.TotalRequests)
	for _, class := range []string{"2xx", "3xx", "4xx", "5xx"} {
		fmt.Fprintf(w, "   %s: %d\n", class, stats.StatusClasses[class])
	}
	if stats.TotalRequests > 0 {
		fmt.Fprintf(w, "   Average Duration: %v\n", stats.TotalDuration/time.Duration(stats.TotalRequests))
		fmt.Fprintf(w, "   Max Duration: %v\n", stats.MaxDuration)
	}

	fmt.Fprintln(w, "\n2. Busiest Endpoints:")
	printTop(w, stats.Paths, 5)

	fmt.Fprintf(w, "\n3. Slow Requests (>= %v): %d\n", stats.SlowThreshold, len(stats.SlowRequests))
	sort.Slice(stats.SlowRequests, func(i, j int) bool {
		return stats.SlowRequests[i].Duration > stats.SlowRequests[j].Duration
	})
	for i, req := range stats.SlowRequests {
		if i >= 5 {
			break
		}
		fmt.Fprintf(w, "   %s %s - %v (status %d, id %s)\n", req.Method, req.Path, req.Duration, req.Status, req.RequestID)
	}

	fmt.Fprintln(w, "\n4. Error Statistics:")
	fmt.Fprintf(w, "   Total Errors: %d\n", stats.TotalErrors)

	fmt.Fprintln(w, "\n5. Most Common Errors:")
	printTop(w, stats.ErrorPatterns, 5)
}

func printTop(w io.Writer, counts map[string]int, limit int) {
	type entry struct {
		key   string
		count int
	}
	var entries []entry
	for k, v := range counts {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	if len(entries) == 0 {
		fmt.Fprintln(w, "   (none)")
	}
	for i, e := range entries {
		if i >= limit {
			break
		}
		fmt.Fprintf(w, "   %s: %d\n", e.key, e.count)
	}
}
