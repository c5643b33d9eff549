package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/logrusorgru/aurora/v4"
	"github.com/projectdiscovery/pd-sweep/pkg/sweep"
	fileutil "github.com/projectdiscovery/utils/file"
)

const resultsHeader = "Ping Sweep Results:\n--------------------\n"

// Options controls how results are rendered
type Options struct {
	File    string // Empty means stdout
	JSON    bool   // One JSON object per line
	NoColor bool
}

// Writer renders sweep results as text lines or JSON lines
type Writer struct {
	mu     sync.Mutex
	out    *bufio.Writer
	closer io.Closer
	json   bool
	au     *aurora.Aurora
}

// New creates a writer for the console or, when options.File is set, for a
// file whose parent directories are created as needed. Files never get colors.
func New(options *Options) (*Writer, error) {
	if options.File == "" {
		return NewWriter(os.Stdout, options.JSON, !options.NoColor), nil
	}

	if dir := filepath.Dir(options.File); dir != "" && !fileutil.FolderExists(dir) {
		if err := fileutil.CreateFolder(dir); err != nil {
			return nil, fmt.Errorf("could not create output folder %s: %w", dir, err)
		}
	}

	f, err := os.Create(options.File)
	if err != nil {
		return nil, fmt.Errorf("could not create output file %s: %w", options.File, err)
	}

	w := NewWriter(f, options.JSON, false)
	w.closer = f
	return w, nil
}

// NewWriter wraps an arbitrary sink
func NewWriter(w io.Writer, jsonLines, colors bool) *Writer {
	return &Writer{
		out:  bufio.NewWriter(w),
		json: jsonLines,
		au:   aurora.New(aurora.WithColors(colors)),
	}
}

// WriteHeader writes the banner and the results heading. JSON output has no
// header.
func (w *Writer) WriteHeader(banner string) error {
	if w.json {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if banner != "" {
		if _, err := w.out.WriteString(banner); err != nil {
			return err
		}
	}
	_, err := w.out.WriteString(resultsHeader)
	return err
}

// Write renders a single result
func (w *Writer) Write(result *sweep.Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.json {
		data, err := json.Marshal(result)
		if err != nil {
			return err
		}
		if _, err := w.out.Write(data); err != nil {
			return err
		}
		return w.out.WriteByte('\n')
	}

	_, err := w.out.WriteString(w.format(result) + "\n")
	return err
}

// WriteAll renders results in the given order
func (w *Writer) WriteAll(results []*sweep.Result) error {
	for _, result := range results {
		if err := w.Write(result); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered output and closes the underlying file, if any
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.out.Flush()
	if w.closer != nil {
		if closeErr := w.closer.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

func (w *Writer) format(result *sweep.Result) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprint(w.au.Green(result.Host())))
	builder.WriteString(" is reachable, response time: ")
	builder.WriteString(strconv.FormatFloat(result.LatencyMillis(), 'f', 2, 64))
	builder.WriteString(" ms")

	if len(result.OpenPorts) > 0 {
		ports := make([]string, 0, len(result.OpenPorts))
		for _, port := range result.OpenPorts {
			ports = append(ports, strconv.Itoa(port))
		}
		builder.WriteString(", open ports: ")
		builder.WriteString(fmt.Sprint(w.au.Cyan(strings.Join(ports, ", "))))
	}

	return builder.String()
}

// FormatResult renders a result as a plain text line without colors
func FormatResult(result *sweep.Result) string {
	w := &Writer{au: aurora.New(aurora.WithColors(false))}
	return w.format(result)
}
