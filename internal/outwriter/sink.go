package outwriter

import (
	"io"
	"os"

	"github.com/lwoluke/usd-automated-testing/internal/contract"
	"github.com/lwoluke/usd-automated-testing/schema"
)

// multiSink duplicates everything written to it to stdout and, when
// configured, to a transcript file.
type multiSink struct {
	out  io.Writer
	file *os.File
}

var _ contract.Sink = &multiSink{} // Compile-time check

// NewRunSink returns the sink for one validation run: stdout, plus a
// duplicate transcript file when cfg.OutputFile is set. Failure to open the
// file is warned about and the run continues on stdout alone; it never
// changes the exit status.
func NewRunSink(cfg *contract.Config) contract.Sink {
	s := &multiSink{out: os.Stdout}
	if cfg.OutputFile == "" {
		return s
	}
	// Parquet writes the output file itself; duplicating the status line
	// into it would corrupt the container.
	if cfg.Output == schema.ParquetOut {
		return s
	}

	f, err := os.Create(cfg.OutputFile)
	if err != nil {
		contract.LogWarn("could not open output file", err)
		return s
	}
	s.file = f
	return s
}

// Write writes to every destination. The file copy is best-effort; a short
// write there does not fail the console write.
func (s *multiSink) Write(p []byte) (int, error) {
	if s.file != nil {
		_, _ = s.file.Write(p)
	}
	return s.out.Write(p)
}

// Close flushes and closes the transcript file, if any, and reports where
// the results went.
func (s *multiSink) Close() error {
	if s.file == nil {
		return nil
	}
	name := s.file.Name()
	if err := s.file.Close(); err != nil {
		return err
	}
	s.file = nil
	_, _ = os.Stdout.WriteString("Results exported to: " + name + "\n")
	return nil
}
