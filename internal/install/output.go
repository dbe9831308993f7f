package install

import (
	"bytes"
	"io"
)

// PrefixWriter adds a prefix to each line of output. Incomplete lines are
// held until their newline arrives or Flush is called.
type PrefixWriter struct {
	prefix string
	writer io.Writer
	buffer []byte
}

// NewPrefixWriter creates a writer that prefixes each line
func NewPrefixWriter(writer io.Writer, prefix string) *PrefixWriter {
	return &PrefixWriter{
		prefix: prefix,
		writer: writer,
	}
}

// Write adds prefix to each complete line
func (p *PrefixWriter) Write(data []byte) (int, error) {
	p.buffer = append(p.buffer, data...)

	for {
		i := bytes.IndexByte(p.buffer, '\n')
		if i < 0 {
			break
		}
		if err := p.writeLine(p.buffer[:i]); err != nil {
			return 0, err
		}
		p.buffer = p.buffer[i+1:]
	}

	return len(data), nil
}

// Flush writes any buffered partial line.
func (p *PrefixWriter) Flush() error {
	if len(p.buffer) == 0 {
		return nil
	}
	err := p.writeLine(p.buffer)
	p.buffer = p.buffer[:0]
	return err
}

func (p *PrefixWriter) writeLine(line []byte) error {
	out := make([]byte, 0, len(p.prefix)+len(line)+1)
	out = append(out, p.prefix...)
	out = append(out, line...)
	out = append(out, '\n')
	_, err := p.writer.Write(out)
	return err
}
