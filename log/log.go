package log

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/pretty"

	"github.com/xeptore/promptgen/constant"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

func newBaseLogger() zerolog.Logger {
	return zerolog.
		New(io.Discard).
		With().
		Dict(
			"app",
			zerolog.
				Dict().
				Str("version", constant.Version).
				Str("compilation_time", constant.CompileTime.Format(time.RFC3339)),
		).
		Timestamp().
		Logger().
		Level(zerolog.TraceLevel)
}

// NewPretty returns a logger writing indented, colorized JSON lines to w.
func NewPretty(w io.Writer) zerolog.Logger {
	return newBaseLogger().Output(newPrettyWriter(w))
}

// NewPacked returns a logger writing one compact JSON object per line to w.
func NewPacked(w io.Writer) zerolog.Logger {
	return newBaseLogger().Output(w)
}

// New returns a packed logger when packed is set, and a pretty one otherwise.
func New(w io.Writer, packed bool) zerolog.Logger {
	if packed {
		return NewPacked(w)
	}
	return NewPretty(w)
}

func newPrettyWriter(out io.Writer) prettyWriter {
	return prettyWriter{out: out, style: pretty.TerminalStyle}
}

type prettyWriter struct {
	out   io.Writer
	style *pretty.Style
}

func (p prettyWriter) Write(line []byte) (int, error) {
	if n, err := p.out.Write(pretty.Color(pretty.PrettyOptions(line, &pretty.Options{Width: 120, Prefix: "", Indent: "  ", SortKeys: false}), p.style)); nil != err {
		return n, err
	}
	return len(line), nil
}
