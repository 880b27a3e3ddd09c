// Package driver runs the knave scanner over source files and writes the
// resulting token stream.
package driver

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/opal-lang/knave/pkgs/config"
	knaveerrors "github.com/opal-lang/knave/pkgs/errors"
	"github.com/opal-lang/knave/pkgs/format"
	"github.com/opal-lang/knave/pkgs/lexer"
	"github.com/opal-lang/knave/pkgs/source"
)

// Result summarizes one scan
type Result struct {
	Path      string
	Bytes     int
	Tokens    int // including the final EndOfFile token
	Sentinels int // None tokens
	Digest    [32]byte
	Telemetry map[lexer.Kind]*lexer.TokenTelemetry // nil unless stats are enabled
}

// Option configures a Driver
type Option func(*Driver)

// WithColor enables ANSI colors in the text format
func WithColor(useColor bool) Option {
	return func(d *Driver) {
		d.useColor = useColor
	}
}

// WithLogger sets the logger used for token traces in debug mode
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// Driver scans source files. Tokens go to stdout; stats, digests and
// traces go to stderr.
type Driver struct {
	cfg      config.Config
	stdout   io.Writer
	stderr   io.Writer
	useColor bool
	logger   *slog.Logger
}

// New creates a Driver. cfg must already be validated.
func New(cfg config.Config, stdout, stderr io.Writer, opts ...Option) *Driver {
	d := &Driver{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = config.NewLogger(stderr, cfg.Debug)
	}
	return d
}

// Run validates, loads and scans the file at path
func (d *Driver) Run(path string) (*Result, error) {
	if err := source.ValidateExtension(path); err != nil {
		return nil, err
	}

	buf, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	return d.Scan(buf)
}

// Scan writes every token of buf, ending with the EndOfFile token
func (d *Driver) Scan(buf *source.Buffer) (*Result, error) {
	enc, err := format.NewEncoder(d.cfg.Format, d.stdout, d.useColor)
	if err != nil {
		return nil, knaveerrors.NewEncodeError(d.cfg.Format, err)
	}

	var digester *format.Digester
	if d.cfg.Digest {
		if digester, err = format.NewDigester(); err != nil {
			return nil, knaveerrors.NewEncodeError("digest", err)
		}
	}

	opts := d.cfg.LexerOptions()
	if d.cfg.Debug {
		opts = append(opts, lexer.WithLogger(d.logger))
	}
	l := lexer.NewLexer(buf.Data, opts...)

	result := &Result{Path: buf.Path, Bytes: buf.Len()}
	for {
		tok := l.NextToken()
		if err := enc.Encode(tok); err != nil {
			return nil, knaveerrors.NewEncodeError(d.cfg.Format, err)
		}
		if digester != nil {
			if err := digester.Add(tok); err != nil {
				return nil, knaveerrors.NewEncodeError("digest", err)
			}
		}

		result.Tokens++
		if tok.Kind == lexer.None {
			result.Sentinels++
		}
		if tok.Kind == lexer.EndOfFile {
			break
		}
	}
	if err := enc.Close(); err != nil {
		return nil, knaveerrors.NewEncodeError(d.cfg.Format, err)
	}

	result.Telemetry = l.GetTokenTelemetry()
	d.logger.Debug("scan complete", "path", buf.Path, "tokens", result.Tokens, "sentinels", result.Sentinels)

	if d.cfg.Stats {
		d.writeStats(result)
	}
	if digester != nil {
		result.Digest = digester.Sum()
		_, _ = fmt.Fprintf(d.stderr, "digest: %s\n", format.DigestString(result.Digest))
	}
	return result, nil
}

// writeStats prints the scan summary followed by per-kind counts in kind order
func (d *Driver) writeStats(result *Result) {
	_, _ = fmt.Fprintf(d.stderr, "scanned %s: %s, %d tokens, %d unrecognized\n",
		result.Path, humanize.Bytes(uint64(result.Bytes)), result.Tokens, result.Sentinels)

	for _, kind := range lexer.Kinds() {
		tel, ok := result.Telemetry[kind]
		if !ok {
			continue
		}
		_, _ = fmt.Fprintf(d.stderr, "  %-45s %d\n", kind, tel.Count)
	}
}
