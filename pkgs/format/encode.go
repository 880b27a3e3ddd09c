package format

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/opal-lang/knave/pkgs/lexer"
)

// Output formats accepted by NewEncoder
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

// Formats lists the supported output formats
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatCBOR}
}

// IsFormat reports whether name is a supported output format
func IsFormat(name string) bool {
	for _, f := range Formats() {
		if f == name {
			return true
		}
	}
	return false
}

// Record is the structured form of a token. Text is nil for kinds without text.
type Record struct {
	ID     uint64  `json:"id" yaml:"id" cbor:"1,keyasint"`
	Kind   string  `json:"kind" yaml:"kind" cbor:"2,keyasint"`
	Text   *string `json:"text,omitempty" yaml:"text,omitempty" cbor:"3,keyasint,omitempty"`
	Offset int     `json:"offset" yaml:"offset" cbor:"4,keyasint"`
	Length int     `json:"length" yaml:"length" cbor:"5,keyasint"`
}

// NewRecord copies a token into a Record
func NewRecord(tok lexer.Token) Record {
	rec := Record{
		ID:     tok.ID,
		Kind:   tok.Kind.String(),
		Offset: tok.Span.Offset,
		Length: tok.Span.Length,
	}
	if tok.Text != nil {
		text := string(tok.Text)
		rec.Text = &text
	}
	return rec
}

// Encoder writes a stream of tokens. Close flushes buffered output and must
// be called once after the last token.
type Encoder interface {
	Encode(tok lexer.Token) error
	Close() error
}

// NewEncoder returns the encoder for format writing to w. useColor only
// affects the text format.
func NewEncoder(format string, w io.Writer, useColor bool) (Encoder, error) {
	bw := bufio.NewWriter(w)
	switch format {
	case FormatText:
		return &textEncoder{w: bw, useColor: useColor}, nil
	case FormatJSON:
		return &jsonEncoder{w: bw, enc: json.NewEncoder(bw)}, nil
	case FormatYAML:
		return &yamlEncoder{w: bw, enc: yaml.NewEncoder(bw)}, nil
	case FormatCBOR:
		encMode, err := canonicalEncMode()
		if err != nil {
			return nil, err
		}
		return &cborEncoder{w: bw, enc: encMode.NewEncoder(bw)}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

type textEncoder struct {
	w        *bufio.Writer
	useColor bool
}

func (e *textEncoder) Encode(tok lexer.Token) error {
	if _, err := e.w.WriteString(ColorLine(tok, e.useColor)); err != nil {
		return err
	}
	return e.w.WriteByte('\n')
}

func (e *textEncoder) Close() error {
	return e.w.Flush()
}

// jsonEncoder writes one JSON object per line
type jsonEncoder struct {
	w   *bufio.Writer
	enc *json.Encoder
}

func (e *jsonEncoder) Encode(tok lexer.Token) error {
	return e.enc.Encode(NewRecord(tok))
}

func (e *jsonEncoder) Close() error {
	return e.w.Flush()
}

// yamlEncoder writes one YAML document per token
type yamlEncoder struct {
	w   *bufio.Writer
	enc *yaml.Encoder
}

func (e *yamlEncoder) Encode(tok lexer.Token) error {
	return e.enc.Encode(NewRecord(tok))
}

func (e *yamlEncoder) Close() error {
	if err := e.enc.Close(); err != nil {
		return err
	}
	return e.w.Flush()
}

// cborEncoder writes a CBOR sequence, one canonical item per token
type cborEncoder struct {
	w   *bufio.Writer
	enc *cbor.Encoder
}

func (e *cborEncoder) Encode(tok lexer.Token) error {
	return e.enc.Encode(NewRecord(tok))
}

func (e *cborEncoder) Close() error {
	return e.w.Flush()
}

// canonicalEncMode returns a deterministic CBOR encoder configuration
func canonicalEncMode() (cbor.EncMode, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}
	return encMode, nil
}
