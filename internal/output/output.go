// Package output writes generated records as JSON lines, YAML documents or
// MessagePack maps. Every format keeps the template's field order.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"pkg.jsn.cam/regfake/pkg/regfake"
)

// ErrUnknownFormat is returned for an unsupported output format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Format names an output encoding.
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	MsgPack Format = "msgpack"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, YAML, MsgPack}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Encoder writes a stream of records.
type Encoder interface {
	Encode(rec *regfake.Record) error
	// Close flushes buffered output. It does not close the underlying writer.
	Close() error
}

// NewEncoder returns an encoder for format writing to w.
func NewEncoder(w io.Writer, format Format) (Encoder, error) {
	switch format {
	case JSON:
		return &jsonEncoder{enc: json.NewEncoder(w)}, nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return &yamlEncoder{enc: enc}, nil
	case MsgPack:
		return &msgpackEncoder{enc: msgpack.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// jsonEncoder writes one JSON object per line.
type jsonEncoder struct {
	enc *json.Encoder
}

func (e *jsonEncoder) Encode(rec *regfake.Record) error {
	return e.enc.Encode(rec)
}

func (e *jsonEncoder) Close() error { return nil }

// yamlEncoder writes one YAML document per record.
type yamlEncoder struct {
	enc *yaml.Encoder
}

func (e *yamlEncoder) Encode(rec *regfake.Record) error {
	node, err := yamlNode(rec)
	if err != nil {
		return err
	}
	return e.enc.Encode(node)
}

func (e *yamlEncoder) Close() error {
	return e.enc.Close()
}

// yamlNode builds a mapping node so the document keeps the record's key
// order; a plain map would be sorted by the encoder.
func yamlNode(rec *regfake.Record) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range rec.Keys() {
		v, _ := rec.Get(k)
		var val yaml.Node
		if err := val.Encode(v.Any()); err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(k)},
			&val,
		)
	}
	return node, nil
}

// msgpackEncoder writes one map per record, keys in record order.
type msgpackEncoder struct {
	enc *msgpack.Encoder
}

func (e *msgpackEncoder) Encode(rec *regfake.Record) error {
	if err := e.enc.EncodeMapLen(rec.Len()); err != nil {
		return err
	}
	for _, k := range rec.Keys() {
		v, _ := rec.Get(k)
		if err := e.enc.EncodeString(string(k)); err != nil {
			return err
		}
		if err := e.enc.Encode(v.Any()); err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
	}
	return nil
}

func (e *msgpackEncoder) Close() error { return nil }

// WriteAll encodes recs to w in format.
func WriteAll(w io.Writer, format Format, recs []*regfake.Record) error {
	enc, err := NewEncoder(w, format)
	if err != nil {
		return err
	}
	for i, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return enc.Close()
}
