package model

import (
	"bytes"
	"encoding/json"
)

// Codec for the semi-structured exercise sub-fields. The admin screens have
// historically sent these as JSON-encoded strings inside the request body,
// so a blob may arrive either as a bare JSON value or as a quoted string
// wrapping one. Decoding is defensive: anything unparseable degrades to the
// empty value so a single bad row never blocks a whole listing.

// unwrap peels one level of string quoting off a raw blob, e.g.
// "\"[{...}]\"" -> "[{...}]". Returns the input unchanged otherwise.
func unwrap(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) < 2 || trimmed[0] != '"' {
		return trimmed
	}
	var inner string
	if err := json.Unmarshal(trimmed, &inner); err != nil {
		return trimmed
	}
	return []byte(inner)
}

func DecodeOptions(raw []byte) []Option {
	if len(raw) == 0 {
		return []Option{}
	}
	var opts []Option
	if err := json.Unmarshal(unwrap(raw), &opts); err != nil || opts == nil {
		return []Option{}
	}
	return opts
}

func EncodeOptions(opts []Option) json.RawMessage {
	if opts == nil {
		opts = []Option{}
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return json.RawMessage("[]")
	}
	return b
}

func DecodeMedia(raw []byte) *Media {
	if len(raw) == 0 {
		return nil
	}
	var m Media
	if err := json.Unmarshal(unwrap(raw), &m); err != nil {
		return nil
	}
	if m.Type == "" && m.URL == "" {
		return nil
	}
	return &m
}

func EncodeMedia(m *Media) json.RawMessage {
	if m == nil {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return b
}

func DecodeRelatedIDs(raw []byte) []uint {
	if len(raw) == 0 {
		return []uint{}
	}
	var ids []uint
	if err := json.Unmarshal(unwrap(raw), &ids); err != nil || ids == nil {
		return []uint{}
	}
	return ids
}

func EncodeRelatedIDs(ids []uint) json.RawMessage {
	if ids == nil {
		ids = []uint{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return json.RawMessage("[]")
	}
	return b
}
