// Package config holds flag values which never fail to parse.
// A malformed value is remembered and replaced by the default, so a binary can
// report it and go on with defaults instead of stopping.
package config

import (
	"strconv"
	"strings"
)

// Port - flag.Value for TCP port number.
// Zero is treated as malformed unless it is the default.
type Port struct {
	Value    uint16
	Default  uint16
	Rejected bool
	// Input - raw value given on command line
	Input string
}

// NewPort - builds Port initialized with default value.
func NewPort(def uint16) *Port {
	return &Port{Value: def, Default: def}
}

func (p *Port) String() string {
	if p == nil {
		return ""
	}
	return strconv.FormatUint(uint64(p.Value), 10)
}

// Set - implements flag.Value and never returns an error.
func (p *Port) Set(s string) error {
	p.Input = s
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil || (n == 0 && p.Default != 0) {
		p.Value = p.Default
		p.Rejected = true
		return nil
	}
	p.Value = uint16(n)
	p.Rejected = false
	return nil
}

// Text - flag.Value for string option which falls back to default when blank.
type Text struct {
	Value    string
	Default  string
	Rejected bool
}

// NewText - builds Text initialized with default value.
func NewText(def string) *Text {
	return &Text{Value: def, Default: def}
}

func (t *Text) String() string {
	if t == nil {
		return ""
	}
	return t.Value
}

// Set - implements flag.Value and never returns an error.
func (t *Text) Set(s string) error {
	if strings.TrimSpace(s) == "" {
		t.Value = t.Default
		t.Rejected = true
		return nil
	}
	t.Value = s
	t.Rejected = false
	return nil
}
