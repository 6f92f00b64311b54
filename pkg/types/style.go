// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Style selects a citation formatting convention. Styles differ only in
// punctuation and ordering, never in which fields they render.
type Style string

const (
	StyleAPA Style = "APA"
	StyleMLA Style = "MLA"
)

// Styles lists every supported style in display order.
var Styles = []Style{StyleAPA, StyleMLA}

// ParseStyle converts a case-insensitive style name into a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(StyleAPA):
		return StyleAPA, nil
	case string(StyleMLA):
		return StyleMLA, nil
	default:
		return "", fmt.Errorf("unsupported citation style %q: use APA or MLA", s)
	}
}

// UnmarshalText lets viper, yaml and json decode style names.
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
