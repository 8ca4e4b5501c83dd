package model

import (
	"fmt"
	"strings"
)

type Length string

const (
	LengthShort  Length = "Short"
	LengthMedium Length = "Medium"
	LengthLong   Length = "Long"
)

type Style string

const (
	StyleBulletPoints Style = "Bullet Points"
	StyleParagraph    Style = "Paragraph"
)

// Lengths and Styles list the selectable values in display order.
// The first element of each is the default.
var (
	Lengths = []Length{LengthShort, LengthMedium, LengthLong}
	Styles  = []Style{StyleBulletPoints, StyleParagraph}
)

// Options are the user-chosen formatting options of a summary
type Options struct {
	Length Length `json:"length"`
	Style  Style  `json:"style"`
}

// DefaultOptions mirrors the first choice of each selector
func DefaultOptions() Options {
	return Options{Length: LengthShort, Style: StyleBulletPoints}
}

// ParseLength accepts a length case-insensitively. Empty input yields the default.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LengthShort, nil
	}
	for _, l := range Lengths {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported summary length %q (supported: Short, Medium, Long)", s)
}

// ParseStyle accepts a style case-insensitively; "bullet", "bullets" and
// "bullet-points" are accepted as shorthands for Bullet Points.
func ParseStyle(s string) (Style, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StyleBulletPoints, nil
	}
	for _, st := range Styles {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	switch strings.ToLower(s) {
	case "bullet", "bullets", "bullet-points", "bullet_points":
		return StyleBulletPoints, nil
	}
	return "", fmt.Errorf("unsupported answer style %q (supported: Bullet Points, Paragraph)", s)
}

// ParseOptions parses both options at once
func ParseOptions(length, style string) (Options, error) {
	l, err := ParseLength(length)
	if err != nil {
		return Options{}, err
	}
	st, err := ParseStyle(style)
	if err != nil {
		return Options{}, err
	}
	return Options{Length: l, Style: st}, nil
}
