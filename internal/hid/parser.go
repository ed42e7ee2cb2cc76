package hid

import (
	"errors"
	"strconv"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// ParseError describes a key specification that could not be parsed.
type ParseError struct {
	Spec   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return "parse key " + strconv.Quote(e.Spec) + ": " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseKeycode parses a key specification into a Keycode.
//
// Supported formats:
//   - Key names: "A", "space", "CAPSLOCK", "F5"
//   - Modifier functions: "LS(A)", "LC(LS(TAB))"
//   - Modifier prefixes: "Shift+A", "Ctrl+Alt+DEL"
//   - Raw numbers: "0x070039" (page+id) or "0x02070004" (with modifiers)
func ParseKeycode(spec string) (Keycode, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return 0, &ParseError{Spec: spec, Reason: "empty", Err: ErrEmptySpec}
	}

	kc, err := parse(s)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Spec = spec
			return 0, pe
		}
		return 0, &ParseError{Spec: spec, Reason: err.Error(), Err: err}
	}
	return kc, nil
}

// ParseUsage parses a key specification that must not carry modifiers.
func ParseUsage(spec string) (Usage, error) {
	kc, err := ParseKeycode(spec)
	if err != nil {
		return 0, err
	}
	if kc.Modifiers() != ModNone {
		return 0, &ParseError{Spec: spec, Reason: "modifiers not allowed here", Err: ErrInvalidSpec}
	}
	return kc.Usage(), nil
}

// MustParseKeycode is like ParseKeycode but panics on error.
// Intended for tables and tests.
func MustParseKeycode(spec string) Keycode {
	kc, err := ParseKeycode(spec)
	if err != nil {
		panic(err)
	}
	return kc
}

func parse(s string) (Keycode, error) {
	// Modifier function: LS(...)
	if open := strings.IndexByte(s, '('); open > 0 {
		if !strings.HasSuffix(s, ")") {
			return 0, &ParseError{Reason: "missing closing bracket", Err: ErrUnmatchedBracket}
		}
		mod, ok := modifierFunc(s[:open])
		if !ok {
			return 0, &ParseError{Reason: "unknown modifier function " + strconv.Quote(s[:open]), Err: ErrInvalidSpec}
		}
		inner, err := parse(strings.TrimSpace(s[open+1 : len(s)-1]))
		if err != nil {
			return 0, err
		}
		return NewKeycode(inner.Usage(), inner.Modifiers().With(mod)), nil
	}
	if strings.ContainsAny(s, "()") {
		return 0, &ParseError{Reason: "unbalanced brackets", Err: ErrUnmatchedBracket}
	}

	// Modifier prefixes: Ctrl+Shift+A. A trailing "+" alone is not a key.
	if idx := strings.LastIndexByte(s, '+'); idx > 0 && idx < len(s)-1 {
		var mods Modifiers
		for _, p := range strings.Split(s[:idx], "+") {
			m := ModifierFromName(p)
			if m == ModNone {
				return 0, &ParseError{Reason: "unknown modifier " + strconv.Quote(p), Err: ErrInvalidSpec}
			}
			mods = mods.With(m)
		}
		inner, err := parse(strings.TrimSpace(s[idx+1:]))
		if err != nil {
			return 0, err
		}
		return NewKeycode(inner.Usage(), inner.Modifiers().With(mods)), nil
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, &ParseError{Reason: "bad hex number", Err: ErrInvalidSpec}
		}
		kc := Keycode(v)
		if kc.Usage().Page() == 0 {
			// Bare ids default to the keyboard page.
			kc = NewKeycode(NewUsage(PageKeyboard, kc.Usage().ID()), kc.Modifiers())
		}
		return kc, nil
	}

	if u, ok := UsageFromName(s); ok {
		return NewKeycode(u, ModNone), nil
	}
	return 0, &ParseError{Reason: "unknown key name " + strconv.Quote(s), Err: ErrInvalidSpec}
}

func modifierFunc(name string) (Modifiers, bool) {
	n := upper(strings.TrimSpace(name))
	for _, f := range modifierFuncs {
		if f.name == n {
			return f.mod, true
		}
	}
	return ModNone, false
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
