package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/lockkeys/internal/hid"
)

// Script operations.
const (
	OpPress   = "press"
	OpRelease = "release"
	OpTap     = "tap"
	OpType    = "type"
	OpWait    = "wait"
	OpDrain   = "drain"
	OpHost    = "host"
	OpExpect  = "expect"
)

// Expectation kinds.
const (
	ExpectLock   = "lock"
	ExpectActive = "active"
	ExpectText   = "text"
)

// Step is one parsed script line.
type Step struct {
	Line int
	Op   string

	// Key is set for press, release and tap on a key. Name is set instead
	// when the argument is a behavior name.
	Key  hid.Keycode
	Name string

	// Expect is the expectation kind for OpExpect.
	Expect string

	Text     string
	Lock     hid.Indicators
	Flag     bool
	Duration time.Duration
}

func (s Step) String() string {
	switch s.Op {
	case OpPress, OpRelease, OpTap:
		if s.Name != "" {
			return s.Op + " " + s.Name
		}
		return s.Op + " " + s.Key.String()
	case OpType:
		return s.Op + " " + strconv.Quote(s.Text)
	case OpWait:
		return s.Op + " " + s.Duration.String()
	case OpHost:
		return fmt.Sprintf("%s %s %s", s.Op, onOff(s.Flag), s.Lock)
	case OpExpect:
		switch s.Expect {
		case ExpectLock:
			return fmt.Sprintf("%s lock %s %s", s.Op, onOff(s.Flag), s.Lock)
		case ExpectActive:
			return fmt.Sprintf("%s active %s %t", s.Op, s.Name, s.Flag)
		default:
			return fmt.Sprintf("%s text %q", s.Op, s.Text)
		}
	}
	return s.Op
}

// Script is a parsed replay script.
type Script struct {
	Name  string
	Steps []Step
}

// ScriptError locates a failure in a script.
type ScriptError struct {
	Script string
	Line   int
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Script, e.Line, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseScript(path, f)
}

// ParseScript parses a script. Blank lines and text after '#' are
// ignored, except inside a quoted argument.
func ParseScript(name string, r io.Reader) (*Script, error) {
	script := &Script{Name: name}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := stripComment(sc.Text())
		if text == "" {
			continue
		}
		step, err := parseStep(text)
		if err != nil {
			return nil, &ScriptError{Script: name, Line: line, Err: err}
		}
		step.Line = line
		script.Steps = append(script.Steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, &ScriptError{Script: name, Line: line, Err: err}
	}
	return script, nil
}

func stripComment(s string) string {
	quoted := false
	for i, r := range s {
		switch {
		case r == '"' && (i == 0 || s[i-1] != '\\'):
			quoted = !quoted
		case r == '#' && !quoted:
			return strings.TrimSpace(s[:i])
		}
	}
	return strings.TrimSpace(s)
}

func parseStep(text string) (Step, error) {
	op, rest, _ := strings.Cut(text, " ")
	op = strings.ToLower(op)
	rest = strings.TrimSpace(rest)
	step := Step{Op: op}

	switch op {
	case OpPress, OpRelease, OpTap:
		if rest == "" {
			return step, fmt.Errorf("%s: missing key or behavior", op)
		}
		if kc, err := hid.ParseKeycode(rest); err == nil {
			step.Key = kc
		} else if op == OpTap {
			return step, fmt.Errorf("%s: %w", op, err)
		} else {
			step.Name = rest
		}

	case OpType:
		s, err := unquote(rest)
		if err != nil {
			return step, fmt.Errorf("%s: %w", op, err)
		}
		step.Text = s

	case OpWait:
		d, err := time.ParseDuration(rest)
		if err != nil {
			return step, fmt.Errorf("%s: %w", op, err)
		}
		step.Duration = d

	case OpDrain:
		if rest != "" {
			return step, fmt.Errorf("%s: unexpected argument %q", op, rest)
		}

	case OpHost:
		flag, lock, err := parseLockArgs(rest)
		if err != nil {
			return step, fmt.Errorf("%s: %w", op, err)
		}
		step.Flag, step.Lock = flag, lock

	case OpExpect:
		kind, args, _ := strings.Cut(rest, " ")
		args = strings.TrimSpace(args)
		step.Expect = strings.ToLower(kind)
		switch step.Expect {
		case ExpectLock:
			flag, lock, err := parseLockArgs(args)
			if err != nil {
				return step, fmt.Errorf("%s %s: %w", op, kind, err)
			}
			step.Flag, step.Lock = flag, lock
		case ExpectActive:
			name, val, _ := strings.Cut(args, " ")
			b, err := strconv.ParseBool(strings.TrimSpace(val))
			if name == "" || err != nil {
				return step, fmt.Errorf("%s %s: want NAME true|false", op, kind)
			}
			step.Name, step.Flag = name, b
		case ExpectText:
			s, err := unquote(args)
			if err != nil {
				return step, fmt.Errorf("%s %s: %w", op, kind, err)
			}
			step.Text = s
		default:
			return step, fmt.Errorf("%s: unknown expectation %q", op, kind)
		}

	default:
		return step, fmt.Errorf("unknown operation %q", op)
	}
	return step, nil
}

// parseLockArgs parses "on|off [lock]".
func parseLockArgs(s string) (bool, hid.Indicators, error) {
	state, name, _ := strings.Cut(s, " ")
	var on bool
	switch strings.ToLower(state) {
	case "on":
		on = true
	case "off":
	default:
		return false, 0, fmt.Errorf("want on|off, got %q", state)
	}
	lock, ok := hid.ParseIndicator(name)
	if !ok {
		return false, 0, fmt.Errorf("unknown lock %q", strings.TrimSpace(name))
	}
	return on, lock, nil
}

func unquote(s string) (string, error) {
	if strings.HasPrefix(s, `"`) {
		return strconv.Unquote(s)
	}
	return s, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Replay runs each step of script in order, stopping at the first error
// or failed expectation. If fn is non-nil it is called after every step
// with the resulting snapshot.
func (app *Application) Replay(ctx context.Context, script *Script, fn func(Step, Snapshot)) error {
	for _, step := range script.Steps {
		if err := app.runStep(ctx, step); err != nil {
			return &ScriptError{Script: script.Name, Line: step.Line, Err: err}
		}
		if fn != nil {
			snap, err := app.Snapshot(ctx)
			if err != nil {
				return &ScriptError{Script: script.Name, Line: step.Line, Err: err}
			}
			fn(step, snap)
		}
	}
	return nil
}

func (app *Application) runStep(ctx context.Context, step Step) error {
	switch step.Op {
	case OpPress:
		if step.Name != "" {
			return app.PressBinding(ctx, step.Name)
		}
		return app.KeyDown(ctx, step.Key)
	case OpRelease:
		if step.Name != "" {
			return app.ReleaseBinding(ctx, step.Name)
		}
		return app.KeyUp(ctx, step.Key)
	case OpTap:
		return app.TapKey(ctx, step.Key)
	case OpType:
		return app.TypeText(ctx, step.Text)
	case OpWait:
		t := time.NewTimer(step.Duration)
		defer t.Stop()
		select {
		case <-t.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	case OpDrain:
		return app.Drain(ctx)
	case OpHost:
		cur := app.store.Indicators()
		next := cur.Without(step.Lock)
		if step.Flag {
			next = cur.With(step.Lock)
		}
		return app.SetHostIndicators(ctx, next)
	case OpExpect:
		return app.expect(ctx, step)
	}
	return fmt.Errorf("unknown operation %q", step.Op)
}

func (app *Application) expect(ctx context.Context, step Step) error {
	snap, err := app.Snapshot(ctx)
	if err != nil {
		return err
	}
	switch step.Expect {
	case ExpectLock:
		if got := snap.Indicators.Has(step.Lock); got != step.Flag {
			return fmt.Errorf("%w: %s is %s, want %s", ErrExpectation, step.Lock, onOff(got), onOff(step.Flag))
		}
	case ExpectActive:
		l, ok := snap.Lock(step.Name)
		if !ok {
			return NewOperationError("expect", step.Name, ErrUnknownBehavior)
		}
		if l.Active != step.Flag {
			return fmt.Errorf("%w: %s active is %t, want %t", ErrExpectation, step.Name, l.Active, step.Flag)
		}
	case ExpectText:
		if app.host == nil {
			return ErrNoVirtualHost
		}
		if snap.Text != step.Text {
			return fmt.Errorf("%w: text is %q, want %q", ErrExpectation, snap.Text, step.Text)
		}
	}
	return nil
}
