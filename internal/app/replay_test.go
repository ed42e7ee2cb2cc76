package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/lockkeys/internal/hid"
)

func TestParseScript(t *testing.T) {
	src := `
# capslock_word, then a separator
press F4
release capslock_word
tap LS(A)
type "a # b"   # comment after a quoted argument
type plain words
wait 15ms
drain
host on numlock
expect lock off
expect active capslock_word false
expect text "HELLO "
`
	script, err := ParseScript("word.lk", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, script.Steps, 11)

	steps := script.Steps
	assert.Equal(t, Step{Line: 3, Op: OpPress, Key: hid.MustParseKeycode("F4")}, steps[0])
	assert.Equal(t, Step{Line: 4, Op: OpRelease, Name: "capslock_word"}, steps[1])
	assert.Equal(t, hid.NewKeycode(hid.KeyA, hid.ModLShift), steps[2].Key)
	assert.Equal(t, "a # b", steps[3].Text)
	assert.Equal(t, "plain words", steps[4].Text)
	assert.Equal(t, 15*time.Millisecond, steps[5].Duration)
	assert.Equal(t, OpDrain, steps[6].Op)
	assert.Equal(t, Step{Line: 10, Op: OpHost, Flag: true, Lock: hid.IndicatorNumLock}, steps[7])
	assert.Equal(t, Step{Line: 11, Op: OpExpect, Expect: ExpectLock, Lock: hid.IndicatorCapsLock}, steps[8])
	assert.Equal(t, Step{Line: 12, Op: OpExpect, Expect: ExpectActive, Name: "capslock_word"}, steps[9])
	assert.Equal(t, "HELLO ", steps[10].Text)

	assert.Equal(t, "press F4", steps[0].String())
	assert.Equal(t, "release capslock_word", steps[1].String())
	assert.Equal(t, "expect lock off CapsLock", steps[8].String())
	assert.Equal(t, `expect text "HELLO "`, steps[10].String())
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"unknown op", "jump F4", 1, `unknown operation "jump"`},
		{"missing key", "\n\npress", 3, "missing key"},
		{"tap needs a key", "tap capslock_word", 1, "tap"},
		{"bad duration", "wait soon", 1, "wait"},
		{"drain argument", "drain now", 1, "unexpected argument"},
		{"bad state", "host maybe", 1, "want on|off"},
		{"bad lock", "expect lock on shift", 1, `unknown lock "shift"`},
		{"bad active", "expect active capslock_word perhaps", 1, "NAME true|false"},
		{"unknown expectation", "expect colour red", 1, "unknown expectation"},
		{"bad quote", `type "abc`, 1, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript("bad.lk", strings.NewReader(tt.src))
			require.Error(t, err)

			var se *ScriptError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "bad.lk", se.Script)
			assert.Equal(t, tt.line, se.Line)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hold.lk")
	require.NoError(t, os.WriteFile(path, []byte("press F3\nrelease F3\n"), 0o644))

	script, err := LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, path, script.Name)
	assert.Len(t, script.Steps, 2)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.lk"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReplay(t *testing.T) {
	src := `
press F4          # capslock_word
release F4
drain
expect lock on
expect active capslock_word true
type hello
tap SPACE
drain
expect lock off
expect active capslock_word false
expect text "HELLO "

press capslock_hold
drain
type x
release capslock_hold
drain
type y
expect text "HELLO Xy"

host on
expect lock on
host off scroll
expect lock on caps
`
	script, err := ParseScript("scenario.lk", strings.NewReader(src))
	require.NoError(t, err)

	app := newTestApp(t, nil)
	var seen []string
	err = app.Replay(testContext(t), script, func(step Step, snap Snapshot) {
		seen = append(seen, step.String())
		if step.Op == OpDrain && step.Line == 4 {
			assert.True(t, snap.Indicators.Has(hid.IndicatorCapsLock))
		}
	})
	require.NoError(t, err)
	assert.Len(t, seen, len(script.Steps))
	assert.Equal(t, "press F4", seen[0])
}

func TestReplay_FailedExpectation(t *testing.T) {
	script, err := ParseScript("fail.lk", strings.NewReader("type abc\nexpect text \"ABC\"\n"))
	require.NoError(t, err)

	app := newTestApp(t, nil)
	err = app.Replay(testContext(t), script, nil)
	require.ErrorIs(t, err, ErrExpectation)

	var se *ScriptError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Line)
	assert.Contains(t, err.Error(), `text is "abc", want "ABC"`)
}

func TestReplay_UnknownBehavior(t *testing.T) {
	script, err := ParseScript("unknown.lk", strings.NewReader("press capslock_sometimes\n"))
	require.NoError(t, err)

	app := newTestApp(t, nil)
	err = app.Replay(context.Background(), script, nil)
	assert.ErrorIs(t, err, ErrUnknownBehavior)
}
