package config_test

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/dshills/lockkeys/internal/behavior/capslock"
	"github.com/dshills/lockkeys/internal/config"
	"github.com/dshills/lockkeys/internal/endpoint"
	"github.com/dshills/lockkeys/internal/hid"
)

// memFS is an in-memory file system for testing.
type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func TestLoadMissingFile(t *testing.T) {
	f, err := config.NewLoaderWithFS(memFS{}).Load("/nope.toml")
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestLoadAndResolve(t *testing.T) {
	fsys := memFS{"/lockkeys.toml": `
[log]
level = "debug"

[host]
endpoint = "virtual"
latency_ms = 3

[[behavior]]
name = "word"
preset = "capslock_word"
press_duration_ms = 20
disable_on_keys = ["SPACE", "LS(MINUS)"]

[[behavior]]
name = "num_hold"
display_name = "Num hold"
lock = "numlock"
enable_on_press = true
disable_on_release = true

[[binding]]
trigger = "F1"
behavior = "word"

[[binding]]
trigger = "F2"
behavior = "num_hold"
`}

	f, err := config.NewLoaderWithFS(fsys).Load("/lockkeys.toml")
	require.NoError(t, err)
	require.NotNil(t, f)

	r, err := f.Resolve()
	require.NoError(t, err)

	assert.Equal(t, "debug", r.LogLevel)
	assert.Equal(t, endpoint.KindVirtual, r.Endpoint)
	assert.Equal(t, 3*time.Millisecond, r.Latency)

	want := []capslock.Config{
		{
			Index:                0,
			Name:                 "word",
			DisplayName:          "Capslock word",
			PressDuration:        20 * time.Millisecond,
			EnableOnPress:        true,
			DisableOnNextRelease: true,
			DisableOnKeys: []capslock.KeyItem{
				{Page: hid.PageKeyboard, ID: hid.KeySpace.ID()},
				{Page: hid.PageKeyboard, ID: hid.KeyMinus.ID(), Modifiers: hid.ModLShift},
			},
		},
		{
			Index:            1,
			Name:             "num_hold",
			DisplayName:      "Num hold",
			Lock:             hid.IndicatorNumLock,
			PressDuration:    capslock.DefaultPressDuration,
			EnableOnPress:    true,
			DisableOnRelease: true,
		},
	}
	if diff := cmp.Diff(want, r.Behaviors); diff != "" {
		t.Errorf("behaviors mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []config.Trigger{
		{Key: hid.KeyF1, Behavior: "word"},
		{Key: hid.NewUsage(hid.PageKeyboard, hid.KeyF1.ID()+1), Behavior: "num_hold"},
	}, r.Triggers)
}

func TestParseErrors(t *testing.T) {
	_, err := config.Parse("bad.toml", []byte("[log\nlevel = 1"))
	var pe *config.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bad.toml", pe.Path)
	assert.Positive(t, pe.Line)
	assert.Contains(t, pe.Error(), "bad.toml")

	_, err = config.Parse("unknown.toml", []byte("[host]\nendpoint = \"os\"\nspeed = 3\n"))
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Message, "speed")
	assert.Positive(t, pe.Line)
}

func TestLoadReader(t *testing.T) {
	f, err := config.NewLoader().LoadReader(strings.NewReader("[[behavior]]\npreset = \"cplkon\"\n"))
	require.NoError(t, err)

	r, err := f.Resolve()
	require.NoError(t, err)
	require.Len(t, r.Behaviors, 1)
	assert.Equal(t, "capslock_on", r.Behaviors[0].Name)
	assert.Equal(t, "info", r.LogLevel)
}

func TestResolveReportsEveryProblem(t *testing.T) {
	neg := -1
	f := &config.File{
		Log:  config.LogSection{Level: "loud"},
		Host: config.HostSection{Endpoint: "usb", LatencyMS: -5},
		Behaviors: []config.BehaviorSection{
			{Name: "a", Preset: "capslock_sentence"},
			{Name: "b", PressKeycode: "LS(CAPSLOCK)"},
			{Name: "c", PressDurationMS: &neg},
			{Name: "d", Lock: "compose"},
			{Name: "e", DisableOnKeys: &[]string{"NOT_A_KEY"}},
			{Name: "ok"},
			{Name: "ok"},
			{},
		},
		Bindings: []config.BindingSection{
			{Trigger: "F1", Behavior: "ok"},
			{Trigger: "F1", Behavior: "ok"},
			{Trigger: "F2", Behavior: "missing"},
			{Trigger: "LS(F3)", Behavior: "ok"},
		},
	}

	_, err := f.Resolve()
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 13)

	assert.ErrorIs(t, err, capslock.ErrUnknownPreset)
	assert.ErrorIs(t, err, capslock.ErrInvalidLock)
	assert.ErrorIs(t, err, config.ErrDuplicateName)
	assert.ErrorIs(t, err, config.ErrDuplicateTrigger)
	assert.ErrorIs(t, err, config.ErrUnknownBehavior)
	assert.ErrorIs(t, err, config.ErrInvalidValue)
	assert.ErrorIs(t, err, hid.ErrInvalidSpec)

	var fe *config.FieldError
	require.True(t, errors.As(errs[0], &fe))
	assert.Equal(t, "log", fe.Section)
	assert.Equal(t, "log.level: unknown log level \"loud\"", fe.Error())
}

func TestResolveZeroPressKeycode(t *testing.T) {
	tests := []struct {
		keycode string
		lock    string
		want    hid.Usage
	}{
		{keycode: "0", want: hid.KeyCapsLock},
		{keycode: "0x0", want: hid.KeyCapsLock},
		{keycode: "0x000000", want: hid.KeyCapsLock},
		{keycode: " 0 ", want: hid.KeyCapsLock},
		{keycode: "0x0", lock: "numlock", want: hid.KeyNumLock},
		{keycode: "N0", want: hid.KeyN0},
	}
	for _, tt := range tests {
		t.Run(tt.keycode+"/"+tt.lock, func(t *testing.T) {
			f := &config.File{Behaviors: []config.BehaviorSection{
				{Name: "lock", Lock: tt.lock, PressKeycode: tt.keycode},
			}}
			r, err := f.Resolve()
			require.NoError(t, err)
			require.Len(t, r.Behaviors, 1)
			assert.Equal(t, tt.want, r.Behaviors[0].PressUsage())
		})
	}
}

func TestResolveEmpty(t *testing.T) {
	_, err := (&config.File{}).Resolve()
	assert.ErrorIs(t, err, config.ErrNoBehaviors)
}

func TestDefault(t *testing.T) {
	r, err := config.Default().Resolve()
	require.NoError(t, err)

	require.Len(t, r.Behaviors, 5)
	require.Len(t, r.Triggers, 5)
	assert.Equal(t, endpoint.KindVirtual, r.Endpoint)
	for i, b := range r.Behaviors {
		assert.Equal(t, i, b.Index)
		assert.Equal(t, b.Name, r.Triggers[i].Behavior)
	}
	assert.Equal(t, "capslock_line", r.Behaviors[4].Name)
}

func TestPresetsRenderAsLoadableTOML(t *testing.T) {
	data, err := toml.Marshal(config.FromPresets())
	require.NoError(t, err)

	f, err := config.Parse("presets.toml", data)
	require.NoError(t, err)
	r, err := f.Resolve()
	require.NoError(t, err)

	presets := capslock.Presets()
	require.Len(t, r.Behaviors, len(presets))
	for i, p := range presets {
		want := p.Config
		want.Index = i
		want.PressKeycode = hid.KeyCapsLock
		if diff := cmp.Diff(want, r.Behaviors[i], cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", p.Config.Name, diff)
		}
	}
}
