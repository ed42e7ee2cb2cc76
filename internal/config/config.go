package config

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/dshills/lockkeys/internal/behavior/capslock"
	"github.com/dshills/lockkeys/internal/endpoint"
	"github.com/dshills/lockkeys/internal/hid"
	"github.com/dshills/lockkeys/internal/logging"
)

// File is the on-disk configuration.
type File struct {
	Log       LogSection        `toml:"log"`
	Host      HostSection       `toml:"host"`
	Behaviors []BehaviorSection `toml:"behavior"`
	Bindings  []BindingSection  `toml:"binding"`
}

// LogSection configures logging.
type LogSection struct {
	Level       string `toml:"level,omitempty"`
	Development bool   `toml:"development,omitempty"`
}

// HostSection selects the output endpoint.
type HostSection struct {
	Endpoint  string `toml:"endpoint,omitempty"`
	LatencyMS int    `toml:"latency_ms,omitempty"`
	// PollMS is the indicator polling interval for the OS endpoint.
	PollMS int `toml:"poll_ms,omitempty"`
}

// BehaviorSection is one [[behavior]] entry. Pointer fields distinguish
// "unset, inherit from preset" from an explicit value.
type BehaviorSection struct {
	Name                 string    `toml:"name"`
	DisplayName          string    `toml:"display_name,omitempty"`
	Preset               string    `toml:"preset,omitempty"`
	Lock                 string    `toml:"lock,omitempty"`
	PressKeycode         string    `toml:"press_keycode,omitempty"`
	PressDurationMS      *int      `toml:"press_duration_ms,omitempty"`
	EnableOnPress        *bool     `toml:"enable_on_press,omitempty"`
	DisableOnRelease     *bool     `toml:"disable_on_release,omitempty"`
	DisableOnNextRelease *bool     `toml:"disable_on_next_release,omitempty"`
	DisableOnKeys        *[]string `toml:"disable_on_keys,omitempty"`
}

// BindingSection maps a trigger key to a behavior.
type BindingSection struct {
	Trigger  string `toml:"trigger"`
	Behavior string `toml:"behavior"`
}

// Trigger is a resolved binding.
type Trigger struct {
	Key      hid.Usage
	Behavior string
}

// Resolved is a validated configuration ready for wiring.
type Resolved struct {
	LogLevel       string
	LogDevelopment bool
	Endpoint       endpoint.Kind
	Latency        time.Duration
	PollInterval   time.Duration
	Behaviors      []capslock.Config
	Triggers       []Trigger
}

// DefaultTriggers are the keys Default binds to the stock presets.
var DefaultTriggers = []string{"F1", "F2", "F3", "F4", "F5"}

// Default returns the configuration used when no file exists: the five
// stock presets bound to F1 through F5.
func Default() *File {
	f := &File{
		Log:  LogSection{Level: "info"},
		Host: HostSection{Endpoint: string(endpoint.KindVirtual)},
	}
	for i, p := range capslock.Presets()[:len(DefaultTriggers)] {
		f.Behaviors = append(f.Behaviors, BehaviorSection{Name: p.Config.Name, Preset: p.Config.Name})
		f.Bindings = append(f.Bindings, BindingSection{Trigger: DefaultTriggers[i], Behavior: p.Config.Name})
	}
	return f
}

// FromPresets renders every stock preset as a fully expanded file.
func FromPresets() *File {
	f := &File{}
	for _, p := range capslock.Presets() {
		f.Behaviors = append(f.Behaviors, SectionFromConfig(p.Config))
	}
	return f
}

// SectionFromConfig writes every field of cfg explicitly.
func SectionFromConfig(cfg capslock.Config) BehaviorSection {
	ms := int(cfg.PressDuration / time.Millisecond)
	keys := make([]string, len(cfg.DisableOnKeys))
	for i, k := range cfg.DisableOnKeys {
		keys[i] = keySpec(k.Keycode())
	}
	return BehaviorSection{
		Name:                 cfg.Name,
		DisplayName:          cfg.DisplayName,
		PressKeycode:         keySpec(hid.NewKeycode(cfg.PressUsage(), hid.ModNone)),
		PressDurationMS:      &ms,
		EnableOnPress:        &cfg.EnableOnPress,
		DisableOnRelease:     &cfg.DisableOnRelease,
		DisableOnNextRelease: &cfg.DisableOnNextRelease,
		DisableOnKeys:        &keys,
	}
}

// keySpec renders kc in a form ParseKeycode reads back. Keys without a
// name fall back to hex.
func keySpec(kc hid.Keycode) string {
	s := kc.String()
	if parsed, err := hid.ParseKeycode(s); err == nil && parsed == kc {
		return s
	}
	return fmt.Sprintf("0x%08X", uint32(kc))
}

// Resolve validates the file and converts it to runtime configuration.
// All problems are reported together.
func (f *File) Resolve() (*Resolved, error) {
	var errs error
	r := &Resolved{
		LogLevel:       f.Log.Level,
		LogDevelopment: f.Log.Development,
	}

	if r.LogLevel == "" {
		r.LogLevel = "info"
	}
	if _, err := logging.ParseLevel(r.LogLevel); err != nil {
		errs = multierr.Append(errs, &FieldError{Section: "log", Index: -1, Field: "level", Err: err})
	}

	kind, err := endpoint.ParseKind(f.Host.Endpoint)
	if err != nil {
		errs = multierr.Append(errs, &FieldError{Section: "host", Index: -1, Field: "endpoint", Err: err})
	}
	r.Endpoint = kind

	if f.Host.LatencyMS < 0 {
		errs = multierr.Append(errs, &FieldError{Section: "host", Index: -1, Field: "latency_ms", Err: fmt.Errorf("%d: %w", f.Host.LatencyMS, ErrInvalidValue)})
	}
	r.Latency = time.Duration(f.Host.LatencyMS) * time.Millisecond

	if f.Host.PollMS < 0 {
		errs = multierr.Append(errs, &FieldError{Section: "host", Index: -1, Field: "poll_ms", Err: fmt.Errorf("%d: %w", f.Host.PollMS, ErrInvalidValue)})
	}
	r.PollInterval = time.Duration(f.Host.PollMS) * time.Millisecond

	if len(f.Behaviors) == 0 {
		errs = multierr.Append(errs, ErrNoBehaviors)
	}

	names := make(map[string]bool, len(f.Behaviors))
	for i, b := range f.Behaviors {
		cfg, err := b.resolve(i)
		errs = multierr.Append(errs, err)
		if err != nil {
			continue
		}
		if names[cfg.Name] {
			errs = multierr.Append(errs, &FieldError{Section: "behavior", Index: i, Field: "name", Err: fmt.Errorf("%q: %w", cfg.Name, ErrDuplicateName)})
			continue
		}
		names[cfg.Name] = true
		r.Behaviors = append(r.Behaviors, cfg)
	}

	triggers := make(map[hid.Usage]bool, len(f.Bindings))
	for i, b := range f.Bindings {
		u, err := hid.ParseUsage(b.Trigger)
		if err != nil {
			errs = multierr.Append(errs, &FieldError{Section: "binding", Index: i, Field: "trigger", Err: err})
			continue
		}
		if triggers[u] {
			errs = multierr.Append(errs, &FieldError{Section: "binding", Index: i, Field: "trigger", Err: fmt.Errorf("%s: %w", u, ErrDuplicateTrigger)})
			continue
		}
		if !names[b.Behavior] {
			errs = multierr.Append(errs, &FieldError{Section: "binding", Index: i, Field: "behavior", Err: fmt.Errorf("%q: %w", b.Behavior, ErrUnknownBehavior)})
			continue
		}
		triggers[u] = true
		r.Triggers = append(r.Triggers, Trigger{Key: u, Behavior: b.Behavior})
	}

	if errs != nil {
		return nil, errs
	}
	return r, nil
}

func (b BehaviorSection) resolve(index int) (capslock.Config, error) {
	fieldErr := func(field string, err error) error {
		return &FieldError{Section: "behavior", Index: index, Field: field, Err: err}
	}

	cfg := capslock.Config{PressDuration: capslock.DefaultPressDuration}
	if b.Preset != "" {
		p, ok := capslock.LookupPreset(b.Preset)
		if !ok {
			return cfg, fieldErr("preset", fmt.Errorf("%q: %w", b.Preset, capslock.ErrUnknownPreset))
		}
		cfg = p
	}
	cfg.Index = index

	var errs error
	if b.Name != "" {
		cfg.Name = b.Name
	}
	if cfg.Name == "" {
		errs = multierr.Append(errs, fieldErr("name", fmt.Errorf("empty: %w", ErrInvalidValue)))
	}
	if b.DisplayName != "" {
		cfg.DisplayName = b.DisplayName
	}

	if b.Lock != "" {
		ind, ok := hid.ParseIndicator(b.Lock)
		if !ok {
			errs = multierr.Append(errs, fieldErr("lock", fmt.Errorf("%q: %w", b.Lock, ErrInvalidValue)))
		}
		cfg.Lock = ind
	}

	// "0" and any usage with id 0 leave the lock's own key in place.
	if pk := strings.TrimSpace(b.PressKeycode); pk != "" && pk != "0" {
		kc, err := hid.ParseKeycode(pk)
		switch {
		case err != nil:
			errs = multierr.Append(errs, fieldErr("press_keycode", err))
		case kc.Modifiers() != hid.ModNone:
			errs = multierr.Append(errs, fieldErr("press_keycode", fmt.Errorf("%s: modifiers not allowed: %w", kc, ErrInvalidValue)))
		case kc.Usage().ID() == 0:
		default:
			cfg.PressKeycode = kc.Usage()
		}
	}

	if b.PressDurationMS != nil {
		if *b.PressDurationMS < 0 {
			errs = multierr.Append(errs, fieldErr("press_duration_ms", fmt.Errorf("%d: %w", *b.PressDurationMS, ErrInvalidValue)))
		}
		cfg.PressDuration = time.Duration(*b.PressDurationMS) * time.Millisecond
	}
	if b.EnableOnPress != nil {
		cfg.EnableOnPress = *b.EnableOnPress
	}
	if b.DisableOnRelease != nil {
		cfg.DisableOnRelease = *b.DisableOnRelease
	}
	if b.DisableOnNextRelease != nil {
		cfg.DisableOnNextRelease = *b.DisableOnNextRelease
	}
	if b.DisableOnKeys != nil {
		items, err := capslock.ParseKeyItems(*b.DisableOnKeys)
		if err != nil {
			errs = multierr.Append(errs, fieldErr("disable_on_keys", err))
		}
		cfg.DisableOnKeys = items
	}

	if errs == nil {
		errs = cfg.Validate()
	}
	return cfg, errs
}
