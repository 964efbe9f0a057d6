// Package config loads the RAL settings file.
//
// Settings live in a TOML file, conventionally named ral.toml:
//
//	[common]
//	api = "vulkan"
//
//	[debug]
//	enable = true
//	validation = true
//	log-level = "info"
//
//	[vulkan]
//	additional-layers = ["VK_LAYER_KHRONOS_synchronization2"]
//
// A missing file is not an error: Load falls back to Default and logs a
// warning.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime"

	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the conventional settings file name.
const FileName = "ral.toml"

// Sentinel errors returned by Validate.
var (
	ErrUnknownAPI      = errors.New("config: unknown api")
	ErrUnknownLogLevel = errors.New("config: unknown log level")
)

// API selects the backend.
type API string

// Supported APIs.
const (
	APIDX12     API = "dx12"
	APIVulkan   API = "vulkan"
	APISoftware API = "software"
)

// Valid reports whether a is a known API.
func (a API) Valid() bool {
	switch a {
	case APIDX12, APIVulkan, APISoftware:
		return true
	}
	return false
}

// DisplayName returns the human-readable API name.
func (a API) DisplayName() string {
	switch a {
	case APIDX12:
		return "DirectX 12"
	case APIVulkan:
		return "Vulkan"
	case APISoftware:
		return "Software"
	}
	return string(a)
}

// GPUType maps the API onto the gputypes backend identifier.
// Software and unknown APIs map to gputypes.BackendEmpty.
func (a API) GPUType() gputypes.Backend {
	switch a {
	case APIDX12:
		return gputypes.BackendDX12
	case APIVulkan:
		return gputypes.BackendVulkan
	}
	return gputypes.BackendEmpty
}

// LogLevel is the debug log verbosity.
type LogLevel string

// Log levels, from least to most verbose.
const (
	LogError   LogLevel = "error"
	LogWarning LogLevel = "warning"
	LogInfo    LogLevel = "info"
	LogVerbose LogLevel = "verbose"
)

// Valid reports whether l is a known level.
func (l LogLevel) Valid() bool {
	switch l {
	case LogError, LogWarning, LogInfo, LogVerbose:
		return true
	}
	return false
}

// SlogLevel maps l onto a slog level. Unknown levels map to slog.LevelError.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogVerbose:
		return slog.LevelDebug
	case LogInfo:
		return slog.LevelInfo
	case LogWarning:
		return slog.LevelWarn
	}
	return slog.LevelError
}

// Common holds the [common] table.
type Common struct {
	API API `toml:"api"`
}

// Debug holds the [debug] table.
type Debug struct {
	Enable             bool     `toml:"enable"`
	Validation         bool     `toml:"validation"`
	Performance        bool     `toml:"performance"`
	GPUBasedValidation bool     `toml:"gpu-based-validation"`
	GBVStateTracking   bool     `toml:"gbv-state-tracking"`
	DCQS               bool     `toml:"dcqs"`
	AutoNaming         bool     `toml:"auto-naming"`
	LogLevel           LogLevel `toml:"log-level"`
}

// Vulkan holds the [vulkan] table.
type Vulkan struct {
	AdditionalLayers []string `toml:"additional-layers,omitempty"`
}

// Settings is the decoded settings file.
type Settings struct {
	Common Common `toml:"common"`
	Debug  Debug  `toml:"debug"`
	Vulkan Vulkan `toml:"vulkan"`
}

// Default returns the settings used when no file exists: DirectX 12 on
// Windows, Vulkan elsewhere, debugging off.
func Default() Settings {
	api := APIVulkan
	if runtime.GOOS == "windows" {
		api = APIDX12
	}
	return Settings{
		Common: Common{API: api},
		Debug:  Debug{LogLevel: LogWarning},
	}
}

// Parse decodes data on top of Default and validates the result.
func Parse(data []byte) (Settings, error) {
	s := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return Settings{}, fmt.Errorf("config: line %d column %d: %w", row, col, err)
		}
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads and parses the file at path. A missing file yields Default.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slogger().Warn("config: settings file not found, using defaults",
			"path", path,
			"api", Default().Common.API)
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	slogger().Debug("config: loaded",
		"path", path,
		"api", s.Common.API,
		"debug", s.Debug.Enable)
	return s, nil
}

// Validate rejects unknown API and log-level values.
func (s Settings) Validate() error {
	if !s.Common.API.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownAPI, s.Common.API)
	}
	if !s.Debug.LogLevel.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownLogLevel, s.Debug.LogLevel)
	}
	return nil
}

// Save writes s to w as TOML.
func (s Settings) Save(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}

// InstanceFlags maps the debug table onto hal instance flags.
func (s Settings) InstanceFlags() gputypes.InstanceFlags {
	if !s.Debug.Enable {
		return gputypes.InstanceFlagsNone
	}
	f := gputypes.InstanceFlagsDebug
	if s.Debug.Validation {
		f |= gputypes.InstanceFlagsValidation
	}
	if s.Debug.GPUBasedValidation {
		f |= gputypes.InstanceFlagsGPUBasedValidation
	}
	if !s.Debug.AutoNaming {
		f |= gputypes.InstanceFlagsDiscardHalLabels
	}
	return f
}

// UnsupportedDebug returns the keys of the debug switches that are set but
// have no hal instance flag: performance, gbv-state-tracking and dcqs.
func (s Settings) UnsupportedDebug() []string {
	var keys []string
	if s.Debug.Performance {
		keys = append(keys, "performance")
	}
	if s.Debug.GBVStateTracking {
		keys = append(keys, "gbv-state-tracking")
	}
	if s.Debug.DCQS {
		keys = append(keys, "dcqs")
	}
	return keys
}
