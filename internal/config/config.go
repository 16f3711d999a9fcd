// Package config loads runtime settings from defaults, an optional
// raycast.yaml, RAYCAST_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"raycast/internal/canvas"
)

const (
	Name      = "raycast"
	EnvPrefix = "RAYCAST"
)

// Hosts that cmd/raycast can run.
const (
	HostEbiten   = "ebiten"
	HostTerminal = "terminal"
	HostSDL      = "sdl"
)

type Screen struct {
	Width        int     `mapstructure:"width"`
	Height       int     `mapstructure:"height"`
	Scale        float64 `mapstructure:"scale"`
	ChannelOrder string  `mapstructure:"channel_order"`
}

type Assets struct {
	Root       string `mapstructure:"root"`
	Index      string `mapstructure:"index"`
	Server     string `mapstructure:"server"`
	Procedural bool   `mapstructure:"procedural"`
}

type Map struct {
	File  string `mapstructure:"file"`
	Image string `mapstructure:"image"`
}

type Debug struct {
	OverheadMap bool `mapstructure:"overhead_map"`
	DoorDemo    bool `mapstructure:"door_demo"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Host   string `mapstructure:"host"`
	TPS    int    `mapstructure:"tps"`
	Screen Screen `mapstructure:"screen"`
	Assets Assets `mapstructure:"assets"`
	Map    Map    `mapstructure:"map"`
	Debug  Debug  `mapstructure:"debug"`
	Log    Log    `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"host":          "host",
	"tps":           "tps",
	"width":         "screen.width",
	"height":        "screen.height",
	"scale":         "screen.scale",
	"channel-order": "screen.channel_order",
	"assets":        "assets.root",
	"index":         "assets.index",
	"server":        "assets.server",
	"procedural":    "assets.procedural",
	"map":           "map.file",
	"map-image":     "map.image",
	"overhead":      "debug.overhead_map",
	"door-demo":     "debug.door_demo",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", HostEbiten)
	v.SetDefault("tps", 30)
	v.SetDefault("screen.width", 320)
	v.SetDefault("screen.height", 200)
	v.SetDefault("screen.scale", 3.0)
	v.SetDefault("screen.channel_order", canvas.RGBA.String())
	v.SetDefault("assets.root", "assets")
	v.SetDefault("assets.index", "resources.json")
	v.SetDefault("assets.server", "")
	v.SetDefault("assets.procedural", false)
	v.SetDefault("map.file", "")
	v.SetDefault("map.image", "")
	v.SetDefault("debug.overhead_map", true)
	v.SetDefault("debug.door_demo", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Flags returns the flag set understood by Load.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (default ./raycast.yaml)")
	fs.String("host", HostEbiten, "window host: ebiten, terminal or sdl")
	fs.Int("tps", 30, "frames per second")
	fs.Int("width", 320, "projection plane width")
	fs.Int("height", 200, "projection plane height")
	fs.Float64("scale", 3, "window scale")
	fs.String("channel-order", canvas.RGBA.String(), "frame buffer channel order: rgba or bgra")
	fs.String("assets", "assets", "asset root directory")
	fs.String("index", "resources.json", "resource index file, relative to the asset root")
	fs.String("server", "", "asset server websocket url; empty loads from disk")
	fs.Bool("procedural", false, "generate textures instead of loading them")
	fs.String("map", "", "map definition (yaml)")
	fs.String("map-image", "", "map image (png, one pixel per cell)")
	fs.Bool("overhead", true, "show the overhead map")
	fs.Bool("door-demo", true, "animate door 0")
	fs.String("log-level", "info", "log level")
	fs.String("log-format", "text", "log format: text or json")
	return fs
}

// Load resolves the configuration. fs must come from Flags and already be
// parsed; it may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(Name)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/" + Name)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind %s: %w", name, err)
				}
			}
		}
		if path, err := fs.GetString("config"); err == nil && path != "" {
			v.SetConfigFile(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	c.File = v.ConfigFileUsed()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("config: screen %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.Scale <= 0 {
		return fmt.Errorf("config: screen scale %v", c.Screen.Scale)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("config: tps %d", c.TPS)
	}
	switch c.Host {
	case HostEbiten, HostTerminal, HostSDL:
	default:
		return fmt.Errorf("config: unknown host %q", c.Host)
	}
	if _, err := c.ChannelOrder(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) ChannelOrder() (canvas.ChannelOrder, error) {
	return canvas.ParseChannelOrder(c.Screen.ChannelOrder)
}
