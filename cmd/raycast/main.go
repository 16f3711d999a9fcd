// Command raycast runs the engine in a window, a terminal or an SDL window.
package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"raycast/internal/assetnet"
	"raycast/internal/config"
	"raycast/internal/engine"
	"raycast/internal/game"
	"raycast/internal/hud"
	"raycast/internal/logger"
	"raycast/internal/resindex"
	"raycast/internal/sdlhost"
	"raycast/internal/termhost"
	"raycast/internal/texture"
	"raycast/internal/world"
)

const (
	title        = "raycast"
	hudFontSize  = 14
	proceduralWH = 64
)

func main() {
	fs := config.Flags(title)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Log.Fatal(err)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		logger.Log.Fatal(err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg); err != nil {
		logger.Log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	if cfg.File != "" {
		logger.Log.WithField("file", cfg.File).Info("config loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := loadMap(cfg.Map)
	if err != nil {
		return err
	}

	store := texture.NewStore()
	if err := loadTextures(ctx, cfg.Assets, m, store); err != nil {
		return err
	}

	order, err := cfg.ChannelOrder()
	if err != nil {
		return err
	}
	e, err := engine.New(engine.Options{
		Width:        cfg.Screen.Width,
		Height:       cfg.Screen.Height,
		ChannelOrder: order,
		DoorDemo:     cfg.Debug.DoorDemo,
		OverheadMap:  cfg.Debug.OverheadMap,
	}, m, store)
	if err != nil {
		return err
	}

	switch cfg.Host {
	case config.HostTerminal:
		s, err := termhost.Open()
		if err != nil {
			return err
		}
		defer s.Fini()
		err = termhost.New(s, e, cfg.TPS).Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err

	case config.HostSDL:
		h, err := sdlhost.New(e, sdlhost.Options{Title: title, Scale: cfg.Screen.Scale, TPS: cfg.TPS})
		if err != nil {
			return err
		}
		defer h.Destroy()
		return h.Run()

	default:
		h, err := hud.New(hudFontSize)
		if err != nil {
			return err
		}
		g := game.New(e, h, game.Options{
			Title: title,
			Scale: cfg.Screen.Scale,
			TPS:   cfg.TPS,
			VSync: true,
		})
		return g.Run()
	}
}

func loadMap(c config.Map) (*world.Map, error) {
	switch {
	case c.File != "":
		f, err := os.Open(c.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		m, err := world.LoadYAML(f)
		if err != nil {
			return nil, fmt.Errorf("map %s: %w", c.File, err)
		}
		logger.Log.WithField("file", c.File).Info("map loaded")
		return m, nil

	case c.Image != "":
		f, err := os.Open(c.Image)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("map image %s: %w", c.Image, err)
		}
		m, err := world.FromImage(img, world.DefaultImageOptions())
		if err != nil {
			return nil, fmt.Errorf("map image %s: %w", c.Image, err)
		}
		logger.Log.WithField("file", c.Image).Info("map loaded")
		return m, nil
	}
	return world.Default(), nil
}

// loadTextures fills store from disk or from the asset server. Textures
// fetched from a server keep arriving after loadTextures returns.
func loadTextures(ctx context.Context, c config.Assets, m *world.Map, store *texture.Store) error {
	if c.Procedural {
		texture.FillProcedural(store, m.TextureIDs(), proceduralWH, proceduralWH)
		logger.Log.WithField("textures", store.Len()).Info("generated procedural textures")
		return nil
	}

	f, err := os.Open(filepath.Join(c.Root, c.Index))
	if err != nil {
		return fmt.Errorf("resource index: %w", err)
	}
	idx, err := resindex.Load(f)
	f.Close()
	if err != nil {
		return err
	}

	if c.Server != "" {
		result := assetnet.Start(ctx, c.Server, idx, store)
		go func() {
			if err := <-result; err != nil && !errors.Is(err, context.Canceled) {
				logger.Log.WithError(err).Warn("asset fetch incomplete")
				return
			}
			logger.Log.WithField("textures", store.Len()).Info("assets fetched")
		}()
		return nil
	}

	if err := texture.LoadIndex(os.DirFS(c.Root), idx, store); err != nil {
		return err
	}

	var missing []int
	for _, id := range m.TextureIDs() {
		if _, ok := store.Lookup(id); !ok {
			missing = append(missing, id)
		}
	}
	logger.Log.WithFields(logrus.Fields{
		"textures": store.Len(),
		"missing":  missing,
	}).Info("textures loaded")
	return nil
}
