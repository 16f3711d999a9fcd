package assetnet

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"raycast/internal/logger"
	"raycast/internal/resindex"
	"raycast/internal/texture"
)

var ErrMissing = errors.New("assetnet: textures not served")

// Fetch requests every indexed texture from the server at url and puts each
// one into store as soon as it arrives. Textures the server cannot provide
// are skipped and reported in the returned error.
func Fetch(ctx context.Context, url string, idx *resindex.Index, store *texture.Store) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("assetnet: dial %s: %w", url, err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if err := conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
			logger.Log.WithError(err).Debug("write close message failed")
		}
		conn.Close()
	}()

	var missing []string
	for _, e := range idx.Images {
		req := Request{ID: e.ID, Path: e.Path}
		if err := conn.WriteMessage(websocket.BinaryMessage, req.Marshal()); err != nil {
			return fetchErr(ctx, err)
		}
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return fetchErr(ctx, err)
		}
		img, err := UnmarshalImage(msg)
		if err != nil {
			return err
		}
		if img.Err != "" {
			missing = append(missing, img.Path)
			continue
		}

		store.Put(img.ID, &texture.Texture{Width: img.Width, Height: img.Height, Data: img.Pixels})
		logger.Log.WithFields(logrus.Fields{
			"id":   img.ID,
			"path": img.Path,
		}).Debug("texture received")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissing, missing)
	}
	return nil
}

func fetchErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("assetnet: %w", err)
}

// Start runs Fetch on its own goroutine. The channel yields its result once.
func Start(ctx context.Context, url string, idx *resindex.Index, store *texture.Store) <-chan error {
	result := make(chan error, 1)
	go func() {
		result <- Fetch(ctx, url, idx, store)
	}()
	return result
}
