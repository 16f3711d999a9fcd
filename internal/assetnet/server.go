package assetnet

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"raycast/internal/logger"
	"raycast/internal/texture"
)

// Path is where the server mounts its websocket endpoint.
const Path = "/assets"

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server answers texture requests from files in fsys.
type Server struct {
	fsys fs.FS
}

func NewServer(fsys fs.FS) *Server {
	return &Server{fsys: fsys}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	log := logger.Log.WithField("remote", r.RemoteAddr)
	log.Info("asset client connected")

	conn.SetReadLimit(maxMessageSize)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("asset client read failed")
			}
			return
		}

		req, err := UnmarshalRequest(msg)
		if err != nil {
			log.WithError(err).Warn("bad asset request")
			return
		}

		img := s.load(req)
		if img.Err != "" {
			log.WithFields(logrus.Fields{"path": req.Path, "error": img.Err}).Warn("asset not served")
		}

		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.WithError(err).Warn("failed to set write deadline")
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, img.Marshal()); err != nil {
			log.WithError(err).Debug("asset write failed")
			return
		}
	}
}

func (s *Server) load(req Request) Image {
	img := Image{ID: req.ID, Path: req.Path}

	f, err := s.fsys.Open(strings.TrimPrefix(req.Path, "/"))
	if err != nil {
		img.Err = err.Error()
		return img
	}
	defer f.Close()

	tex, err := texture.Decode(f)
	if err != nil {
		img.Err = fmt.Sprintf("decode %s: %v", req.Path, err)
		return img
	}
	img.Width, img.Height, img.Pixels = tex.Width, tex.Height, tex.Data
	return img
}
