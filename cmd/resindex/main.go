// Command resindex adds every unindexed farbfeld file under the asset tree to
// resources.json.
package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"raycast/internal/config"
	"raycast/internal/logger"
	"raycast/internal/resindex"
)

func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		logger.Log.Fatal(err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	flags := pflag.NewFlagSet("resindex", pflag.ContinueOnError)
	root := flags.String("assets", cfg.Assets.Root, "asset root directory")
	index := flags.String("index", cfg.Assets.Index, "index file, relative to the asset root")
	dir := flags.String("dir", resindex.ImagesDir, "image directory, relative to the asset root")
	dryRun := flags.BoolP("dry-run", "n", false, "print what would be added without writing")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Log.Fatal(err)
	}

	path := filepath.Join(*root, *index)
	idx, err := load(path)
	if err != nil {
		logger.Log.Fatal(err)
	}

	added, err := idx.Regenerate(os.DirFS(*root), *dir)
	if err != nil {
		logger.Log.Fatal(err)
	}
	for _, e := range added {
		logger.Log.WithFields(logrus.Fields{"id": e.ID, "path": e.Path}).Info("indexed")
	}
	if len(added) == 0 {
		logger.Log.WithField("index", path).Info("index up to date")
		return
	}
	if *dryRun {
		return
	}

	if err := save(path, idx); err != nil {
		logger.Log.Fatal(err)
	}
	logger.Log.WithFields(logrus.Fields{"index": path, "added": len(added), "total": len(idx.Images)}).Info("index written")
}

func load(path string) (*resindex.Index, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &resindex.Index{Images: []resindex.Entry{}}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return resindex.Load(f)
}

// save writes through a temporary file so a failed write keeps the old index.
func save(path string, idx *resindex.Index) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".resindex-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := idx.Save(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
