package site

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/factpress/internal/config"
	"git.home.luguber.info/inful/factpress/internal/fileutil"
	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

//go:embed scaffold
var scaffoldFS embed.FS

// ScaffoldResult lists the files Scaffold wrote and the ones it left alone.
type ScaffoldResult struct {
	Written []string
	Skipped []string
}

// Scaffold writes the starter templates, seed topics and stylesheet into the
// directories named by cfg. Existing files are kept unless force is set.
func Scaffold(cfg *config.Config, force bool) (*ScaffoldResult, error) {
	targets := map[string]string{
		"templates": cfg.TemplatesDir,
		"topics":    cfg.TopicsDir,
		"assets":    cfg.AssetsDir,
	}

	res := &ScaffoldResult{}
	err := fs.WalkDir(scaffoldFS, "scaffold", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel := p[len("scaffold/"):]
		group, name := path.Split(rel)
		dir, ok := targets[path.Clean(group)]
		if !ok {
			return nil
		}
		dst := filepath.Join(dir, name)

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				res.Skipped = append(res.Skipped, dst)
				return nil
			}
		}
		data, err := scaffoldFS.ReadFile(p)
		if err != nil {
			return err
		}
		if err := fileutil.WriteAtomic(dst, data, 0o644); err != nil {
			return err
		}
		res.Written = append(res.Written, dst)
		return nil
	})
	if err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.InternalError("failed to read embedded scaffold").WithCause(err).Build()
	}
	return res, nil
}
