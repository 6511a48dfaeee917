// Package assets checks a tree of pre-rendered avatar images before it is
// published as an asset store.
package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register the decoders for image.DecodeConfig
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cozy/exavatar/pkg/avatar"
	"github.com/cozy/exavatar/pkg/filetype"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files checked in parallel.
const DefaultConcurrency = 8

// Options are the options of Check.
type Options struct {
	// Concurrency is the number of files read in parallel.
	Concurrency int
	// SkipDecode only checks the paths, the files are not read.
	SkipDecode bool
}

// Problem is an invalid file of the tree.
type Problem struct {
	Path   string
	Reason string
}

func (p Problem) String() string {
	return p.Path + ": " + p.Reason
}

// Report is the result of a check.
type Report struct {
	Files    int
	Bytes    int64
	BySet    map[avatar.Set]int
	Problems []Problem

	mu sync.Mutex
}

// OK returns true if no problem was found.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// Summary returns a human readable summary of the report.
func (r *Report) Summary() string {
	var sets []string
	for _, set := range avatar.Sets {
		if n := r.BySet[set]; n > 0 {
			sets = append(sets, fmt.Sprintf("%s: %s", set, humanize.Comma(int64(n))))
		}
	}
	summary := fmt.Sprintf("%s files (%s)", humanize.Comma(int64(r.Files)), humanize.Bytes(uint64(r.Bytes)))
	if len(sets) > 0 {
		summary += ", " + strings.Join(sets, ", ")
	}
	switch len(r.Problems) {
	case 0:
		summary += ", no problem"
	case 1:
		summary += ", 1 problem"
	default:
		summary += fmt.Sprintf(", %s problems", humanize.Comma(int64(len(r.Problems))))
	}
	return summary
}

func (r *Report) add(name string, size int64, set avatar.Set, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Files++
	r.Bytes += size
	if reason != "" {
		r.Problems = append(r.Problems, Problem{Path: name, Reason: reason})
		return
	}
	r.BySet[set]++
}

type entry struct {
	name string
	size int64
}

// Check walks the tree under root, and verifies that each file is at a
// canonical path ({set}/{size}/{id}.{format}), and that it is an image of
// the format and dimensions given by its path.
func Check(ctx context.Context, fs afero.Fs, root string, opts Options) (*Report, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}

	var entries []entry
	err := afero.Walk(fs, root, func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		hidden := strings.HasPrefix(info.Name(), ".") && name != root
		if info.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}
		rel := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(name, root)), "/")
		entries = append(entries, entry{name: rel, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := &Report{BySet: make(map[avatar.Set]int)}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg, err := avatar.ParsePath(e.name)
			if err != nil {
				report.add(e.name, e.size, "", err.Error())
				return nil
			}
			reason := ""
			if !opts.SkipDecode {
				data, err := afero.ReadFile(fs, path.Join(root, e.name))
				if err != nil {
					return err
				}
				reason = checkImage(cfg, data)
			}
			report.add(e.name, e.size, cfg.Set(), reason)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Problems, func(i, j int) bool {
		return report.Problems[i].Path < report.Problems[j].Path
	})
	return report, nil
}

// checkImage returns why the image doesn't match its configuration, or an
// empty string if it does.
func checkImage(cfg *avatar.Config, data []byte) string {
	conf, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if ext := filetype.Extension(data); ext != "" {
			return fmt.Sprintf("cannot decode the image (content looks like %s)", ext)
		}
		return "cannot decode the image: " + err.Error()
	}
	if format != string(cfg.Format()) {
		return fmt.Sprintf("%s image in a .%s file", format, cfg.Format())
	}
	if conf.Width != cfg.Size() || conf.Height != cfg.Size() {
		return fmt.Sprintf("image is %dx%d, expected %dx%d", conf.Width, conf.Height, cfg.Size(), cfg.Size())
	}
	return ""
}
