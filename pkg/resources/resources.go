package resources

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cbodonnell/wayfarer/pkg/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// DefaultImages returns the images every map needs, relative to assetDir
func DefaultImages(assetDir string) map[string]string {
	return map[string]string{
		"sky": filepath.Join(assetDir, "sprites", "Tilesets", "Grass.png"),
		"g":   filepath.Join(assetDir, "sprites", "Tilesets", "Water.png"),
	}
}

type Entry struct {
	Image    image.Image
	IsLoaded bool
}

// EntryStatus is the serializable state of an entry
type EntryStatus struct {
	Key      string `json:"key"`
	Path     string `json:"path"`
	IsLoaded bool   `json:"isLoaded"`
	Format   string `json:"format,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Preloader decodes a set of images in the background
type Preloader struct {
	lock    sync.RWMutex
	toLoad  map[string]string
	entries map[string]*Entry
	status  map[string]*EntryStatus

	done chan struct{}
}

// New starts loading every image of toLoad, keyed the same way.
// Images that fail to decode stay unloaded.
func New(toLoad map[string]string) *Preloader {
	p := &Preloader{
		toLoad:  make(map[string]string, len(toLoad)),
		entries: make(map[string]*Entry, len(toLoad)),
		status:  make(map[string]*EntryStatus, len(toLoad)),
		done:    make(chan struct{}),
	}
	for key, path := range toLoad {
		p.toLoad[key] = path
		p.entries[key] = &Entry{}
		p.status[key] = &EntryStatus{Key: key, Path: path}
	}

	go p.loadAll()
	return p
}

func (p *Preloader) loadAll() {
	defer close(p.done)

	g := new(errgroup.Group)
	g.SetLimit(8)
	for key, path := range p.toLoad {
		key, path := key, path
		g.Go(func() error {
			img, format, err := decode(path)
			p.lock.Lock()
			defer p.lock.Unlock()
			if err != nil {
				log.Error("Failed to load image %s: %v", key, err)
				p.status[key].Error = err.Error()
				return err
			}
			p.entries[key].Image = img
			p.entries[key].IsLoaded = true
			status := p.status[key]
			status.IsLoaded = true
			status.Format = format
			status.Width = img.Bounds().Dx()
			status.Height = img.Bounds().Dy()
			log.Debug("Loaded image %s (%s)", key, format)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("Some images failed to load, first error: %v", err)
	}
}

func decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %v", path, err)
	}
	return img, format, nil
}

// Wait blocks until every image has been attempted or ctx is done
func (p *Preloader) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Preloader) Loaded(key string) bool {
	p.lock.RLock()
	defer p.lock.RUnlock()
	entry, ok := p.entries[key]
	return ok && entry.IsLoaded
}

// Get returns a copy of the entry of key
func (p *Preloader) Get(key string) (Entry, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	entry, ok := p.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

// Status lists every entry sorted by key
func (p *Preloader) Status() []EntryStatus {
	p.lock.RLock()
	defer p.lock.RUnlock()
	statuses := make([]EntryStatus, 0, len(p.status))
	for _, status := range p.status {
		statuses = append(statuses, *status)
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Key < statuses[j].Key
	})
	return statuses
}
