package holidays

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/logger"
	"github.com/julianstephens/roster/internal/models"
)

// fileEntry is one holiday in the YAML file. An empty region applies to every region.
type fileEntry struct {
	Date   string `yaml:"date"`
	Name   string `yaml:"name"`
	Region string `yaml:"region,omitempty"`
}

type fileDocument struct {
	Holidays []fileEntry `yaml:"holidays"`
}

// FileProvider serves holidays from a YAML file and reloads it on change.
type FileProvider struct {
	path string

	mu      sync.RWMutex
	entries []fileEntry
}

func NewFileProvider(path string) (*FileProvider, error) {
	p := &FileProvider{path: path}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *FileProvider) Path() string {
	return p.path
}

// Reload re-reads the YAML file. On error the previous entries are kept.
func (p *FileProvider) Reload() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("failed to read holiday file: %w", err)
	}
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse holiday file: %w", err)
	}
	for i, e := range doc.Holidays {
		if _, err := time.Parse(constants.DateFormat, e.Date); err != nil {
			return fmt.Errorf("invalid date in holiday entry %d: %w", i+1, err)
		}
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("holiday entry %d has no name", i+1)
		}
	}

	p.mu.Lock()
	p.entries = doc.Holidays
	p.mu.Unlock()
	return nil
}

func (p *FileProvider) Holidays(ctx context.Context, region string, years []int) ([]models.Holiday, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := make(map[string]bool)
	for _, y := range years {
		wanted[fmt.Sprintf("%04d", y)] = true
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []models.Holiday
	for _, e := range p.entries {
		if e.Region != "" && e.Region != region {
			continue
		}
		if !wanted[e.Date[:4]] {
			continue
		}
		out = append(out, models.Holiday{Date: e.Date, Name: e.Name, Region: region})
	}
	sortHolidays(out)
	return out, nil
}

// Watch reloads the file whenever it changes and calls onChange after each
// successful reload. It returns once the watcher is running; watching stops
// when ctx is cancelled.
func (p *FileProvider) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory so editors that replace the file are still seen
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", p.path, err)
	}

	target := filepath.Clean(p.path)
	log := logger.Component("holidays")
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if err := p.Reload(); err != nil {
					log.Warn("Holiday file reload failed", "path", p.path, "error", err)
					continue
				}
				log.Info("Holiday file reloaded", "path", p.path)
				if onChange != nil {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("Holiday file watcher error", "error", err)
			}
		}
	}()
	return nil
}
