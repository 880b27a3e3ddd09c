package driver

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	knaveerrors "github.com/opal-lang/knave/pkgs/errors"
	"github.com/opal-lang/knave/pkgs/source"
)

// ScanFunc receives the outcome of each scan in watch mode
type ScanFunc func(*Result, error)

// Watch scans path once and then again after every write to it, until ctx
// is cancelled. Scan failures are passed to onScan and do not stop the watch;
// only watcher failures end it with an error.
func (d *Driver) Watch(ctx context.Context, path string, onScan ScanFunc) error {
	if err := source.ValidateExtension(path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return knaveerrors.NewWatchError(path, err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory so editors that replace the file are still seen.
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return knaveerrors.NewWatchError(path, err)
	}

	rescan := func() {
		result, err := d.Run(path)
		if onScan != nil {
			onScan(result, err)
		}
	}
	rescan()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				d.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
				rescan()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return knaveerrors.NewWatchError(path, err)
		}
	}
}
