package main

import (
	"io"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/tinyrange/cfront/internal/driver"
)

// watchFiles compiles files once, then again each time one of them is
// written. It returns when the watcher fails to start or is closed.
func watchFiles(files []string, opts driver.Options, out, errw io.Writer) error {
	fw, err := newFileWatch(files)
	if err != nil {
		return err
	}
	defer fw.Close()

	compileAll(files, opts, out, errw)
	return fw.run(func(file string) {
		log.Printf("%s changed", file)
		compileAll([]string{file}, opts, out, errw)
	})
}

// fileWatch follows a set of files through the directories holding them.
// Editors that save by replacing a file would otherwise drop the watch.
type fileWatch struct {
	w     *fsnotify.Watcher
	files map[string]string // cleaned path -> path as given
}

func newFileWatch(files []string) (*fileWatch, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &fileWatch{w: w, files: map[string]string{}}
	dirs := map[string]bool{}
	for _, file := range files {
		fw.files[filepath.Clean(file)] = file
		dir := filepath.Dir(file)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
	}
	return fw, nil
}

// run calls changed for every write or creation of a watched file until the
// watch is closed.
func (fw *fileWatch) run(changed func(file string)) error {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if file, ok := fw.files[filepath.Clean(ev.Name)]; ok {
				changed(file)
			}

		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			log.Print(err)
		}
	}
}

func (fw *fileWatch) Close() error { return fw.w.Close() }
