// Package modelcache locates and repairs the marker model download cache.
//
// marker downloads model weights on first use into
// <cache-root>/<model-type>/<version>. An interrupted download leaves a
// partial version directory behind that blocks every later attempt with a
// "destination path already exists" error. Sanitize removes entries that
// look like partial downloads so the next attempt can start clean.
package modelcache

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// EnvCacheRoot overrides the cache location for this tool only. It is
// consulted before EnvModelsHome.
const EnvCacheRoot = "PDF2EPUB_MODEL_CACHE"

// EnvModelsHome is the variable marker itself honors for relocating its
// model downloads. Sanitization must follow it, or downloads land in one
// directory while the sweep runs over another.
const EnvModelsHome = "DATALAB_MODELS_HOME"

// metadataFiles are repository housekeeping files that do not count
// toward an entry being complete.
var metadataFiles = map[string]bool{
	".gitattributes": true,
	".gitignore":     true,
	"README.md":      true,
}

// minCompleteFiles is the smallest number of non-metadata files a fully
// downloaded model version contains.
const minCompleteFiles = 3

// mu serializes sanitization within the process. Cross-process exclusion
// is not provided: pipelines in separate processes can still race on the
// cache root.
var mu sync.Mutex

// ResolveRoot returns the model cache root. Resolution order: the
// EnvCacheRoot variable, then EnvModelsHome, then the platform cache
// directory, then a dotfile cache under the user's home directory. The
// Windows default mirrors the platformdirs layout marker writes into:
// %LOCALAPPDATA%\datalab\datalab\Cache\models. Pure function of
// environment and platform; no side effects.
func ResolveRoot() string {
	if root := os.Getenv(EnvCacheRoot); root != "" {
		return root
	}
	if root := os.Getenv(EnvModelsHome); root != "" {
		return root
	}
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "datalab", "datalab", "Cache", "models")
		}
	} else if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "datalab", "models")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cache", "datalab", "models")
	}
	return filepath.Join(home, ".cache", "datalab", "models")
}

// Sanitize deletes incomplete model version directories under root. A
// missing root is a no-op. Deletion is irreversible; complete entries are
// never touched. Per-entry errors are reported through logf and skipped
// so one stuck directory does not abort the sweep of the rest.
func Sanitize(root string, logf func(format string, args ...any)) {
	mu.Lock()
	defer mu.Unlock()

	if logf == nil {
		logf = func(string, ...any) {}
	}

	modelTypes, err := os.ReadDir(root)
	if err != nil {
		// A missing root just means no models were downloaded yet; any
		// other failure is worth surfacing before giving up.
		if !os.IsNotExist(err) {
			logf("modelcache: reading %s: %v", root, err)
		}
		return
	}

	for _, mt := range modelTypes {
		if !mt.IsDir() {
			continue
		}
		typeDir := filepath.Join(root, mt.Name())

		versions, err := os.ReadDir(typeDir)
		if err != nil {
			logf("modelcache: reading %s: %v", typeDir, err)
			continue
		}

		for _, v := range versions {
			if !v.IsDir() {
				continue
			}
			versionDir := filepath.Join(typeDir, v.Name())

			complete, err := isComplete(versionDir)
			if err != nil {
				logf("modelcache: inspecting %s: %v", versionDir, err)
				continue
			}
			if complete {
				continue
			}

			logf("modelcache: removing incomplete model download: %s", versionDir)
			if err := os.RemoveAll(versionDir); err != nil {
				logf("modelcache: removing %s: %v", versionDir, err)
			}
		}
	}
}

// isComplete reports whether a model version directory holds a finished
// download: at least minCompleteFiles entries after excluding repository
// metadata.
func isComplete(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}

	count := 0
	for _, e := range entries {
		if metadataFiles[e.Name()] {
			continue
		}
		count++
	}
	return count >= minCompleteFiles, nil
}
