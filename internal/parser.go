package internal

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Loader reads an input file into a Document
type Loader interface {
	Load(path string) (*Document, error)
}

// LoaderFunc is a function that implements Loader
type LoaderFunc func(path string) (*Document, error)

func (f LoaderFunc) Load(path string) (*Document, error) {
	return f(path)
}

// loaders is the registry of available input sources
var loaders = map[string]Loader{}

// RegisterLoader registers a loader with the given source name
func RegisterLoader(name string, l Loader) {
	loaders[name] = l
}

// GetLoader returns the loader for the given source name
func GetLoader(source string) (Loader, error) {
	l, ok := loaders[source]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s (available: %v)", source, AvailableSources())
	}
	return l, nil
}

// AvailableSources returns the registered source names, sorted
func AvailableSources() []string {
	var sources []string
	for name := range loaders {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources
}

// IsKnownSource returns true if the name is a registered source
func IsKnownSource(name string) bool {
	_, ok := loaders[name]
	return ok
}

// ParseFileArg splits a file argument that may carry a source prefix.
// Returns (source, path). If no valid prefix, source is empty.
// Example: "latin1:kasse.csv" → ("latin1", "kasse.csv")
// Example: "kasse.csv" → ("", "kasse.csv")
// Example: "C:\kasse\jan.csv" → ("", "C:\kasse\jan.csv") // Windows path
func ParseFileArg(arg string) (source, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownSource(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg
}

func init() {
	RegisterLoader("datev", LoaderFunc(func(path string) (*Document, error) {
		return LoadRecords(path, unicode.UTF8)
	}))
	RegisterLoader(EncodingLatin1, LoaderFunc(func(path string) (*Document, error) {
		return LoadRecords(path, charmap.ISO8859_1)
	}))
	RegisterLoader(EncodingCP1252, LoaderFunc(func(path string) (*Document, error) {
		return LoadRecords(path, charmap.Windows1252)
	}))
}
