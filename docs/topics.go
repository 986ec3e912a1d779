// Package docs embeds the help topics of the command line.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// Index is the topic listing every other topic.
const Index = "readme"

// Topic returns the markdown of a topic, "*" concatenates all of them.
func Topic(name string) (string, error) {
	if name == "*" {
		return Topics(All()...)
	}
	content, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Topics concatenates topics in order.
func Topics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// All returns the sorted topic names, the index excluded.
func All() []string {
	paths, _ := fs.Glob(files, "*.md") // the pattern is valid
	var names []string
	for _, p := range paths {
		if name := strings.TrimSuffix(p, ".md"); name != Index {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
