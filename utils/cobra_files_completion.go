package utils

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/spf13/cobra"
)

// CompleteFilesByExtension completes directories and files ending in one of
// extensions.
func CompleteFilesByExtension(extensions ...string) func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		dir := filepath.Dir(toComplete)
		prefix := filepath.Base(toComplete)

		// If no path separator, we're completing in current directory
		if !strings.Contains(toComplete, "/") {
			dir = "."
			prefix = toComplete
		}

		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		var suggestions []string
		for _, file := range files {
			name := file.Name()

			// Skip hidden files and non-matching prefixes
			if strings.HasPrefix(name, ".") || !strings.HasPrefix(name, prefix) {
				continue
			}

			suggestion := name
			if dir != "." {
				suggestion = filepath.Join(dir, name)
			}

			if file.IsDir() {
				suggestions = append(suggestions, suggestion+"/")
			} else if hasExtension(name, extensions) {
				suggestions = append(suggestions, suggestion)
			}
		}

		slices.Sort(suggestions)
		return suggestions, cobra.ShellCompDirectiveNoFileComp
	}
}

func hasExtension(filename string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

// CompleteClassNames completes class names from names, matching either the
// qualified or the simple name.
func CompleteClassNames(names func() []string) func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var suggestions []string
		for _, name := range names() {
			if strings.HasPrefix(name, toComplete) || strings.HasPrefix(meta.SimpleName(name), toComplete) {
				suggestions = append(suggestions, name)
			}
		}
		slices.Sort(suggestions)
		return suggestions, cobra.ShellCompDirectiveNoFileComp
	}
}
