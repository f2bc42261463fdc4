package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/artem13815/resumecompare/pkg/document"
)

var (
	errNoResume    = errors.New("no resume file found in the current directory; pass a path: resumectl parse <resume_file>")
	errInterrupted = errors.New("selection cancelled")
)

// preferredNames win over everything else found in the directory.
var preferredNames = []string{"resume.pdf", "resume.docx", "resume.doc"}

var resumeHints = []string{"resume", "cv", "curriculum"}

// chooser picks one of several candidate paths.
type chooser func(candidates []string) (string, error)

// resolveResume returns the file named in args, or discovers one in dir.
func resolveResume(args []string, dir string, choose chooser) (string, error) {
	if len(args) > 0 {
		return checkArg(args[0], dir)
	}

	candidates, err := discover(dir)
	if err != nil {
		return "", err
	}
	switch {
	case len(candidates) == 0:
		return "", errNoResume
	case len(candidates) == 1 || choose == nil:
		return candidates[0], nil
	default:
		return choose(candidates)
	}
}

func checkArg(arg, dir string) (string, error) {
	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	st, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("file %q not found: %w", arg, err)
	}
	if st.IsDir() {
		return "", fmt.Errorf("%q is a directory", arg)
	}
	if _, err := document.ValidateFilename(path); err != nil {
		return "", fmt.Errorf("%q: %w", arg, err)
	}
	return path, nil
}

// discover lists supported files in dir: preferred names first, then files
// that look like a resume by name, then the rest. Ties sort by name.
func discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	type candidate struct {
		name string
		rank int
	}
	var found []candidate
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if _, err := document.ValidateFilename(e.Name()); err != nil {
			continue
		}
		found = append(found, candidate{name: e.Name(), rank: rank(e.Name())})
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].rank != found[j].rank {
			return found[i].rank < found[j].rank
		}
		return found[i].name < found[j].name
	})

	out := make([]string, 0, len(found))
	for _, c := range found {
		out = append(out, filepath.Join(dir, c.name))
	}
	return out, nil
}

func rank(name string) int {
	lower := strings.ToLower(name)
	for i, p := range preferredNames {
		if lower == p {
			return i
		}
	}
	for _, h := range resumeHints {
		if strings.Contains(lower, h) {
			return len(preferredNames)
		}
	}
	return len(preferredNames) + 1
}

func promptChoice(candidates []string) (string, error) {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = filepath.Base(c)
	}
	sel := promptui.Select{
		Label: "Several resume files found. Which one?",
		Items: names,
		Size:  10,
	}
	i, _, err := sel.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", errInterrupted
		}
		return "", fmt.Errorf("prompt: %w", err)
	}
	return candidates[i], nil
}
