package sheet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is the workbook base name used when none is given.
const DefaultName = "OCR_Results"

// Extension is appended to workbook base names.
const Extension = ".xlsx"

// ErrOutputExists is returned when the workbook already exists and may not
// be overwritten.
var ErrOutputExists = errors.New("output file already exists")

// Prompter asks the user a question and returns the answer line.
type Prompter interface {
	Prompt(question string) (string, error)
}

const invalidChoice = "Invalid choice. Please enter 'o' to overwrite or 'n' to choose a new name.\n"

// OutputPath returns the workbook path for base name in dir. An empty name
// gives DefaultName; a trailing .xlsx is not doubled.
func OutputPath(dir, name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), Extension)
	if name == "" {
		name = DefaultName
	}
	return filepath.Join(dir, name+Extension)
}

// ResolveOutput picks the workbook path for name in dir. When the file
// already exists it is reused if overwrite is set; otherwise p is asked to
// overwrite or choose a new name. With a nil Prompter an existing file is
// ErrOutputExists.
func ResolveOutput(dir, name string, overwrite bool, p Prompter) (string, error) {
	path := OutputPath(dir, name)
	for {
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check output file: %w", err)
		}
		if overwrite {
			return path, nil
		}
		if p == nil {
			return "", fmt.Errorf("%w: %s", ErrOutputExists, filepath.Base(path))
		}

		question := fmt.Sprintf("File '%s' already exists.\nDo you want to overwrite it (o) or choose a new name (n)? ", filepath.Base(path))
		for {
			answer, err := p.Prompt(question)
			if err != nil {
				return "", fmt.Errorf("failed to read answer: %w", err)
			}
			choice := strings.ToLower(strings.TrimSpace(answer))
			if choice == "o" {
				return path, nil
			}
			if choice == "n" {
				break
			}
			question = invalidChoice + "Do you want to overwrite it (o) or choose a new name (n)? "
		}

		newName, err := p.Prompt("Enter a new name for the Excel file (without extension): ")
		if err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		path = OutputPath(dir, newName)
	}
}
