package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jcreedcmu/paperwork-game/pkg/game"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <content.yaml>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &ContentValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Content file is valid!")
}

type ContentValidator struct {
	errors []string
}

func (v *ContentValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("content file must have .yaml or .yml extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ext)
	if !isValidContentFilename(nameWithoutExt) {
		return fmt.Errorf("content filename '%s' must be lowercase snake_case (e.g., my_content.yaml, not my-content.yaml or MyContent.yaml)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return v.validateData(filename, data)
}

func (v *ContentValidator) validateData(filename string, data []byte) error {
	v.errors = nil

	c, err := game.DecodeContent(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("file %s failed strict YAML unmarshaling: %w", filename, err)
	}

	for _, p := range c.Problems() {
		v.addError(p)
	}
	v.validateLetters(c)
	v.validateCatalog(c)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *ContentValidator) validateLetters(c *game.Content) {
	catchAll := -1
	for i, rule := range c.Letters {
		if rule.Pattern == "" && catchAll < 0 {
			catchAll = i
		}
		if lit := literalText(rule.Pattern); lit != strings.ToLower(lit) {
			v.addError(fmt.Sprintf("letter pattern '%s' should be lowercase; matching ignores case", rule.Pattern))
		}
	}

	switch {
	case len(c.Letters) == 0:
		return
	case catchAll < 0:
		v.addError("the last letter rule should have an empty pattern so every letter gets a reply")
	case catchAll < len(c.Letters)-1:
		v.addError(fmt.Sprintf("letter rules after rule %d can never match", catchAll+1))
	}
}

func (v *ContentValidator) validateCatalog(c *game.Content) {
	seen := make(map[string]bool, len(c.Catalog))
	for _, e := range c.Catalog {
		v.validateIDFormat("catalog item", e.Item)
		if seen[e.Item] {
			v.addError(fmt.Sprintf("catalog item '%s' is listed twice", e.Item))
		}
		seen[e.Item] = true
	}
}

func (v *ContentValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}

	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *ContentValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var (
	validIDRegex       = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
	validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

func isValidContentFilename(name string) bool {
	return validFilenameRegex.MatchString(name)
}

// literalText drops escape sequences such as \S or \p{Lu} from a regexp so
// only the characters it matches literally remain.
func literalText(pattern string) string {
	var b strings.Builder
	r := []rune(pattern)
	for i := 0; i < len(r); i++ {
		if r[i] != '\\' {
			b.WriteRune(r[i])
			continue
		}
		i++
		if i+1 < len(r) && (r[i] == 'p' || r[i] == 'P') && r[i+1] == '{' {
			for i < len(r) && r[i] != '}' {
				i++
			}
		}
	}
	return b.String()
}
