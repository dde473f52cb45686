package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validContent = `
freedom_price: 100
big_money: 25
reply_delay: 3
letters:
  - pattern: catalog
    reply: document
    document: store-catalog
  - pattern: ""
    reply: document
    document: brochure
departments:
  - name: Stationery Office
    address: stationery office
    forms: [STO-001]
    letters: true
catalog:
  - {item: pencil, price: 1, in_stock: true}
  - {item: paper, price: 1, in_stock: true}
  - {item: radio, price: 20, in_stock: false}
  - {item: envelope, price: 2, in_stock: true}
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestValidateFile_Valid(t *testing.T) {
	v := &ContentValidator{}
	assert.NoError(t, v.validateFile(writeFile(t, "office_tables.yaml", validContent)))
}

func TestValidateFile_Filename(t *testing.T) {
	v := &ContentValidator{}

	err := v.validateFile(writeFile(t, "content.json", validContent))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extension")

	err = v.validateFile(writeFile(t, "Office-Tables.yaml", validContent))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snake_case")

	assert.NoError(t, v.validateFile(writeFile(t, "draft.yml", validContent)))

	err = v.validateFile(writeFile(t, "x.draft.yml", validContent))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snake_case")
}

func TestValidateData_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "unknown field",
			mutate:  func(s string) string { return s + "surprise: true\n" },
			wantErr: "strict YAML",
		},
		{
			name:    "engine problem",
			mutate:  func(s string) string { return strings.Replace(s, "freedom_price: 100", "freedom_price: 0", 1) },
			wantErr: "freedom_price must be positive",
		},
		{
			name: "no catch-all",
			mutate: func(s string) string {
				return strings.Replace(s, `pattern: ""`, `pattern: hello`, 1)
			},
			wantErr: "empty pattern",
		},
		{
			name: "unreachable rule",
			mutate: func(s string) string {
				return strings.Replace(s, "departments:\n", "  - pattern: late\n    reply: big-money\ndepartments:\n", 1)
			},
			wantErr: "can never match",
		},
		{
			name:    "uppercase pattern",
			mutate:  func(s string) string { return strings.Replace(s, "pattern: catalog", "pattern: Catalog", 1) },
			wantErr: "should be lowercase",
		},
		{
			name: "duplicate catalog item",
			mutate: func(s string) string {
				return s + "  - {item: paper, price: 2, in_stock: true}\n"
			},
			wantErr: "listed twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &ContentValidator{}
			err := v.validateData("content.yaml", []byte(tt.mutate(validContent)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsValidID(t *testing.T) {
	assert.True(t, isValidID("pencil"))
	assert.True(t, isValidID("red_pencil"))
	assert.False(t, isValidID("Pencil"))
	assert.False(t, isValidID("red-pencil"))
	assert.False(t, isValidID("pencil_"))
}

func TestValidateData_EscapesAreNotLetters(t *testing.T) {
	content := strings.Replace(validContent, "pattern: catalog", `pattern: '\Wcatalog\S*\p{Lu}?'`, 1)
	v := &ContentValidator{}
	assert.NoError(t, v.validateData("content.yaml", []byte(content)))
}

func TestLiteralText(t *testing.T) {
	tests := map[string]string{
		"catalog":       "catalog",
		`\Smoney\W`:     "money",
		`sto-\d+`:       "sto-+",
		`\p{Lu}Catalog`: "Catalog",
		`trailing\`:     "trailing",
	}
	for in, want := range tests {
		if got := literalText(in); got != want {
			t.Errorf("literalText(%q) = %q, want %q", in, got, want)
		}
	}
}
