package game

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jcreedcmu/paperwork-game/pkg/inventory"
)

//go:embed content.yaml
var defaultContent []byte

// ReplyKind says what a matched letter earns.
type ReplyKind string

const (
	ReplyDocument ReplyKind = "document"
	ReplyForm     ReplyKind = "form"
	ReplyBigMoney ReplyKind = "big-money"
)

// LetterRule maps a letter body pattern to a reply.
type LetterRule struct {
	Pattern  string             `yaml:"pattern"`
	Reply    ReplyKind          `yaml:"reply"`
	Document inventory.DocKind  `yaml:"document,omitempty"`
	Form     inventory.FormKind `yaml:"form,omitempty"`

	re *regexp.Regexp
}

// Department receives envelopes sent to its address.
type Department struct {
	Name    string               `yaml:"name"`
	Address string               `yaml:"address"`
	Forms   []inventory.FormKind `yaml:"forms"`
	Letters bool                 `yaml:"letters"`
}

// Accepts reports whether the department handles form kind k.
func (d *Department) Accepts(k inventory.FormKind) bool {
	for _, f := range d.Forms {
		if f == k {
			return true
		}
	}
	return false
}

// CatalogEntry is one line of the store catalog.
type CatalogEntry struct {
	Item    string `yaml:"item"`
	Price   int    `yaml:"price"`
	InStock bool   `yaml:"in_stock"`
}

// Content holds the replaceable tables the engine consults when resolving
// sent mail.
type Content struct {
	FreedomPrice int            `yaml:"freedom_price"`
	BigMoney     int            `yaml:"big_money"`
	ReplyDelay   int            `yaml:"reply_delay"`
	Letters      []LetterRule   `yaml:"letters"`
	Departments  []Department   `yaml:"departments"`
	Catalog      []CatalogEntry `yaml:"catalog"`
}

// DefaultContent returns the embedded tables.
func DefaultContent() (*Content, error) {
	return LoadContent(bytes.NewReader(defaultContent))
}

// LoadContent decodes content YAML strictly and compiles it.
func LoadContent(r io.Reader) (*Content, error) {
	c, err := DecodeContent(r)
	if err != nil {
		return nil, err
	}
	if problems := c.Problems(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid content: %w", errors.New(strings.Join(problems, "; ")))
	}
	if err := c.compile(); err != nil {
		return nil, err
	}
	return c, nil
}

// DecodeContent decodes content YAML, rejecting unknown fields, without
// checking it.
func DecodeContent(r io.Reader) (*Content, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}
	return &c, nil
}

// requiredCatalog lists the items the form rules price.
var requiredCatalog = []string{"pencil", "paper", "radio", "envelope"}

// Problems lists everything wrong with the tables. An empty result means
// LoadContent would accept them.
func (c *Content) Problems() []string {
	var out []string
	add := func(format string, args ...any) {
		out = append(out, fmt.Sprintf(format, args...))
	}

	if c.FreedomPrice <= 0 {
		add("freedom_price must be positive")
	}
	if c.BigMoney <= 0 {
		add("big_money must be positive")
	}
	if c.ReplyDelay < 0 {
		add("reply_delay cannot be negative")
	}
	if len(c.Letters) == 0 {
		add("at least one letter rule is required")
	}
	for i, rule := range c.Letters {
		where := fmt.Sprintf("letters[%d] (%q)", i, rule.Pattern)
		if _, err := regexp.Compile("(?i)" + rule.Pattern); err != nil {
			add("%s: pattern does not compile: %v", where, err)
		}
		switch rule.Reply {
		case ReplyDocument:
			if rule.Document != inventory.DocBrochure && rule.Document != inventory.DocStoreCatalog {
				add("%s: unknown document %q", where, rule.Document)
			}
		case ReplyForm:
			if !sendableForm(rule.Form) {
				add("%s: unknown form %q", where, rule.Form)
			}
		case ReplyBigMoney:
		default:
			add("%s: unknown reply %q", where, rule.Reply)
		}
	}

	seen := make(map[string]bool)
	for i, d := range c.Departments {
		where := fmt.Sprintf("departments[%d] (%q)", i, d.Name)
		addr := NormalizeAddress(d.Address)
		if addr == "" {
			add("%s: address is empty", where)
		}
		if seen[addr] {
			add("%s: duplicate address %q", where, d.Address)
		}
		seen[addr] = true
		for _, f := range d.Forms {
			if !sendableForm(f) {
				add("%s: unknown form %q", where, f)
			}
		}
	}

	for _, item := range requiredCatalog {
		e, ok := c.CatalogEntry(item)
		if !ok {
			add("catalog: missing %s", item)
			continue
		}
		if e.Price <= 0 {
			add("catalog: %s price must be positive", item)
		}
	}
	return out
}

func sendableForm(k inventory.FormKind) bool {
	return k == inventory.FormSTO001 || k == inventory.FormENV001
}

func (c *Content) compile() error {
	for i := range c.Letters {
		re, err := regexp.Compile("(?i)" + c.Letters[i].Pattern)
		if err != nil {
			return fmt.Errorf("letters[%d]: %w", i, err)
		}
		c.Letters[i].re = re
	}
	return nil
}

// MatchLetter returns the first rule whose pattern occurs in body.
func (c *Content) MatchLetter(body string) (*LetterRule, bool) {
	for i := range c.Letters {
		if c.Letters[i].re.MatchString(body) {
			return &c.Letters[i], true
		}
	}
	return nil, false
}

// Department returns the department at address, compared after
// normalization.
func (c *Content) Department(address string) (*Department, bool) {
	want := NormalizeAddress(address)
	for i := range c.Departments {
		if NormalizeAddress(c.Departments[i].Address) == want {
			return &c.Departments[i], true
		}
	}
	return nil, false
}

// CatalogEntry returns the catalog line for item.
func (c *Content) CatalogEntry(item string) (CatalogEntry, bool) {
	for _, e := range c.Catalog {
		if e.Item == item {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// NormalizeAddress lowercases an address and collapses its whitespace.
func NormalizeAddress(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
