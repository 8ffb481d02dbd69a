package docs

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"devfactory/internal/filemanager"
	"devfactory/internal/logging"
	"devfactory/internal/validation"
	"devfactory/pkg/fileops"

	"github.com/adrg/frontmatter"
)

// OverviewFile is the registry document at the root of a docs directory.
const OverviewFile = "overview.md"

var (
	// ErrNotFound is returned by Doc when no page exists for the name.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidName is returned by Doc for names that are not a single entry.
	ErrInvalidName = errors.New("invalid document name")
)

// DocFrontmatter is the optional YAML header of a documentation page.
type DocFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Catalog reads documentation pages from one directory. It is safe for
// concurrent use: every call reads the files afresh through an os.Root.
type Catalog struct {
	fm            *filemanager.FileManager
	logger        *logging.AppLogger
	overviewTitle string
}

// Open opens dir as a catalog. title heads a synthesized overview.
func Open(dir, title string, logger *logging.AppLogger) (*Catalog, error) {
	fm, err := filemanager.NewFileManager(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open docs directory: %w", err)
	}
	return &Catalog{fm: fm, logger: logger, overviewTitle: title}, nil
}

func (c *Catalog) Dir() string {
	return c.fm.GetDocsDir()
}

func (c *Catalog) Close() error {
	return c.fm.Close()
}

// Overview returns the registry text. Without an overview.md, one is built
// from the frontmatter of every page.
func (c *Catalog) Overview() (string, error) {
	data, err := c.fm.ReadFile(OverviewFile)
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, filemanager.ErrNotFound) {
		return "", fmt.Errorf("failed to read %s: %w", OverviewFile, err)
	}

	c.logger.Debug("No overview file, building registry from frontmatter", "dir", c.Dir())
	return c.synthesizeOverview()
}

// Doc returns the page for name, i.e. the contents of "<name>.md".
func (c *Catalog) Doc(name string) (string, error) {
	if err := fileops.ValidateEntryName(name); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidName, err)
	}

	data, err := c.fm.ReadFile(name + ".md")
	if err != nil {
		if errors.Is(err, filemanager.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", err
	}
	return string(data), nil
}

// Names returns the entry names listed in the overview.
func (c *Catalog) Names() ([]string, error) {
	overview, err := c.Overview()
	if err != nil {
		return nil, err
	}
	return HeadingNames(overview), nil
}

// Search returns the overview sections mentioning query, ignoring case.
// Frontmatter on the overview is not searched.
func (c *Catalog) Search(query string) ([]string, error) {
	overview, err := c.Overview()
	if err != nil {
		return nil, err
	}

	var matter DocFrontmatter
	body, err := frontmatter.Parse(strings.NewReader(overview), &matter)
	if err != nil {
		c.logger.Debug("Overview frontmatter unreadable, searching raw text", "error", err)
		body = []byte(overview)
	}

	return MatchSections(SplitSections(string(body)), query), nil
}

type registryEntry struct {
	name        string
	description string
}

func (c *Catalog) synthesizeOverview() (string, error) {
	files, err := c.fm.ListMarkdown()
	if err != nil {
		return "", err
	}

	var entries []registryEntry
	var skipped int
	for _, file := range files {
		if strings.EqualFold(file.Name, OverviewFile) {
			continue
		}

		content, err := c.fm.ReadFile(file.Path)
		if err != nil {
			c.logger.Debug("Skipping file", "name", file.Name, "reason", err)
			skipped++
			continue
		}
		if err := validation.ValidateMarkdown(content); err != nil {
			c.logger.Debug("Skipping file", "name", file.Name, "reason", err)
			skipped++
			continue
		}

		var matter DocFrontmatter
		if _, err := frontmatter.Parse(bytes.NewReader(content), &matter); err != nil {
			c.logger.Debug("Invalid frontmatter, using file name", "name", file.Name, "error", err)
		}

		entry := registryEntry{name: file.Stem(), description: strings.TrimSpace(matter.Description)}
		if n := strings.TrimSpace(matter.Name); n != "" {
			entry.name = n
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	c.logger.Info("Registry built from frontmatter",
		"totalFiles", len(files),
		"entries", len(entries),
		"skipped", skipped)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", c.overviewTitle)
	for _, e := range entries {
		fmt.Fprintf(&b, "\n## %s\n", e.name)
		if e.description != "" {
			fmt.Fprintf(&b, "\n%s\n", e.description)
		}
	}
	return b.String(), nil
}
