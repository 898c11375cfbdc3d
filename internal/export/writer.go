// Package export writes a built site to the output directory.
package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"

	"github.com/user/docsite/internal/errors"
	"github.com/user/docsite/internal/logging"
	"github.com/user/docsite/internal/site"
)

// Output file names
const (
	StylesheetFile  = "style.css"
	AnchorIndexFile = "anchors.json"
)

// stylesheetSeparator sits between the highlight rules and the site's own
// stylesheet.
const stylesheetSeparator = "\n\n\n"

// Observer is told about every file written.
type Observer interface {
	FileWritten(name string, size int64)
}

// Writer writes pages, the stylesheet and the optional anchor index.
type Writer struct {
	OutputDir   string
	AssetsDir   string
	AnchorIndex bool
	Observer    Observer

	logger *logging.Logger
}

// NewWriter creates a writer for outputDir.
func NewWriter(outputDir, assetsDir string, logger *logging.Logger) *Writer {
	return &Writer{
		OutputDir: outputDir,
		AssetsDir: assetsDir,
		logger:    logger,
	}
}

// WrittenFile describes one output file.
type WrittenFile struct {
	Name string
	Path string
	Size int64
}

// Summary lists what Write produced.
type Summary struct {
	Files      []WrittenFile
	TotalBytes int64
}

// Write empties the output directory and writes s into it.
func (w *Writer) Write(s *site.Site) (*Summary, error) {
	if err := w.clean(); err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, page := range s.Pages {
		if err := w.writeFile(summary, page.Name+".html", []byte(page.HTML)); err != nil {
			return nil, err
		}
	}

	css, err := w.stylesheet(s.Stylesheet)
	if err != nil {
		return nil, err
	}
	if err := w.writeFile(summary, StylesheetFile, css); err != nil {
		return nil, err
	}

	if w.AnchorIndex {
		index, err := BuildAnchorIndex(s)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(index, "", "  ")
		if err != nil {
			return nil, errors.WrapError(err, "Failed to encode anchor index", errors.ExitGeneralError)
		}
		if err := w.writeFile(summary, AnchorIndexFile, append(data, '\n')); err != nil {
			return nil, err
		}
	}

	w.logger.Info("Site written",
		logging.String("output_dir", w.OutputDir),
		logging.Int("files", len(summary.Files)),
		logging.String("size", humanize.Bytes(uint64(summary.TotalBytes))))
	return summary, nil
}

// clean removes every entry of the output directory, creating it if needed.
func (w *Writer) clean() error {
	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return errors.NewIOError("Creating output directory", w.OutputDir, err)
	}

	entries, err := os.ReadDir(w.OutputDir)
	if err != nil {
		return errors.NewIOError("Reading output directory", w.OutputDir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(w.OutputDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return errors.NewIOError("Cleaning output directory", path, err)
		}
	}
	return nil
}

func (w *Writer) stylesheet(highlight string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(highlight)
	sb.WriteString(stylesheetSeparator)

	if w.AssetsDir != "" {
		path := filepath.Join(w.AssetsDir, StylesheetFile)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewIOError("Reading stylesheet", path, err)
		}
		sb.Write(data)
	}
	return []byte(sb.String()), nil
}

func (w *Writer) writeFile(summary *Summary, name string, data []byte) error {
	path := filepath.Join(w.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewIOError("Writing output", path, err)
	}

	size := int64(len(data))
	summary.Files = append(summary.Files, WrittenFile{Name: name, Path: path, Size: size})
	summary.TotalBytes += size

	w.logger.Debug("Wrote file",
		logging.String("file", name),
		logging.String("size", humanize.Bytes(uint64(size))))
	if w.Observer != nil {
		w.Observer.FileWritten(name, size)
	}
	return nil
}

// BuildAnchorIndex maps every page to the sorted ids present in its rendered
// markup, skeleton ids included.
func BuildAnchorIndex(s *site.Site) (map[string][]string, error) {
	index := make(map[string][]string, len(s.Pages))
	for _, page := range s.Pages {
		ids, err := ExtractAnchors(page.HTML)
		if err != nil {
			return nil, errors.Locate(err, page.Name+".html", 0)
		}
		index[page.Name] = ids
	}
	return index, nil
}

// ExtractAnchors returns the sorted, distinct id attributes of a document.
func ExtractAnchors(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.WrapError(err, "Failed to parse rendered page", errors.ExitGeneralError)
	}

	var ids []string
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		if id, ok := s.Attr("id"); ok {
			ids = append(ids, id)
		}
	})
	slices.Sort(ids)
	return slices.Compact(ids), nil
}
