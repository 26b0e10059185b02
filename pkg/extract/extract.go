// Package extract turns an uploaded resume into plain text for the
// generator.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

var (
	ErrUnsupported = errors.New("Failed to extract text. Please try another file format like .txt or .docx")
	ErrTooLarge    = errors.New("The file is too large")
)

// rawPDFPrefix heads text recovered by byte filtering rather than parsing.
const rawPDFPrefix = "PDF detected. Extracting raw text content...\n\n"

type Kind string

const (
	KindPDF  Kind = "pdf"
	KindHTML Kind = "html"
	KindText Kind = "text"
)

// Result is extracted text and how it was obtained.
type Result struct {
	Text string `json:"text"`
	Kind Kind   `json:"kind"`
	// Raw is set when a PDF could not be parsed and printable bytes were
	// kept instead.
	Raw bool `json:"raw"`
}

type Extractor struct {
	maxBytes    int
	mdConverter *converter.Converter
	logger      *slog.Logger
}

// New returns an Extractor refusing inputs over maxBytes; zero means no
// limit.
func New(maxBytes int, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		maxBytes: maxBytes,
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		logger: logger,
	}
}

// Detect picks the extraction path from the file name and content.
func Detect(filename string, data []byte) Kind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF
	case ".html", ".htm":
		return KindHTML
	}
	if bytes.Contains(data, []byte("%PDF-")) {
		return KindPDF
	}
	if strings.HasPrefix(http.DetectContentType(data), "text/html") {
		return KindHTML
	}
	return KindText
}

func (x *Extractor) Extract(filename string, data []byte) (Result, error) {
	if x.maxBytes > 0 && len(data) > x.maxBytes {
		return Result{}, ErrTooLarge
	}
	kind := Detect(filename, data)
	log := x.logger.With("file", filename, "kind", kind, "bytes", len(data))

	var res Result
	switch kind {
	case KindPDF:
		text, err := pdfText(data)
		if err != nil || strings.TrimSpace(text) == "" {
			log.Info("pdf parse failed, keeping printable bytes", "error", err)
			text = rawPDFText(data)
			res.Raw = true
		}
		res.Text = text
	case KindHTML:
		md, err := x.mdConverter.ConvertString(string(data))
		if err != nil {
			log.Warn("html conversion failed", "error", err)
			return Result{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		res.Text = md
	default:
		if !utf8.Valid(data) {
			return Result{}, ErrUnsupported
		}
		res.Text = string(data)
	}
	res.Kind = kind
	res.Text = strings.TrimSpace(res.Text)
	if res.Text == "" || res.Text == strings.TrimSpace(rawPDFPrefix) {
		return Result{}, ErrUnsupported
	}
	log.Debug("text extracted", "chars", utf8.RuneCountInString(res.Text), "raw", res.Raw)
	return res, nil
}

// rawPDFText keeps printable ASCII, newlines and tabs.
func rawPDFText(data []byte) string {
	var sb strings.Builder
	sb.WriteString(rawPDFPrefix)
	for _, b := range data {
		if (b >= 0x20 && b <= 0x7E) || b == '\n' || b == '\r' || b == '\t' {
			sb.WriteByte(b)
		}
	}
	return sb.String()
}
