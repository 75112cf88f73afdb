// Package ingest converts incoming report documents to plain text. It only
// flattens structure; candidate decomposition stays in the pipeline package.
package ingest

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"medreport/internal/util"
)

// Document is the text view of one fetched report e-mail.
type Document struct {
	Subject     string
	Text        string
	Attachments []string
}

// FromInput reads the file at path and flattens it according to kind
// ("text", "html", "pdf", "xlsx" or "eml").
func FromInput(kind, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "text", "txt":
		return string(data), nil
	case "html":
		return FromHTML(data)
	case "pdf":
		return FromPDF(data)
	case "xlsx", "xls":
		return FromXLSX(data)
	case "eml", "email":
		doc, err := FromEmailRaw(data)
		if err != nil {
			return "", err
		}
		return doc.Text, nil
	default:
		return "", fmt.Errorf("unsupported input type %q", kind)
	}
}

// FromHTML flattens lab-report tables into one "name: value unit (status)"
// line per row. Cell order follows the table; a header row is kept as-is and
// left for the extractor to discard.
func FromHTML(content []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", err
	}

	lines := []string{}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				if text := util.CollapseSpaces(cell.Text()); text != "" {
					cells = append(cells, text)
				}
			})
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " "))
			}
		})
	})

	if len(lines) == 0 {
		// No tables; fall back to the rendered text.
		return compactLines(doc.Text()), nil
	}
	return strings.Join(lines, "\n"), nil
}

// FromPDF concatenates the plain text of every page.
func FromPDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return compactLines(b.String()), nil
}

// FromXLSX joins each non-empty row of every sheet into one line.
func FromXLSX(content []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	defer f.Close()

	lines := []string{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, row := range rows {
			cells := []string{}
			for _, cell := range row {
				if text := util.CollapseSpaces(cell); text != "" {
					cells = append(cells, text)
				}
			}
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " "))
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}

// FromEmailRaw flattens an RFC822 message: text part first, then HTML part,
// then any PDF/XLSX attachments. Attachments that fail to parse are skipped;
// the rest of the message still counts.
func FromEmailRaw(raw []byte) (Document, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return Document{}, err
	}

	parts := []string{}
	if text := compactLines(env.Text); text != "" {
		parts = append(parts, text)
	}
	if env.HTML != "" {
		if text, err := FromHTML([]byte(env.HTML)); err == nil && text != "" {
			parts = append(parts, text)
		}
	}

	attachments := make([]string, 0, len(env.Attachments))
	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		if filename == "" {
			filename = "attachment"
		}
		attachments = append(attachments, filename)

		var text string
		switch {
		case strings.HasSuffix(strings.ToLower(filename), ".pdf"):
			text, _ = FromPDF(att.Content)
		case strings.HasSuffix(strings.ToLower(filename), ".xlsx"),
			strings.HasSuffix(strings.ToLower(filename), ".xls"):
			text, _ = FromXLSX(att.Content)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	return Document{
		Subject:     env.GetHeader("Subject"),
		Text:        strings.Join(parts, "\n"),
		Attachments: attachments,
	}, nil
}

func compactLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = util.CollapseSpaces(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
