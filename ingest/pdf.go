package ingest

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ExtractPDFText pulls the text of every page, separated by page
// markers. Pages without any text are skipped.
func ExtractPDFText(data []byte) (string, error) {
	conf := model.NewDefaultConfiguration()

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return "", fmt.Errorf("failed to validate PDF: %w", err)
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		reader, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			log.Printf("[PDF] skipping page %d: %v", pageNr, err)
			continue
		}
		if reader == nil {
			continue
		}

		content, err := io.ReadAll(reader)
		if err != nil {
			log.Printf("[PDF] skipping page %d: %v", pageNr, err)
			continue
		}

		pageText := textFromContentStream(content)
		if pageText == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("--- Page %d ---\n%s\n\n", pageNr, pageText))
	}

	return strings.TrimSpace(sb.String()), nil
}

// textFromContentStream collects the literal strings fed to the
// text-showing operators (Tj, TJ, ', ") of a decoded page content
// stream. Best effort: enough for retrieval, not a typesetting-aware
// extraction.
func textFromContentStream(content []byte) string {
	var sb strings.Builder

	for i := 0; i < len(content); i++ {
		if content[i] != '(' {
			continue
		}

		literal, end := readStringLiteral(content, i)
		i = end
		if literal == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(literal)
	}

	return strings.TrimSpace(sb.String())
}

// readStringLiteral parses a PDF string literal starting at the '(' at
// offset start and returns its unescaped text plus the index of the
// closing parenthesis.
func readStringLiteral(content []byte, start int) (string, int) {
	var sb strings.Builder
	depth := 1

	i := start + 1
	for ; i < len(content); i++ {
		c := content[i]
		switch c {
		case '\\':
			if i+1 >= len(content) {
				return sb.String(), i
			}
			i++
			switch content[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '(', ')', '\\':
				sb.WriteByte(content[i])
			}
		case '(':
			depth++
			sb.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return sb.String(), i
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String(), i
}
