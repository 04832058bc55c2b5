package enum

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bodgit/sevenzip"
	"github.com/ledongthuc/pdf"
)

// ExtractedContent represents text found inside an archive or document.
type ExtractedContent struct {
	Name    string // path within the archive (e.g., "src/main.go")
	Content []byte // member content or extracted text
}

// extractable lists the extensions ExtractText understands.
var extractable = map[string]bool{
	".zip":  true,
	".jar":  true,
	".7z":   true,
	".xlsx": true,
	".docx": true,
	".pdf":  true,
}

// ExtractText returns the searchable members of an archive or the text of
// a document. Binary members and members larger than maxMemberSize
// (0 = no limit) are left out.
func ExtractText(path string, content []byte, maxMemberSize int64) ([]ExtractedContent, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".zip", ".jar":
		return extractZip(content, maxMemberSize)
	case ".7z":
		return extract7z(content, maxMemberSize)
	case ".xlsx":
		return extractXLSX(content)
	case ".docx":
		return extractDOCX(content)
	case ".pdf":
		return extractPDF(content)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// extractZip returns the text members of a zip archive in archive order.
func extractZip(content []byte, maxMemberSize int64) ([]ExtractedContent, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	var results []ExtractedContent
	for _, file := range zipReader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		if maxMemberSize > 0 && int64(file.UncompressedSize64) > maxMemberSize {
			continue
		}
		data, err := readMember(file.Open)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}
		if isBinary(data) {
			continue
		}
		results = append(results, ExtractedContent{Name: file.Name, Content: data})
	}
	return results, nil
}

// extract7z returns the text members of a 7z archive in archive order.
func extract7z(content []byte, maxMemberSize int64) ([]ExtractedContent, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z: %w", err)
	}

	var results []ExtractedContent
	for _, file := range r.File {
		if file.FileInfo().IsDir() {
			continue
		}
		if maxMemberSize > 0 && int64(file.UncompressedSize) > maxMemberSize {
			continue
		}
		data, err := readMember(file.Open)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}
		if isBinary(data) {
			continue
		}
		results = append(results, ExtractedContent{Name: file.Name, Content: data})
	}
	return results, nil
}

func readMember(open func() (io.ReadCloser, error)) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// extractXLSX extracts cell text from Excel files. Shared strings and
// each sheet become separate members.
func extractXLSX(content []byte) ([]ExtractedContent, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx as zip: %w", err)
	}

	var results []ExtractedContent
	for _, file := range zipReader.File {
		isSheet := strings.HasPrefix(file.Name, "xl/worksheets/sheet") && strings.HasSuffix(file.Name, ".xml")
		if file.Name != "xl/sharedStrings.xml" && !isSheet {
			continue
		}
		data, err := readMember(file.Open)
		if err != nil {
			continue
		}
		if text := extractXMLText(data); len(text) > 0 {
			results = append(results, ExtractedContent{Name: file.Name, Content: []byte(text)})
		}
	}
	return results, nil
}

// extractDOCX extracts text from Word documents (docx format).
func extractDOCX(content []byte) ([]ExtractedContent, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open docx as zip: %w", err)
	}

	var results []ExtractedContent
	for _, file := range zipReader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		data, err := readMember(file.Open)
		if err != nil {
			continue
		}
		if text := extractXMLText(data); len(text) > 0 {
			results = append(results, ExtractedContent{Name: file.Name, Content: []byte(text)})
		}
	}
	return results, nil
}

// extractPDF extracts text from PDF files using ledongthuc/pdf.
func extractPDF(content []byte) ([]ExtractedContent, error) {
	// Create a temporary file since ledongthuc/pdf requires a file or ReaderAt with size
	tmpFile, err := os.CreateTemp("", "pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	// Write the PDF content to the temp file
	if _, err := tmpFile.Write(content); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	// Close the file so pdf.Open can read it
	tmpFile.Close()

	// Open the PDF file
	f, r, err := pdf.Open(tmpFile.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	// Extract text from all pages
	var text strings.Builder
	totalPages := r.NumPage()

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		// Get plain text from the page
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Continue on error to extract what we can
			continue
		}

		text.WriteString(pageText)
		text.WriteString("\n")
	}

	extracted := text.String()
	if len(strings.TrimSpace(extracted)) == 0 {
		return nil, nil
	}

	return []ExtractedContent{
		{
			Name:    "content.txt",
			Content: []byte(extracted),
		},
	}, nil
}

// extractXMLText extracts text content from XML data.
// It parses XML and collects all text nodes.
func extractXMLText(data []byte) string {
	var text strings.Builder
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.CharData:
			content := string(t)
			// Only add if it contains non-whitespace
			if strings.TrimSpace(content) != "" {
				if text.Len() > 0 {
					text.WriteString(" ")
				}
				// Clean up the text - remove extra whitespace
				text.WriteString(cleanText(content))
			}
		}
	}

	return text.String()
}

// cleanText removes extra whitespace and non-printable characters.
func cleanText(s string) string {
	var result strings.Builder
	lastSpace := false

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastSpace {
				result.WriteRune(' ')
				lastSpace = true
			}
		} else if unicode.IsPrint(r) {
			result.WriteRune(r)
			lastSpace = false
		}
	}

	return strings.TrimSpace(result.String())
}
