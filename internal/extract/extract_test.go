package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestCleanText(t *testing.T) {
	input := strings.Join([]string{
		"ACME Corp Quarterly Report",
		"Page 3 of 12",
		"page 4 OF 12",
		"17",
		"Revenue grew 12% year over year.",
		"Copyright 2025 ACME Corp",
		"CONFIDENTIAL - internal use",
		"This material is Proprietary to ACME.",
		"ok",
		"",
		"Net margin: 8.4%",
	}, "\n")

	got := CleanText(input)
	want := "ACME Corp Quarterly Report\nRevenue grew 12% year over year.\nNet margin: 8.4%"
	if got != want {
		t.Errorf("CleanText() =\n%q\nwant\n%q", got, want)
	}
}

func TestIsNoiseLine(t *testing.T) {
	tests := []struct {
		line  string
		noise bool
	}{
		{"Page 1 of 10", true},
		{"  2024  ", true},
		{"ab", true},
		{"Copyright notice", true},
		{"Confidential", true},
		{"our proprietary model", true},
		{"Page 1 of the annual review", false},
		{"EBITDA 1,204", false},
		{"Total 2024", false},
	}
	for _, tt := range tests {
		if got := isNoiseLine(tt.line); got != tt.noise {
			t.Errorf("isNoiseLine(%q) = %v; want %v", tt.line, got, tt.noise)
		}
	}
}

func TestMetadataFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want Metadata
	}{
		{"aapl-20250628_20251114_155218.pdf", Metadata{Company: "AAPL", Year: 2025}},
		{"aapl-20250628.pdf", Metadata{Company: "AAPL", Year: 2025}},
		{"big-corp-20231231_q4.xlsx", Metadata{Company: "BIG-CORP", Year: 2023}},
		{"quarterly_report.pdf", Metadata{}},
		{"acme-2025.pdf", Metadata{}},
		{"", Metadata{}},
	}
	for _, tt := range tests {
		if got := MetadataFromFilename(tt.name); got != tt.want {
			t.Errorf("MetadataFromFilename(%q) = %+v; want %+v", tt.name, got, tt.want)
		}
	}
}

func TestTextFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	data := "account,q1,q2\nrevenue,100,120\n\n\"cost, direct\",40,45,\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	result, err := Text(context.Background(), path)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	want := "account | q1 | q2\nrevenue | 100 | 120\ncost, direct | 40 | 45"
	if result.Text != want {
		t.Errorf("Text =\n%q\nwant\n%q", result.Text, want)
	}
	if len(result.Pages) != 1 {
		t.Errorf("expected 1 page, got %d", len(result.Pages))
	}
}

func TestTextFromXlsx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.xlsx")

	f := excelize.NewFile()
	_ = f.SetCellValue("Sheet1", "A1", "Metric")
	_ = f.SetCellValue("Sheet1", "B1", "FY2024")
	_ = f.SetCellValue("Sheet1", "A2", "Revenue")
	_ = f.SetCellValue("Sheet1", "B2", 1500)
	if _, err := f.NewSheet("Empty"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	if _, err := f.NewSheet("Cash"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	_ = f.SetCellValue("Cash", "A1", "Opening")
	_ = f.SetCellValue("Cash", "B1", 300)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	_ = f.Close()

	result, err := Text(context.Background(), path)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if len(result.Pages) != 2 {
		t.Fatalf("expected 2 non-empty sheets, got %d: %+v", len(result.Pages), result.Pages)
	}
	if result.Pages[0].Content != "Sheet: Sheet1\nMetric | FY2024\nRevenue | 1500" {
		t.Errorf("first sheet = %q", result.Pages[0].Content)
	}
	if !strings.Contains(result.Text, "Sheet: Cash\nOpening | 300") {
		t.Errorf("second sheet missing from %q", result.Text)
	}
}

func TestTextUnsupportedFormats(t *testing.T) {
	for _, name := range []string{"legacy.xls", "old.doc", "image.png"} {
		_, err := Text(context.Background(), filepath.Join(t.TempDir(), name))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Text(%s) error = %v; want ErrUnsupportedFormat", name, err)
		}
	}
}

func TestTextFromBrokenPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Text(context.Background(), path); err == nil {
		t.Error("expected an error for a broken pdf")
	}
}

func TestNewResultSkipsBlankPages(t *testing.T) {
	result := newResult([]Page{
		{Number: 1, Content: "first"},
		{Number: 2, Content: "  \n "},
		{Number: 3, Content: "third"},
	})
	if len(result.Pages) != 2 || result.Text != "first\n\nthird" {
		t.Errorf("unexpected result: %+v", result)
	}
}

// writePDF writes a one page PDF showing text with a standard font.
func writePDF(t *testing.T, dir string, text string) string {
	t.Helper()
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func writeDocx(t *testing.T, dir string, paragraphs ...string) string {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
			`</Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() +
			`</w:body></w:document>`,
	}

	path := filepath.Join(dir, "notes.docx")
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	zw := zip.NewWriter(out)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip Create failed: %v", err)
		}
		_, _ = w.Write([]byte(files[name]))
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close failed: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func TestTextFromPDF(t *testing.T) {
	path := writePDF(t, t.TempDir(), "Quarterly revenue grew 12 percent")

	result, err := Text(context.Background(), path)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if len(result.Pages) != 1 || result.Pages[0].Number != 1 {
		t.Fatalf("expected one page, got %+v", result.Pages)
	}
	if !strings.Contains(result.Text, "Quarterly revenue grew 12 percent") {
		t.Errorf("page text = %q", result.Text)
	}
}

func TestTextFromPDFReleasesFile(t *testing.T) {
	if _, err := os.ReadDir("/proc/self/fd"); err != nil {
		t.Skip("open descriptors cannot be counted here")
	}
	openFDs := func() int {
		entries, _ := os.ReadDir("/proc/self/fd")
		return len(entries)
	}
	path := writePDF(t, t.TempDir(), "Operating cash flow")

	before := openFDs()
	for i := 0; i < 50; i++ {
		if _, err := Text(context.Background(), path); err != nil {
			t.Fatalf("Text failed on run %d: %v", i, err)
		}
	}
	if after := openFDs(); after > before+2 {
		t.Errorf("open descriptors grew from %d to %d over 50 extractions", before, after)
	}
}

func TestTextFromDocx(t *testing.T) {
	path := writeDocx(t, t.TempDir(), "Net revenue increased in the third quarter")

	result, err := Text(context.Background(), path)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if len(result.Pages) != 1 {
		t.Fatalf("expected one page, got %d", len(result.Pages))
	}
	if !strings.Contains(result.Text, "Net revenue increased in the third quarter") {
		t.Errorf("docx text = %q", result.Text)
	}
}
