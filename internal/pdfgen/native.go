package pdfgen

import (
	"bytes"
	"context"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/jonathan/resume-builder/internal/preview"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	pointsPerInch = 72.0
	lineSpacing   = 1.25
	bulletIndent  = 14.0
	fontFamily    = "Times"
)

// NativeEngine draws the resume directly with the PDF core fonts. It needs no
// external binaries. Text outside Windows-1252 is replaced.
type NativeEngine struct{}

// Name implements Engine.
func (e *NativeEngine) Name() string { return EngineNative }

// Render implements Engine.
func (e *NativeEngine) Render(ctx context.Context, job Job) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := job.Settings
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(s.Margins.Left*pointsPerInch, s.Margins.Top*pointsPerInch, s.Margins.Right*pointsPerInch)
	pdf.SetAutoPageBreak(true, s.Margins.Bottom*pointsPerInch)
	pdf.SetTitle(job.Resume.FullName, true)
	pdf.SetCreator("resume-builder", true)
	pdf.AddPage()

	d := &drawer{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		fs:  float64(s.RenderFontSize()),
	}
	d.header(job.Resume)

	r := job.Resume
	if r.Summary != "" {
		d.heading("Summary")
		d.para(r.Summary, "")
	}
	for _, sec := range preview.VisibleSections(r, job.Order) {
		d.heading(sec.Title)
		switch sec.ID {
		case types.SectionEducation:
			for _, edu := range r.Education {
				if s.OneLineEducation {
					d.row(strings.Join(nonEmpty(edu.Degree, edu.University, edu.Location), " | "), edu.Date)
				} else {
					d.row(edu.Degree, edu.Date)
					d.rowStyled(edu.University, edu.Location, "I", "")
				}
				if courses := preview.Lines(edu.Courses); len(courses) > 0 {
					d.para("Courses: "+strings.Join(courses, ", "), "")
				}
			}
		case types.SectionSkills:
			for _, sk := range r.Skills {
				d.labelled(sk.Name, sk.Value)
			}
		case types.SectionExperience:
			for _, exp := range r.Experience {
				d.row(strings.Join(nonEmpty(exp.Title, exp.Company, exp.Location), " | "), exp.Date)
				d.bullets(exp.Description)
			}
		case types.SectionProjects:
			for _, p := range r.Projects {
				d.row(strings.Join(nonEmpty(p.Title, p.TechStack), " | "), p.Date)
				d.bullets(p.Description)
			}
		case types.SectionCertificates:
			for _, c := range r.Certificates {
				d.para(c.Name, "")
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &Error{Message: "failed to write PDF", Cause: err}
	}
	return buf.Bytes(), nil
}

type drawer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	fs  float64
}

func (d *drawer) lineHeight() float64 {
	return d.fs * lineSpacing
}

func (d *drawer) header(r types.Resume) {
	d.pdf.SetFont(fontFamily, "B", d.fs*1.7)
	d.pdf.CellFormat(0, d.fs*2, d.tr(r.FullName), "", 1, "C", false, 0, "")

	contacts := preview.Contacts(r)
	parts := make([]string, len(contacts))
	for i, c := range contacts {
		parts[i] = c.Text
	}
	d.pdf.SetFont(fontFamily, "", d.fs*0.9)
	d.pdf.MultiCell(0, d.lineHeight(), d.tr(strings.Join(parts, " | ")), "", "C", false)
	d.pdf.Ln(d.fs * 0.3)
}

func (d *drawer) heading(title string) {
	d.pdf.Ln(d.fs * 0.4)
	d.pdf.SetFont(fontFamily, "B", d.fs)
	d.pdf.CellFormat(0, d.lineHeight(), d.tr(strings.ToUpper(title)), "B", 1, "L", false, 0, "")
	d.pdf.Ln(d.fs * 0.2)
}

// row writes left in bold with right flush to the right margin.
func (d *drawer) row(left, right string) {
	d.rowStyled(left, right, "B", "B")
}

func (d *drawer) rowStyled(left, right, leftStyle, rightStyle string) {
	x := d.pdf.GetX()
	d.pdf.SetFont(fontFamily, rightStyle, d.fs)
	rightWidth := d.pdf.GetStringWidth(d.tr(right))

	pageWidth, _ := d.pdf.GetPageSize()
	marginLeft, _, marginRight, _ := d.pdf.GetMargins()
	leftWidth := max(pageWidth-marginLeft-marginRight-rightWidth-d.fs/2, 0)

	d.pdf.SetFont(fontFamily, leftStyle, d.fs)
	d.pdf.CellFormat(leftWidth, d.lineHeight(), d.fit(left, leftWidth), "", 0, "L", false, 0, "")
	d.pdf.SetX(x)
	d.pdf.SetFont(fontFamily, rightStyle, d.fs)
	d.pdf.CellFormat(0, d.lineHeight(), d.tr(right), "", 1, "R", false, 0, "")
}

// fit truncates s so that it fits in width at the current font.
func (d *drawer) fit(s string, width float64) string {
	s = d.tr(s)
	for len(s) > 0 && d.pdf.GetStringWidth(s) > width {
		s = s[:len(s)-1]
	}
	return s
}

func (d *drawer) labelled(label, value string) {
	d.pdf.SetFont(fontFamily, "B", d.fs)
	d.pdf.Write(d.lineHeight(), d.tr(label+": "))
	d.pdf.SetFont(fontFamily, "", d.fs)
	d.pdf.Write(d.lineHeight(), d.tr(value))
	d.pdf.Ln(d.lineHeight())
}

func (d *drawer) para(text, style string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	d.pdf.SetFont(fontFamily, style, d.fs)
	d.pdf.MultiCell(0, d.lineHeight(), d.tr(text), "", "L", false)
}

func (d *drawer) bullets(items types.Bullets) {
	marginLeft, _, _, _ := d.pdf.GetMargins()
	d.pdf.SetFont(fontFamily, "", d.fs)
	for _, item := range preview.Lines(items) {
		d.pdf.SetX(marginLeft + bulletIndent/2)
		d.pdf.CellFormat(bulletIndent, d.lineHeight(), d.tr("•"), "", 0, "L", false, 0, "")
		d.pdf.MultiCell(0, d.lineHeight(), d.tr(item), "", "L", false)
	}
	d.pdf.Ln(d.fs * 0.3)
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
