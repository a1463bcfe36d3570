package services

import (
	"fmt"
	"strings"

	"resumeworks/resume-builder/internal/models"
)

// Resume template names.
const (
	TemplateModern    = "modern"
	TemplateExecutive = "executive"
	TemplateCreative  = "creative"
	TemplateTechnical = "technical"
)

const (
	accentBlue = "2E74B5"
	accentRed  = "C0504D"
)

// ResumeRendererService renders structured resume data into a DOCX file in
// one of the supported templates.
type ResumeRendererService interface {
	Render(data models.ResumeData, template string) (string, []byte, error)
	Templates() []string
}

type resumeRendererService struct {
	brandLine string
}

// NewResumeRendererService wires the renderer. brandLine, when non-empty, is
// appended as a footer line to every rendered document.
func NewResumeRendererService(brandLine string) ResumeRendererService {
	return &resumeRendererService{brandLine: brandLine}
}

func (r *resumeRendererService) Templates() []string {
	return []string{TemplateModern, TemplateExecutive, TemplateCreative, TemplateTechnical}
}

// Render implements ResumeRendererService.
func (r *resumeRendererService) Render(data models.ResumeData, template string) (string, []byte, error) {
	if strings.TrimSpace(data.FullName) == "" {
		return "", nil, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}

	if template == "" {
		template = TemplateModern
	}

	builder := newDocBuilder()

	switch template {
	case TemplateModern:
		r.renderModern(builder, data)
	case TemplateExecutive:
		r.renderExecutive(builder, data)
	case TemplateCreative:
		r.renderCreative(builder, data)
	case TemplateTechnical:
		r.renderTechnical(builder, data)
	default:
		return "", nil, fmt.Errorf("%w: unknown template %q", ErrInvalidInput, template)
	}

	if r.brandLine != "" {
		builder.AddParagraph("", paragraphOptions{SpaceZero: true})
		builder.AddParagraph(r.brandLine, paragraphOptions{Italic: true, SizeHalf: 16, Color: "808080", Center: true})
	}

	content, err := builder.Bytes()
	if err != nil {
		return "", nil, fmt.Errorf("failed to render resume: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.docx", SafeFilename(data.FullName), template)
	return filename, content, nil
}

func contactLine(data models.ResumeData) string {
	var parts []string
	for _, part := range []string{data.Location, data.Email, data.Phone} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	parts = append(parts, data.Links...)
	return strings.Join(parts, " | ")
}

func (r *resumeRendererService) renderModern(b *docBuilder, data models.ResumeData) {
	b.AddParagraph(data.FullName, paragraphOptions{Bold: true, SizeHalf: 36, Color: accentBlue, SpaceZero: true})
	if data.Headline != "" {
		b.AddParagraph(data.Headline, paragraphOptions{Italic: true, SpaceZero: true})
	}
	if contact := contactLine(data); contact != "" {
		b.AddParagraph(contact, paragraphOptions{SizeHalf: 18})
	}

	r.addSections(b, data, paragraphOptions{Bold: true, SizeHalf: 24, Color: accentBlue}, false)
}

func (r *resumeRendererService) renderExecutive(b *docBuilder, data models.ResumeData) {
	b.AddParagraph(data.FullName, paragraphOptions{Bold: true, SizeHalf: 32, Center: true, SpaceZero: true})
	if data.Headline != "" {
		b.AddParagraph(data.Headline, paragraphOptions{Center: true, SpaceZero: true})
	}
	if contact := contactLine(data); contact != "" {
		b.AddParagraph(contact, paragraphOptions{SizeHalf: 18, Center: true})
	}

	r.addSections(b, data, paragraphOptions{Bold: true, SizeHalf: 24}, false)
}

func (r *resumeRendererService) renderCreative(b *docBuilder, data models.ResumeData) {
	b.AddParagraph(data.FullName, paragraphOptions{Bold: true, SizeHalf: 36, Color: accentRed, SpaceZero: true})
	if data.Headline != "" {
		b.AddParagraph(data.Headline, paragraphOptions{Italic: true, Color: accentRed, SpaceZero: true})
	}
	if contact := contactLine(data); contact != "" {
		b.AddParagraph(contact, paragraphOptions{SizeHalf: 18})
	}

	r.addSections(b, data, paragraphOptions{Bold: true, SizeHalf: 24, Color: accentRed}, true)
}

// renderTechnical leads with a two-column skills table before the usual
// sections.
func (r *resumeRendererService) renderTechnical(b *docBuilder, data models.ResumeData) {
	heading := paragraphOptions{Bold: true, SizeHalf: 24}

	b.AddParagraph(data.FullName, paragraphOptions{Bold: true, SizeHalf: 32, SpaceZero: true})
	if data.Headline != "" {
		b.AddParagraph(data.Headline, paragraphOptions{SpaceZero: true})
	}
	if contact := contactLine(data); contact != "" {
		b.AddParagraph(contact, paragraphOptions{SizeHalf: 18})
	}

	if len(data.Skills) > 0 {
		b.AddParagraph("TECHNICAL SKILLS", heading)
		var rows [][]string
		for i := 0; i < len(data.Skills); i += 2 {
			row := []string{data.Skills[i], ""}
			if i+1 < len(data.Skills) {
				row[1] = data.Skills[i+1]
			}
			rows = append(rows, row)
		}
		b.AddTable(rows)
	}

	r.addSummary(b, data, heading)
	r.addCoreSections(b, data, heading)
	r.addTailSections(b, data, heading)
}

// addSections writes summary, skills, experience, education and the tail
// sections in the default order. bulletSkills switches the skills section
// between a comma-joined line and bullets.
func (r *resumeRendererService) addSections(b *docBuilder, data models.ResumeData, heading paragraphOptions, bulletSkills bool) {
	r.addSummary(b, data, heading)

	if len(data.Skills) > 0 {
		b.AddParagraph("SKILLS", heading)
		if bulletSkills {
			for _, skill := range data.Skills {
				b.AddBullet(skill)
			}
		} else {
			b.AddParagraph(strings.Join(data.Skills, ", "), paragraphOptions{})
		}
	}

	r.addCoreSections(b, data, heading)
	r.addTailSections(b, data, heading)
}

func (r *resumeRendererService) addSummary(b *docBuilder, data models.ResumeData, heading paragraphOptions) {
	if data.Summary != "" {
		b.AddParagraph("PROFESSIONAL SUMMARY", heading)
		b.AddParagraph(data.Summary, paragraphOptions{})
	}
}

func (r *resumeRendererService) addCoreSections(b *docBuilder, data models.ResumeData, heading paragraphOptions) {
	if len(data.Experience) > 0 {
		b.AddParagraph("EXPERIENCE", heading)
		for _, exp := range data.Experience {
			title := exp.Title
			if exp.Company != "" {
				title = fmt.Sprintf("%s — %s", exp.Title, exp.Company)
			}
			b.AddParagraph(title, paragraphOptions{Bold: true, SpaceZero: true})

			var meta []string
			if exp.StartDate != "" || exp.EndDate != "" {
				end := exp.EndDate
				if end == "" {
					end = "Present"
				}
				meta = append(meta, fmt.Sprintf("%s - %s", exp.StartDate, end))
			}
			if exp.Location != "" {
				meta = append(meta, exp.Location)
			}
			if len(meta) > 0 {
				b.AddParagraph(strings.Join(meta, " | "), paragraphOptions{Italic: true, SizeHalf: 18, SpaceZero: true})
			}

			for _, bullet := range exp.Bullets {
				b.AddBullet(bullet)
			}
		}
	}

	if len(data.Education) > 0 {
		b.AddParagraph("EDUCATION", heading)
		for _, edu := range data.Education {
			line := edu.Degree
			if edu.Institution != "" {
				line = fmt.Sprintf("%s, %s", edu.Degree, edu.Institution)
			}
			if edu.Year != "" {
				line = fmt.Sprintf("%s (%s)", line, edu.Year)
			}
			b.AddParagraph(line, paragraphOptions{SpaceZero: true})
			if edu.Details != "" {
				b.AddParagraph(edu.Details, paragraphOptions{SizeHalf: 18, SpaceZero: true})
			}
		}
	}
}

func (r *resumeRendererService) addTailSections(b *docBuilder, data models.ResumeData, heading paragraphOptions) {
	if len(data.Certifications) > 0 {
		b.AddParagraph("CERTIFICATIONS", heading)
		for _, cert := range data.Certifications {
			b.AddBullet(cert)
		}
	}

	if len(data.Projects) > 0 {
		b.AddParagraph("PROJECTS", heading)
		for _, project := range data.Projects {
			b.AddBullet(project)
		}
	}
}
