package formatters

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// PortfolioFormatter turns resume text into a complete portfolio page.
type PortfolioFormatter struct {
	client   *http.Client
	baseURL  string
	language string
	logger   *slog.Logger
}

func NewPortfolioFormatter(httpClient *http.Client, baseURL string, language string, logger *slog.Logger) *PortfolioFormatter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PortfolioFormatter{client: httpClient, baseURL: baseURL, language: language, logger: logger}
}

const portfolioPrompt = `You are an AI web developer. Your task is to create a complete HTML5 + Tailwind CSS portfolio page based on the following resume details.
Also, generate content if required (e.g., About section).

Resume Content:
"""%s"""

Requirements:
- Create a professional, modern HTML + Tailwind CSS portfolio page.
- Include a navbar with links (Home, About, Projects, Contact).
- The hero section should have the user's name, profession, and a brief bio.
- The projects section should list notable projects with descriptions and links.
- Include a skills section listing relevant technical skills.
- Add a contact section with email and LinkedIn/GitHub links.
- Ensure mobile responsiveness and good UI/UX.
- Use well-structured HTML and modern CSS.
- Do NOT include JavaScript. Keep it simple.
%s
Return only the full HTML + Tailwind CSS code, without any extra explanations.`

// Prompt renders the generation prompt for resumeText.
func (pf *PortfolioFormatter) Prompt(resumeText string) string {
	lang := ""
	if pf.language != "" {
		lang = fmt.Sprintf("- LANGUAGE: Write ALL visible text in %s.\n", pf.language)
	}
	return fmt.Sprintf(portfolioPrompt, resumeText, lang)
}

// Format returns the model's raw answer. It may still be wrapped in a
// markdown code fence.
func (pf *PortfolioFormatter) Format(ctx context.Context, resumeText string) (string, error) {
	return chat(ctx, pf.client, pf.baseURL, pf.Prompt(resumeText), pf.logger)
}
