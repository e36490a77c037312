package dispatch

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/newsdrop/pkg/domain"
)

const maxDescriptionLen = 600

// Composer renders articles into plain text notifications
type Composer struct {
	policy *bluemonday.Policy
}

// NewComposer makes a composer stripping all markup from feed descriptions
func NewComposer() *Composer {
	return &Composer{policy: bluemonday.StrictPolicy()}
}

// Compose returns subject and body of a notification for an article
func (c *Composer) Compose(a domain.Article) (subject, body string) {
	category := strings.ToUpper(a.Category)
	subject = fmt.Sprintf("%s News: %s", category, c.Clean(a.Title))

	var sb strings.Builder
	sb.WriteString(category + "\n\n")
	sb.WriteString(c.Clean(a.Title) + "\n\n")
	if desc := truncate(c.Clean(a.Description), maxDescriptionLen); desc != "" {
		sb.WriteString(desc + "\n\n")
	}
	if a.Link != "" {
		sb.WriteString(a.Link + "\n")
	}
	if a.Source != "" {
		sb.WriteString("Source: " + a.Source)
	}
	return subject, strings.TrimRight(sb.String(), "\n")
}

// Clean strips html from text, unescapes entities and collapses whitespace
func (c *Composer) Clean(text string) string {
	return strings.Join(strings.Fields(html.UnescapeString(c.policy.Sanitize(text))), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
