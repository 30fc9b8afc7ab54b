package briefing

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/anazmuhdd/jarvis-acsia/internal/feed"
	"github.com/anazmuhdd/jarvis-acsia/internal/identity"
	"github.com/anazmuhdd/jarvis-acsia/internal/newscache"
	"github.com/anazmuhdd/jarvis-acsia/internal/tasks"
)

// Briefing is a one-shot text snapshot of the dashboard: the feed result as
// the orchestrator produced it plus the day's collected tasks. Article order
// is taken from the result untouched.
type Briefing struct {
	Greeting  string
	DateLabel string
	FromCache bool
	NoTopics  bool
	Topics    []string
	Sources   string
	Trending  string
	Cards     []Card
	Tasks     []tasks.Item
}

// Card is one article slot in the briefing.
type Card struct {
	Index       int
	Article     newscache.Article
	ReadingTime int
}

// Build assembles a briefing. Pure; everything network-shaped already
// happened in the load that produced result.
func Build(result feed.LoadResult, todos []tasks.Item, profile identity.Profile, now time.Time) Briefing {
	name := profile.DisplayName
	if name == "" {
		name = "stranger"
	}

	b := Briefing{
		Greeting:  greeting(now) + ", " + name + ".",
		DateLabel: now.Format("Mon, Jan 2"),
		FromCache: result.FromCache,
		NoTopics:  result.NoTopics,
		Topics:    result.Topics,
		Sources:   activeSources(result.Articles),
		Trending:  trending(result.Articles),
		Tasks:     todos,
	}

	for i, a := range result.Articles {
		b.Cards = append(b.Cards, Card{
			Index:       i + 1,
			Article:     a,
			ReadingTime: estimateReadTime(a.Description),
		})
	}
	return b
}

// Render lays the briefing out as plain text. No styling: the output is
// meant for pipes and pagers as much as for the terminal.
func (b Briefing) Render() string {
	var sb strings.Builder

	fresh := "live"
	if b.FromCache {
		fresh = "cached"
	}
	fmt.Fprintf(&sb, "%s  %s  (%s)\n\n", b.Greeting, b.DateLabel, fresh)

	if len(b.Topics) > 0 {
		fmt.Fprintf(&sb, "Topics:   %s\n", strings.Join(b.Topics, " · "))
	}
	if b.Sources != "" {
		fmt.Fprintf(&sb, "Sources:  %s\n", b.Sources)
	}
	if b.Trending != "" {
		fmt.Fprintf(&sb, "Trending: %s\n", b.Trending)
	}

	switch {
	case b.NoTopics:
		sb.WriteString("\nNo stories for this profile today.\n")
	case len(b.Cards) == 0:
		sb.WriteString("\nNo articles.\n")
	default:
		for _, c := range b.Cards {
			fmt.Fprintf(&sb, "\n%3d. %s\n", c.Index, c.Article.Title)
			fmt.Fprintf(&sb, "     %s · ~%d min\n", c.Article.Source.Name, c.ReadingTime)
			if excerpt := DescriptionExcerpt(c.Article.Description); excerpt != "" {
				fmt.Fprintf(&sb, "     %s\n", excerpt)
			}
			fmt.Fprintf(&sb, "     %s\n", c.Article.URL)
		}
	}

	if len(b.Tasks) > 0 {
		done := 0
		for _, it := range b.Tasks {
			if it.Done {
				done++
			}
		}
		fmt.Fprintf(&sb, "\nTasks (%d/%d done):\n", done, len(b.Tasks))
		for _, it := range b.Tasks {
			mark := "[ ]"
			if it.Done {
				mark = "[x]"
			}
			list := it.ListName
			if list == "" {
				list = "personal"
			}
			fmt.Fprintf(&sb, "  %s %s (%s)\n", mark, it.Title, list)
		}
	}

	return sb.String()
}

// DescriptionExcerpt returns the first sentence of a description, or the
// whole thing when no sentence boundary turns up early enough.
func DescriptionExcerpt(desc string) string {
	if desc == "" {
		return ""
	}
	for i, c := range desc {
		if c == '.' && i > 20 {
			return desc[:i+1]
		}
	}
	runes := []rune(desc)
	if len(runes) > 150 {
		return string(runes[:150]) + "..."
	}
	return desc
}

func estimateReadTime(desc string) int {
	words := len(strings.Fields(desc))
	// Multiply by 3 for full article estimate, divide by 200 WPM
	minutes := (words * 3) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func greeting(now time.Time) string {
	hour := now.Hour()
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func activeSources(articles []newscache.Article) string {
	counts := map[string]int{}
	for _, a := range articles {
		counts[a.Source.Name]++
	}

	type sc struct {
		name  string
		count int
	}
	var sorted []sc
	for name, count := range counts {
		sorted = append(sorted, sc{name, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].name < sorted[j].name
	})

	limit := 3
	if len(sorted) < limit {
		limit = len(sorted)
	}

	parts := make([]string, limit)
	for i := 0; i < limit; i++ {
		parts[i] = fmt.Sprintf("%s (%d)", sorted[i].name, sorted[i].count)
	}
	return strings.Join(parts, ", ")
}

// trending extracts the most repeated meaningful words across headline
// titles. A single day's feed has no corpus to weigh against, so plain term
// frequency with a repeat threshold stands in for TF-IDF.
func trending(articles []newscache.Article) string {
	tf := map[string]int{}
	for _, a := range articles {
		for _, w := range tokenize(a.Title) {
			tf[w]++
		}
	}

	type scored struct {
		term  string
		count int
	}
	var terms []scored
	for term, count := range tf {
		if count < 2 {
			continue
		}
		terms = append(terms, scored{term, count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].count != terms[j].count {
			return terms[i].count > terms[j].count
		}
		return terms[i].term < terms[j].term
	})

	limit := 3
	if len(terms) < limit {
		limit = len(terms)
	}

	parts := make([]string, limit)
	for i := 0; i < limit; i++ {
		parts[i] = terms[i].term
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ", ")
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "is": true, "it": true, "its": true,
	"this": true, "that": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "can": true, "not": true, "no": true, "nor": true,
	"how": true, "what": true, "when": true, "where": true, "who": true, "which": true,
	"why": true, "all": true, "each": true, "every": true, "both": true, "few": true,
	"more": true, "most": true, "other": true, "some": true, "such": true, "than": true,
	"too": true, "very": true, "just": true, "about": true, "into": true, "over": true,
	"after": true, "before": true, "between": true, "under": true, "above": true,
	"out": true, "up": true, "down": true, "off": true, "our": true, "your": true,
	"we": true, "you": true, "they": true, "them": true, "their": true, "new": true,
	"use": true, "using": true, "used": true,
}

func tokenize(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(word) < 4 {
			continue
		}
		if stopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
