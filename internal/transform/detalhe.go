package transform

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"parlamentodb/internal"
)

// Markers and patterns applied while cleaning vote detail entries. Order
// matters: the unaffiliated-member check runs before the generic
// trailing-parenthetical discard, otherwise those members would be dropped.
const ninscMarker = "(Ninsc)"

var (
	reAggregate   = regexp.MustCompile(`^\d+-`)
	reMemberParen = regexp.MustCompile(`.+\(.+\)$`)
	reNumericOnly = regexp.MustCompile(`^\d+$`)
	reInlineTag   = regexp.MustCompile(`</?[A-Za-z][^>]*>`)
)

// ParseDetalhe turns a vote's free-form HTML detail text like
//
//	"A Favor: <I>PSD</I>, <I>CDS-PP</I><BR>Contra:<I>CH</I>"
//
// into a structured position breakdown. Party codes are kept as-is;
// aggregates ("6-PSD"), bare numbers and individually named party-affiliated
// members are dropped. Unaffiliated members ("... (Ninsc)") are kept with
// their full name: a lone MP is a political position of its own and must not
// be aggregated away. Empty or blank input returns nil, which readers treat
// as "no detail recorded".
func ParseDetalhe(detalhe string) *internal.DetalheVotos {
	if strings.TrimSpace(detalhe) == "" {
		return nil
	}

	result := &internal.DetalheVotos{
		AFavor:    []string{},
		Contra:    []string{},
		Abstencao: []string{},
		Ausencia:  []string{},
	}

	for _, section := range strings.Split(detalhe, "<BR>") {
		label, body, ok := strings.Cut(section, ":")
		if !ok {
			continue
		}

		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
		key = strings.ReplaceAll(key, "ção", "cao")

		entries := cleanEntries(stripMarkup(body))
		switch key {
		case "a_favor":
			result.AFavor = entries
		case "contra":
			result.Contra = entries
		case "abstencao":
			result.Abstencao = entries
		case "ausencia":
			result.Ausencia = entries
		}
	}

	return result
}

func cleanEntries(s string) []string {
	entries := []string{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if reAggregate.MatchString(p) {
			continue
		}
		if strings.Contains(p, ninscMarker) {
			entries = append(entries, p)
			continue
		}
		if reMemberParen.MatchString(p) {
			continue
		}
		if reNumericOnly.MatchString(p) {
			continue
		}
		entries = append(entries, p)
	}
	return entries
}

// stripMarkup drops inline HTML tags, keeping the text. goquery handles the
// malformed fragments that show up in older dumps; the regex is the fallback
// when even that fails to parse.
func stripMarkup(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return reInlineTag.ReplaceAllString(fragment, "")
	}
	return doc.Text()
}
