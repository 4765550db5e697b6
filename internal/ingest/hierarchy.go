package ingest

import (
	"fmt"
	"strings"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/config"
	"github.com/nonthaphat/sportsdesk/internal/parents"
	"github.com/nonthaphat/sportsdesk/internal/vectordb"
)

var sportEmoji = map[catalog.Sport]string{
	catalog.SportEPL:    "⚽",
	catalog.SportNBA:    "🏀",
	catalog.SportNFL:    "🏈",
	catalog.SportTennis: "🎾",
	catalog.SportGolf:   "⛳",
}

// FileBase strips the scraper's filename decorations, e.g.
// "final_PLAY_ULTIMATE_clean.md" becomes "PLAY_ULTIMATE". The base seeds
// stable passage and parent IDs.
func FileBase(filename string) string {
	name := strings.TrimPrefix(filename, "final_")
	name = strings.TrimSuffix(name, "_clean.md")
	name = strings.TrimSuffix(name, ".md")
	return name
}

// PackageLabel is the human-facing package name shown in grounding output.
// An explicit name from the file mapping takes precedence; otherwise the
// file base with underscores spaced out.
func PackageLabel(filename string, mapping config.FileMapping) string {
	if mapping.Package != "" {
		return mapping.Package
	}
	return strings.ReplaceAll(FileBase(filename), "_", " ")
}

// BuildHierarchy turns a multi-sport bundle document into a parent document
// plus one semantic child passage per covered sport. Children are what gets
// indexed; the parent is stored whole and substituted at retrieval time.
// The child text names the focus sport and cross-references the others so a
// single-sport query still ranks the bundle.
func BuildHierarchy(filename, content string, mapping config.FileMapping) (parents.Document, []vectordb.Passage) {
	base := FileBase(filename)
	display := PackageLabel(filename, mapping)
	parentID := base + "_parent"

	sports := make([]catalog.Sport, 0, len(mapping.Sports))
	for _, s := range mapping.Sports {
		if sport, ok := catalog.Parse(s); ok {
			sports = append(sports, sport)
		}
	}

	parent := parents.Document{
		ID:          parentID,
		Package:     display,
		FullContent: content,
		Sports:      sports,
		SourceFile:  filename,
	}

	children := make([]vectordb.Passage, 0, len(sports))
	for _, sport := range sports {
		emoji, ok := sportEmoji[sport]
		if !ok {
			emoji = "🏆"
		}
		var others []string
		for _, s := range sports {
			if s != sport {
				others = append(others, string(s))
			}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "แพ็กเกจ %s (แพ็กเกจรวมหลายกีฬา)\n\n", display)
		fmt.Fprintf(&b, "🎯 กีฬาหลัก: %s %s\n\n", emoji, sport)
		fmt.Fprintf(&b, "ดู %s ได้ครบทุกรายการ\n\n", sport)
		fmt.Fprintf(&b, "⭐ รับชมกีฬาอื่นได้ด้วย: %s\n\n", strings.Join(others, ", "))
		fmt.Fprintf(&b, "รายละเอียดเพิ่มเติมใน %s", display)

		children = append(children, vectordb.Passage{
			ID:      fmt.Sprintf("multi_child_%s_%s", base, sport),
			Content: b.String(),
			Metadata: vectordb.PassageMetadata{
				Sports:     []catalog.Sport{sport, catalog.SportMulti},
				MultiSport: true,
				ParentID:   parentID,
				SourceFile: filename,
				Package:    display,
			},
		})
	}

	return parent, children
}
