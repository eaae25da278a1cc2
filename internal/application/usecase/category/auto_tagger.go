// Package category contains category-related use cases.
package category

import (
	"log/slog"
	"strings"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// AutoTag returns the name of the first category, in the given order, that has a
// keyword contained in the description. Matching ignores case and surrounding
// blanks. It returns entity.UncategorizedCategory when nothing matches.
func AutoTag(description string, categories []*entity.Category) string {
	desc := strings.ToLower(description)

	for _, c := range categories {
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if strings.Contains(desc, kw) {
				slog.Debug("Auto-tagged transaction", "category", c.Name, "keyword", kw)
				return c.Name
			}
		}
	}

	return entity.UncategorizedCategory
}

// StoredTag is AutoTag as persisted on a transaction: no match is stored as
// an empty category.
func StoredTag(description string, categories []*entity.Category) string {
	if tag := AutoTag(description, categories); tag != entity.UncategorizedCategory {
		return tag
	}
	return ""
}
