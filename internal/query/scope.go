package query

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Scope renders the clause set onto a query over the reports table.
func Scope(s *ClauseSet) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range s.Clauses() {
			db = apply(db, c)
		}
		return db
	}
}

func apply(db *gorm.DB, c Clause) *gorm.DB {
	switch c := c.(type) {
	case ProjectVisible:
		if len(c.Projects) == 0 {
			return db.Where("reports.project_id IS NULL")
		}
		return db.Where("reports.project_id IS NULL OR reports.project_id IN ?", c.Projects)
	case CategoryIs:
		return db.Where("reports.category_id = ?", c.ID)
	case TagIs:
		return db.Where("EXISTS (SELECT 1 FROM report_tags WHERE report_tags.report_id = reports.id AND report_tags.tag_id = ?)", c.ID)
	case StatusIs:
		return db.Where("reports.status = ?", int(c.Status))
	case ProjectIs:
		return db.Where("reports.project_id = ?", c.ID)
	case TitleContains:
		return db.Where("reports.title ILIKE ?", "%"+likeEscaper.Replace(c.Text)+"%")
	case ProjectIsNull:
		return db.Where("reports.project_id IS NULL")
	case ProjectIn:
		if len(c.Projects) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where("reports.project_id IN ?", c.Projects)
	case ProjectNotIn:
		if len(c.Projects) == 0 {
			return db.Where("reports.project_id IS NOT NULL")
		}
		return db.Where("reports.project_id IS NOT NULL AND reports.project_id NOT IN ?", c.Projects)
	}
	return db
}
