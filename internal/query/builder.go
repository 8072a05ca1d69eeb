package query

import (
	"fmt"
	"strings"
)

// Builder accumulates clauses for a listing query.
type Builder interface {
	Where(c Clause)
}

// ClauseSet is an ordered Builder that ignores a clause equal to one it
// already holds.
type ClauseSet struct {
	clauses []Clause
	seen    map[string]struct{}
}

func NewClauseSet() *ClauseSet {
	return &ClauseSet{seen: make(map[string]struct{})}
}

func (s *ClauseSet) Where(c Clause) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	key := fmt.Sprintf("%T %s", c, c)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.clauses = append(s.clauses, c)
}

// Clauses returns the clauses in insertion order.
func (s *ClauseSet) Clauses() []Clause {
	out := make([]Clause, len(s.clauses))
	copy(out, s.clauses)
	return out
}

func (s *ClauseSet) Len() int {
	return len(s.clauses)
}

// String joins the clauses with AND. An empty set renders as "TRUE".
func (s *ClauseSet) String() string {
	if len(s.clauses) == 0 {
		return "TRUE"
	}
	parts := make([]string, len(s.clauses))
	for i, c := range s.clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}
