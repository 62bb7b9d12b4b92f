// Package rules implements keyword-based product classification.
package rules

import (
	"strings"
	"sync"

	"wraps/internal/model"
)

// Classifier assigns spending categories to product names using an ordered,
// priority-weighted keyword ruleset. Classification is total: names no rule
// matches resolve to model.CategoryOther and are recorded as unresolved.
type Classifier struct {
	rules      []Rule
	unresolved []string
	mu         sync.Mutex
}

// NewClassifier creates a classifier with the default ruleset.
func NewClassifier() *Classifier {
	return NewClassifierWithRules(DefaultRules())
}

// NewClassifierWithRules creates a classifier with a custom ruleset.
func NewClassifierWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify maps a product name to a category. The highest-priority matching
// rule wins; ties resolve to the first-declared rule. Unmatched names return
// CategoryOther and are appended to the unresolved list.
func (c *Classifier) Classify(productName string) model.Category {
	name := strings.ToLower(productName)

	c.mu.Lock()
	defer c.mu.Unlock()

	best := model.CategoryOther
	bestPriority := -1
	matched := false

	for _, rule := range c.rules {
		if rule.Priority <= bestPriority {
			continue
		}
		for _, keyword := range rule.Keywords {
			if strings.Contains(name, keyword) {
				best = rule.Category
				bestPriority = rule.Priority
				matched = true
				break
			}
		}
	}

	if !matched {
		c.unresolved = append(c.unresolved, productName)
		return model.CategoryOther
	}

	return best
}

// AddRule appends a rule learned after construction. The new rule ranks
// behind existing rules of the same priority.
func (c *Classifier) AddRule(category model.Category, keywords []string, priority int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = append(c.rules, Rule{Category: category, Keywords: keywords, Priority: priority})
}

// Unresolved returns a copy of the names no rule has matched so far.
func (c *Classifier) Unresolved() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.unresolved))
	copy(out, c.unresolved)
	return out
}

// ClearUnresolved empties the unresolved list.
func (c *Classifier) ClearUnresolved() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unresolved = nil
}
