package router

import (
	"regexp"
	"strings"

	"github.com/hearthside/hearth/plugin/ai/timeparse"
	"github.com/hearthside/hearth/store"
)

// RuleMatcher is the deterministic fallback classifier. It is a total
// function over strings: every input yields an intent, defaulting to chat.
type RuleMatcher struct {
	parser *timeparse.Parser
}

// NewRuleMatcher creates a rule matcher resolving relative dates against
// the given parser's clock.
func NewRuleMatcher(parser *timeparse.Parser) *RuleMatcher {
	if parser == nil {
		parser = timeparse.NewParser()
	}
	return &RuleMatcher{parser: parser}
}

var (
	timeExprPattern = regexp.MustCompile(`(?i)\b(\d{1,2}(?::\d{2})?\s*(?:am|pm)|\d{1,2}:\d{2}(?::\d{2})?|noon|midnight)\b`)
	dateExprPattern = regexp.MustCompile(`(?i)\b((?:next\s+)?(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)|today|tonight|tomorrow|yesterday|\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2})\b`)

	deleteWordPattern = regexp.MustCompile(`(?i)\b(cancel|delete|remove|drop|clear)\b`)
	updateWordPattern = regexp.MustCompile(`(?i)\b(move|reschedule|change|postpone|rename|update|mark|done|complete|completed|finished|bought|purchased)\b`)
	queryWordPattern  = regexp.MustCompile(`(?i)\b(what|what's|when|who|which|show|list|upcoming|any|do (?:i|we) have|is there|how many)\b`)

	leadingFillerPattern  = regexp.MustCompile(`(?i)^(?:please\s+|can you\s+|could you\s+|hey\s+)+`)
	leadingVerbPattern    = regexp.MustCompile(`(?i)^(?:remind (?:me|us)(?: to| about)?|add|create|schedule|book|set up|set|put|buy|get|pick up|cancel|delete|remove|drop|clear|move|reschedule|change|postpone|mark|finish|complete|show me|show|list|check|what(?:'s| is| are)?|when(?:'s| is)?|do (?:i|we) have|is there|how many|any)\s+`)
	leadingArticlePattern = regexp.MustCompile(`(?i)^(?:my|our|the|a|an|some|on|in|for|of|about)\s+`)
	containerNounPattern  = regexp.MustCompile(`(?i)^(?:calendar|schedule|schedules|agenda|shopping list|grocery list|grocery|groceries|shopping|list|reminders|tasks|todos|to-?dos|chores|plans|family)$`)
	listTailPattern       = regexp.MustCompile(`(?i)\s+(?:to|from|off|on)\s+(?:my|our|the)\s+(?:shopping\s+|grocery\s+|to-?do\s+)?list\s*$`)
	tailStatusPattern     = regexp.MustCompile(`(?i)\s+(?:as\s+)?(?:done|complete|completed|finished|bought|purchased|off(?: the list)?)\s*$`)
	orphanPrepPattern     = regexp.MustCompile(`(?i)\s*\b(?:at|on|by|for|until|to|from)\s*$`)
	multiSpacePattern     = regexp.MustCompile(`\s{2,}`)

	availabilityPattern = regexp.MustCompile(`(?i)\b(?:am i free|are we free|free time|free slots?|open slots?|availability|when.{0,20}\bfree)\b`)
)

// Keyword sets per category. Order of evaluation is shopping, reminder,
// task, calendar, family.
var (
	shoppingWordPattern = regexp.MustCompile(`(?i)\b(shopping|grocery|groceries|buy|purchase|out of|running low)\b|\bto the list\b`)
	reminderWordPattern = regexp.MustCompile(`(?i)\b(remind|reminder|reminders|don't let me forget)\b`)
	taskWordPattern     = regexp.MustCompile(`(?i)\b(task|tasks|todo|to-do|chore|chores|due)\b`)
	calendarWordPattern = regexp.MustCompile(`(?i)\b(schedule|appointment|appointments|meeting|meetings|event|events|calendar|agenda|book|visit|plans)\b`)
	familyWordPattern   = regexp.MustCompile(`(?i)\b(family|birthday|birthdate|relative|relatives)\b`)
)

// shoppingCategories maps item keywords onto shopping category buckets.
// Checked in order; the first bucket with a matching keyword wins.
var shoppingCategories = []struct {
	category string
	words    []string
}{
	{store.CategoryBaby, []string{"diaper", "diapers", "formula", "wipes", "baby"}},
	{store.CategoryDairy, []string{"milk", "cheese", "yogurt", "butter", "cream", "eggs"}},
	{store.CategoryProduce, []string{"apple", "apples", "banana", "bananas", "lettuce", "tomato", "tomatoes", "onion", "onions", "carrot", "carrots", "fruit", "vegetable", "vegetables"}},
	{store.CategoryMeat, []string{"chicken", "beef", "pork", "fish", "turkey", "sausage", "bacon", "ham"}},
	{store.CategoryBakery, []string{"bread", "bagel", "bagels", "croissant", "croissants", "bun", "buns", "cake", "muffin", "muffins"}},
	{store.CategoryHousehold, []string{"detergent", "soap", "shampoo", "paper towels", "toilet paper", "batteries", "sponge", "sponges", "trash bags"}},
}

// Match classifies the input without the language model. It never fails;
// unrecognized input becomes a chat intent with the raw message attached.
func (m *RuleMatcher) Match(input string) *Intent {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return &Intent{Type: IntentChat, Slots: map[string]any{}, Confidence: 0.3, Source: SourceRule}
	}

	date, timeOfDay, cleaned := m.extractWhen(lower)
	action := detectAction(lower)
	kind := detectKind(lower)

	// Availability asks ("when am I free on friday") rarely carry a
	// calendar keyword, so they get their own route to query_calendar.
	if availabilityPattern.MatchString(lower) && (kind == "" || kind == "calendar") {
		slots := map[string]any{"availability": true}
		if date != "" {
			slots["date"] = date
		}
		return &Intent{Type: IntentQueryCalendar, Slots: slots, Confidence: 0.6, Source: SourceRule}
	}

	if kind == "" {
		return &Intent{
			Type:       IntentChat,
			Slots:      map[string]any{"message": strings.TrimSpace(input)},
			Confidence: 0.3,
			Source:     SourceRule,
		}
	}

	slots := map[string]any{}
	subject := extractSubject(cleaned)

	switch kind {
	case "shopping":
		if subject != "" {
			slots["item"] = subject
			if category := categorizeItem(subject); category != "" {
				slots["category"] = category
			}
		}
	case "reminder":
		if subject != "" {
			slots["title"] = subject
		}
		if date != "" {
			slots["date"] = date
		}
		if timeOfDay != "" {
			slots["time"] = timeOfDay
		}
	case "task":
		if subject != "" {
			slots["title"] = subject
		}
		if date != "" {
			slots["due_date"] = date
		}
		if p := detectPriority(lower); p != "" {
			slots["priority"] = p
		}
	case "calendar":
		if subject != "" {
			slots["title"] = subject
		}
		if date != "" {
			slots["date"] = date
		}
		if timeOfDay != "" {
			slots["time"] = timeOfDay
		}
	case "family":
		if subject != "" {
			slots["name"] = subject
		}
		if date != "" {
			slots["birthdate"] = date
		}
	}

	return &Intent{
		Type:       CoerceIntentType(action + "_" + kind),
		Slots:      slots,
		Confidence: 0.6,
		Source:     SourceRule,
	}
}

// extractWhen pulls the first date and time expression out of the input,
// normalizes them, and returns the input with those phrases removed.
func (m *RuleMatcher) extractWhen(input string) (date, timeOfDay, cleaned string) {
	cleaned = input

	if match := timeExprPattern.FindString(cleaned); match != "" {
		if normalized := m.parser.NormalizeTime(strings.TrimSpace(match)); normalized != "" {
			timeOfDay = normalized
			cleaned = strings.Replace(cleaned, match, " ", 1)
		}
	}
	if match := dateExprPattern.FindString(cleaned); match != "" {
		if normalized := m.parser.NormalizeDate(strings.TrimSpace(match)); normalized != "" {
			date = normalized
			cleaned = strings.Replace(cleaned, match, " ", 1)
		}
	}

	// Drop prepositions orphaned by the removals ("at", "on", "by").
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	for {
		next := orphanPrepPattern.ReplaceAllString(cleaned, "")
		if next == cleaned {
			break
		}
		cleaned = strings.TrimSpace(next)
	}

	return date, timeOfDay, cleaned
}

// detectAction picks the CRUD verb. Delete wins over update wins over
// query; everything else is a create.
func detectAction(input string) string {
	switch {
	case deleteWordPattern.MatchString(input):
		return "delete"
	case updateWordPattern.MatchString(input):
		return "update"
	case queryWordPattern.MatchString(input):
		return "query"
	default:
		return "create"
	}
}

// detectKind picks the record category, or "" for plain chat.
func detectKind(input string) string {
	switch {
	case shoppingWordPattern.MatchString(input):
		return "shopping"
	case reminderWordPattern.MatchString(input):
		return "reminder"
	case taskWordPattern.MatchString(input):
		return "task"
	case calendarWordPattern.MatchString(input):
		return "calendar"
	case familyWordPattern.MatchString(input):
		return "family"
	default:
		return ""
	}
}

// extractSubject strips polite fillers, leading verbs, and articles to
// leave the phrase naming the record ("call mom", "dentist", "milk").
func extractSubject(cleaned string) string {
	s := strings.TrimSpace(cleaned)
	s = leadingFillerPattern.ReplaceAllString(s, "")
	for {
		next := leadingVerbPattern.ReplaceAllString(s, "")
		next = leadingArticlePattern.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}
	s = listTailPattern.ReplaceAllString(s, "")
	s = tailStatusPattern.ReplaceAllString(s, "")
	s = strings.Trim(s, " .,!?")
	s = strings.TrimSpace(s)

	// A bare container noun ("calendar", "shopping list") names the
	// collection, not a record; it is not a usable search term or title.
	if containerNounPattern.MatchString(s) {
		return ""
	}
	return s
}

// detectPriority spots an explicit task priority mention.
func detectPriority(input string) string {
	switch {
	case strings.Contains(input, "high priority") || strings.Contains(input, "urgent") || strings.Contains(input, "important"):
		return store.TaskPriorityHigh
	case strings.Contains(input, "low priority") || strings.Contains(input, "whenever"):
		return store.TaskPriorityLow
	case strings.Contains(input, "medium priority"):
		return store.TaskPriorityMedium
	default:
		return ""
	}
}

// categorizeItem assigns a shopping category bucket from keyword sets.
func categorizeItem(item string) string {
	lower := strings.ToLower(item)
	for _, bucket := range shoppingCategories {
		for _, w := range bucket.words {
			if strings.Contains(lower, w) {
				return bucket.category
			}
		}
	}
	return store.CategoryOther
}
