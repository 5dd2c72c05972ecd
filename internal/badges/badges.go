// Package badges holds the badge catalog and the threshold rules that decide
// which badges a learner qualifies for. Everything here is pure; awarding is
// done by the badge service.
package badges

import "hindipath/internal/models"

// Badge ids
const (
	FirstWord    = "first_word"
	FiveWords    = "five_words"
	TenWords     = "ten_words"
	TwentyFive   = "twenty_five"
	FiftyWords   = "fifty_words"
	FirstLesson  = "first_lesson"
	ThreeLessons = "three_lessons"
	Intermediate = "intermediate"
	Advanced     = "advanced"
	Chat10       = "chat_10"
	Chat50       = "chat_50"
)

// Catalog is the immutable, ordered set of badges the app knows about
type Catalog struct {
	badges []models.Badge
	byID   map[string]models.Badge
}

// NewCatalog builds a catalog from badges in display order
func NewCatalog(list []models.Badge) *Catalog {
	c := &Catalog{
		badges: make([]models.Badge, len(list)),
		byID:   make(map[string]models.Badge, len(list)),
	}
	copy(c.badges, list)
	for _, b := range list {
		c.byID[b.ID] = b
	}
	return c
}

// DefaultCatalog returns the built-in catalog
func DefaultCatalog() *Catalog {
	return NewCatalog([]models.Badge{
		{ID: FirstWord, Icon: "🌱", Name: "First Word", Description: "Learned your very first Hindi word"},
		{ID: FiveWords, Icon: "🔥", Name: "Five Words", Description: "Learned 5 Hindi words"},
		{ID: TenWords, Icon: "⭐", Name: "Ten Words", Description: "Learned 10 Hindi words"},
		{ID: TwentyFive, Icon: "🏅", Name: "25 Words", Description: "Learned 25 Hindi words"},
		{ID: FiftyWords, Icon: "🥇", Name: "50 Words", Description: "Learned 50 Hindi words"},
		{ID: FirstLesson, Icon: "📖", Name: "First Lesson", Description: "Completed your first lesson topic"},
		{ID: ThreeLessons, Icon: "📚", Name: "Three Lessons", Description: "Completed 3 lesson topics"},
		{ID: Intermediate, Icon: "🎯", Name: "Going Deeper", Description: "Started Intermediate level"},
		{ID: Advanced, Icon: "🚀", Name: "Advanced Learner", Description: "Started Advanced level"},
		{ID: Chat10, Icon: "💬", Name: "Chatty", Description: "Sent 10 messages to Gurujee"},
		{ID: Chat50, Icon: "🗣️", Name: "Conversationalist", Description: "Sent 50 messages to Gurujee"},
	})
}

// All returns every badge in display order
func (c *Catalog) All() []models.Badge {
	out := make([]models.Badge, len(c.badges))
	copy(out, c.badges)
	return out
}

// Get looks a badge up by id
func (c *Catalog) Get(id string) (models.Badge, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// Lookup maps ids to catalog entries, skipping ids the catalog does not know
func (c *Catalog) Lookup(ids []string) []models.Badge {
	out := make([]models.Badge, 0, len(ids))
	for _, id := range ids {
		if b, ok := c.byID[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Counters is a snapshot of the activity badge thresholds are measured on
type Counters struct {
	DistinctWords    int
	CompletedLessons int
	UserTurns        int
}

type rule struct {
	badgeID   string
	threshold int
	counter   func(Counters) int
}

func words(c Counters) int   { return c.DistinctWords }
func lessons(c Counters) int { return c.CompletedLessons }
func turns(c Counters) int   { return c.UserTurns }

var rules = []rule{
	{FirstWord, 1, words},
	{FiveWords, 5, words},
	{TenWords, 10, words},
	{TwentyFive, 25, words},
	{FiftyWords, 50, words},
	{FirstLesson, 1, lessons},
	{ThreeLessons, 3, lessons},
	{Chat10, 10, turns},
	{Chat50, 50, turns},
}

// Qualified returns every counter badge whose threshold c meets, in rule order.
// It says nothing about which badges are already held.
func Qualified(c Counters) []string {
	var ids []string
	for _, r := range rules {
		if r.counter(c) >= r.threshold {
			ids = append(ids, r.badgeID)
		}
	}
	return ids
}

// ForLevel returns the badge earned by switching to level, if any
func ForLevel(level string) (string, bool) {
	switch level {
	case models.LevelIntermediate:
		return Intermediate, true
	case models.LevelAdvanced:
		return Advanced, true
	}
	return "", false
}
