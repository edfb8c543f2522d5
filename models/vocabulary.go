package models

// VocabularyEntry is one item in the shared vocabulary bank.
// Mutated only by admins; learners reference entries through WordProgress.
type VocabularyEntry struct {
	ID              string `gorm:"primaryKey;type:uuid" json:"id"`
	Word            string `gorm:"not null;index" json:"word"`
	Meaning         string `gorm:"not null" json:"meaning"`
	ExampleSentence string `json:"example_sentence"`
	Category        string `gorm:"not null;index" json:"category"`

	Timestamps
}

// Categories is the fixed whitelist accepted by the catalog and the bulk
// importer: CEFR levels plus thematic groups.
var Categories = []string{
	"A1", "A2", "B1", "B2", "C1", "C2",
	"Greetings", "Food", "Travel", "Family", "Numbers", "Colors",
	"Animals", "Weather", "Time", "Body", "Clothing", "Work",
	"School", "Home",
}

var categorySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		set[c] = struct{}{}
	}
	return set
}()

// IsValidCategory reports whether c is a member of the category whitelist.
func IsValidCategory(c string) bool {
	_, ok := categorySet[c]
	return ok
}
