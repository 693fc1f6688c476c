package types

import "strings"

// Difficulty is a coarse style knob controlling vocabulary complexity
type Difficulty string

const (
	DifficultySimple  Difficulty = "Simple"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHard    Difficulty = "Hard"
	DifficultyDefault Difficulty = ""
)

// Difficulties lists the levels offered to users, in display order
var Difficulties = []Difficulty{DifficultySimple, DifficultyMedium, DifficultyHard}

// ParseDifficulty maps user input to a Difficulty. Anything unrecognised is DifficultyDefault.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return DifficultySimple
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyDefault
	}
}

// Language pairs a human-readable name with the translation service code
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Languages is the fixed table of selectable target languages
var Languages = []Language{
	{Name: "English", Code: "en"},
	{Name: "Spanish", Code: "es"},
	{Name: "French", Code: "fr"},
	{Name: "German", Code: "de"},
	{Name: "Chinese", Code: "zh-cn"},
	{Name: "Japanese", Code: "ja"},
	{Name: "Korean", Code: "ko"},
	{Name: "Hindi", Code: "hi"},
	{Name: "Urdu", Code: "ur"},
	{Name: "Telugu", Code: "te"},
	{Name: "Kannada", Code: "kn"},
}

// DefaultLanguage is the first entry of the table
var DefaultLanguage = Languages[0]

// LookupLanguage resolves a language by name or by code, case-insensitively
func LookupLanguage(nameOrCode string) (Language, bool) {
	key := strings.TrimSpace(nameOrCode)
	for _, lang := range Languages {
		if strings.EqualFold(lang.Name, key) || strings.EqualFold(lang.Code, key) {
			return lang, true
		}
	}
	return Language{}, false
}
