package prompt

import (
	"strings"
	"testing"

	"hindipath/internal/models"
)

func TestBuildIncludesFormatContractForEveryPreference(t *testing.T) {
	langs := []string{models.LangTamil, models.LangEnglish, models.LangBoth, "", "klingon"}
	levels := []string{models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced, "", "expert"}

	for _, lang := range langs {
		for _, level := range levels {
			got := Build(Preferences{NativeLanguage: lang, Level: level})
			if !strings.Contains(got, FormatContract) {
				t.Errorf("Build(%q, %q) is missing the format contract", lang, level)
			}
			if !strings.Contains(got, "Devanagari | Roman | English | Tamil") {
				t.Errorf("Build(%q, %q) is missing the field order", lang, level)
			}
			if got != Build(Preferences{NativeLanguage: lang, Level: level}) {
				t.Errorf("Build(%q, %q) is not deterministic", lang, level)
			}
		}
	}
}

func TestBuildGuidance(t *testing.T) {
	tests := []struct {
		name    string
		prefs   Preferences
		want    []string
		notWant []string
	}{
		{
			name:  "tamil beginner",
			prefs: Preferences{NativeLanguage: models.LangTamil, Level: models.LevelBeginner},
			want:  []string{"Always include Tamil translation.", "Teach slowly, one concept at a time", "Level: beginner"},
		},
		{
			name:  "english advanced",
			prefs: Preferences{NativeLanguage: models.LangEnglish, Level: models.LevelAdvanced},
			want:  []string{"The student prefers English.", "idioms", "Level: advanced"},
		},
		{
			name:  "both intermediate",
			prefs: Preferences{NativeLanguage: models.LangBoth, Level: models.LevelIntermediate},
			want:  []string{"Use both freely.", "grammar patterns"},
		},
		{
			name:  "empty falls back to defaults",
			prefs: Preferences{},
			want:  []string{"Always include Tamil translation.", "Level: beginner"},
		},
		{
			name:    "unknown language gives no guidance",
			prefs:   Preferences{NativeLanguage: "hindi", Level: models.LevelBeginner},
			notWant: []string{"Always include Tamil translation.", "prefers English", "Use both freely."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.prefs)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Build() missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("Build() unexpectedly contains %q", w)
				}
			}
		})
	}
}

func TestForUser(t *testing.T) {
	u := &models.User{MyLang: models.LangBoth, TeachLevel: models.LevelAdvanced}
	if got := ForUser(u); got.NativeLanguage != models.LangBoth || got.Level != models.LevelAdvanced {
		t.Errorf("ForUser() = %+v", got)
	}
}
