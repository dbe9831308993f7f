package naming

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKebab(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces", "My Cool App", "my-cool-app"},
		{"already kebab", "my-cool-app", "my-cool-app"},
		{"snake case", "my_cool_app", "my-cool-app"},
		{"camel case", "myCoolApp", "my-cool-app"},
		{"pascal case", "MyCoolApp", "my-cool-app"},
		{"acronym", "HTTPServer", "http-server"},
		{"trailing acronym", "parseJSON", "parse-json"},
		{"digits", "app2go", "app-2-go"},
		{"leading and trailing separators", "--My App--", "my-app"},
		{"repeated separators", "my   app__name", "my-app-name"},
		{"accents", "Crème Brûlée", "creme-brulee"},
		{"apostrophe", "Don't Panic", "dont-panic"},
		{"dots", "flugzeug.project", "flugzeug-project"},
		{"upper words", "MY APP", "my-app"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"symbols only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kebab(tt.input))
		})
	}
}

func TestKebab_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// Letters, marks and digits from the Latin, Greek, Cyrillic, Armenian,
	// Georgian, Cherokee and Canadian syllabics blocks, plus punctuation.
	for i := 0; i < 20000; i++ {
		rs := make([]rune, 1+rng.Intn(6))
		for j := range rs {
			rs[j] = rune(rng.Intn(0x2000))
		}
		in := string(rs)

		once := Kebab(in)
		if !assert.Equal(t, once, Kebab(once), "input %q", in) {
			return
		}
	}
}

func TestKebab_UncasedUppercase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ωϒ", "ωϒ"},
		{"ῶȀϒ", "ω-aϒ"},
		{"Ἄϒᾉᓦ", "αϒαᓦ"},
		{"Ⴓϓᙺ", "ⴓϒᙺ"},
		{"ℝℂ", "ℝℂ"},
		{"aℝ", "aℝ"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			once := Kebab(tt.input)
			assert.Equal(t, tt.want, once)
			assert.Equal(t, once, Kebab(once))
		})
	}
}

func FuzzKebab(f *testing.F) {
	for _, seed := range []string{
		"My Cool App", "HTTPServer2Go", "Crème Brûlée", "  --weird__Input..123abc  ",
		"日本語 App", "ÀÉÎÕÜ", "ῶȀϒ", "Ἄϒᾉᓦ", "Ⴓϓᙺ", "ℝℂ", "",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, in string) {
		once := Kebab(in)
		if twice := Kebab(once); twice != once {
			t.Fatalf("Kebab(%q) = %q, but Kebab(%q) = %q", in, once, once, twice)
		}
	})
}

func TestKebab_CaseAndSeparatorInsensitive(t *testing.T) {
	assert.Equal(t, Kebab("My Cool App"), Kebab("my-cool-app"))
	assert.Equal(t, "my-cool-app", Kebab("MY_COOL_APP"))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"http", "server", "2"}, Words("HTTPServer2"))
	assert.Nil(t, Words("  "))
}
