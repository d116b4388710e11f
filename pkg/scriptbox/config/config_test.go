package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/scriptbox/pkg/scriptbox/intent"
	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

func TestDefaultLexicon(t *testing.T) {
	lex := DefaultLexicon()
	if got := lex.Lemma("names"); got != "name" {
		t.Errorf("Lemma(names) = %q", got)
	}
	if got := lex.Lemma("thanks"); got != "thanks" {
		t.Errorf("thanks must stay intact, got %q", got)
	}
	if got := lex.Lemma("greetings"); got != "greetings" {
		t.Errorf("greetings must stay intact so the greeting trigger fires, got %q", got)
	}
}

func TestLoadResponsesExampleFile(t *testing.T) {
	resp, err := LoadResponses(filepath.Join("testdata", "responses.yaml"))
	if err != nil {
		t.Fatalf("LoadResponses: %v", err)
	}
	if resp.Match != "substring" {
		t.Errorf("Match = %q", resp.Match)
	}
	if len(resp.Topics) != 3 || resp.Topics[0].ID != "wellbeing" {
		t.Errorf("topics not in file order: %+v", resp.Topics)
	}
	if len(resp.GreetingTriggers) != 6 {
		t.Errorf("greeting triggers = %v", resp.GreetingTriggers)
	}
}

func TestParseResponsesRejectsUnknownKeys(t *testing.T) {
	data := []byte("greeting_trigger: [hi]\n")
	if _, err := ParseResponses(data); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestParseResponsesValidates(t *testing.T) {
	data := []byte(`
greeting_triggers: [hi]
greeting_responses: [hello]
farewell_triggers: [bye]
farewell_responses: [ciao]
fallback_responses: []
`)
	_, err := ParseResponses(data)
	if !errors.Is(err, internalerr.ErrInvalidConfig) || !strings.Contains(err.Error(), "fallback") {
		t.Errorf("err = %v, want fallback validation error", err)
	}
}

func TestParseResponsesBadMatchMode(t *testing.T) {
	data := []byte(`
match: fuzzy
greeting_triggers: [hi]
greeting_responses: [hello]
farewell_triggers: [bye]
farewell_responses: [ciao]
fallback_responses: ["what?"]
`)
	if _, err := ParseResponses(data); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestLoadStoplist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.yaml")
	if err := os.WriteFile(path, []byte("terms: [the, a]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("LoadStoplist: %v", err)
	}
	if len(sl.Terms) != 2 {
		t.Errorf("Terms = %v", sl.Terms)
	}
}

func TestLoaderDefaults(t *testing.T) {
	loader := Loader{Seed: 42}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Matcher.Mode() != intent.MatchSubstring {
		t.Errorf("default mode = %v", comp.Matcher.Mode())
	}
	if len(comp.Overlaps) != 0 {
		t.Errorf("default tables overlap: %v", comp.Overlaps)
	}

	tokens := comp.Preprocessor.Normalize("Hello there!")
	if resp := comp.Matcher.Resolve(tokens); resp.Category != intent.Greeting {
		t.Errorf("Hello there! resolved to %v", resp.Category)
	}
}

func TestLoaderFiles(t *testing.T) {
	dir := t.TempDir()
	stops := filepath.Join(dir, "stop.yaml")
	lemmas := filepath.Join(dir, "lemmas.yaml")
	os.WriteFile(stops, []byte("terms: [please]\n"), 0o644)
	os.WriteFile(lemmas, []byte("lemmas:\n  - lemma: forecast\n    forms: [forecasts]\n"), 0o644)

	loader := Loader{
		ResponsesPath: filepath.Join("testdata", "responses.yaml"),
		StoplistPath:  stops,
		LexiconPath:   lemmas,
		MatchMode:     "phrase",
		Seed:          1,
	}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Matcher.Mode() != intent.MatchPhrase {
		t.Errorf("MatchMode override ignored: %v", comp.Matcher.Mode())
	}
	got := comp.Preprocessor.Normalize("please the forecasts")
	if len(got) != 2 || got[0] != "the" || got[1] != "forecast" {
		t.Errorf("Normalize = %v, want [the forecast]", got)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	loader := Loader{ResponsesPath: filepath.Join(t.TempDir(), "missing.yaml")}
	if _, err := loader.Load(); err == nil || !strings.Contains(err.Error(), "load responses") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadWeather(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("WEATHERBIT_API_KEY=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv never overrides variables that are already set.
	os.Unsetenv("WEATHERBIT_API_KEY")
	t.Cleanup(func() { os.Unsetenv("WEATHERBIT_API_KEY") })
	t.Setenv("WEATHER_LAT", "51.5")
	t.Setenv("WEATHER_TIMEOUT", "3s")

	cfg, err := LoadWeather(envFile)
	if err != nil {
		t.Fatalf("LoadWeather: %v", err)
	}
	if cfg.APIKey != "from-dotenv" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.Latitude != 51.5 || cfg.Longitude != DefaultLongitude {
		t.Errorf("coords = %v,%v", cfg.Latitude, cfg.Longitude)
	}
	if cfg.Output != DefaultWeatherOutput || cfg.BaseURL != DefaultWeatherBaseURL {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Timeout.Seconds() != 3 {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}

func TestLoadWeatherRequiresKey(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "")
	_, err := LoadWeather(filepath.Join(t.TempDir(), "absent.env"))
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}
