package service

import (
	"strings"
	"testing"

	"github.com/aicv/cv-service/internal/core/domain"
)

func TestTruncateJobText(t *testing.T) {
	short := "a short posting"
	if got := truncateJobText(short); got != short {
		t.Fatalf("short text must pass through unchanged, got %q", got)
	}

	long := strings.Repeat("ñ", jobTextMaxLen+500)
	got := truncateJobText(long)
	if runes := []rune(got); len(runes) != jobTextMaxLen {
		t.Fatalf("expected %d runes after truncation, got %d", jobTextMaxLen, len(runes))
	}

	exact := strings.Repeat("x", jobTextMaxLen)
	if got := truncateJobText(exact); got != exact {
		t.Fatalf("text at the cap must pass through unchanged")
	}
}

func TestBuildPrompt_FencesData(t *testing.T) {
	prompt := buildPrompt(`{"name":"Ana"}`, "backend role in Madrid", domain.LangAuto)

	for _, want := range []string{
		"<PROFILE_JSON>\n{\"name\":\"Ana\"}\n</PROFILE_JSON>",
		"<JOB_TEXT>\nbackend role in Madrid\n</JOB_TEXT>",
		"RETURN ONLY VALID JSON",
		"contact_info",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_LanguageRule(t *testing.T) {
	es := buildPrompt("{}", "x", domain.LangES)
	if !strings.Contains(es, "neutral Spanish") {
		t.Fatalf("es prompt missing spanish rule")
	}

	en := buildPrompt("{}", "x", domain.LangEN)
	if !strings.Contains(en, "US English") {
		t.Fatalf("en prompt missing english rule")
	}

	auto := buildPrompt("{}", "x", domain.LangAuto)
	if !strings.Contains(auto, "Detect the dominant language") {
		t.Fatalf("auto prompt missing detection rule")
	}
	if !strings.Contains(auto, "prefer Spanish") {
		t.Fatalf("auto prompt must prefer Spanish on ambiguity")
	}
}
