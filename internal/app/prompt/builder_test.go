package prompt_test

import (
	"strings"
	"testing"

	"github.com/aliciamoraes/sana-agent/internal/app/prompt"
	"github.com/aliciamoraes/sana-agent/internal/domain"
)

func fullProfile() domain.Profile {
	return domain.Profile{
		Name:     "Alex",
		Gender:   "Non-binary",
		Birthday: "1990-04-23",
		Goal:     "Reduce stress",
		Personality: map[domain.TraitKey]int{
			domain.TraitEnergy:         60,
			domain.TraitDecisionStyle:  80,
			domain.TraitFocus:          40,
			domain.TraitStructure:      20,
			domain.TraitStressResponse: 100,
		},
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	for _, v := range []domain.Variant{domain.VariantClassic, domain.VariantGentle, domain.VariantInsight} {
		p := fullProfile()
		if a, b := prompt.Build(v, p), prompt.Build(v, p); a != b {
			t.Fatalf("variant %s: Build is not idempotent", v)
		}
	}
}

func TestBuildContainsSetFieldsOnly(t *testing.T) {
	p := fullProfile()
	out := prompt.Build(domain.VariantClassic, p)

	for _, want := range []string{"Alex", "Non-binary", "1990-04-23", "Reduce stress"} {
		if !strings.Contains(out, want) {
			t.Fatalf("prompt missing set field value %q", want)
		}
	}

	partial := domain.Profile{Name: "Alex"}
	out = prompt.Build(domain.VariantClassic, partial)
	if !strings.Contains(out, "Alex") {
		t.Fatal("prompt missing name")
	}
	for _, unset := range []string{"identifies as", "was born on", "main goal for therapy"} {
		if strings.Contains(out, unset) {
			t.Fatalf("prompt mentions unset field: %q", unset)
		}
	}
}

func TestBuildEmptyProfileHasNoFacts(t *testing.T) {
	out := prompt.Build(domain.VariantClassic, domain.Profile{})
	if strings.Contains(out, "The user's name is") {
		t.Fatal("empty profile produced a name fact")
	}
	if !strings.Contains(out, "crisis hotline") {
		t.Fatal("preamble missing crisis-escalation rule")
	}
	if !strings.Contains(out, "'summary' or 'end session'") {
		t.Fatal("preamble missing summary-on-request rule")
	}
}

func TestBuildInsightIncludesTraitLines(t *testing.T) {
	p := fullProfile()
	out := prompt.Build(domain.VariantInsight, p)

	for _, key := range domain.TraitKeys() {
		if !strings.Contains(out, key.Question()) {
			t.Fatalf("insight prompt missing question for trait %s", key)
		}
	}
	if !strings.Contains(out, "60%") {
		t.Fatal("insight prompt missing trait percentage")
	}

	// Other variants never reflect trait answers even if present.
	out = prompt.Build(domain.VariantClassic, p)
	if strings.Contains(out, domain.TraitEnergy.Question()) {
		t.Fatal("classic prompt includes quiz lines")
	}
}

func TestVariantsDifferInWording(t *testing.T) {
	p := fullProfile()
	if prompt.Build(domain.VariantClassic, p) == prompt.Build(domain.VariantGentle, p) {
		t.Fatal("classic and gentle variants produced identical prompts")
	}
}
