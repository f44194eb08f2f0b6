// Package intent decides whether a message is a fact-check request, a
// disguised attempt to use the model as a general-purpose generator, or
// neither. The matching is a conservative allow-list: rejecting a real
// question is preferred over letting the model be used as an unrestricted
// generator.
package intent

import (
	"regexp"
	"strings"
)

// Verdict is the classification of a single message.
type Verdict string

const (
	BypassAttempt     Verdict = "bypass_attempt"
	FactCheckQuestion Verdict = "fact_check_question"
	Unrecognized      Verdict = "unrecognized"
)

// Generative-task trigger phrases. Any match is refused outright, before the
// fact-check test runs, even when the message ends in "?".
var bypassTriggers = []string{
	"écris un code", "code python", "programme", "fonction", "script",
	"traduis", "résume", "donne moi un code", "crée un", "génère",
	"exemple de", "poème", "dessine", "fais une blague", "joue", "jouons",
	"imagine", "raconte", "rédige", "écris une", "fais moi un", "compile",
	"corrige",
}

// French fact-checking phrase patterns, kept as a curated contract.
var factCheckPatterns = []*regexp.Regexp{
	regexp.MustCompile(`est[- ]ce que`),
	regexp.MustCompile(`c'est vrai`),
	regexp.MustCompile(`c'est faux`),
	regexp.MustCompile(`est[- ]ce une info`),
	regexp.MustCompile(`peut[- ]on croire`),
	regexp.MustCompile(`ai[- ]je raison`),
	regexp.MustCompile(`vrai ou faux`),
	regexp.MustCompile(`infox`),
	regexp.MustCompile(`intox`),
	regexp.MustCompile(`les .* existent`),
	regexp.MustCompile(`existe[- ]t[- ]il`),
	regexp.MustCompile(`sont[- ]ils réels`),
	regexp.MustCompile(`as[- ]tu vérifié`),
	regexp.MustCompile(`la vérité sur`),
	regexp.MustCompile(`mythe ou réalité`),
	regexp.MustCompile(`les gens disent que`),
}

// Classify lowercases and trims the message, then runs the bypass test
// followed by the fact-check test. The bypass test short-circuits.
func Classify(text string) Verdict {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, trigger := range bypassTriggers {
		if strings.Contains(lower, trigger) {
			return BypassAttempt
		}
	}

	if strings.HasSuffix(lower, "?") {
		return FactCheckQuestion
	}
	for _, pattern := range factCheckPatterns {
		if pattern.MatchString(lower) {
			return FactCheckQuestion
		}
	}

	return Unrecognized
}
