// Package session tracks per-user onboarding state: name, then age, then
// ready. Sessions live in memory only and are owned exclusively by their
// conversation identity.
package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/factybot/facty/pkg/safety"
)

// State is the onboarding progress of one conversation.
type State string

const (
	StateAwaitingName State = "awaiting_name"
	StateAwaitingAge  State = "awaiting_age"
	StateReady        State = "ready"
)

const maxNameLength = 20

// Onboarding prompts and re-prompts. Invalid input is recovered here as a
// re-prompt, never surfaced as a failure.
const (
	PromptGreeting   = "Bonjour 👋 ! Je suis FactCheck_Bot. Comment t'appelles-tu ?"
	promptNameRetry  = "🤔 Peux-tu me donner juste ton prénom ? (sans chiffres ni caractères spéciaux)"
	promptAgeRetry   = "🔢 Peux-tu m'indiquer ton âge en chiffres ? (par exemple : 10)"
	promptAgeWeird   = "🤨 Cet âge me semble bizarre... Peux-tu me dire ton vrai âge ?"
	welcomeChildFmt  = "Super %s ! 🌟 Je vais t'expliquer les choses simplement. Pose-moi tes questions !"
	welcomeTeenFmt   = "Parfait %s ! 🎯 Je t'aiderai à démêler le vrai du faux. Quelle info veux-tu vérifier ?"
	welcomeAdultFmt  = "Bonjour %s ! 🔍 Prêt à fact-checker ensemble ? Quelle information souhaitez-vous vérifier ?"
	promptAskNameFmt = "Enchanté %s ! Quel âge as-tu ?"
)

// Session is the onboarding state machine plus the user profile it builds.
type Session struct {
	ID           string
	Identity     string
	State        State
	Name         string
	Age          int
	Tier         safety.Tier
	StartTime    time.Time
	Interactions int
}

// SubmitName handles a message while awaiting the user's name. A valid name
// is letters, spaces and hyphens only, at most 20 runes; it is stored
// title-cased. Returns the reply text and whether the session advanced.
func (s *Session) SubmitName(text string) (string, bool) {
	name := strings.TrimSpace(text)
	if !validName(name) {
		return promptNameRetry, false
	}
	s.Name = titleCase(name)
	s.State = StateAwaitingAge
	return fmt.Sprintf(promptAskNameFmt, s.Name), true
}

// SubmitAge handles a message while awaiting the user's age. An integer in
// the plausible range stores the age, derives the tier and advances to
// ready; anything else re-prompts.
func (s *Session) SubmitAge(text string) (string, bool) {
	age, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return promptAgeRetry, false
	}
	tier, err := safety.ResolveTier(age)
	if err != nil {
		return promptAgeWeird, false
	}

	s.Age = age
	s.Tier = tier
	s.State = StateReady

	switch tier {
	case safety.TierChild:
		return fmt.Sprintf(welcomeChildFmt, s.Name), true
	case safety.TierTeen:
		return fmt.Sprintf(welcomeTeenFmt, s.Name), true
	default:
		return fmt.Sprintf(welcomeAdultFmt, s.Name), true
	}
}

// Stats is a read-only view of a session for the admin surface.
type Stats struct {
	Name         string      `json:"name"`
	Tier         safety.Tier `json:"tier"`
	Interactions int         `json:"interactions"`
	Since        time.Time   `json:"since"`
	Elapsed      string      `json:"elapsed"`
}

// Stats returns the session's introspection data.
func (s *Session) Stats() Stats {
	return Stats{
		Name:         s.Name,
		Tier:         s.Tier,
		Interactions: s.Interactions,
		Since:        s.StartTime,
		Elapsed:      time.Since(s.StartTime).Round(time.Second).String(),
	}
}

func validName(name string) bool {
	if name == "" || len([]rune(name)) > maxNameLength {
		return false
	}
	hasLetter := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case r == ' ' || r == '-':
		default:
			return false
		}
	}
	return hasLetter
}

// titleCase uppercases the first letter of every word, where both spaces and
// hyphens separate words ("jean-pierre" becomes "Jean-Pierre").
func titleCase(name string) string {
	runes := []rune(strings.ToLower(strings.Join(strings.Fields(name), " ")))
	prevLetter := false
	for i, r := range runes {
		if unicode.IsLetter(r) && !prevLetter {
			runes[i] = unicode.ToUpper(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return string(runes)
}
