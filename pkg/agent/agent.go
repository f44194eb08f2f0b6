// Package agent wires the session gate, the classifiers, the prompt builder
// and the model gateway into the per-message decision sequence shared by
// every front-end.
package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/factybot/facty/pkg/intent"
	"github.com/factybot/facty/pkg/logger"
	"github.com/factybot/facty/pkg/metrics"
	"github.com/factybot/facty/pkg/prompt"
	"github.com/factybot/facty/pkg/providers"
	"github.com/factybot/facty/pkg/safety"
	"github.com/factybot/facty/pkg/session"
)

// Fixed replies for the gating steps.
const (
	replyBypass       = "🚫 Je suis uniquement un assistant de vérification d'informations. Je ne peux pas faire de code ou répondre à d'autres types de demandes."
	replyNotFactCheck = "❗ Je suis FactCheck_Bot. Pose-moi une question pour savoir si une information est vraie ou fausse."
	replyAgeNudge     = "😄 J'ai déjà ton âge ! Pose-moi plutôt une question à vérifier."
)

const truncateAt = 100

// Agent orchestrates one conversation turn end to end.
type Agent struct {
	store     *session.Store
	safety    *safety.Classifier
	completer providers.Completer
}

// New builds an agent over an injected session store and model gateway.
func New(store *session.Store, completer providers.Completer) *Agent {
	return &Agent{
		store:     store,
		safety:    safety.NewClassifier(),
		completer: completer,
	}
}

// Store exposes the session store for front-end admin surfaces.
func (a *Agent) Store() *session.Store {
	return a.store
}

// HandleMessage routes one inbound message through the onboarding gate and,
// once the session is ready, through the full classification pipeline. It
// always returns user-facing text.
func (a *Agent) HandleMessage(ctx context.Context, channel, identity, text string) string {
	metrics.DefaultRecorder().RecordMessage(channel, "in")

	reply := a.dispatch(ctx, channel, identity, strings.TrimSpace(text))

	metrics.DefaultRecorder().RecordMessage(channel, "out")
	return reply
}

func (a *Agent) dispatch(ctx context.Context, channel, identity, text string) string {
	s, created := a.store.GetOrCreate(identity)
	if created {
		return session.PromptGreeting
	}

	switch s.State {
	case session.StateAwaitingName:
		reply, _ := s.SubmitName(text)
		return reply

	case session.StateAwaitingAge:
		reply, ok := s.SubmitAge(text)
		if ok {
			metrics.DefaultRecorder().RecordOnboardingCompleted(string(s.Tier))
			logger.Info("agent").
				Str("identity", identity).
				Int("age", s.Age).
				Str("tier", string(s.Tier)).
				Msg("onboarding complete")
		}
		return reply

	default:
		return a.handleReady(ctx, channel, s, text)
	}
}

func (a *Agent) handleReady(ctx context.Context, channel string, s *session.Session, text string) string {
	// Users sometimes re-send their age after onboarding.
	if age, err := strconv.Atoi(text); err == nil && age >= safety.MinAge && age <= safety.MaxAge {
		return replyAgeNudge
	}

	// Every answered question counts, including refusals and redirects.
	s.Interactions++

	verdict := intent.Classify(text)
	metrics.DefaultRecorder().RecordIntentVerdict(string(verdict))
	switch verdict {
	case intent.BypassAttempt:
		return replyBypass
	case intent.Unrecognized:
		return replyNotFactCheck
	}

	sv := a.safety.Classify(text, s.Tier)
	metrics.DefaultRecorder().RecordSafetyVerdict(string(sv.Severity), string(s.Tier), sv.Allowed)
	if !sv.Allowed {
		logger.Warn("agent").
			Str("identity", s.Identity).
			Str("tier", string(s.Tier)).
			Str("severity", string(sv.Severity)).
			Msg("unsafe content blocked")
		return sv.Refusal
	}
	if sv.Severity != safety.SeveritySafe {
		// Teen medium-risk path: proceeds but is flagged.
		logger.Info("agent").
			Str("identity", s.Identity).
			Str("tier", string(s.Tier)).
			Str("severity", string(sv.Severity)).
			Msg("flagged content allowed")
	}

	bundle := prompt.Build(s.Name, s.Tier, s.Age)
	reply, err := a.completer.Complete(ctx, providers.Request{
		System:      bundle.System,
		UserMessage: text,
		MaxTokens:   bundle.MaxTokens,
	})
	if err != nil {
		logger.Error("agent").
			Str("identity", s.Identity).
			Str("tier", string(s.Tier)).
			Str("error_kind", providers.ErrorKind(err)).
			Err(err).
			Msg("model call failed")
		reply = cannedError(s.Tier, providers.ErrorKind(err))
	}

	a.logInteraction(channel, s, text, reply)
	return reply
}

func (a *Agent) logInteraction(channel string, s *session.Session, message, response string) {
	logger.Info("agent").
		Str("channel", channel).
		Str("identity", s.Identity).
		Str("tier", string(s.Tier)).
		Str("message", truncate(message)).
		Int("message_length", len(message)).
		Int("response_length", len(response)).
		Int("interactions", s.Interactions).
		Msg("interaction")
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= truncateAt {
		return text
	}
	return string(runes[:truncateAt]) + "..."
}

// HandleDirect answers a single message for a caller that supplies name and
// age with every request instead of keeping a session. The message runs
// through the same ready-state pipeline; the transient session is discarded.
func (a *Agent) HandleDirect(ctx context.Context, channel, name string, age int, text string) (string, error) {
	tier, err := safety.ResolveTier(age)
	if err != nil {
		return "", err
	}
	s := &session.Session{
		Identity: channel + ":" + name,
		Name:     name,
		Age:      age,
		Tier:     tier,
		State:    session.StateReady,
	}
	return a.handleReady(ctx, channel, s, strings.TrimSpace(text)), nil
}

// French tier labels for user-facing text.
var tierLabels = map[safety.Tier]string{
	safety.TierChild: "enfant",
	safety.TierTeen:  "ado",
	safety.TierAdult: "adulte",
}

// StatsText renders a user's session statistics for chat channels.
func (a *Agent) StatsText(identity string) string {
	s, ok := a.store.Get(identity)
	if !ok || s.State != session.StateReady {
		return "📊 Aucune statistique disponible. Utilise /start d'abord !"
	}
	stats := s.Stats()
	return fmt.Sprintf(
		"📊 Statistiques de %s\n\n• Questions posées : %d\n• Depuis le : %s\n• Niveau : %s\n\nContinue à poser des questions ! 🎯",
		stats.Name, stats.Interactions, stats.Since.Format("02/01/2006 à 15:04"), tierLabels[stats.Tier],
	)
}

// Start resets any existing session and begins onboarding anew.
func (a *Agent) Start(identity string) string {
	a.store.Reset(identity)
	a.store.GetOrCreate(identity)
	return session.PromptGreeting
}

// Reset deletes the identity's session.
func (a *Agent) Reset(identity string) string {
	a.store.Reset(identity)
	return "🔄 Tes données ont été effacées. Utilise /start pour recommencer !"
}

// HelpText is the usage guide shown on the help command.
const HelpText = `🤖 FactCheck_Bot - Guide d'utilisation

Je t'aide à vérifier si une information est vraie ou fausse !

Commandes disponibles :
• /start - Commencer ou recommencer
• /help - Afficher cette aide
• /stats - Voir tes statistiques
• /reset - Réinitialiser tes données

Comment ça marche :
1. Dis-moi ton prénom et ton âge
2. Pose-moi ta question sur une info à vérifier
3. Je t'explique si c'est vrai, faux ou incertain

Exemples de questions :
• "Est-ce que les chats ont 9 vies ?"
• "Les humains utilisent seulement 10% de leur cerveau ?"
• "Boire 8 verres d'eau par jour est obligatoire ?"

Prêt à débusquer les fake news ? 🕵️`
