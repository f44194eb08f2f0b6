package agent

import "github.com/factybot/facty/pkg/safety"

// Canned user-facing messages for gateway failures, keyed by tier then error
// kind. The raw status or body never reaches the end user.
var errorMessages = map[safety.Tier]map[string]string{
	safety.TierChild: {
		"upstream": "😅 Oups ! J'ai un petit problème technique. Peux-tu réessayer dans quelques minutes ?",
		"timeout":  "⏰ Je réfléchis trop lentement ! Peux-tu me reposer ta question ?",
		"general":  "🤖 J'ai un petit bug ! Essaie de me poser ta question différemment.",
	},
	safety.TierTeen: {
		"upstream": "⚠️ Problème technique temporaire. Réessaie dans quelques instants.",
		"timeout":  "⏱️ La connexion est lente. Peux-tu reformuler ta question ?",
		"general":  "🔧 Erreur système. Essaie avec une formulation différente.",
	},
	safety.TierAdult: {
		"upstream": "Erreur API temporaire. Veuillez réessayer ultérieurement.",
		"timeout":  "Délai de connexion dépassé. Reformulez votre question.",
		"general":  "Erreur technique. Essayez une formulation alternative.",
	},
}

func cannedError(tier safety.Tier, errorKind string) string {
	messages, ok := errorMessages[tier]
	if !ok {
		messages = errorMessages[safety.TierAdult]
	}
	switch errorKind {
	case "timeout":
		return messages["timeout"]
	case "upstream":
		return messages["upstream"]
	default:
		return messages["general"]
	}
}
