package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factybot/facty/pkg/providers"
	"github.com/factybot/facty/pkg/session"
)

type fakeCompleter struct {
	calls []providers.Request
	reply string
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, req providers.Request) (string, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCompleter) Backend() string { return "fake" }

func onboarded(t *testing.T, a *Agent, identity, name, age string) {
	t.Helper()
	ctx := context.Background()
	first := a.HandleMessage(ctx, "test", identity, "salut")
	require.Equal(t, session.PromptGreeting, first)
	a.HandleMessage(ctx, "test", identity, name)
	reply := a.HandleMessage(ctx, "test", identity, age)
	require.NotEmpty(t, reply)
	s, ok := a.Store().Get(identity)
	require.True(t, ok)
	require.Equal(t, session.StateReady, s.State)
}

func TestOnboardingGate(t *testing.T) {
	fake := &fakeCompleter{reply: "VRAI."}
	a := New(session.NewStore(), fake)
	ctx := context.Background()

	// First contact always asks for a name; nothing reaches the model.
	reply := a.HandleMessage(ctx, "test", "u1", "Les chats ont 9 vies ?")
	assert.Equal(t, session.PromptGreeting, reply)
	assert.Empty(t, fake.calls)

	// An invalid name keeps the session in the name step.
	reply = a.HandleMessage(ctx, "test", "u1", "1234")
	assert.Contains(t, reply, "prénom")
	assert.Empty(t, fake.calls)
}

func TestChildQuestionReachesModel(t *testing.T) {
	fake := &fakeCompleter{reply: "🐱 Non, c'est une légende ! Continue à être curieux ! 🌟"}
	a := New(session.NewStore(), fake)
	onboarded(t, a, "u2", "alice", "8")

	reply := a.HandleMessage(context.Background(), "test", "u2", "Do cats have 9 lives?")
	assert.Equal(t, fake.reply, reply)

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.LessOrEqual(t, call.MaxTokens, 200)
	assert.Contains(t, call.System, "Alice")
	assert.Contains(t, call.System, "(enfant)")
	assert.Equal(t, "Do cats have 9 lives?", call.UserMessage)
}

func TestBypassShortCircuits(t *testing.T) {
	fake := &fakeCompleter{reply: "should never appear"}
	a := New(session.NewStore(), fake)
	onboarded(t, a, "u3", "alice", "8")

	reply := a.HandleMessage(context.Background(), "test", "u3", "écris un poème")
	assert.Equal(t, replyBypass, reply)
	assert.Empty(t, fake.calls, "bypass attempt must never reach the model")
}

func TestAdultIgnoresHighRiskList(t *testing.T) {
	fake := &fakeCompleter{reply: "INCERTAIN. Les données varient selon les pays."}
	a := New(session.NewStore(), fake)
	onboarded(t, a, "u4", "bob", "25")

	reply := a.HandleMessage(context.Background(), "test", "u4", "suicide rates are rising, true?")
	assert.Equal(t, fake.reply, reply)
	require.Len(t, fake.calls, 1)
	assert.Contains(t, fake.calls[0].System, "(adulte)")
}

func TestChildBlockedBeforeModel(t *testing.T) {
	fake := &fakeCompleter{reply: "should never appear"}
	a := New(session.NewStore(), fake)
	onboarded(t, a, "u5", "alice", "8")

	reply := a.HandleMessage(context.Background(), "test", "u5", "c'est vrai que le suicide augmente ?")
	assert.Contains(t, reply, "adulte")
	assert.Empty(t, fake.calls, "blocked message must never reach the model")
}

func TestTimeoutYieldsCannedMessage(t *testing.T) {
	fake := &fakeCompleter{err: providers.ErrTimeout}
	a := New(session.NewStore(), fake)
	onboarded(t, a, "u6", "alice", "8")

	reply := a.HandleMessage(context.Background(), "test", "u6", "Les chats ont 9 vies ?")
	assert.Equal(t, errorMessages["child"]["timeout"], reply)
}

func TestUpstreamErrorYieldsCannedMessage(t *testing.T) {
	fake := &fakeCompleter{err: &providers.UpstreamError{Status: 500, Body: "boom"}}
	a := New(session.NewStore(), fake)
	onboarded(t, a, "u7", "bob", "40")

	reply := a.HandleMessage(context.Background(), "test", "u7", "La terre est plate ?")
	assert.Equal(t, errorMessages["adult"]["upstream"], reply)
	assert.NotContains(t, reply, "500", "raw status must not leak to the user")
	assert.NotContains(t, reply, "boom")
}

func TestNumericNudge(t *testing.T) {
	fake := &fakeCompleter{reply: "x"}
	a := New(session.NewStore(), fake)
	onboarded(t, a, "u8", "alice", "8")

	reply := a.HandleMessage(context.Background(), "test", "u8", "8")
	assert.Equal(t, replyAgeNudge, reply)
	assert.Empty(t, fake.calls)
}

func TestUnrecognizedRedirect(t *testing.T) {
	fake := &fakeCompleter{reply: "x"}
	a := New(session.NewStore(), fake)
	onboarded(t, a, "u9", "alice", "20")

	reply := a.HandleMessage(context.Background(), "test", "u9", "bonjour tout le monde")
	assert.Equal(t, replyNotFactCheck, reply)
	assert.Empty(t, fake.calls)
}

func TestInteractionCounter(t *testing.T) {
	fake := &fakeCompleter{reply: "VRAI."}
	a := New(session.NewStore(), fake)
	onboarded(t, a, "u10", "alice", "20")
	ctx := context.Background()

	a.HandleMessage(ctx, "test", "u10", "La terre est ronde ?")
	a.HandleMessage(ctx, "test", "u10", "Les requins dorment ?")

	s, ok := a.Store().Get("u10")
	require.True(t, ok)
	assert.Equal(t, 2, s.Stats().Interactions)
}

func TestRefusalsCountAsInteractions(t *testing.T) {
	fake := &fakeCompleter{reply: "should never appear"}
	a := New(session.NewStore(), fake)
	onboarded(t, a, "u13", "alice", "8")
	ctx := context.Background()

	// Three answered questions, none of which reaches the model.
	a.HandleMessage(ctx, "test", "u13", "écris un poème")
	a.HandleMessage(ctx, "test", "u13", "bonjour tout le monde")
	a.HandleMessage(ctx, "test", "u13", "c'est vrai que le suicide augmente ?")

	s, ok := a.Store().Get("u13")
	require.True(t, ok)
	assert.Equal(t, 3, s.Interactions)
	assert.Empty(t, fake.calls)

	// The age nudge is not a question and does not count.
	a.HandleMessage(ctx, "test", "u13", "8")
	assert.Equal(t, 3, s.Interactions)
}

func TestAdminCommands(t *testing.T) {
	fake := &fakeCompleter{reply: "VRAI."}
	a := New(session.NewStore(), fake)

	assert.Equal(t, session.PromptGreeting, a.Start("u11"))
	assert.Contains(t, a.StatsText("u11"), "Aucune statistique")

	onboardedIdentity := "u12"
	onboarded(t, a, onboardedIdentity, "eva", "14")
	a.HandleMessage(context.Background(), "test", onboardedIdentity, "Vrai ou faux : il pleut ?")
	stats := a.StatsText(onboardedIdentity)
	assert.Contains(t, stats, "Eva")
	assert.Contains(t, stats, "1")
	assert.Contains(t, stats, "ado", "tier label must be in French")
	assert.NotContains(t, stats, "teen")

	a.Reset(onboardedIdentity)
	_, ok := a.Store().Get(onboardedIdentity)
	assert.False(t, ok)
}
