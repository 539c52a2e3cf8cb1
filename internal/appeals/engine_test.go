package appeals

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// --- fakes -----------------------------------------------------------------

type fakeStore struct {
	mu sync.Mutex

	warn       *models.Warn
	getErr     error
	appealRes  StoreResult
	processRes StoreResult

	appealCalls  int
	processCalls int
}

func (f *fakeStore) GetWarning(guildID, userID, warnID string) (*models.Warn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.warn, f.getErr
}

func (f *fakeStore) AppealWarning(guildID, userID, warnID, reason, evidence string) StoreResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appealCalls++
	return f.appealRes
}

func (f *fakeStore) ProcessWarningAppeal(guildID, userID, warnID, note, moderatorID string, approve bool) StoreResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processCalls++
	return f.processRes
}

type fakePlatform struct {
	mu sync.Mutex

	snapshot    GuildSnapshot
	snapshotErr error
	modPerm     bool
	timedOut    bool

	removedTimeout bool
	sentChannels   []string
	sentComponents [][]discordgo.MessageComponent
	edits          int
	dms            int

	sentCh chan struct{} // signaled on each SendEmbed, buffered by tests
}

func (f *fakePlatform) GuildSnapshot(guildID string) (GuildSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot, f.snapshotErr
}

func (f *fakePlatform) MemberTimedOut(guildID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timedOut, nil
}

func (f *fakePlatform) RemoveTimeout(guildID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removedTimeout = true
	return nil
}

func (f *fakePlatform) HasModPermission(guildID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.modPerm, nil
}

func (f *fakePlatform) SendEmbed(channelID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error) {
	f.mu.Lock()
	f.sentChannels = append(f.sentChannels, channelID)
	f.sentComponents = append(f.sentComponents, components)
	ch := f.sentCh
	f.mu.Unlock()
	if ch != nil {
		ch <- struct{}{}
	}
	return "m1", nil
}

func (f *fakePlatform) EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits++
	return nil
}

func (f *fakePlatform) SendDM(userID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dms++
	return nil
}

type fakeResolver struct {
	channelID string
	ok        bool
	calledCh  chan struct{}
}

func (f *fakeResolver) ModLogChannel(guildID string) (string, bool) {
	if f.calledCh != nil {
		f.calledCh <- struct{}{}
	}
	return f.channelID, f.ok
}

type fakeAudit struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeAudit) LogAction(guildID, action, detail, moderatorID, subjectID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
}

type fakeSink struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeSink) Publish(event string, payload map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeSink) has(event string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e == event {
			return true
		}
	}
	return false
}

type fakeResponder struct {
	replies []string
	embeds  []*discordgo.MessageEmbed
	modals  []*discordgo.InteractionResponseData
}

func (f *fakeResponder) ReplyEphemeral(content string) error {
	f.replies = append(f.replies, content)
	return nil
}

func (f *fakeResponder) ReplyEphemeralEmbed(embed *discordgo.MessageEmbed) error {
	f.embeds = append(f.embeds, embed)
	return nil
}

func (f *fakeResponder) ShowModal(data *discordgo.InteractionResponseData) error {
	f.modals = append(f.modals, data)
	return nil
}

func (f *fakeResponder) lastReply() string {
	if len(f.replies) == 0 {
		return ""
	}
	return f.replies[len(f.replies)-1]
}

type memFeedbackRepo struct {
	log *models.FeedbackLog
}

func (r *memFeedbackRepo) Load() (*models.FeedbackLog, error) { return r.log, nil }
func (r *memFeedbackRepo) Save(l *models.FeedbackLog) error   { r.log = l; return nil }

// --- helpers ---------------------------------------------------------------

var metaSeq int

func liveMeta() InteractionMeta {
	metaSeq++
	return InteractionMeta{
		ID:        fmt.Sprintf("interaction-%d", metaSeq),
		ActorID:   "victim",
		GuildID:   "g1",
		CreatedAt: time.Now(),
		Repliable: true,
	}
}

func testEngine(store *fakeStore, platform *fakePlatform, resolver *fakeResolver, sink *fakeSink) *Engine {
	return NewEngine(Deps{
		Store:    store,
		Platform: platform,
		Resolver: resolver,
		Audit:    &fakeAudit{},
		Events:   sink,
		Feedback: NewFeedbackStore(&memFeedbackRepo{}),
	})
}

const validReason = "Esta advertencia fue un malentendido y puedo explicarlo."

// --- appeal button ---------------------------------------------------------

func TestAppealButtonRejectsOtherUser(t *testing.T) {
	e := testEngine(&fakeStore{}, &fakePlatform{}, &fakeResolver{}, &fakeSink{})
	r := &fakeResponder{}

	meta := liveMeta()
	meta.ActorID = "intruder"
	intent := Intent{Kind: IntentAppealButton, Target: TargetWarn, GuildID: "g1", TargetID: "w1", UserID: "victim"}

	e.HandleAppealButton(meta, intent, r)

	if len(r.modals) != 0 {
		t.Error("modal opened for a user who does not own the sanction")
	}
	if !strings.Contains(r.lastReply(), "tus propias") {
		t.Errorf("reply = %q, want ownership rejection", r.lastReply())
	}
}

func TestAppealButtonMissingWarn(t *testing.T) {
	e := testEngine(&fakeStore{warn: nil}, &fakePlatform{}, &fakeResolver{}, &fakeSink{})
	r := &fakeResponder{}

	intent := Intent{Kind: IntentAppealButton, Target: TargetWarn, GuildID: "g1", TargetID: "w1", UserID: "victim"}
	e.HandleAppealButton(liveMeta(), intent, r)

	if len(r.modals) != 0 {
		t.Error("modal opened for a missing warning")
	}
	if !strings.Contains(r.lastReply(), "ya no existe") {
		t.Errorf("reply = %q, want missing-warning notice", r.lastReply())
	}
}

func TestAppealButtonAlreadyAppealed(t *testing.T) {
	store := &fakeStore{warn: &models.Warn{ID: "w1", AppealStatus: models.AppealPending}}
	e := testEngine(store, &fakePlatform{}, &fakeResolver{}, &fakeSink{})
	r := &fakeResponder{}

	intent := Intent{Kind: IntentAppealButton, Target: TargetWarn, GuildID: "g1", TargetID: "w1", UserID: "victim"}
	e.HandleAppealButton(liveMeta(), intent, r)

	if len(r.modals) != 0 {
		t.Error("modal opened for an already-appealed warning")
	}
	if !strings.Contains(r.lastReply(), "ya tiene una apelación") {
		t.Errorf("reply = %q, want duplicate-appeal notice", r.lastReply())
	}
}

func TestAppealButtonOpensModal(t *testing.T) {
	store := &fakeStore{warn: &models.Warn{ID: "w1"}}
	platform := &fakePlatform{snapshot: GuildSnapshot{ID: "g1", Name: "Servidor", MemberCount: 42}}
	sink := &fakeSink{}
	e := testEngine(store, platform, &fakeResolver{}, sink)
	r := &fakeResponder{}

	intent := Intent{Kind: IntentAppealButton, Target: TargetWarn, GuildID: "g1", TargetID: "w1", UserID: "victim"}
	e.HandleAppealButton(liveMeta(), intent, r)

	if len(r.modals) != 1 {
		t.Fatalf("modals shown = %d, want 1", len(r.modals))
	}

	// The modal custom ID must embed a freshly generated appeal id
	parsed, err := ParseCustomID(r.modals[0].CustomID)
	if err != nil {
		t.Fatalf("modal custom ID unparseable: %v", err)
	}
	if parsed.Kind != IntentAppealModal || parsed.AppealID == "" {
		t.Errorf("modal intent = %+v, want appeal modal with appeal id", parsed)
	}

	// The guild snapshot is cached for the modal-submit step
	rec, ok := e.Cache.Get(parsed.AppealID)
	if !ok {
		t.Fatal("appeal record not cached")
	}
	if rec.Guild.Name != "Servidor" || rec.Guild.MemberCount != 42 {
		t.Errorf("cached snapshot = %+v", rec.Guild)
	}

	if !sink.has("appeal_opened") {
		t.Error("appeal_opened event not published")
	}
}

func TestAppealButtonDropsStaleInteraction(t *testing.T) {
	e := testEngine(&fakeStore{}, &fakePlatform{}, &fakeResolver{}, &fakeSink{})
	r := &fakeResponder{}

	meta := liveMeta()
	meta.CreatedAt = time.Now().Add(-time.Minute)
	intent := Intent{Kind: IntentAppealButton, Target: TargetWarn, GuildID: "g1", TargetID: "w1", UserID: "victim"}

	e.HandleAppealButton(meta, intent, r)

	if len(r.replies) != 0 || len(r.modals) != 0 {
		t.Error("stale interaction produced a response instead of a silent drop")
	}
	if e.Metrics().Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", e.Metrics().Dropped)
	}
}

// --- appeal modal ----------------------------------------------------------

func TestAppealModalStoreFailureNoFanout(t *testing.T) {
	store := &fakeStore{appealRes: StoreResult{Message: "Ya existe una apelación para esta advertencia."}}
	platform := &fakePlatform{}
	resolver := &fakeResolver{channelID: "modlog", ok: true}
	e := testEngine(store, platform, resolver, &fakeSink{})
	r := &fakeResponder{}

	intent := Intent{Kind: IntentAppealModal, Target: TargetWarn, GuildID: "g1", TargetID: "w1", UserID: "victim", AppealID: "a1"}
	e.HandleAppealModal(liveMeta(), intent, validReason, "", r)

	if !strings.Contains(r.lastReply(), "Ya existe una apelación") {
		t.Errorf("reply = %q, want store message verbatim", r.lastReply())
	}
	if got := e.Metrics().Submitted; got != 0 {
		t.Errorf("Submitted = %d after store failure, want 0", got)
	}

	platform.mu.Lock()
	sent := len(platform.sentChannels)
	platform.mu.Unlock()
	if sent != 0 {
		t.Error("fan-out sent despite store failure")
	}
}

func TestAppealModalSuccessFansOut(t *testing.T) {
	store := &fakeStore{appealRes: StoreResult{Success: true, Warning: &models.Warn{ID: "w1"}}}
	sentCh := make(chan struct{}, 1)
	platform := &fakePlatform{snapshot: GuildSnapshot{Name: "Servidor"}, sentCh: sentCh}
	resolver := &fakeResolver{channelID: "modlog", ok: true}
	sink := &fakeSink{}
	e := testEngine(store, platform, resolver, sink)
	r := &fakeResponder{}

	intent := Intent{Kind: IntentAppealModal, Target: TargetWarn, GuildID: "g1", TargetID: "w1", UserID: "victim", AppealID: "a1"}
	e.HandleAppealModal(liveMeta(), intent, validReason, "captura.png", r)

	if len(r.embeds) != 1 {
		t.Fatalf("confirmation embeds = %d, want 1", len(r.embeds))
	}
	if got := e.Metrics().Submitted; got != 1 {
		t.Errorf("Submitted = %d, want 1", got)
	}
	if !sink.has("appeal_submitted") {
		t.Error("appeal_submitted event not published")
	}

	select {
	case <-sentCh:
	case <-time.After(2 * time.Second):
		t.Fatal("fan-out message never sent")
	}

	platform.mu.Lock()
	defer platform.mu.Unlock()
	if platform.sentChannels[0] != "modlog" {
		t.Errorf("fan-out channel = %q, want modlog", platform.sentChannels[0])
	}
	if len(platform.sentComponents[0]) == 0 {
		t.Error("fan-out message has no decision buttons")
	}
}

func TestAppealModalNoModlogChannel(t *testing.T) {
	store := &fakeStore{appealRes: StoreResult{Success: true, Warning: &models.Warn{ID: "w1"}}}
	platform := &fakePlatform{}
	resolverCh := make(chan struct{}, 1)
	resolver := &fakeResolver{ok: false, calledCh: resolverCh}
	e := testEngine(store, platform, resolver, &fakeSink{})
	r := &fakeResponder{}

	intent := Intent{Kind: IntentAppealModal, Target: TargetWarn, GuildID: "g1", TargetID: "w1", UserID: "victim", AppealID: "a1"}
	e.HandleAppealModal(liveMeta(), intent, validReason, "", r)

	select {
	case <-resolverCh:
	case <-time.After(2 * time.Second):
		t.Fatal("fan-out never consulted the modlog resolver")
	}

	// The appeal is still registered even though no moderator will see it
	if got := e.Metrics().Submitted; got != 1 {
		t.Errorf("Submitted = %d, want 1", got)
	}
	platform.mu.Lock()
	defer platform.mu.Unlock()
	if len(platform.sentChannels) != 0 {
		t.Error("fan-out sent without a configured modlog channel")
	}
}

func TestAppealModalRevalidatesReason(t *testing.T) {
	store := &fakeStore{}
	e := testEngine(store, &fakePlatform{}, &fakeResolver{}, &fakeSink{})
	r := &fakeResponder{}

	intent := Intent{Kind: IntentAppealModal, Target: TargetWarn, GuildID: "g1", TargetID: "w1", UserID: "victim", AppealID: "a1"}
	e.HandleAppealModal(liveMeta(), intent, "corta", "", r)

	if !strings.Contains(r.lastReply(), "al menos") {
		t.Errorf("reply = %q, want min-length rejection", r.lastReply())
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.appealCalls != 0 {
		t.Error("store called despite invalid reason")
	}
}

func TestValidateReasonBounds(t *testing.T) {
	long := strings.Repeat("a", WarnReasonMax+1)
	longEvidence := strings.Repeat("b", EvidenceMax+1)

	if msg := validateReason(TargetWarn, validReason, ""); msg != "" {
		t.Errorf("valid reason rejected: %s", msg)
	}
	if msg := validateReason(TargetWarn, "corta", ""); msg == "" {
		t.Error("short warn reason accepted")
	}
	if msg := validateReason(TargetWarn, long, ""); msg == "" {
		t.Error("overlong warn reason accepted")
	}
	if msg := validateReason(TargetWarn, validReason, longEvidence); msg == "" {
		t.Error("overlong evidence accepted")
	}
	// Timeout appeals use a looser minimum
	if msg := validateReason(TargetTimeout, "razón corta", ""); msg != "" {
		t.Errorf("valid timeout reason rejected: %s", msg)
	}
}

// --- decision --------------------------------------------------------------

func decisionIntent(approve bool) Intent {
	return Intent{
		Kind:     IntentDecisionButton,
		Approve:  approve,
		Target:   TargetWarn,
		GuildID:  "g1",
		TargetID: "w1",
		UserID:   "victim",
		AppealID: "a1",
	}
}

func TestDecisionRequiresModPermission(t *testing.T) {
	store := &fakeStore{}
	e := testEngine(store, &fakePlatform{modPerm: false}, &fakeResolver{}, &fakeSink{})
	r := &fakeResponder{}

	meta := liveMeta()
	meta.ActorID = "randomuser"
	e.HandleDecision(meta, decisionIntent(true), r)

	if !strings.Contains(r.lastReply(), "Moderar Miembros") {
		t.Errorf("reply = %q, want permission rejection", r.lastReply())
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.processCalls != 0 {
		t.Error("store called without moderator permission")
	}
}

func TestDecisionMarkerGuard(t *testing.T) {
	store := &fakeStore{}
	e := testEngine(store, &fakePlatform{modPerm: true}, &fakeResolver{}, &fakeSink{})
	r := &fakeResponder{}

	meta := liveMeta()
	meta.ActorID = "mod"
	meta.MessageTitle = "Apelación APROBADA ✅"
	e.HandleDecision(meta, decisionIntent(false), r)

	if !strings.Contains(r.lastReply(), "ya fue procesada") {
		t.Errorf("reply = %q, want already-processed notice", r.lastReply())
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.processCalls != 0 {
		t.Error("store called for an already-finalized message")
	}
}

func TestDecisionApproveLiftsTimeout(t *testing.T) {
	store := &fakeStore{processRes: StoreResult{Success: true, Warning: &models.Warn{ID: "w1", AppealStatus: models.AppealApproved}}}
	platform := &fakePlatform{modPerm: true, timedOut: true, snapshot: GuildSnapshot{Name: "Servidor"}}
	sink := &fakeSink{}
	e := testEngine(store, platform, &fakeResolver{}, sink)
	r := &fakeResponder{}

	e.Cache.Put(&AppealRecord{AppealID: "a1", Guild: GuildSnapshot{Name: "Servidor"}})

	meta := liveMeta()
	meta.ActorID = "mod"
	meta.ChannelID = "modlog"
	meta.MessageID = "m1"
	e.HandleDecision(meta, decisionIntent(true), r)

	platform.mu.Lock()
	if !platform.removedTimeout {
		t.Error("active timeout not lifted on approval")
	}
	if platform.edits != 1 {
		t.Errorf("fan-out message edits = %d, want 1", platform.edits)
	}
	if platform.dms != 1 {
		t.Errorf("decision DMs = %d, want 1", platform.dms)
	}
	platform.mu.Unlock()

	if got := e.Metrics().Approved; got != 1 {
		t.Errorf("Approved = %d, want 1", got)
	}
	if !sink.has("appeal_approved") {
		t.Error("appeal_approved event not published")
	}
	if _, ok := e.Cache.Get("a1"); ok {
		t.Error("appeal record not consumed after decision")
	}
	if !strings.Contains(r.lastReply(), "aprobada") {
		t.Errorf("reply = %q, want approval confirmation", r.lastReply())
	}
}

func TestDecisionDenyKeepsPunishment(t *testing.T) {
	store := &fakeStore{processRes: StoreResult{Success: true, Warning: &models.Warn{ID: "w1", AppealStatus: models.AppealDenied}}}
	platform := &fakePlatform{modPerm: true, timedOut: true}
	sink := &fakeSink{}
	e := testEngine(store, platform, &fakeResolver{}, sink)
	r := &fakeResponder{}

	meta := liveMeta()
	meta.ActorID = "mod"
	e.HandleDecision(meta, decisionIntent(false), r)

	platform.mu.Lock()
	if platform.removedTimeout {
		t.Error("timeout lifted on denial")
	}
	platform.mu.Unlock()

	if got := e.Metrics().Denied; got != 1 {
		t.Errorf("Denied = %d, want 1", got)
	}
	if !sink.has("appeal_denied") {
		t.Error("appeal_denied event not published")
	}
}

func TestDecisionLosesRace(t *testing.T) {
	// The store reports the appeal was already decided by another moderator
	store := &fakeStore{processRes: StoreResult{
		Message: "Esta apelación ya fue procesada.",
		Warning: &models.Warn{ID: "w1", AppealStatus: models.AppealApproved},
	}}
	platform := &fakePlatform{modPerm: true, timedOut: true}
	e := testEngine(store, platform, &fakeResolver{}, &fakeSink{})
	r := &fakeResponder{}

	meta := liveMeta()
	meta.ActorID = "slowmod"
	e.HandleDecision(meta, decisionIntent(true), r)

	if !strings.Contains(r.lastReply(), "ya fue procesada") {
		t.Errorf("reply = %q, want race-loss notice", r.lastReply())
	}
	platform.mu.Lock()
	defer platform.mu.Unlock()
	if platform.removedTimeout {
		t.Error("losing decision still lifted the timeout")
	}
	if got := e.Metrics().Approved; got != 0 {
		t.Errorf("Approved = %d after losing the race, want 0", got)
	}
}

func TestDecisionTimeoutAppealSkipsStore(t *testing.T) {
	// Timeout appeals have no warning record; the decision applies directly
	store := &fakeStore{}
	platform := &fakePlatform{modPerm: true, timedOut: true}
	e := testEngine(store, platform, &fakeResolver{}, &fakeSink{})
	r := &fakeResponder{}

	meta := liveMeta()
	meta.ActorID = "mod"
	intent := decisionIntent(true)
	intent.Target = TargetTimeout
	e.HandleDecision(meta, intent, r)

	store.mu.Lock()
	if store.processCalls != 0 {
		t.Error("warning store consulted for a timeout appeal")
	}
	store.mu.Unlock()

	platform.mu.Lock()
	defer platform.mu.Unlock()
	if !platform.removedTimeout {
		t.Error("approved timeout appeal did not lift the timeout")
	}
}
