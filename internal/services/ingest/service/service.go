// Package service implements the event classification pipeline
//
// One attempt runs registry exact then registry fuzzy then the LLM
// classifier, corrects food mislabels, decides whether catalog verification
// is needed and either persists the event directly or parks it awaiting the
// user's confirmation. The registry must always get the chance to
// short-circuit the classifier, that ordering is a correctness requirement
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"vitalog/internal/adapters/classifier"
	"vitalog/internal/core/reclassify"
	"vitalog/internal/core/schema"
	"vitalog/internal/modkit"
	"vitalog/internal/modkit/repokit"
	perr "vitalog/internal/platform/errors"
	"vitalog/internal/platform/logger"
	"vitalog/internal/platform/store"

	catdom "vitalog/internal/services/catalog/domain"
	dom "vitalog/internal/services/ingest/domain"
	irepo "vitalog/internal/services/ingest/repo"
	regdom "vitalog/internal/services/registry/domain"
)

// FrequentContextSize is how many of the user's most logged products are
// handed to the classifier as matching context
const FrequentContextSize = 15

// Service implements the ingest ports
type Service interface {
	dom.ProcessPort
	dom.ConfirmPort
	dom.ItemsPort
}

// Svc orchestrates one processing attempt end to end
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[irepo.Repo]
	repo   irepo.Repo

	lookup   regdom.LookupPort
	upsert   regdom.UpsertPort
	frequent regdom.FrequentPort

	search   catdom.SearchPort
	classify classifier.Classifier

	ch  store.Clickhouse
	log *logger.Logger
}

// Collaborators holds the cross-module ports the pipeline depends on
type Collaborators struct {
	Lookup   regdom.LookupPort
	Upsert   regdom.UpsertPort
	Frequent regdom.FrequentPort
	Search   catdom.SearchPort
	Classify classifier.Classifier
}

// New constructs the service
func New(deps modkit.Deps, c Collaborators) *Svc {
	b := irepo.NewPG()
	return &Svc{
		db:       deps.PG,
		binder:   b,
		repo:     b.Bind(deps.PG),
		lookup:   c.Lookup,
		upsert:   c.Upsert,
		frequent: c.Frequent,
		search:   c.Search,
		classify: c.Classify,
		ch:       deps.CH,
		log:      logger.Named("ingest"),
	}
}

// ProcessInput runs the full pipeline for one piece of free text
func (s *Svc) ProcessInput(ctx context.Context, args dom.ProcessArgs) (dom.ProcessingResult, error) {
	if strings.TrimSpace(args.Text) == "" {
		return failed("input text is required"), perr.InvalidArgf("input text is required")
	}
	if args.UserID == uuid.Nil {
		return failed("user id is required"), perr.InvalidArgf("user id is required")
	}

	auditID, err := s.repo.CreateAudit(ctx, args.UserID, args.Text)
	if err != nil {
		return failed(err.Error()), err
	}

	// registry exact strictly before fuzzy strictly before the classifier
	if m := s.lookup.CheckExact(ctx, args.UserID, args.Text); m != nil {
		return s.persistRegistryHit(ctx, args, auditID, m, dom.SourceRegistryBypass)
	}
	if m := s.lookup.FuzzyMatch(ctx, args.UserID, args.Text); m != nil {
		return s.persistRegistryHit(ctx, args, auditID, m, dom.SourceRegistryFuzzyBypass)
	}

	cls, err := s.classifyWithContext(ctx, args)
	if err != nil {
		s.markAuditError(ctx, args.UserID, auditID, err)
		return failed(err.Error()), err
	}

	eventType := schema.EventType(cls.EventType)
	eventData := cls.EventData
	confidence := cls.Confidence
	meta := map[string]any{"confidence": confidence}

	// correct food mislabels before any search decision
	if eventType == schema.EventFood {
		if out := reclassify.Apply(searchQuery(eventData, args.Text)); out.Reclassified {
			eventType = schema.EventSupplement
			eventData = map[string]any{"name": out.Name, "dosage": out.Dosage, "units": out.Units}
			meta["reclassified"] = out.Rule
			if out.Rule == "score" {
				meta["reclassify_score"] = out.Score
			}
		}
	}

	var options []catdom.Result
	query := searchQuery(eventData, args.Text)
	searched := shouldSearch(eventType, eventData, confidence, args.Text, query)
	meta["searched"] = searched
	if searched {
		options = s.search.SearchAll(ctx, query)
		if len(options) > 0 {
			if over, ok := categoryOverride(eventType, options[0]); ok {
				meta["category_override"] = map[string]any{
					"from": string(eventType), "to": string(over),
					"source": options[0].Source, "confidence": options[0].Confidence,
				}
				eventType, eventData = over, overrideData(over, options[0], eventData)
			}
		}
	}

	complete := schema.Complete(eventType, eventData)
	needsConfirm := !complete || (len(options) > 0 && productEvent(eventType))

	if complete && !needsConfirm {
		ev, err := s.persistEvent(ctx, args, auditID, eventType, eventData, cls.EventTime, "", meta)
		if err != nil {
			return failed(err.Error()), err
		}
		return dom.ProcessingResult{
			Success:    true,
			Complete:   true,
			Event:      &ev,
			AuditID:    auditID,
			Confidence: confidence,
		}, nil
	}

	rec := dom.AuditRecord{
		ID:        auditID,
		UserID:    args.UserID,
		EventType: eventType,
		Metadata:  meta,
		Status:    dom.AuditAwaiting,
	}
	if err := s.repo.UpdateAudit(ctx, rec); err != nil {
		return failed(err.Error()), err
	}
	s.recordDecision(ctx, args.UserID, auditID, eventType, "", confidence, searched, len(options), false)

	return dom.ProcessingResult{
		Success:        true,
		Complete:       false,
		AuditID:        auditID,
		MissingFields:  schema.Missing(eventType, eventData),
		ProductOptions: options,
		Confidence:     confidence,
		Parsed:         &dom.Parsed{EventType: eventType, EventData: eventData, EventTime: cls.EventTime},
	}, nil
}

// persistRegistryHit persists an event straight from a registry match
func (s *Svc) persistRegistryHit(
	ctx context.Context,
	args dom.ProcessArgs,
	auditID uuid.UUID,
	m *regdom.Match,
	sourceTag string,
) (dom.ProcessingResult, error) {
	eventType := m.Entry.EventType
	var eventData map[string]any
	if eventType == schema.EventFood {
		eventData = map[string]any{"description": m.Entry.ProductName}
	} else {
		eventData = map[string]any{"name": m.Entry.ProductName, "dosage": "1 serving", "units": "serving"}
	}

	meta := map[string]any{
		"confidence":   RegistryConfidence,
		"registry_key": m.Entry.ProductKey,
		"match_source": m.Source,
	}
	ev, err := s.persistEvent(ctx, args, auditID, eventType, eventData, time.Time{}, sourceTag, meta)
	if err != nil {
		return failed(err.Error()), err
	}
	return dom.ProcessingResult{
		Success:    true,
		Complete:   true,
		Event:      &ev,
		AuditID:    auditID,
		Confidence: RegistryConfidence,
		Source:     "user_registry",
	}, nil
}

// classifyWithContext gathers the frequent-items context block and invokes
// the classifier. A context-gathering failure is not fatal, the classifier
// just runs without history
func (s *Svc) classifyWithContext(ctx context.Context, args dom.ProcessArgs) (classifier.Result, error) {
	var history []string
	items, err := s.frequent.FrequentItems(ctx, args.UserID, FrequentContextSize)
	if err != nil {
		s.log.Warn().Err(err).Msg("frequent items unavailable, classifying without history")
	} else {
		for _, it := range items {
			line := it.ProductName + " (" + string(it.EventType) + ")"
			if it.Brand != "" {
				line = it.ProductName + " by " + it.Brand + " (" + string(it.EventType) + ")"
			}
			history = append(history, line)
		}
	}

	cls, err := s.classify.Classify(ctx, args.Text, history)
	if err != nil {
		return classifier.Result{}, err
	}
	if !schema.Known(schema.EventType(cls.EventType)) {
		return classifier.Result{}, perr.Validationf("classifier returned unknown event type %q", cls.EventType)
	}
	return cls, nil
}

// persistEvent writes the voice event and finalizes the audit row in one
// transaction, then fires the best-effort side effects. A failure of either
// write rolls back both and is fatal
func (s *Svc) persistEvent(
	ctx context.Context,
	args dom.ProcessArgs,
	auditID uuid.UUID,
	eventType schema.EventType,
	eventData map[string]any,
	eventTime time.Time,
	sourceTag string,
	meta map[string]any,
) (dom.VoiceEvent, error) {
	// registry bypasses and classifier replies without a time land here
	// with the zero value, the event still needs a placeable timestamp
	if eventTime.IsZero() {
		eventTime = time.Now().UTC()
	}
	ev := dom.VoiceEvent{
		UserID:         args.UserID,
		EventType:      eventType,
		EventData:      eventData,
		EventTime:      eventTime,
		SourceRecordID: auditID,
		CaptureMethod:  args.CaptureMethod,
	}
	rec := dom.AuditRecord{
		ID:        auditID,
		UserID:    args.UserID,
		EventType: eventType,
		Source:    sourceTag,
		Metadata:  meta,
		Status:    dom.AuditParsed,
	}
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		id, err := r.InsertEvent(ctx, ev)
		if err != nil {
			return err
		}
		ev.ID = id
		return r.UpdateAudit(ctx, rec)
	})
	if err != nil {
		return dom.VoiceEvent{}, err
	}

	s.bumpRegistry(ctx, args.UserID, eventType, eventData, nil)

	confidence, _ := meta["confidence"].(int)
	searched, _ := meta["searched"].(bool)
	s.recordDecision(ctx, args.UserID, auditID, eventType, sourceTag, confidence, searched, 0, true)

	return ev, nil
}

// bumpRegistry is the fire-and-forget learned-registry update, it must
// never fail the event that triggered it
func (s *Svc) bumpRegistry(
	ctx context.Context,
	userID uuid.UUID,
	eventType schema.EventType,
	eventData map[string]any,
	option *catdom.Result,
) {
	if !productEvent(eventType) {
		return
	}
	name := searchQuery(eventData, "")
	if name == "" {
		return
	}
	up := regdom.UpsertArgs{UserID: userID, EventType: eventType, ProductName: name}
	if option != nil {
		up.Brand = option.Brand
		up.ExternalProductID = option.ID
		up.ExternalSource = option.Source
	}
	s.bestEffort(ctx, "registry upsert", func(c context.Context) error {
		return s.upsert.Upsert(c, up)
	})
}

// markAuditError transitions the ledger row to its error terminal,
// best-effort since the original failure is what propagates
func (s *Svc) markAuditError(ctx context.Context, userID, auditID uuid.UUID, cause error) {
	s.bestEffort(ctx, "audit error mark", func(c context.Context) error {
		return s.repo.UpdateAudit(c, dom.AuditRecord{
			ID:        auditID,
			UserID:    userID,
			Status:    dom.AuditError,
			ErrorText: cause.Error(),
		})
	})
}

// productEvent reports whether the type carries a user-confirmable product
func productEvent(t schema.EventType) bool {
	return t == schema.EventFood || t == schema.EventSupplement || t == schema.EventMedication
}

// categoryOverride trusts a high-confidence catalog category over the
// classifier's label
func categoryOverride(current schema.EventType, top catdom.Result) (schema.EventType, bool) {
	if top.Confidence <= CategoryOverrideConfidence {
		return current, false
	}
	over, ok := categoryEventType(top.Category)
	if !ok || over == current {
		return current, false
	}
	return over, true
}

// categoryEventType maps a catalog category label onto an event type
func categoryEventType(category string) (schema.EventType, bool) {
	c := strings.ToLower(category)
	switch {
	case c == "":
		return "", false
	case strings.Contains(c, "supplement") || strings.Contains(c, "vitamin") ||
		strings.Contains(c, "sports nutrition"):
		return schema.EventSupplement, true
	case strings.Contains(c, "medication") || strings.Contains(c, "medicine") ||
		strings.Contains(c, "drug") || strings.Contains(c, "otc"):
		return schema.EventMedication, true
	case strings.Contains(c, "food") || strings.Contains(c, "snack") ||
		strings.Contains(c, "beverage") || strings.Contains(c, "drink"):
		return schema.EventFood, true
	default:
		return "", false
	}
}

// overrideData rebuilds event data for the overridden type from the catalog
// hit, preserving what still applies
func overrideData(t schema.EventType, top catdom.Result, old map[string]any) map[string]any {
	name := top.Name
	if top.Brand != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(top.Brand)) {
		name = top.Brand + " " + name
	}
	if t == schema.EventFood {
		d := map[string]any{"description": name}
		if top.ServingSize != "" {
			d["serving_size"] = top.ServingSize
		}
		return d
	}
	d := map[string]any{"name": name, "dosage": "1 serving", "units": "serving"}
	if v, ok := old["dosage"]; ok {
		d["dosage"] = v
	}
	if v, ok := old["units"]; ok {
		d["units"] = v
	}
	return d
}

func failed(msg string) dom.ProcessingResult {
	return dom.ProcessingResult{Success: false, Error: msg}
}
