package mirror

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog"
)

// Service runs the mirror pass: fetch the full remote catalog, categorize
// it, infer the state->country linkage, and upsert the result into the
// relational sink.
type Service struct {
	catalog    catalog.Client
	db         *gorm.DB
	classifier *Classifier
	logger     *zap.Logger
}

// NewService creates a mirror service.
func NewService(client catalog.Client, db *gorm.DB, classifier *Classifier, logger *zap.Logger) *Service {
	return &Service{
		catalog:    client,
		db:         db,
		classifier: classifier,
		logger:     logger,
	}
}

// Snapshot is one categorized read of the remote catalog.
type Snapshot struct {
	// Countries and States are assets categorized into hierarchy levels.
	Countries []catalog.Asset
	States    []catalog.Asset
	// Others are uncategorized assets, persisted as devices.
	Others []catalog.Asset
	// Devices are the real catalog devices.
	Devices []catalog.Device
	// StateParents maps a state's remote ID to its parent country's remote
	// ID, inferred from asset-to-asset "Contains" edges.
	StateParents map[string]string
}

// Summary aggregates a snapshot for the pre-persist report.
type Summary struct {
	Countries      int
	States         int
	OtherAssets    int
	Devices        int
	LinkedStates   int
	UnlinkedStates int
}

// Summarize computes the report counts for a snapshot.
func (s *Snapshot) Summarize() Summary {
	linked := 0
	for _, st := range s.States {
		if _, ok := s.StateParents[st.ID.ID]; ok {
			linked++
		}
	}
	return Summary{
		Countries:      len(s.Countries),
		States:         len(s.States),
		OtherAssets:    len(s.Others),
		Devices:        len(s.Devices),
		LinkedStates:   linked,
		UnlinkedStates: len(s.States) - linked,
	}
}

// Fetch pulls the asset, device, and relation listings (one bounded page
// each), categorizes the assets, and infers state parentage.
func (s *Service) Fetch(ctx context.Context) (*Snapshot, error) {
	if _, err := s.catalog.ValidateToken(ctx); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	assets, err := s.catalog.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("no assets found in the catalog, nothing to mirror")
	}

	devices, err := s.catalog.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	relations, err := s.catalog.ListRelations(ctx)
	if err != nil {
		// The relation listing is an enrichment; states fall back to the
		// default country when parentage is unknown.
		s.logger.Warn("could not fetch relations, state parentage will use fallbacks", zap.Error(err))
		relations = nil
	}

	snap := &Snapshot{Devices: devices, StateParents: map[string]string{}}
	for _, asset := range assets {
		switch s.classifier.Classify(asset) {
		case CategoryCountry:
			snap.Countries = append(snap.Countries, asset)
		case CategoryState:
			snap.States = append(snap.States, asset)
		default:
			snap.Others = append(snap.Others, asset)
		}
	}

	s.inferStateParents(snap, relations)

	summary := snap.Summarize()
	s.logger.Info("catalog snapshot fetched",
		zap.Int("countries", summary.Countries),
		zap.Int("states", summary.States),
		zap.Int("other_assets", summary.OtherAssets),
		zap.Int("devices", summary.Devices),
		zap.Int("linked_states", summary.LinkedStates),
		zap.Int("unlinked_states", summary.UnlinkedStates))
	return snap, nil
}

// inferStateParents builds a child->parent map from asset-to-asset
// "Contains" edges and keeps only those whose parent is a known country.
func (s *Service) inferStateParents(snap *Snapshot, relations []catalog.Relation) {
	parents := make(map[string]string)
	for _, rel := range relations {
		if rel.Type != catalog.RelationContains {
			continue
		}
		if rel.From.EntityType != catalog.EntityTypeAsset || rel.To.EntityType != catalog.EntityTypeAsset {
			continue
		}
		parents[rel.To.ID] = rel.From.ID
	}

	countries := make(map[string]struct{}, len(snap.Countries))
	for _, c := range snap.Countries {
		countries[c.ID.ID] = struct{}{}
	}

	for _, state := range snap.States {
		parent, ok := parents[state.ID.ID]
		if !ok {
			s.logger.Debug("no parent relation for state", zap.String("state", state.Name))
			continue
		}
		if _, isCountry := countries[parent]; !isCountry {
			s.logger.Warn("state parent is not a country, ignoring",
				zap.String("state", state.Name))
			continue
		}
		snap.StateParents[state.ID.ID] = parent
	}
}
