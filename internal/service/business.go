package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"
	"github.com/vibe-gaming/geodirectory/internal/repository"
)

type BusinessFilters = repository.BusinessFilters

const DefaultPageSize = 20

type BusinessInput struct {
	Name        string
	Description string
	Addr1       string
	City        string
	State       string
	Zip         string
	Phone       string
	Website     string
	// Categories holds composite ids at any depth ("cat", "cat:type", "cat:type:sub").
	Categories []string
	Location   *geo.Point
	Published  bool
	Featured   bool
}

type regionGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Region, error)
}

type businessService struct {
	businessRepository repository.Businesses
	regions            regionGetter
	geoAssignment      GeoAssignment
	classifications    Classifications
	scheduler          RecountScheduler
	geoConfig          config.Geo
}

func newBusinessService(
	businessRepository repository.Businesses,
	regions regionGetter,
	geoAssignment GeoAssignment,
	classifications Classifications,
	scheduler RecountScheduler,
	geoConfig config.Geo,
) *businessService {
	return &businessService{
		businessRepository: businessRepository,
		regions:            regions,
		geoAssignment:      geoAssignment,
		classifications:    classifications,
		scheduler:          scheduler,
		geoConfig:          geoConfig,
	}
}

func (s *businessService) Create(ctx context.Context, input BusinessInput) (*domain.Business, error) {
	now := time.Now().UTC()
	business := &domain.Business{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.apply(ctx, business, input); err != nil {
		return nil, err
	}

	assignment, err := s.geoAssignment.Resolve(ctx, business.Location())
	if err != nil {
		return nil, errors.Wrap(err, "resolve business regions")
	}
	business.SetAssignment(assignment)

	if err := s.businessRepository.Create(ctx, business); err != nil {
		return nil, err
	}

	scheduleRecounts(ctx, s.scheduler, business.RegionIDs...)
	return business, nil
}

func (s *businessService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	business, err := s.businessRepository.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrBusinessNotFound
	}
	return business, err
}

func (s *businessService) GetAll(ctx context.Context, page, limit int, filters *BusinessFilters) ([]*domain.Business, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	filters = s.prepareFilters(filters)
	if filters.Near != nil && s.geoConfig.MaxGeoPageSize > 0 && limit > s.geoConfig.MaxGeoPageSize {
		limit = s.geoConfig.MaxGeoPageSize
	}

	offset := (page - 1) * limit

	businesses, err := s.businessRepository.GetAll(ctx, limit, offset, filters)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.businessRepository.Count(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	return businesses, total, nil
}

func (s *businessService) Count(ctx context.Context, filters *BusinessFilters) (int64, error) {
	return s.businessRepository.Count(ctx, s.prepareFilters(filters))
}

// Update replaces the editable fields. Regions are re-resolved when the location moved or
// the business has none, and counts are recomputed for the old and new regions when the
// assignment or the published flag changed.
func (s *businessService) Update(ctx context.Context, id uuid.UUID, input BusinessInput) (*domain.Business, error) {
	business, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldLocation := business.Location()
	oldRegionIDs := append(domain.UUIDList(nil), business.RegionIDs...)
	oldPublished := business.Published

	if err := s.apply(ctx, business, input); err != nil {
		return nil, err
	}

	if !domain.SameLocation(oldLocation, business.Location()) || len(oldRegionIDs) == 0 {
		assignment, err := s.geoAssignment.Resolve(ctx, business.Location())
		if err != nil {
			return nil, errors.Wrap(err, "resolve business regions")
		}
		business.SetAssignment(assignment)
	}
	business.UpdatedAt = time.Now().UTC()

	if err := s.businessRepository.Update(ctx, business); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	if oldPublished != business.Published || !sameIDs(oldRegionIDs, business.RegionIDs) {
		scheduleRecounts(ctx, s.scheduler, append(oldRegionIDs, business.RegionIDs...)...)
	}
	return business, nil
}

// SetRegions overrides the resolved assignment with an explicit region list. The
// sentinel is dropped when a real region is present; an empty list means pending.
func (s *businessService) SetRegions(ctx context.Context, id uuid.UUID, regionIDs []uuid.UUID) (*domain.Business, error) {
	business, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	assignment := domain.PendingAssignment()
	if ids := dedupeIDs(withoutPending(regionIDs)); len(ids) > 0 {
		regions := make([]*domain.Region, 0, len(ids))
		for _, regionID := range ids {
			region, err := s.regions.GetByID(ctx, regionID)
			if errors.Is(err, ErrRegionNotFound) {
				return nil, invalidInput("unknown region " + regionID.String())
			}
			if err != nil {
				return nil, err
			}
			regions = append(regions, region)
		}
		sort.SliceStable(regions, func(i, j int) bool { return regions[i].Level > regions[j].Level })

		assignment = domain.RegionAssignment{DisplayName: regions[0].Name}
		for _, r := range regions {
			assignment.RegionIDs = append(assignment.RegionIDs, r.ID)
		}
	}

	oldRegionIDs := append(domain.UUIDList(nil), business.RegionIDs...)
	business.SetAssignment(assignment)

	if err := s.businessRepository.UpdateRegions(ctx, id, business.Neighborhoods, business.RegionIDs); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	if !sameIDs(oldRegionIDs, business.RegionIDs) {
		scheduleRecounts(ctx, s.scheduler, append(oldRegionIDs, business.RegionIDs...)...)
	}
	return business, nil
}

func (s *businessService) Delete(ctx context.Context, id uuid.UUID) error {
	business, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.businessRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrBusinessNotFound
		}
		return err
	}

	scheduleRecounts(ctx, s.scheduler, business.RegionIDs...)
	return nil
}

func (s *businessService) apply(ctx context.Context, business *domain.Business, input BusinessInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return invalidInput("name is required")
	}
	if input.Location != nil && !input.Location.Valid() {
		return invalidInput("location out of range")
	}

	categories, err := s.validCategories(ctx, input.Categories)
	if err != nil {
		return err
	}

	business.Name = name
	business.Description = strings.TrimSpace(input.Description)
	business.Addr1 = strings.TrimSpace(input.Addr1)
	business.City = strings.TrimSpace(input.City)
	business.State = strings.TrimSpace(input.State)
	business.Zip = strings.TrimSpace(input.Zip)
	business.Phone = strings.TrimSpace(input.Phone)
	business.Website = strings.TrimSpace(input.Website)
	business.CategoryIDs, business.CategoryTypeIDs, business.CategorySubTypeIDs = splitCategories(categories)
	business.SetLocation(input.Location)
	business.Published = input.Published
	business.Featured = input.Featured

	return nil
}

// validCategories rejects ids missing from the taxonomy. An empty taxonomy accepts anything.
func (s *businessService) validCategories(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	taxonomy, err := s.classifications.GetMap(ctx)
	if err != nil {
		return nil, err
	}
	if len(taxonomy) == 0 {
		return ids, nil
	}

	if valid := taxonomy.Valid(ids); len(valid) != len(ids) {
		return nil, invalidInput("unknown category")
	}
	return ids, nil
}

func (s *businessService) prepareFilters(filters *BusinessFilters) *BusinessFilters {
	var f BusinessFilters
	if filters != nil {
		f = *filters
	}

	if f.Search != "" && !containsBooleanOperators(f.Search) {
		f.Search = addWildcardsToQuery(f.Search)
	}

	if f.Near != nil {
		near := *f.Near
		if near.MaxDistanceMeters <= 0 {
			near.MaxDistanceMeters = s.geoConfig.DefaultNearDistance
		}
		if s.geoConfig.MaxNearDistance > 0 && near.MaxDistanceMeters > s.geoConfig.MaxNearDistance {
			near.MaxDistanceMeters = s.geoConfig.MaxNearDistance
		}
		f.Near = &near
	}

	return &f
}

// splitCategories sorts composite ids by depth. Every level implies its ancestors.
func splitCategories(ids []string) (cats, types, subTypes domain.StringList) {
	seen := make(map[string]struct{})
	add := func(list *domain.StringList, id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		*list = append(*list, id)
	}

	cats, types, subTypes = domain.StringList{}, domain.StringList{}, domain.StringList{}
	for _, id := range ids {
		parts := strings.Split(strings.TrimSpace(id), domain.CategoryIDSeparator)
		if parts[0] == "" {
			continue
		}
		add(&cats, parts[0])
		if len(parts) > 1 {
			add(&types, strings.Join(parts[:2], domain.CategoryIDSeparator))
		}
		if len(parts) > 2 {
			add(&subTypes, strings.Join(parts[:3], domain.CategoryIDSeparator))
		}
	}
	return cats, types, subTypes
}

// containsBooleanOperators reports whether the query already uses full text boolean syntax.
func containsBooleanOperators(query string) bool {
	return strings.ContainsAny(query, `+-*~"()<>`)
}

// addWildcardsToQuery turns every word into a prefix match.
func addWildcardsToQuery(query string) string {
	words := strings.Fields(query)
	for i, word := range words {
		if !strings.HasSuffix(word, "*") {
			words[i] = word + "*"
		}
	}
	return strings.Join(words, " ")
}

func sameIDs(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
