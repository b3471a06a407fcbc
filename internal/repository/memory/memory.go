// Package memory provides in-process implementations of the repository
// ports. They enforce the same uniqueness rules as the PostgreSQL schema and
// are used by service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/codearena-backend/internal/repository"
	"github.com/google/uuid"
)

func paginate[T any](items []T, page repository.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := len(items)
	if page.Limit > 0 && start+page.Limit < end {
		end = start + page.Limit
	}
	return items[start:end]
}

// Reports

type pendingKey struct {
	reporter uuid.UUID
	action   models.ReportActionType
	target   uuid.UUID
}

type Reports struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]models.Report
	pending map[pendingKey]uuid.UUID
	seq     time.Time
}

func NewReports() *Reports {
	return &Reports{
		rows:    make(map[uuid.UUID]models.Report),
		pending: make(map[pendingKey]uuid.UUID),
		seq:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Reports) Create(_ context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pendingKey{report.ReporterUserID, report.ActionType, report.TargetID}
	if report.Status == models.ReportPending {
		if _, taken := s.pending[key]; taken {
			return repository.ErrDuplicate
		}
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	// strictly increasing timestamps keep ordering deterministic in tests
	s.seq = s.seq.Add(time.Second)
	report.CreatedAt = s.seq
	report.UpdatedAt = s.seq

	s.rows[report.ID] = *report
	if report.Status == models.ReportPending {
		s.pending[key] = report.ID
	}
	return nil
}

func (s *Reports) Get(_ context.Context, id uuid.UUID) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &report, nil
}

func (s *Reports) UpdateStatus(_ context.Context, id uuid.UUID, status models.ReportStatus) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	key := pendingKey{report.ReporterUserID, report.ActionType, report.TargetID}
	if status == models.ReportPending && report.Status != models.ReportPending {
		if _, taken := s.pending[key]; taken {
			return nil, repository.ErrDuplicate
		}
		s.pending[key] = id
	}
	if status != models.ReportPending && s.pending[key] == id {
		delete(s.pending, key)
	}

	report.Status = status
	report.UpdatedAt = time.Now()
	s.rows[id] = report
	return &report, nil
}

func (s *Reports) List(_ context.Context, filter repository.ReportFilter, page repository.Page) ([]models.Report, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Report
	for _, r := range s.rows {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, page), int64(len(out)), nil
}

// Count returns the number of stored reports.
func (s *Reports) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Penalties

type Penalties struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.Penalty
}

func NewPenalties() *Penalties {
	return &Penalties{rows: make(map[uuid.UUID]models.Penalty)}
}

func (s *Penalties) Create(_ context.Context, penalty *models.Penalty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if penalty.ID == uuid.Nil {
		penalty.ID = uuid.New()
	}
	penalty.UpdatedAt = penalty.IssuedAt
	s.rows[penalty.ID] = *penalty
	return nil
}

func (s *Penalties) SetActive(_ context.Context, id uuid.UUID, active bool) (*models.Penalty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	penalty, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	penalty.IsActive = active
	penalty.UpdatedAt = time.Now()
	s.rows[id] = penalty
	return &penalty, nil
}

func (s *Penalties) ListForUser(_ context.Context, userID uuid.UUID, page repository.Page) ([]models.Penalty, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Penalty
	for _, p := range s.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return paginate(out, page), int64(len(out)), nil
}

func (s *Penalties) ActiveBans(_ context.Context, userID uuid.UUID) ([]models.Penalty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Penalty
	for _, p := range s.rows {
		if p.UserID == userID && p.IsActive && p.PenaltyType.IsBan() {
			out = append(out, p)
		}
	}
	return out, nil
}

// Put stores a penalty verbatim, bypassing issuance rules.
func (s *Penalties) Put(penalty models.Penalty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[penalty.ID] = penalty
}

// Engagement

type edgeKey struct {
	actor  uuid.UUID
	kind   models.EngagementType
	target uuid.UUID
}

type Engagement struct {
	mu    sync.Mutex
	edges map[edgeKey]models.EngagementEdge

	// BeforeInsert, when set, runs outside the lock ahead of every insert.
	// Tests use it to interleave a competing toggle.
	BeforeInsert func()
}

func NewEngagement() *Engagement {
	return &Engagement{edges: make(map[edgeKey]models.EngagementEdge)}
}

func (s *Engagement) Exists(_ context.Context, actorID uuid.UUID, kind models.EngagementType, targetID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.edges[edgeKey{actorID, kind, targetID}]
	return ok, nil
}

func (s *Engagement) Insert(_ context.Context, edge *models.EngagementEdge) error {
	if hook := s.BeforeInsert; hook != nil {
		hook()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := edgeKey{edge.ActorUserID, edge.TargetType, edge.TargetID}
	if _, ok := s.edges[key]; ok {
		return repository.ErrDuplicate
	}
	if edge.CreatedAt.IsZero() {
		edge.CreatedAt = time.Now()
	}
	s.edges[key] = *edge
	return nil
}

func (s *Engagement) Delete(_ context.Context, actorID uuid.UUID, kind models.EngagementType, targetID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := edgeKey{actorID, kind, targetID}
	if _, ok := s.edges[key]; !ok {
		return false, nil
	}
	delete(s.edges, key)
	return true, nil
}

func (s *Engagement) Count(_ context.Context, kind models.EngagementType, targetID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k := range s.edges {
		if k.kind == kind && k.target == targetID {
			n++
		}
	}
	return n, nil
}

// Achievements

type grantKey struct {
	user        uuid.UUID
	achievement string
}

type Achievements struct {
	mu      sync.Mutex
	catalog map[string]models.Achievement
	grants  map[grantKey]models.AchievementGrant
}

func NewAchievements() *Achievements {
	return &Achievements{
		catalog: make(map[string]models.Achievement),
		grants:  make(map[grantKey]models.AchievementGrant),
	}
}

func (s *Achievements) Catalog(_ context.Context) ([]models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Achievement, 0, len(s.catalog))
	for _, a := range s.catalog {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Achievements) SeedCatalog(_ context.Context, achievements []models.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range achievements {
		s.catalog[a.ID] = a
	}
	return nil
}

func (s *Achievements) Grants(_ context.Context, userID uuid.UUID) ([]models.AchievementGrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.AchievementGrant
	for k, g := range s.grants {
		if k.user == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AchievementID < out[j].AchievementID })
	return out, nil
}

func (s *Achievements) HasGrant(_ context.Context, userID uuid.UUID, achievementID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.grants[grantKey{userID, achievementID}]
	return ok, nil
}

func (s *Achievements) Grant(_ context.Context, grant *models.AchievementGrant) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := grantKey{grant.UserID, grant.AchievementID}
	if _, ok := s.grants[key]; ok {
		return false, nil
	}
	s.grants[key] = *grant
	return true, nil
}

// Directory holds users, forum content and tournament aggregates, standing
// in for the services that own them.
type Directory struct {
	mu       sync.Mutex
	users    map[uuid.UUID]models.User
	posts    map[uuid.UUID]uuid.UUID
	comments map[uuid.UUID]uuid.UUID
	stats    map[uuid.UUID]Stats

	// StatsErr, when set, is returned by the named aggregate lookup.
	StatsErr map[string]error
}

// Stats are the aggregates a test wants a user to have.
type Stats struct {
	Tournaments     int64
	TeamTournaments int64
	Solved          int64
	Position        int64
}

func NewDirectory() *Directory {
	return &Directory{
		users:    make(map[uuid.UUID]models.User),
		posts:    make(map[uuid.UUID]uuid.UUID),
		comments: make(map[uuid.UUID]uuid.UUID),
		stats:    make(map[uuid.UUID]Stats),
		StatsErr: make(map[string]error),
	}
}

func (d *Directory) AddUser(user models.User) models.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	d.users[user.ID] = user
	return user
}

func (d *Directory) AddPost(authorID uuid.UUID) uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := uuid.New()
	d.posts[id] = authorID
	return id
}

func (d *Directory) AddComment(authorID uuid.UUID) uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := uuid.New()
	d.comments[id] = authorID
	return id
}

func (d *Directory) SetStats(userID uuid.UUID, stats Stats) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats[userID] = stats
}

func (d *Directory) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (d *Directory) PostAuthor(_ context.Context, postID uuid.UUID) (uuid.UUID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	author, ok := d.posts[postID]
	if !ok {
		return uuid.Nil, repository.ErrNotFound
	}
	return author, nil
}

func (d *Directory) CommentAuthor(_ context.Context, commentID uuid.UUID) (uuid.UUID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	author, ok := d.comments[commentID]
	if !ok {
		return uuid.Nil, repository.ErrNotFound
	}
	return author, nil
}

func (d *Directory) lookup(name string, userID uuid.UUID, pick func(Stats) int64) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.StatsErr[name]; err != nil {
		return 0, err
	}
	return pick(d.stats[userID]), nil
}

func (d *Directory) TournamentCount(_ context.Context, userID uuid.UUID) (int64, error) {
	return d.lookup("tournaments", userID, func(s Stats) int64 { return s.Tournaments })
}

func (d *Directory) TeamTournamentCount(_ context.Context, userID uuid.UUID) (int64, error) {
	return d.lookup("team_tournaments", userID, func(s Stats) int64 { return s.TeamTournaments })
}

func (d *Directory) SolvedCount(_ context.Context, userID uuid.UUID) (int64, error) {
	return d.lookup("solved", userID, func(s Stats) int64 { return s.Solved })
}

func (d *Directory) LeaderboardPosition(_ context.Context, userID uuid.UUID) (int64, error) {
	return d.lookup("position", userID, func(s Stats) int64 { return s.Position })
}

func (d *Directory) Level(ctx context.Context, userID uuid.UUID) (int64, error) {
	d.mu.Lock()
	err := d.StatsErr["level"]
	d.mu.Unlock()
	if err != nil {
		return 0, err
	}
	user, err := d.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(user.Level), nil
}

var (
	_ repository.ReportStore      = (*Reports)(nil)
	_ repository.PenaltyStore     = (*Penalties)(nil)
	_ repository.EngagementStore  = (*Engagement)(nil)
	_ repository.AchievementStore = (*Achievements)(nil)
	_ repository.UserStore        = (*Directory)(nil)
	_ repository.ContentStore     = (*Directory)(nil)
	_ repository.StatsStore       = (*Directory)(nil)
)
