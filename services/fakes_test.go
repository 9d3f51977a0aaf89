package services

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/Dosada05/worldcup-system/models"
	"github.com/Dosada05/worldcup-system/repositories"
	"github.com/Dosada05/worldcup-system/storage"
)

// In-memory репозитории для тестов сервисного слоя. Семантика повторяет
// postgres-реализации: те же sentinel-ошибки, тот же порядок выдачи.

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
	for _, user := range users {
		if user.ID >= repo.nextID {
			repo.nextID = user.ID + 1
		}
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
		if existing.Nickname == user.Nickname {
			return repositories.ErrUserNicknameConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	*stored = copied
	return nil
}

func (r *fakeUserRepo) UpdateTier(ctx context.Context, id int, tier models.MembershipTier) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Tier = tier
	return nil
}

func (r *fakeUserRepo) UpdateAvatarKey(ctx context.Context, id int, key *string) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.AvatarKey = key
	return nil
}

// fakeUploader считает загрузки и отдаёт предсказуемые URL.
type fakeUploader struct {
	uploads map[string]string // key -> contentType
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: make(map[string]string)}
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	u.uploads[key] = contentType
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key), ETag: "test"}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	delete(u.uploads, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
}

func newFakeTournamentRepo(tournaments ...*models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament)}
	for _, t := range tournaments {
		repo.tournaments[t.ID] = t
	}
	return repo
}

func (r *fakeTournamentRepo) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.ID = len(r.tournaments) + 1
	r.tournaments[tournament.ID] = tournament
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	tournament, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *tournament
	return &copied, nil
}

func (r *fakeTournamentRepo) ListByOwner(ctx context.Context, ownerID int) ([]*models.Tournament, error) {
	var result []*models.Tournament
	for _, t := range r.tournaments {
		if t.OwnerID == ownerID {
			copied := *t
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeTournamentRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.TournamentStatus) error {
	tournament, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	tournament.Status = status
	return nil
}

func (r *fakeTournamentRepo) UpdateLogoKey(ctx context.Context, id int, key *string) error {
	tournament, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	tournament.LogoKey = key
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeTeamRepo struct {
	teams  map[int]models.Team
	nextID int
}

func newFakeTeamRepo(teams ...models.Team) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: make(map[int]models.Team), nextID: 1}
	for _, team := range teams {
		if team.ID >= repo.nextID {
			repo.nextID = team.ID + 1
		}
		repo.teams[team.ID] = team
	}
	return repo
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	for _, existing := range r.teams {
		if existing.TournamentID == team.TournamentID && existing.CountryCode == team.CountryCode {
			return repositories.ErrTeamCountryConflict
		}
	}
	team.ID = r.nextID
	r.nextID++
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &team, nil
}

func (r *fakeTeamRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.Team, error) {
	var result []models.Team
	for _, team := range r.teams {
		if team.TournamentID == tournamentID {
			result = append(result, team)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	count := 0
	for _, team := range r.teams {
		if team.TournamentID == tournamentID {
			count++
		}
	}
	return count, nil
}

type fakeWorldRepo struct {
	worlds map[int]*models.World
}

func newFakeWorldRepo(worlds ...*models.World) *fakeWorldRepo {
	repo := &fakeWorldRepo{worlds: make(map[int]*models.World)}
	for _, world := range worlds {
		repo.worlds[world.ID] = world
	}
	return repo
}

func (r *fakeWorldRepo) Create(ctx context.Context, world *models.World) error {
	world.ID = len(r.worlds) + 1
	r.worlds[world.ID] = world
	return nil
}

func (r *fakeWorldRepo) GetByID(ctx context.Context, id int) (*models.World, error) {
	world, ok := r.worlds[id]
	if !ok {
		return nil, repositories.ErrWorldNotFound
	}
	copied := *world
	return &copied, nil
}

func (r *fakeWorldRepo) ListByOwner(ctx context.Context, ownerID int) ([]*models.World, error) {
	var result []*models.World
	for _, world := range r.worlds {
		if world.OwnerID == ownerID {
			copied := *world
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeWorldRepo) ReplaceRankings(ctx context.Context, worldID int, rankings []models.CountryRanking) error {
	world, ok := r.worlds[worldID]
	if !ok {
		return repositories.ErrWorldNotFound
	}
	world.CountryRankings = rankings
	return nil
}

func (r *fakeWorldRepo) ListRankings(ctx context.Context, worldID int) ([]models.CountryRanking, error) {
	world, ok := r.worlds[worldID]
	if !ok {
		return nil, repositories.ErrWorldNotFound
	}
	return world.CountryRankings, nil
}

type fakePotRepo struct {
	pots   map[int][]*models.Pot // по турниру
	nextID int
}

func newFakePotRepo() *fakePotRepo {
	return &fakePotRepo{pots: make(map[int][]*models.Pot), nextID: 1}
}

func (r *fakePotRepo) Replace(ctx context.Context, tournamentID int, pots []*models.Pot) error {
	stored := make([]*models.Pot, 0, len(pots))
	for _, pot := range pots {
		copied := *pot
		copied.ID = r.nextID
		r.nextID++
		pot.ID = copied.ID
		stored = append(stored, &copied)
	}
	r.pots[tournamentID] = stored
	return nil
}

func (r *fakePotRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]*models.Pot, error) {
	var result []*models.Pot
	for _, pot := range r.pots[tournamentID] {
		copied := *pot
		copied.TeamIDs = append([]int(nil), pot.TeamIDs...)
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakePotRepo) DeleteByTournament(ctx context.Context, tournamentID int) error {
	delete(r.pots, tournamentID)
	return nil
}

type fakeGroupRepo struct {
	groups map[int]*models.Group
	nextID int
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[int]*models.Group), nextID: 1}
}

func (r *fakeGroupRepo) EnsureForTournament(ctx context.Context, tournamentID int) error {
	existing := make(map[string]bool)
	for _, group := range r.groups {
		if group.TournamentID == tournamentID {
			existing[group.Letter] = true
		}
	}
	for _, letter := range models.GroupLetters {
		if existing[letter] {
			continue
		}
		r.groups[r.nextID] = &models.Group{
			ID:           r.nextID,
			TournamentID: tournamentID,
			Letter:       letter,
			TeamIDs:      []int{},
		}
		r.nextID++
	}
	return nil
}

func (r *fakeGroupRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]*models.Group, error) {
	var result []*models.Group
	for _, group := range r.groups {
		if group.TournamentID == tournamentID {
			copied := *group
			copied.TeamIDs = append([]int(nil), group.TeamIDs...)
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Letter < result[j].Letter })
	return result, nil
}

func (r *fakeGroupRepo) GetByLetter(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, letter string) (*models.Group, error) {
	for _, group := range r.groups {
		if group.TournamentID == tournamentID && group.Letter == letter {
			copied := *group
			return &copied, nil
		}
	}
	return nil, repositories.ErrGroupNotFound
}

func (r *fakeGroupRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Group, error) {
	group, ok := r.groups[id]
	if !ok {
		return nil, repositories.ErrGroupNotFound
	}
	copied := *group
	return &copied, nil
}

func (r *fakeGroupRepo) UpdateMembers(ctx context.Context, exec repositories.SQLExecutor, groupID int, teamIDs []int, isComplete bool) error {
	group, ok := r.groups[groupID]
	if !ok {
		return repositories.ErrGroupNotFound
	}
	group.TeamIDs = append([]int(nil), teamIDs...)
	group.IsComplete = isComplete
	return nil
}

func (r *fakeGroupRepo) ClearAll(ctx context.Context, tournamentID int) error {
	for _, group := range r.groups {
		if group.TournamentID == tournamentID {
			group.TeamIDs = []int{}
			group.IsComplete = false
		}
	}
	return nil
}

type fakeMatchRepo struct {
	matches map[int]*models.Match
	nextID  int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match), nextID: 1}
}

func (r *fakeMatchRepo) BatchCreate(ctx context.Context, exec repositories.SQLExecutor, matches []*models.Match) error {
	for _, match := range matches {
		match.ID = r.nextID
		match.Status = models.MatchStatusScheduled
		r.nextID++
		copied := *match
		r.matches[match.ID] = &copied
	}
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *fakeMatchRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, matchday *int, status *models.MatchStatus) ([]*models.Match, error) {
	var result []*models.Match
	for _, match := range r.matches {
		if match.TournamentID != tournamentID {
			continue
		}
		if matchday != nil && match.Matchday != *matchday {
			continue
		}
		if status != nil && match.Status != *status {
			continue
		}
		copied := *match
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeMatchRepo) Complete(ctx context.Context, exec repositories.SQLExecutor, matchID, homeScore, awayScore int, simulatedAt time.Time) error {
	match, ok := r.matches[matchID]
	if !ok || match.Status != models.MatchStatusScheduled {
		return repositories.ErrMatchNotFound
	}
	match.HomeScore = &homeScore
	match.AwayScore = &awayScore
	match.Status = models.MatchStatusCompleted
	match.SimulatedAt = &simulatedAt
	return nil
}

func (r *fakeMatchRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	for id, match := range r.matches {
		if match.TournamentID == tournamentID {
			delete(r.matches, id)
		}
	}
	return nil
}

type fakeStandingRepo struct {
	standings map[int]*models.Standing
	nextID    int
}

func newFakeStandingRepo() *fakeStandingRepo {
	return &fakeStandingRepo{standings: make(map[int]*models.Standing), nextID: 1}
}

func (r *fakeStandingRepo) BatchCreate(ctx context.Context, exec repositories.SQLExecutor, standings []*models.Standing) error {
	for _, standing := range standings {
		standing.ID = r.nextID
		r.nextID++
		copied := *standing
		r.standings[standing.ID] = &copied
	}
	return nil
}

func (r *fakeStandingRepo) GetByTeam(ctx context.Context, exec repositories.SQLExecutor, tournamentID, teamID int) (*models.Standing, error) {
	for _, standing := range r.standings {
		if standing.TournamentID == tournamentID && standing.TeamID == teamID {
			copied := *standing
			return &copied, nil
		}
	}
	return nil, repositories.ErrStandingNotFound
}

func (r *fakeStandingRepo) ListByGroup(ctx context.Context, exec repositories.SQLExecutor, groupID int) ([]*models.Standing, error) {
	var result []*models.Standing
	for _, standing := range r.standings {
		if standing.GroupID == groupID {
			copied := *standing
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].TeamID < result[j].TeamID
	})
	return result, nil
}

func (r *fakeStandingRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]*models.Standing, error) {
	var result []*models.Standing
	for _, standing := range r.standings {
		if standing.TournamentID == tournamentID {
			copied := *standing
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].GroupID != result[j].GroupID {
			return result[i].GroupID < result[j].GroupID
		}
		return result[i].Position < result[j].Position
	})
	return result, nil
}

func (r *fakeStandingRepo) Update(ctx context.Context, exec repositories.SQLExecutor, standing *models.Standing) error {
	stored, ok := r.standings[standing.ID]
	if !ok {
		return repositories.ErrStandingNotFound
	}
	copied := *standing
	*stored = copied
	return nil
}

func (r *fakeStandingRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	for id, standing := range r.standings {
		if standing.TournamentID == tournamentID {
			delete(r.standings, id)
		}
	}
	return nil
}
