package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Dosada05/worldcup-system/models"
)

func newTournamentService(t *testing.T) (TournamentService, *fakeTournamentRepo, *fakeTeamRepo, *fakeUploader) {
	t.Helper()
	tournamentRepo := newFakeTournamentRepo()
	teamRepo := newFakeTeamRepo()
	uploader := newFakeUploader()
	service := NewTournamentService(tournamentRepo, teamRepo, newFakeWorldRepo(), uploader, testLogger())
	return service, tournamentRepo, teamRepo, uploader
}

func TestCreateTournamentEntersHost(t *testing.T) {
	service, _, teamRepo, _ := newTournamentService(t)
	ctx := context.Background()

	tournament, err := service.Create(ctx, 1, CreateTournamentInput{
		Name:            "World Cup 2026",
		HostCountryCode: "QAT",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tournament.Status != models.StatusDraft {
		t.Errorf("status = %s, want draft", tournament.Status)
	}
	if tournament.MaxTeams != 32 {
		t.Errorf("default max teams = %d, want 32", tournament.MaxTeams)
	}

	teams, err := teamRepo.ListByTournament(ctx, nil, tournament.ID)
	if err != nil {
		t.Fatalf("ListByTournament: %v", err)
	}
	if len(teams) != 1 || !teams[0].IsHost || teams[0].CountryCode != "QAT" {
		t.Fatalf("host team must be entered at creation, got %+v", teams)
	}
}

func TestCreateTournamentValidation(t *testing.T) {
	service, _, _, _ := newTournamentService(t)
	ctx := context.Background()

	if _, err := service.Create(ctx, 1, CreateTournamentInput{HostCountryCode: "QAT"}); !errors.Is(err, ErrTournamentNameRequired) {
		t.Errorf("expected ErrTournamentNameRequired, got %v", err)
	}
	if _, err := service.Create(ctx, 1, CreateTournamentInput{Name: "Cup", HostCountryCode: "ZZZ"}); !errors.Is(err, ErrUnknownCountryCode) {
		t.Errorf("expected ErrUnknownCountryCode, got %v", err)
	}
	badWorld := 42
	if _, err := service.Create(ctx, 1, CreateTournamentInput{Name: "Cup", HostCountryCode: "QAT", WorldID: &badWorld}); !errors.Is(err, ErrWorldNotFound) {
		t.Errorf("expected ErrWorldNotFound, got %v", err)
	}
}

func TestAddTeamRules(t *testing.T) {
	service, tournamentRepo, _, _ := newTournamentService(t)
	ctx := context.Background()

	tournament, err := service.Create(ctx, 1, CreateTournamentInput{Name: "Cup", HostCountryCode: "QAT", MaxTeams: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Чужой пользователь не управляет заявкой.
	if _, err := service.AddTeam(ctx, tournament.ID, 2, "BRA"); !errors.Is(err, ErrForbiddenOperation) {
		t.Errorf("expected ErrForbiddenOperation, got %v", err)
	}

	// Дубликат страны (хозяйка уже заявлена).
	if _, err := service.AddTeam(ctx, tournament.ID, 1, "QAT"); !errors.Is(err, ErrTeamCountryConflict) {
		t.Errorf("expected ErrTeamCountryConflict, got %v", err)
	}

	team, err := service.AddTeam(ctx, tournament.ID, 1, "BRA")
	if err != nil {
		t.Fatalf("AddTeam: %v", err)
	}
	if team.IsHost {
		t.Error("BRA must not be flagged as host")
	}

	// Лимит в два места исчерпан.
	if _, err := service.AddTeam(ctx, tournament.ID, 1, "ARG"); !errors.Is(err, ErrTournamentFull) {
		t.Errorf("expected ErrTournamentFull, got %v", err)
	}

	// После жеребьёвки заявка заморожена.
	tournamentRepo.tournaments[tournament.ID].Status = models.StatusDraw
	if _, err := service.AddTeam(ctx, tournament.ID, 1, "ARG"); !errors.Is(err, ErrTournamentNotDraft) {
		t.Errorf("expected ErrTournamentNotDraft, got %v", err)
	}
}

func TestAutoFillTeams(t *testing.T) {
	service, _, _, _ := newTournamentService(t)
	ctx := context.Background()

	tournament, err := service.Create(ctx, 1, CreateTournamentInput{Name: "Cup", HostCountryCode: "QAT"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	teams, err := service.AutoFillTeams(ctx, tournament.ID, 1)
	if err != nil {
		t.Fatalf("AutoFillTeams: %v", err)
	}
	if len(teams) != 32 {
		t.Fatalf("expected 32 teams after autofill, got %d", len(teams))
	}

	codes := make(map[string]bool)
	hosts := 0
	for _, team := range teams {
		if codes[team.CountryCode] {
			t.Errorf("country %s entered twice", team.CountryCode)
		}
		codes[team.CountryCode] = true
		if team.IsHost {
			hosts++
		}
	}
	if hosts != 1 {
		t.Errorf("expected exactly one host team, got %d", hosts)
	}

	// Повторный autofill ничего не добавляет.
	again, err := service.AutoFillTeams(ctx, tournament.ID, 1)
	if err != nil {
		t.Fatalf("second AutoFillTeams: %v", err)
	}
	if len(again) != 32 {
		t.Errorf("autofill must be idempotent, got %d teams", len(again))
	}
}

func TestRemoveTeamProtectsHost(t *testing.T) {
	service, _, teamRepo, _ := newTournamentService(t)
	ctx := context.Background()

	tournament, err := service.Create(ctx, 1, CreateTournamentInput{Name: "Cup", HostCountryCode: "QAT"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	guest, err := service.AddTeam(ctx, tournament.ID, 1, "BRA")
	if err != nil {
		t.Fatalf("AddTeam: %v", err)
	}

	teams, _ := teamRepo.ListByTournament(ctx, nil, tournament.ID)
	var hostID int
	for _, team := range teams {
		if team.IsHost {
			hostID = team.ID
		}
	}

	if err := service.RemoveTeam(ctx, tournament.ID, hostID, 1); !errors.Is(err, ErrHostCannotBeRemoved) {
		t.Errorf("expected ErrHostCannotBeRemoved, got %v", err)
	}
	if err := service.RemoveTeam(ctx, tournament.ID, guest.ID, 1); err != nil {
		t.Fatalf("RemoveTeam: %v", err)
	}
	if count, _ := teamRepo.CountByTournament(ctx, tournament.ID); count != 1 {
		t.Errorf("expected 1 team left, got %d", count)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	service, _, _, _ := newTournamentService(t)
	ctx := context.Background()

	tournament, err := service.Create(ctx, 1, CreateTournamentInput{Name: "Cup", HostCountryCode: "QAT"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// draft -> group_stage перепрыгивает жеребьёвку.
	if _, err := service.UpdateStatus(ctx, tournament.ID, 1, models.StatusGroupStage); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
	}

	for _, status := range []models.TournamentStatus{models.StatusDraw, models.StatusGroupStage, models.StatusCompleted} {
		updated, err := service.UpdateStatus(ctx, tournament.ID, 1, status)
		if err != nil {
			t.Fatalf("UpdateStatus %s: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("status = %s, want %s", updated.Status, status)
		}
	}

	// Завершённый турнир не возвращается в draft.
	if _, err := service.UpdateStatus(ctx, tournament.ID, 1, models.StatusDraft); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestUploadLogo(t *testing.T) {
	service, _, _, uploader := newTournamentService(t)
	ctx := context.Background()

	tournament, err := service.Create(ctx, 1, CreateTournamentInput{Name: "Cup", HostCountryCode: "QAT"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := service.UploadLogo(ctx, tournament.ID, 1, "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}
	if updated.LogoURL == nil || !strings.Contains(*updated.LogoURL, "tournaments/") {
		t.Errorf("logo URL not populated: %v", updated.LogoURL)
	}
	if len(uploader.uploads) != 1 {
		t.Errorf("expected one upload, got %d", len(uploader.uploads))
	}

	if _, err := service.UploadLogo(ctx, tournament.ID, 2, "image/png", strings.NewReader("x")); !errors.Is(err, ErrForbiddenOperation) {
		t.Errorf("expected ErrForbiddenOperation, got %v", err)
	}
}
