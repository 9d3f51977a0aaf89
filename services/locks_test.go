package services

import (
	"testing"
	"time"
)

func TestTournamentLockerExcludesSameTournament(t *testing.T) {
	locker := NewTournamentLocker()

	unlock := locker.Lock(1)

	acquired := make(chan struct{})
	go func() {
		defer locker.Lock(1)()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock(1) acquired while the first is held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second Lock(1) never acquired after unlock")
	}
}

func TestTournamentLockerIndependentTournaments(t *testing.T) {
	locker := NewTournamentLocker()

	unlock := locker.Lock(1)
	defer unlock()

	acquired := make(chan struct{})
	go func() {
		defer locker.Lock(2)()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("Lock(2) blocked by a held Lock(1)")
	}
}
