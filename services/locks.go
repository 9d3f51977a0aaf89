package services

import "sync"

// TournamentLocker сериализует операции жеребьёвки и симуляции в пределах
// одного турнира. Вставка команды в группу - это read-modify-write, и без
// критической секции параллельные запросы к одному турниру могут затереть
// друг друга (lost update). Экземпляр один на процесс и разделяется между
// сервисами жеребьёвки и матчей: очистка жеребьёвки не должна пересекаться
// с генерацией расписания того же турнира.
type TournamentLocker struct {
	locks sync.Map // tournamentID -> *sync.Mutex
}

func NewTournamentLocker() *TournamentLocker {
	return &TournamentLocker{}
}

// Lock берёт мьютекс турнира и возвращает функцию его освобождения.
func (l *TournamentLocker) Lock(tournamentID int) func() {
	value, _ := l.locks.LoadOrStore(tournamentID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
