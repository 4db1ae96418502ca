package sync

import (
	gosync "sync"
	"time"

	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain"
)

// Estados de la sincronización. Transiciones: idle -> syncing -> idle | failed.
const (
	StatusIdle    = "idle"
	StatusSyncing = "syncing"
	StatusFailed  = "failed"
)

// State estado explícito, a nivel de proceso, que guarda el ciclo de la sincronización
// y bloquea corridas duplicadas. Consultable vía Snapshot.
type State struct {
	mu         gosync.Mutex
	status     string
	lastSyncAt *time.Time
	lastError  string
}

// NewState arranca en idle.
func NewState() *State {
	return &State{status: StatusIdle}
}

// Begin marca el inicio de una corrida. Si ya hay una en curso retorna
// ErrSyncInProgress: el disparo duplicado se rechaza, no se encola.
func (s *State) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusSyncing {
		return domain.ErrSyncInProgress
	}
	s.status = StatusSyncing
	return nil
}

// Finish cierra la corrida: idle si terminó, failed si abortó.
// Los errores parciales acumulados en el resumen no cuentan como falla de la corrida.
func (s *State) Finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastSyncAt = &now
	if err != nil {
		s.status = StatusFailed
		s.lastError = err.Error()
		return
	}
	s.status = StatusIdle
	s.lastError = ""
}

// Snapshot estado observable para el endpoint de status.
func (s *State) Snapshot() dto.SyncStatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp := dto.SyncStatusResponse{Status: s.status, LastError: s.lastError}
	if s.lastSyncAt != nil {
		resp.LastSyncAt = s.lastSyncAt.Format(time.RFC3339)
	}
	return resp
}
