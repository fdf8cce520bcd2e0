package useralerts

import "github.com/iudanet/cloudalerts/internal/models"

// CatchupState is the position of the session in the catch-up protocol.
//
//	from          event             to
//	Idle          BeginCatchup      CatchingUp
//	Idle          CompleteCatchup   CaughtUp
//	CatchingUp    CompleteCatchup   CaughtUp
//	CatchingUp    replay error      CaughtUp
//	any           Clear             Idle
type CatchupState int

const (
	CatchupIdle CatchupState = iota
	CatchingUp
	CaughtUp
)

func (s CatchupState) String() string {
	switch s {
	case CatchupIdle:
		return "idle"
	case CatchingUp:
		return "catching-up"
	case CaughtUp:
		return "caught-up"
	default:
		return "unknown"
	}
}

// session groups the mutable flags that steer how incoming alerts are treated.
type session struct {
	catchup CatchupState

	// максимальный timestamp, увиденный до завершения catch-up
	catchupLastTimestamp int64

	lsn           models.Handle
	fsn           models.Handle
	lastTimeDelta int64

	provisional bool
	noting      bool
	ignoreUnder models.Handle
}

func newSession() session {
	return session{
		catchup:     CatchupIdle,
		lsn:         models.Undef,
		fsn:         models.Undef,
		ignoreUnder: models.Undef,
	}
}

func (s *session) caughtUp() bool {
	return s.catchup == CaughtUp
}

// resetCatchup returns the catch-up related fields to their initial values.
// Provisional and staging flags belong to in-flight transactions and are kept.
func (s *session) resetCatchup() {
	s.catchup = CatchupIdle
	s.catchupLastTimestamp = 0
	s.lsn = models.Undef
	s.fsn = models.Undef
	s.lastTimeDelta = 0
}
