package orchestrator

import (
	"fmt"
	"sync"

	"scrapper/feature/scrapping/models"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// lifecycle walks a job or an entity through the pipeline states and keeps
// every state it entered.
type lifecycle struct {
	mu     sync.Mutex
	state  models.JobStatus
	trace  []models.JobStatus
	logger *zap.Logger
	level  zapcore.Level
}

func newLifecycle(logger *zap.Logger, level zapcore.Level) *lifecycle {
	return &lifecycle{
		state:  models.JobPending,
		trace:  []models.JobStatus{models.JobPending},
		logger: logger,
		level:  level,
	}
}

// transition moves to next, rejecting moves the state machine does not allow.
func (l *lifecycle) transition(next models.JobStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.moveLocked(next)
}

// advance moves to next only when it is a later running stage, or a
// terminal state. Entities of one job report here concurrently.
func (l *lifecycle) advance(next models.JobStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !next.Terminal() && next.Stage() <= l.state.Stage() {
		return nil
	}
	return l.moveLocked(next)
}

func (l *lifecycle) moveLocked(next models.JobStatus) error {
	if !l.state.CanTransition(next) {
		return fmt.Errorf("illegal state transition from %s to %s", l.state, next)
	}
	prev := l.state
	l.state = next
	l.trace = append(l.trace, next)
	if ce := l.logger.Check(l.level, "State changed"); ce != nil {
		ce.Write(zap.String("from", string(prev)), zap.String("to", string(next)))
	}
	return nil
}

func (l *lifecycle) states() []models.JobStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.JobStatus(nil), l.trace...)
}

// move transitions an entity and advances its job. Illegal moves are logged
// and leave both unchanged.
func (j *job) move(entity *lifecycle, next models.JobStatus) {
	if err := entity.transition(next); err != nil {
		entity.logger.Error("Entity state rejected", zap.Error(err))
		return
	}
	if next.Terminal() {
		return
	}
	if err := j.state.advance(next); err != nil {
		j.logger.Error("Job state rejected", zap.Error(err))
	}
}
