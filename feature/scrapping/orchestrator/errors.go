package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "scrapper/core/errors"
	"scrapper/core/retry"
	"scrapper/core/source"
	"scrapper/feature/scrapping/convert"
	"scrapper/feature/scrapping/integrate"
	"scrapper/feature/scrapping/models"
)

// timeoutError is a phase that outlived its timeout.
type timeoutError struct {
	class   retry.Class
	timeout time.Duration
	err     error
}

func (e *timeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s: %v", e.class, e.timeout, e.err)
}

func (e *timeoutError) Unwrap() error {
	return e.err
}

func (e *timeoutError) Is(target error) bool {
	return target == apperrors.ErrTimeout
}

// conditionOf classifies err for the fallback table.
func conditionOf(err error) retry.Condition {
	var (
		timeout    *timeoutError
		convErr    *convert.Error
		dbErr      *integrate.Error
		conflict   *integrate.ConflictError
		collection *source.CollectionError
	)
	switch {
	case errors.As(err, &timeout):
		return retry.ConditionServiceUnavailable
	case errors.As(err, &convErr):
		return convErr.Condition
	case errors.As(err, &conflict):
		return conflict.Condition()
	case errors.As(err, &dbErr):
		return dbErr.Condition()
	case errors.As(err, &collection):
		return retry.ConditionCollectionFailed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retry.ConditionServiceUnavailable
	default:
		return ""
	}
}

var phaseClass = map[models.Phase]retry.Class{
	models.PhaseCollect:   retry.ClassCollection,
	models.PhaseClassify:  retry.ClassCollection,
	models.PhaseConvert:   retry.ClassConversion,
	models.PhaseIntegrate: retry.ClassIntegration,
}

var phaseCondition = map[models.Phase]retry.Condition{
	models.PhaseCollect:   retry.ConditionCollectionFailed,
	models.PhaseClassify:  retry.ConditionInvalidFormat,
	models.PhaseConvert:   retry.ConditionInvalidFormat,
	models.PhaseIntegrate: retry.ConditionDatabaseError,
}

// errorInfo turns a phase failure into the structured error of a result.
func errorInfo(phase models.Phase, attempts int, err error) *models.ErrorInfo {
	cond := conditionOf(err)
	if cond == "" {
		cond = phaseCondition[phase]
	}
	info := &models.ErrorInfo{
		Class:     phaseClass[phase],
		Condition: cond,
		Phase:     phase,
		Message:   err.Error(),
		Attempts:  attempts,
	}

	var collection *source.CollectionError
	if errors.As(err, &collection) {
		info.Status = collection.Status
		if collection.Attempts > info.Attempts {
			info.Attempts = collection.Attempts
		}
	}
	return info
}
