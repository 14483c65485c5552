package retry

// Condition classifies an error or correction observed during a pipeline phase.
type Condition string

const (
	ConditionOutOfRange         Condition = "value_out_of_range"
	ConditionMissingRequired    Condition = "missing_required_field"
	ConditionInvalidFormat      Condition = "invalid_format"
	ConditionServiceUnavailable Condition = "service_unavailable"
	ConditionDatabaseError      Condition = "database_error"
	ConditionConflict           Condition = "integration_conflict"
	ConditionCollectionFailed   Condition = "collection_failed"
)

// Action is what the orchestrator does when a condition occurs.
type Action string

const (
	ActionClamp            Action = "clamp"
	ActionUseDefault       Action = "use_default"
	ActionSkipEntity       Action = "skip_entity"
	ActionRetryLater       Action = "retry_later"
	ActionRollbackAndRetry Action = "rollback_and_retry"
	ActionFail             Action = "fail"
)

// FallbackTable maps conditions to actions.
type FallbackTable map[Condition]Action

// DefaultFallbacks returns the built-in condition → action mapping.
func DefaultFallbacks() FallbackTable {
	return FallbackTable{
		ConditionOutOfRange:         ActionClamp,
		ConditionMissingRequired:    ActionUseDefault,
		ConditionInvalidFormat:      ActionSkipEntity,
		ConditionServiceUnavailable: ActionRetryLater,
		ConditionDatabaseError:      ActionRollbackAndRetry,
	}
}

// ActionFor returns the configured action, ActionFail for unmapped conditions.
func (t FallbackTable) ActionFor(cond Condition) Action {
	if action, ok := t[cond]; ok {
		return action
	}
	return ActionFail
}

// Retryable reports whether the condition leads to another attempt.
func (t FallbackTable) Retryable(cond Condition) bool {
	switch t.ActionFor(cond) {
	case ActionRetryLater, ActionRollbackAndRetry:
		return true
	default:
		return false
	}
}
