package domain

// PersistResult reports the outcome of a best-effort persistence call.
type PersistResult struct {
	Err error
}

// PersistSuccess is the zero-failure result.
func PersistSuccess() PersistResult {
	return PersistResult{}
}

// PersistFailure wraps the reason a save or load failed.
func PersistFailure(err error) PersistResult {
	if err == nil {
		err = ErrStorageUnavailable
	}
	return PersistResult{Err: err}
}

func (r PersistResult) OK() bool {
	return r.Err == nil
}
