package trial

import "errors"

// ErrNoFinisher indicates a trial was created without a finish sink.
var ErrNoFinisher = errors.New("trial: finisher is required")

// ErrFinished indicates a submit or edit after the trial already finished.
var ErrFinished = errors.New("trial: already finished")

// ErrUnknownField indicates a field id outside the rendered inputs.
var ErrUnknownField = errors.New("trial: unknown field")

// ErrInvalidResult indicates a result payload that breaks the result contract.
var ErrInvalidResult = errors.New("trial: invalid result payload")
