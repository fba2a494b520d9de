package timesheeterrors

import (
	"net/http"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/shared/apperror"
)

var (
	ErrInvalidTimesheetID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timesheet id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidReviewerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reviewer id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidClockRange = apperror.New(
		apperror.CodeInvalidInput,
		"clock_out must be after clock_in",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
	ErrEmptyIDList = apperror.New(
		apperror.CodeInvalidInput,
		"at least one timesheet id is required",
		http.StatusBadRequest,
	)
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"timesheet not found",
		http.StatusNotFound,
	)
	ErrReviewNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to review this timesheet",
		http.StatusForbidden,
	)
	ErrSubmitNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"only the owner may submit a timesheet",
		http.StatusForbidden,
	)
	ErrNotSubmitted = apperror.New(
		apperror.CodeInvalidState,
		"timesheet already processed",
		http.StatusConflict,
	)
	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"only draft timesheets can be submitted",
		http.StatusConflict,
	)
	ErrReviewConflict = apperror.New(
		apperror.CodeConflict,
		"timesheet was processed by a concurrent reviewer",
		http.StatusConflict,
	)
	ErrDuplicateTimesheet = apperror.New(
		apperror.CodeConflict,
		"a timesheet for this date already exists",
		http.StatusConflict,
	)
)
