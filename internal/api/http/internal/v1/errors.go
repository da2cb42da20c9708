package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	InvalidInputCode          = 1000
	InvalidInputMessage       = "invalid input"
	PointAndCityStateCode     = 1001
	PointAndCityStateMessage  = "specify lat/long or city/state, not both"
	RecursiveWithPointCode    = 1002
	RecursiveWithPointMessage = "recursive cannot be combined with lat/long"

	RegionNotFoundCode            = 2001
	RegionNotFoundMessage         = "region not found"
	RegionAlreadyExistsCode       = 2002
	RegionAlreadyExistsMessage    = "region already exists"
	RegionHasChildrenCode         = 2003
	RegionHasChildrenMessage      = "region has children, use recursive=true"
	PendingRegionImmutableCode    = 2004
	PendingRegionImmutableMessage = "the pending region cannot be changed"
	ParentRegionNotFoundCode      = 2005
	ParentRegionNotFoundMessage   = "parent region not found"
	NotACityCode                  = 2006
	NotACityMessage               = "region is not a city"

	BusinessNotFoundCode    = 3001
	BusinessNotFoundMessage = "business not found"

	UnauthorizedCode    = 4001
	UnauthorizedMessage = "unauthorized"

	BackfillRunningCode    = 5001
	BackfillRunningMessage = "a backfill task is already running"

	ValidationErrorCode    = 6000
	ValidationErrorMessage = "Validation error"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case InvalidInputCode:
		errorStruct.ErrorCode = InvalidInputCode
		errorStruct.ErrorMessage = InvalidInputMessage
	case RegionNotFoundCode:
		errorStruct.ErrorCode = RegionNotFoundCode
		errorStruct.ErrorMessage = RegionNotFoundMessage
	case RegionAlreadyExistsCode:
		errorStruct.ErrorCode = RegionAlreadyExistsCode
		errorStruct.ErrorMessage = RegionAlreadyExistsMessage
	case RegionHasChildrenCode:
		errorStruct.ErrorCode = RegionHasChildrenCode
		errorStruct.ErrorMessage = RegionHasChildrenMessage
	case PendingRegionImmutableCode:
		errorStruct.ErrorCode = PendingRegionImmutableCode
		errorStruct.ErrorMessage = PendingRegionImmutableMessage
	case ParentRegionNotFoundCode:
		errorStruct.ErrorCode = ParentRegionNotFoundCode
		errorStruct.ErrorMessage = ParentRegionNotFoundMessage
	case NotACityCode:
		errorStruct.ErrorCode = NotACityCode
		errorStruct.ErrorMessage = NotACityMessage
	case PointAndCityStateCode:
		errorStruct.ErrorCode = PointAndCityStateCode
		errorStruct.ErrorMessage = PointAndCityStateMessage
	case RecursiveWithPointCode:
		errorStruct.ErrorCode = RecursiveWithPointCode
		errorStruct.ErrorMessage = RecursiveWithPointMessage
	case BusinessNotFoundCode:
		errorStruct.ErrorCode = BusinessNotFoundCode
		errorStruct.ErrorMessage = BusinessNotFoundMessage
	case UnauthorizedCode:
		errorStruct.ErrorCode = UnauthorizedCode
		errorStruct.ErrorMessage = UnauthorizedMessage
	case BackfillRunningCode:
		errorStruct.ErrorCode = BackfillRunningCode
		errorStruct.ErrorMessage = BackfillRunningMessage
	}

	return errorStruct
}
