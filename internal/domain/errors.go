package domain

import "errors"

// Доменные ошибки - используются во всех слоях приложения

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrInvalidRole        = errors.New("invalid user role")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Route errors
var (
	ErrRouteNotFound      = errors.New("route not found")
	ErrRouteAlreadyExists = errors.New("route name already taken")
	ErrInvalidRouteData   = errors.New("invalid route data")
)

// Period errors
var (
	ErrPeriodNotFound      = errors.New("period not found")
	ErrPeriodAlreadyExists = errors.New("period name already taken")
	ErrPeriodOverlap       = errors.New("period overlaps an existing period")
	ErrInvalidPeriodData   = errors.New("invalid period data")
	ErrInvalidTimeOfDay    = errors.New("invalid time of day")
)

// RouteTime errors
var (
	ErrRouteTimeNotFound      = errors.New("route time not found")
	ErrRouteTimeAlreadyExists = errors.New("route time for this route and period already exists")
	ErrInvalidRouteTimeData   = errors.New("invalid route time data")
	ErrNoActivePeriod         = errors.New("no period matches the requested time")
)

// Report errors
var (
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidReportData = errors.New("invalid report data")
	ErrInvalidReportType = errors.New("invalid report type")
	ErrNotReportAuthor   = errors.New("only the report author may modify it")
)

// Favorite errors
var (
	ErrFavoriteNotFound      = errors.New("favorite route not found")
	ErrFavoriteAlreadyExists = errors.New("route is already in favorites")
	ErrInvalidFavoriteData   = errors.New("invalid favorite data")
)

// Trace/Stop errors
var (
	ErrTraceNotFound    = errors.New("trace not found")
	ErrStopNotFound     = errors.New("stop not found")
	ErrInvalidTraceData = errors.New("invalid trace data")
	ErrInvalidStopData  = errors.New("invalid stop data")
	ErrInvalidGeometry  = errors.New("invalid geometry")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// General errors
var (
	ErrInternal   = errors.New("internal server error")
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
)
