package apierror

// Error type URIs following the urn:coachpulse:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:coachpulse:error:validation"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:coachpulse:error:bad_request"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:coachpulse:error:not_found"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:coachpulse:error:unauthorized"

	// TypeForbidden indicates the caller lacks visibility into the
	// requested cohort or member (403)
	TypeForbidden = "urn:coachpulse:error:forbidden"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:coachpulse:error:rate_limit"

	// TypeUpstreamData indicates a read collaborator failed while
	// serving a single-entity lookup (502)
	TypeUpstreamData = "urn:coachpulse:error:upstream_data"

	// TypeInvalidUUID indicates an invalid UUID format in request (400)
	TypeInvalidUUID = "urn:coachpulse:error:invalid_uuid"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:coachpulse:error:internal"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation   = "Validation Error"
	TitleBadRequest   = "Bad Request"
	TitleNotFound     = "Resource Not Found"
	TitleUnauthorized = "Authentication Required"
	TitleForbidden    = "Permission Denied"
	TitleRateLimit    = "Rate Limit Exceeded"
	TitleUpstreamData = "Upstream Data Unavailable"
	TitleInvalidUUID  = "Invalid UUID Format"
	TitleInternal     = "Internal Server Error"
)
